package loom

// Natural is a caller-facing, zero-based byte index into the logical file
// produced by replaying the action history over the underlying source.
// Arithmetic with plain offsets is fine; Natural positions from different
// Views must never be mixed.
type Natural = int64

// Absolute is a zero-based byte index into the physical, underlying file.
// It is obtained only by applying a ConstrainedFile's window offset to a
// Natural position; arithmetic on Absolute positions is an internal-only
// concern and is not exposed at the public API.
type absolute = int64
