// Package loom lets callers edit binary files of arbitrary size without
// loading them into memory. It exposes a random-access byte view of a file
// overlaid with an in-memory, undoable edit history, and can materialize the
// edited result back to disk in place or to a new path.
//
// Three mutation classes are supported: overwrite (Edit), insertion
// (Insert), and deletion (Delete). Four modes (Whole, Partial,
// OpenPartialRight, Spot) constrain which positions are visible and which
// mutation classes are legal for a given View.
//
// The core is single-threaded: every operation on a View must be serialized
// by the caller. There is no internal locking, no asynchronous write-back,
// and no cancellation.
package loom
