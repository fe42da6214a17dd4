package loom

// Default tuning values, used wherever a caller leaves the corresponding
// Flags field at its zero value.
const (
	// DefaultBlockSize is the size of a cached block, in bytes.
	DefaultBlockSize int64 = 1024

	// DefaultMaxBlockCount bounds how many blocks the Block Cache holds at
	// once, independent of file size.
	DefaultMaxBlockCount = 8

	// DefaultChunkSize is the buffer size used by the shift loops in
	// RawFile.InsertBytes/DeleteBytes and by the whole-file save pipeline's
	// copy/replay passes.
	DefaultChunkSize = 120

	// MaxTempFileRetries bounds how many random temp-file names a whole-file
	// save will try before giving up.
	MaxTempFileRetries = 10
)

// Flags configures a View: its window (via Mode), and the tuning knobs for
// its Block Cache and byte-shifting primitives. The zero value is usable,
// since every field defaults sensibly, mirroring the original
// implementation's Flags struct, which callers partially populate rather
// than fully constructing.
type Flags struct {
	// Mode selects the window and capability tuple. The zero value,
	// WholeMode, is the common case: no window, full read/write/insert/
	// delete.
	Mode Mode

	// WindowStart/WindowEnd bound the window for PartialMode, SpotMode, and
	// OpenPartialRightMode. Ignored by WholeMode. WindowEnd is ignored by
	// OpenPartialRightMode, whose window is always open on the right.
	WindowStart int64
	WindowEnd   int64

	// BlockSize overrides DefaultBlockSize when positive.
	BlockSize int64
	// MaxBlockCount overrides DefaultMaxBlockCount when positive.
	MaxBlockCount int
	// ChunkSize overrides DefaultChunkSize when positive.
	ChunkSize int

	// ReadOnly opens the underlying file for reading only; Edit/Insert/
	// Delete/Save all fail against a read-only View.
	ReadOnly bool
}

func (f Flags) blockSize() int64 {
	if f.BlockSize > 0 {
		return f.BlockSize
	}
	return DefaultBlockSize
}

func (f Flags) maxBlockCount() int {
	if f.MaxBlockCount > 0 {
		return f.MaxBlockCount
	}
	return DefaultMaxBlockCount
}

func (f Flags) chunkSize() int {
	if f.ChunkSize > 0 {
		return f.ChunkSize
	}
	return DefaultChunkSize
}

// window resolves f's Mode/WindowStart/WindowEnd into the (start, end)
// pointer pair NewConstrainedFile expects. Resolving an open end against
// the underlying file's current size isn't necessary here: ConstrainedFile
// itself treats a nil bound as open.
func (f Flags) window() (start, end *int64) {
	cfg, ok := configFor(f.Mode)
	if !ok {
		cfg = modeConfigs[WholeMode]
	}
	if !cfg.OpenStart {
		s := f.WindowStart
		start = &s
	}
	if !cfg.OpenEnd {
		e := f.WindowEnd
		end = &e
	}
	return start, end
}
