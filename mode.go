package loom

// SaveStrategy selects how a View persists pending actions to disk.
type SaveStrategy int

const (
	// SaveWhole copies the file to a temp file, replays every action
	// against the copy, and renames it over the original.
	SaveWhole SaveStrategy = iota
	// SavePartial replays pending actions directly against the open file,
	// in place, without a temp-file copy.
	SavePartial
)

func (s SaveStrategy) String() string {
	switch s {
	case SaveWhole:
		return "Whole"
	case SavePartial:
		return "Partial"
	default:
		return "Unknown"
	}
}

// Mode selects a window and a capability tuple over a single underlying
// file, mirroring the original implementation's FileModeInfo variants.
type Mode int

const (
	// WholeMode exposes the entire file, unwindowed, and allows insertion
	// and deletion anywhere. Saving copies to a temp file.
	WholeMode Mode = iota
	// PartialMode exposes a fixed [start, end) window and forbids both
	// insertion and deletion. Saving still goes through the temp-file copy,
	// since the window is a read/write clip over the caller-visible range,
	// not a guarantee that the underlying file is small enough to patch in
	// place.
	PartialMode
	// OpenPartialRightMode exposes a window open on the right ([start, EOF))
	// and allows insertion and deletion within it, since growing or
	// shrinking the tail of the file doesn't disturb bytes before start.
	// Saving goes through the temp-file copy, same as WholeMode.
	OpenPartialRightMode
	// SpotMode exposes a single fixed-size window and forbids insertion and
	// deletion, like PartialMode, but is intended for narrow, one-off
	// patches rather than general editing. Because every action is a
	// same-size overwrite, saving writes directly against the source file
	// with no temp-file copy.
	SpotMode
)

func (m Mode) String() string {
	switch m {
	case WholeMode:
		return "Whole"
	case PartialMode:
		return "Partial"
	case OpenPartialRightMode:
		return "OpenPartialRight"
	case SpotMode:
		return "Spot"
	default:
		return "Unknown"
	}
}

// ModeConfig is the capability tuple a Mode resolves to: whether the window
// has a fixed start/end, and whether insertion/deletion are permitted
// within it.
type ModeConfig struct {
	Mode         Mode
	OpenStart    bool
	OpenEnd      bool
	AllowInsert  bool
	AllowDelete  bool
	SaveStrategy SaveStrategy
}

// modeConfigs is the fixed policy table described in the original
// implementation's FileModeInfo: each Mode maps to exactly one capability
// tuple, never computed ad hoc at call sites.
var modeConfigs = map[Mode]ModeConfig{
	WholeMode: {
		Mode: WholeMode, OpenStart: true, OpenEnd: true,
		AllowInsert: true, AllowDelete: true, SaveStrategy: SaveWhole,
	},
	PartialMode: {
		Mode: PartialMode, OpenStart: false, OpenEnd: false,
		AllowInsert: false, AllowDelete: false, SaveStrategy: SaveWhole,
	},
	OpenPartialRightMode: {
		Mode: OpenPartialRightMode, OpenStart: false, OpenEnd: true,
		AllowInsert: true, AllowDelete: true, SaveStrategy: SaveWhole,
	},
	SpotMode: {
		Mode: SpotMode, OpenStart: false, OpenEnd: false,
		AllowInsert: false, AllowDelete: false, SaveStrategy: SavePartial,
	},
}

// configFor returns the capability tuple for m. Every Mode constant has an
// entry in modeConfigs, so the ok result is only useful to callers passing
// an out-of-range value.
func configFor(m Mode) (ModeConfig, bool) {
	c, ok := modeConfigs[m]
	return c, ok
}
