package loom

import (
	"fmt"
	"io"
	"log/slog"
)

// View is the logical, byte-addressable surface over a single underlying
// file: an optionally windowed Constrained File, a Block Cache over it,
// and an Action History overlaid on top. Every public mutation and read
// goes through a View.
type View struct {
	raw        *RawFile
	constraint *ConstrainedFile
	blocks     *BlockCache
	history    *ActionHistory
	flags      Flags
	cfg        ModeConfig

	cachedSize *int64
	logger     *slog.Logger
}

// Open opens path under the given Flags, building the Constrained File and
// Block Cache the Mode requires.
func Open(path string, flags Flags) (*View, error) {
	raw, err := OpenRawFile(path, !flags.ReadOnly)
	if err != nil {
		return nil, err
	}

	cfg, ok := configFor(flags.Mode)
	if !ok {
		cfg = modeConfigs[WholeMode]
	}

	start, end := flags.window()
	constraint, err := NewConstrainedFile(raw, start, end)
	if err != nil {
		raw.Close()
		return nil, err
	}

	blocks, err := NewBlockCache(flags.blockSize(), flags.maxBlockCount())
	if err != nil {
		raw.Close()
		return nil, err
	}

	return &View{
		raw:        raw,
		constraint: constraint,
		blocks:     blocks,
		history:    NewActionHistory(),
		flags:      flags,
		cfg:        cfg,
		logger:     discardLogger,
	}, nil
}

// SetLogger attaches a structured logger for diagnostic events (each Save/
// SaveAs call, and its failure). A nil logger discards all output.
func (v *View) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = discardLogger
	}
	v.logger = logger
}

// SetLogOutput builds a structured text logger writing to w and attaches
// it, for callers who just want diagnostic output somewhere rather than a
// logger they configured themselves.
func (v *View) SetLogOutput(w io.Writer) {
	v.SetLogger(newLogger(w))
}

func (v *View) IsWritable() bool { return v.constraint.IsWritable() && !v.flags.ReadOnly }

// Read returns the byte at pos, or ok=false if pos is at or past size().
func (v *View) Read(pos Natural) (b byte, ok bool, err error) {
	if pos < 0 {
		return 0, false, &RangeError{Position: pos, Err: ErrInvalidPosition}
	}
	b, sourcePos, isByte := v.history.ReversePosition(pos)
	if isByte {
		return b, true, nil
	}
	return v.readRaw(sourcePos)
}

// ReadBytes reads up to amount bytes starting at pos, stopping early at the
// first absent byte (a short read at the logical end).
func (v *View) ReadBytes(pos Natural, amount int) ([]byte, error) {
	if amount <= 0 {
		return nil, nil
	}
	out := make([]byte, 0, amount)
	for i := 0; i < amount; i++ {
		b, ok, err := v.Read(pos + Natural(i))
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, b)
	}
	return out, nil
}

// readRaw fetches the byte at sourcePos from the Block Cache, loading the
// covering block from the Constrained File if it isn't already cached.
func (v *View) readRaw(sourcePos Natural) (byte, bool, error) {
	rounded := v.blocks.RoundDown(sourcePos)
	blk, ok, err := v.blocks.LoadIfMissing(rounded, v.constraint)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	offset := sourcePos - rounded
	if offset < 0 || offset >= int64(len(blk.bytes)) {
		return 0, false, nil
	}
	return blk.bytes[offset], true, nil
}

// Edit overwrites a single byte at pos. Size-preserving; legal in every
// mode.
func (v *View) Edit(pos Natural, b byte) error {
	return v.EditBytes(pos, []byte{b})
}

// EditBytes overwrites len(data) bytes starting at pos.
func (v *View) EditBytes(pos Natural, data []byte) error {
	if !v.IsWritable() {
		return ErrReadOnly
	}
	if pos < 0 {
		return &RangeError{Position: pos, Err: ErrInvalidPosition}
	}
	v.history.Submit(&editAction{position: pos, data: append([]byte(nil), data...)})
	return nil
}

// Insert grows the file by count bytes at pos, filling the hole with 0x00.
func (v *View) Insert(pos Natural, count int64) error {
	return v.InsertFill(pos, count, 0x00)
}

// InsertFill grows the file by count bytes at pos, filling the hole with
// fill.
func (v *View) InsertFill(pos Natural, count int64, fill byte) error {
	if err := v.checkInsert(pos, count); err != nil {
		return err
	}
	v.history.Submit(&insertAction{position: pos, count: count, fill: fill})
	v.invalidateSize()
	return nil
}

// InsertPattern grows the file by count bytes at pos, tiling pattern
// cyclically across the new region. It is sugar over a Bundle of an Insert
// (filled with pattern[0]) followed by an Edit that overwrites the region
// with the tiled pattern; reverse-position replay then resolves every
// inserted position to the edit's bytes. An empty pattern submits a plain
// 0x00-filled Insert instead of a Bundle.
func (v *View) InsertPattern(pos Natural, count int64, pattern []byte) error {
	if err := v.checkInsert(pos, count); err != nil {
		return err
	}
	if len(pattern) == 0 {
		v.history.Submit(&insertAction{position: pos, count: count, fill: 0x00})
		v.invalidateSize()
		return nil
	}

	tiled := make([]byte, count)
	for i := range tiled {
		tiled[i] = pattern[i%len(pattern)]
	}
	bundle := &bundleAction{children: []action{
		&insertAction{position: pos, count: count, fill: pattern[0]},
		&editAction{position: pos, data: tiled},
	}}
	v.history.Submit(bundle)
	v.invalidateSize()
	return nil
}

// Delete removes count bytes starting at pos, shifting the suffix left.
func (v *View) Delete(pos Natural, count int64) error {
	if !v.IsWritable() {
		return ErrReadOnly
	}
	if !v.cfg.AllowDelete {
		return fmt.Errorf("delete at %d: %w", pos, ErrDeletionUnsupported)
	}
	if pos < 0 || count < 0 {
		return &RangeError{Position: pos, Err: ErrInvalidPosition}
	}
	v.history.Submit(&deleteAction{position: pos, count: count})
	v.invalidateSize()
	return nil
}

func (v *View) checkInsert(pos Natural, count int64) error {
	if !v.IsWritable() {
		return ErrReadOnly
	}
	if !v.cfg.AllowInsert {
		return fmt.Errorf("insert at %d: %w", pos, ErrInsertionUnsupported)
	}
	if pos < 0 || count < 0 {
		return &RangeError{Position: pos, Err: ErrInvalidPosition}
	}
	return nil
}

// Size returns the current logical size, recomputing from the underlying
// file size plus the history's accumulated size delta.
func (v *View) Size() (int64, error) {
	base, err := v.constraint.Size()
	if err != nil {
		return 0, err
	}
	size := base + v.history.SizeDelta()
	v.cachedSize = &size
	return size, nil
}

// SizeCached returns the last computed size without touching the
// underlying file, computing it once if it has never been requested.
func (v *View) SizeCached() (int64, error) {
	if v.cachedSize != nil {
		return *v.cachedSize, nil
	}
	return v.Size()
}

func (v *View) invalidateSize() { v.cachedSize = nil }

// CanUndo reports whether there is an applied action to undo.
func (v *View) CanUndo() bool { return v.history.CanUndo() }

// CanRedo reports whether there is an undone action to redo.
func (v *View) CanRedo() bool { return v.history.CanRedo() }

// Undo reverts the most recently applied action.
func (v *View) Undo() UndoStatus {
	status := v.history.Undo()
	if status == UndoSuccess {
		v.invalidateSize()
	}
	return status
}

// Redo reapplies the most recently undone action.
func (v *View) Redo() RedoStatus {
	status := v.history.Redo()
	if status == RedoSuccess {
		v.invalidateSize()
	}
	return status
}

// Save writes pending actions back to the file this View was opened from.
func (v *View) Save() (SaveStatus, error) {
	v.logger.Info("save", "path", v.raw.Path(), "strategy", v.cfg.SaveStrategy.String())
	status, err := v.save(v.raw.Path())
	if err != nil {
		v.logger.Error("save failed", "path", v.raw.Path(), "error", err)
	}
	return status, err
}

// SaveAs writes pending actions to a new path, leaving the View's source
// file untouched until the rename succeeds.
func (v *View) SaveAs(path string) (SaveStatus, error) {
	v.logger.Info("save as", "path", path, "strategy", v.cfg.SaveStrategy.String())
	status, err := v.save(path)
	if err != nil {
		v.logger.Error("save as failed", "path", path, "error", err)
	}
	return status, err
}

// Close releases the underlying file handle.
func (v *View) Close() error { return v.raw.Close() }
