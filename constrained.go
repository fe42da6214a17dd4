package loom

// ConstrainedFile wraps a RawFile and an optional half-open absolute window
// [start, end). It translates Natural positions to Absolute positions and
// is the only thing that knows the window exists; everything above it
// speaks purely in Natural positions. It owns the underlying RawFile
// exclusively.
type ConstrainedFile struct {
	raw   *RawFile
	start *int64
	end   *int64
}

// NewConstrainedFile wraps raw with an optional half-open window. A window
// with start == end (both present) is rejected: a zero-length window admits
// no positions and is a programming error at construction, not a runtime
// one.
func NewConstrainedFile(raw *RawFile, start, end *int64) (*ConstrainedFile, error) {
	if start != nil && end != nil && *start == *end {
		return nil, ErrEmptyWindow
	}
	return &ConstrainedFile{raw: raw, start: start, end: end}, nil
}

func (c *ConstrainedFile) IsWritable() bool { return c.raw.IsWritable() }

// toAbsolute adds the window start (if any) to a Natural position and
// rejects the result if it falls at or past the window end (if any).
func (c *ConstrainedFile) toAbsolute(pos Natural) (absolute, error) {
	abs := pos
	if c.start != nil {
		abs += *c.start
	}
	if c.end != nil && abs >= *c.end {
		return 0, &RangeError{Position: pos, Err: ErrPositionRangeError}
	}
	return abs, nil
}

// ReadByte returns the byte at pos, or ok=false if pos is at or past the
// logical end (of the window, or of the file if unwindowed).
func (c *ConstrainedFile) ReadByte(pos Natural) (b byte, ok bool, err error) {
	data, err := c.ReadBytes(pos, 1)
	if err != nil {
		return 0, false, err
	}
	if len(data) == 0 {
		return 0, false, nil
	}
	return data[0], true, nil
}

// ReadBytes reads up to amount bytes starting at pos. Short reads at EOF or
// at the window boundary are not an error.
func (c *ConstrainedFile) ReadBytes(pos Natural, amount int) ([]byte, error) {
	if amount <= 0 {
		return nil, nil
	}
	abs, err := c.toAbsolute(pos)
	if err != nil {
		// pos is at or past the window end: an empty read, not an error.
		return nil, nil
	}
	if c.end != nil {
		maxAmount := *c.end - abs
		if int64(amount) > maxAmount {
			amount = int(maxAmount)
		}
	}
	return c.raw.Read(abs, amount)
}

// Edit overwrites bytes starting at pos.
func (c *ConstrainedFile) Edit(pos Natural, data []byte) error {
	abs, err := c.toAbsolute(pos)
	if err != nil {
		return err
	}
	return c.raw.Write(abs, data)
}

// Insert grows the file by count bytes at pos.
func (c *ConstrainedFile) Insert(pos Natural, count int64, chunkSize int) error {
	abs, err := c.toAbsolute(pos)
	if err != nil {
		return err
	}
	return c.raw.InsertBytes(abs, count, chunkSize)
}

// Delete removes count bytes starting at pos.
func (c *ConstrainedFile) Delete(pos Natural, count int64, chunkSize int) error {
	abs, err := c.toAbsolute(pos)
	if err != nil {
		return err
	}
	return c.raw.DeleteBytes(abs, count, chunkSize)
}

// Size returns the underlying file's size; the window does not clip it.
func (c *ConstrainedFile) Size() (int64, error) { return c.raw.Size() }
