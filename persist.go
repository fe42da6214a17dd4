package loom

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SaveStatus is the non-exceptional result of a save/save-as call. Save
// failures that are expected in ordinary use (a bad filename, a full temp
// directory) are reported this way rather than as errors, matching the
// original implementation's status-code design.
type SaveStatus int

const (
	SaveSuccess SaveStatus = iota
	SaveInvalidFilename
	SaveInvalidDestination
	SaveInsufficientPermissions
	SaveTempFileIterationLimit
	SaveInvalidMode
)

func (s SaveStatus) String() string {
	switch s {
	case SaveSuccess:
		return "Success"
	case SaveInvalidFilename:
		return "InvalidFilename"
	case SaveInvalidDestination:
		return "InvalidDestination"
	case SaveInsufficientPermissions:
		return "InsufficientPermissions"
	case SaveTempFileIterationLimit:
		return "TempFileIterationLimit"
	case SaveInvalidMode:
		return "InvalidMode"
	default:
		return "Unknown"
	}
}

// save dispatches to the whole-file or partial strategy according to v's
// mode configuration.
func (v *View) save(destPath string) (SaveStatus, error) {
	if !v.IsWritable() {
		return SaveInsufficientPermissions, nil
	}
	switch v.cfg.SaveStrategy {
	case SaveWhole:
		return v.saveWhole(destPath)
	case SavePartial:
		return v.savePartial(destPath)
	default:
		return SaveInvalidMode, nil
	}
}

// saveWhole implements the temp-file copy/resize/replay/resize/rename
// pipeline described for the default Whole save strategy.
func (v *View) saveWhole(destPath string) (SaveStatus, error) {
	dest := filepath.Clean(destPath)
	base := filepath.Base(dest)
	if base == "" || base == "." || base == ".." {
		return SaveInvalidFilename, nil
	}

	dir := filepath.Dir(dest)
	if dir == "." && filepath.Dir(destPath) == "." {
		dir = filepath.Dir(v.raw.Path())
		dest = filepath.Join(dir, base)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return SaveInvalidDestination, nil
	}

	oldSize, err := v.raw.Size()
	if err != nil {
		return SaveSuccess, err
	}
	newSize := oldSize + v.history.SizeDelta()

	tempPath, tempFile, status, err := createTempFile(dir, base)
	if status != SaveSuccess || err != nil {
		return status, err
	}
	succeeded := false
	defer func() {
		tempFile.Close()
		if !succeeded {
			os.Remove(tempPath)
		}
	}()

	if err := copyFileContents(v.raw.Path(), tempPath, v.flags.chunkSize()); err != nil {
		return SaveSuccess, err
	}

	temp, err := OpenRawFile(tempPath, true)
	if err != nil {
		return SaveSuccess, err
	}
	defer temp.Close()

	maxSize := oldSize
	if newSize > maxSize {
		maxSize = newSize
	}
	if err := temp.Resize(maxSize); err != nil {
		return SaveSuccess, err
	}

	for _, a := range v.history.AppliedActions() {
		if err := a.saveTo(temp, v.flags.chunkSize()); err != nil {
			return SaveSuccess, err
		}
	}

	if err := temp.Resize(newSize); err != nil {
		return SaveSuccess, err
	}
	if err := temp.Sync(); err != nil {
		return SaveSuccess, err
	}
	if err := temp.Close(); err != nil {
		return SaveSuccess, err
	}
	tempFile.Close()

	// Closing the source handle before the rename permits it on platforms
	// that forbid renaming over an open file; it also means the View must
	// reopen dest afterward to see the materialized result.
	oldWritable := v.raw.IsWritable()
	if err := v.raw.Close(); err != nil {
		return SaveSuccess, err
	}

	if err := os.Rename(tempPath, dest); err != nil {
		newRaw, reopenErr := OpenRawFile(v.raw.Path(), oldWritable)
		if reopenErr == nil {
			v.raw = newRaw
			v.constraint = rebuildConstraint(v.raw, v.flags)
		}
		return SaveSuccess, err
	}
	succeeded = true

	newRaw, err := OpenRawFile(dest, oldWritable)
	if err != nil {
		return SaveSuccess, err
	}
	v.raw = newRaw
	v.constraint = rebuildConstraint(v.raw, v.flags)

	v.history.Clear()
	v.invalidateSize()
	v.blocks.Invalidate()
	return SaveSuccess, nil
}

// rebuildConstraint re-derives a ConstrainedFile for raw from flags. Used
// after save repoints a View at a freshly renamed file.
func rebuildConstraint(raw *RawFile, flags Flags) *ConstrainedFile {
	start, end := flags.window()
	c, _ := NewConstrainedFile(raw, start, end)
	return c
}

// savePartial replays actions directly against the source file. Only
// SpotMode selects this strategy: every action it permits is a same-size
// overwrite, so there is nothing to grow, shrink, or rename.
func (v *View) savePartial(destPath string) (SaveStatus, error) {
	if destPath != "" && filepath.Clean(destPath) != filepath.Clean(v.raw.Path()) {
		return SaveInvalidMode, nil
	}
	for _, a := range v.history.AppliedActions() {
		if err := a.saveTo(v.raw, v.flags.chunkSize()); err != nil {
			return SaveSuccess, err
		}
	}
	if err := v.raw.Sync(); err != nil {
		return SaveSuccess, err
	}
	v.history.Clear()
	v.invalidateSize()
	v.blocks.Invalidate()
	return SaveSuccess, nil
}

// createTempFile generates "<base>.<hex32>.tmp" inside dir, retrying on
// collision up to MaxTempFileRetries times.
func createTempFile(dir, base string) (string, *os.File, SaveStatus, error) {
	for i := 0; i < MaxTempFileRetries; i++ {
		suffix, err := randomHex32()
		if err != nil {
			return "", nil, SaveSuccess, err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s.%s.tmp", base, suffix))
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return path, f, SaveSuccess, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", nil, SaveSuccess, err
		}
	}
	return "", nil, SaveTempFileIterationLimit, nil
}

// randomHex32 returns a random 32-bit value as lowercase hex with no
// leading-zero padding.
func randomHex32() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	v := binary.BigEndian.Uint32(buf[:])
	return fmt.Sprintf("%x", v), nil
}

// copyFileContents copies src's bytes to dst, which must already exist
// and be open-able for writing, in chunkSize-sized reads.
func copyFileContents(src, dst string, chunkSize int) error {
	in, err := OpenRawFile(src, false)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := OpenRawFile(dst, true)
	if err != nil {
		return err
	}
	defer out.Close()

	size, err := in.Size()
	if err != nil {
		return err
	}

	for pos := int64(0); pos < size; pos += int64(chunkSize) {
		want := chunkSize
		if remaining := size - pos; remaining < int64(chunkSize) {
			want = int(remaining)
		}
		buf, err := in.Read(pos, want)
		if err != nil {
			return err
		}
		if err := out.Write(pos, buf); err != nil {
			return err
		}
	}
	return nil
}
