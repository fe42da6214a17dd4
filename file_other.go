//go:build !unix

package loom

import (
	"errors"
	"io"
	"os"
)

// portableBackend implements fileBackend over the stdlib-only os.File API,
// for platforms where golang.org/x/sys/unix has no positioned-I/O support.
type portableBackend struct {
	f *os.File
}

func newFileBackend(f *os.File) fileBackend {
	return &portableBackend{f: f}
}

func (b *portableBackend) pread(buf []byte, off int64) (int, error) {
	n, err := b.f.ReadAt(buf, off)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	return n, err
}

func (b *portableBackend) pwrite(buf []byte, off int64) (int, error) {
	return b.f.WriteAt(buf, off)
}

func (b *portableBackend) size() (int64, error) {
	info, err := b.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (b *portableBackend) resize(n int64) error { return b.f.Truncate(n) }
func (b *portableBackend) sync() error          { return b.f.Sync() }
func (b *portableBackend) close() error         { return b.f.Close() }
