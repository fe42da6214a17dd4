//go:build unix

package loom

import (
	"os"

	"golang.org/x/sys/unix"
)

// unixBackend implements fileBackend with positioned syscalls, avoiding the
// seek-then-read/write races a shared *os.File offset would otherwise
// invite. Grounded on luhtfiimanal-go-cache-archive's shard I/O, which talks
// to its backing files through the same golang.org/x/sys/unix primitives.
type unixBackend struct {
	f *os.File
}

func newFileBackend(f *os.File) fileBackend {
	return &unixBackend{f: f}
}

func (b *unixBackend) pread(buf []byte, off int64) (int, error) {
	n, err := unix.Pread(int(b.f.Fd()), buf, off)
	if err != nil {
		return n, err
	}
	return n, nil
}

func (b *unixBackend) pwrite(buf []byte, off int64) (int, error) {
	return unix.Pwrite(int(b.f.Fd()), buf, off)
}

func (b *unixBackend) size() (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(b.f.Fd()), &st); err != nil {
		return 0, err
	}
	return st.Size, nil
}

func (b *unixBackend) resize(n int64) error {
	return unix.Ftruncate(int(b.f.Fd()), n)
}

func (b *unixBackend) sync() error {
	return unix.Fsync(int(b.f.Fd()))
}

func (b *unixBackend) close() error {
	return b.f.Close()
}
