package loom

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// fileBackend is the minimal positioned-I/O contract a RawFile needs from
// the OS. It is implemented once per platform family (file_unix.go via
// golang.org/x/sys/unix, file_other.go via the portable os.File API) so the
// byte-shifting primitives below stay platform independent.
type fileBackend interface {
	pread(buf []byte, off int64) (int, error)
	pwrite(buf []byte, off int64) (int, error)
	size() (int64, error)
	resize(n int64) error
	sync() error
	close() error
}

// RawFile is positioned read/write access to a single underlying file, plus
// the byte-shifting primitives that realize insertion and deletion at the
// file level. It owns the OS file handle exclusively.
type RawFile struct {
	path    string
	writer  bool
	backend fileBackend
}

// OpenRawFile opens path for reading, and for writing too if write is true.
// Directories, character devices, FIFOs, and sockets are rejected.
func OpenRawFile(path string, write bool) (*RawFile, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &OpenError{Path: path, Err: ErrFileDoesNotExist}
	}
	if err != nil {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("%w: %v", ErrUnknownOpenError, err)}
	}

	mode := info.Mode()
	if mode.IsDir() || mode&(os.ModeCharDevice|os.ModeNamedPipe|os.ModeSocket) != 0 {
		return nil, &OpenError{Path: path, Err: ErrUnopenableFile}
	}

	flag := os.O_RDONLY
	if write {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("%w: %v", ErrUnknownOpenError, err)}
	}

	return &RawFile{path: path, writer: write, backend: newFileBackend(f)}, nil
}

func (r *RawFile) Path() string     { return r.path }
func (r *RawFile) IsWritable() bool { return r.writer }

// Read returns up to want bytes starting at abs_pos. Short reads (at or
// past EOF) are legal and are not an error.
func (r *RawFile) Read(absPos int64, want int) ([]byte, error) {
	if want <= 0 {
		return nil, nil
	}
	buf := make([]byte, want)
	n, err := r.backend.pread(buf, absPos)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &ReadError{Err: err}
	}
	return buf[:n], nil
}

// Write writes bytes at abs_pos. It must not be used to implicitly extend
// the file beyond what insert_bytes/Resize already arranged for.
func (r *RawFile) Write(absPos int64, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	_, err := r.backend.pwrite(data, absPos)
	return err
}

// Size returns the current file length.
func (r *RawFile) Size() (int64, error) { return r.backend.size() }

// Resize sets the file length to exactly n, truncating or zero-extending
// as needed.
func (r *RawFile) Resize(n int64) error { return r.backend.resize(n) }

func (r *RawFile) Sync() error  { return r.backend.sync() }
func (r *RawFile) Close() error { return r.backend.close() }

// InsertBytes grows the file by count bytes at abs_pos, shifting every byte
// at position >= abs_pos forward by count, and filling the resulting hole
// with 0x00. Shifting proceeds from the tail backwards so that chunks are
// moved before they would otherwise be overwritten.
func (r *RawFile) InsertBytes(absPos int64, count int64, chunkSize int) error {
	if count == 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	n, err := r.Size()
	if err != nil {
		return err
	}

	shiftBytes := n - absPos
	if shiftBytes > 0 {
		iterations := ceilDiv(shiftBytes, int64(chunkSize))
		tailChunk := shiftBytes % int64(chunkSize)
		if tailChunk == 0 {
			tailChunk = int64(chunkSize)
		}

		for i := int64(0); i < iterations; i++ {
			sliceAmount := int64(chunkSize)
			if i == 0 {
				sliceAmount = tailChunk
			}
			sliceStart := n - tailChunk - i*int64(chunkSize)

			buf, err := r.Read(sliceStart, int(sliceAmount))
			if err != nil {
				return err
			}
			if err := r.Write(sliceStart+count, buf); err != nil {
				return err
			}
		}
	}

	return r.fillZero(absPos, count, chunkSize)
}

// DeleteBytes removes count bytes starting at abs_pos, shifting the suffix
// left. It does not resize the file; the caller resizes afterward.
func (r *RawFile) DeleteBytes(absPos int64, count int64, chunkSize int) error {
	if count == 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	n, err := r.Size()
	if err != nil {
		return err
	}

	shiftStart := absPos + count
	shiftAmount := n - shiftStart
	if shiftAmount <= 0 {
		return nil
	}

	iterations := ceilDiv(shiftAmount, int64(chunkSize))
	for i := int64(0); i < iterations; i++ {
		srcStart := shiftStart + i*int64(chunkSize)
		srcEnd := srcStart + int64(chunkSize)
		if srcEnd > n {
			srcEnd = n
		}

		buf, err := r.Read(srcStart, int(srcEnd-srcStart))
		if err != nil {
			return err
		}
		if err := r.Write(srcStart-count, buf); err != nil {
			return err
		}
	}
	return nil
}

func (r *RawFile) fillZero(absPos, count int64, chunkSize int) error {
	zeros := make([]byte, chunkSize)
	end := absPos + count
	for pos := absPos; pos < end; pos += int64(chunkSize) {
		amount := end - pos
		if amount > int64(chunkSize) {
			amount = int64(chunkSize)
		}
		if err := r.Write(pos, zeros[:amount]); err != nil {
			return err
		}
	}
	return nil
}

func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

