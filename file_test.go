package loom

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "raw.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestOpenRawFileMissing(t *testing.T) {
	_, err := OpenRawFile(filepath.Join(t.TempDir(), "missing"), false)
	var openErr *OpenError
	if err == nil {
		t.Fatal("expected an error opening a missing file")
	}
	if !asOpenError(err, &openErr) {
		t.Fatalf("expected *OpenError, got %T: %v", err, err)
	}
}

func TestOpenRawFileDirectory(t *testing.T) {
	_, err := OpenRawFile(t.TempDir(), false)
	if err == nil {
		t.Fatal("expected an error opening a directory")
	}
}

func asOpenError(err error, target **OpenError) bool {
	oe, ok := err.(*OpenError)
	if ok {
		*target = oe
	}
	return ok
}

func TestRawFileReadWrite(t *testing.T) {
	path := writeTempFile(t, []byte("hello world"))
	f, err := OpenRawFile(path, true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	data, err := f.Read(0, 5)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", data)
	}

	if err := f.Write(6, []byte("WORLD")); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err = f.Read(0, 11)
	if err != nil {
		t.Fatalf("read after write: %v", err)
	}
	if string(data) != "hello WORLD" {
		t.Fatalf("expected %q, got %q", "hello WORLD", data)
	}
}

func TestRawFileReadPastEOFIsShort(t *testing.T) {
	path := writeTempFile(t, []byte("abc"))
	f, err := OpenRawFile(path, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	data, err := f.Read(1, 10)
	if err != nil {
		t.Fatalf("expected short read, not an error: %v", err)
	}
	if string(data) != "bc" {
		t.Fatalf("expected %q, got %q", "bc", data)
	}
}

// TestRawFileInsertBytes uses a 300-byte file where bytes[i] = i mod 256,
// inserting 50 bytes at position 100 with a small chunk size to force
// multiple shift iterations.
func TestRawFileInsertBytes(t *testing.T) {
	src := make([]byte, 300)
	for i := range src {
		src[i] = byte(i % 256)
	}
	path := writeTempFile(t, src)
	f, err := OpenRawFile(path, true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if err := f.InsertBytes(100, 50, 17); err != nil {
		t.Fatalf("insert_bytes: %v", err)
	}
	if err := f.Resize(350); err != nil {
		t.Fatalf("resize: %v", err)
	}

	got, err := f.Read(0, 350)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got[:100], src[:100]) {
		t.Fatal("prefix before the insert point changed")
	}
	for i := 100; i < 150; i++ {
		if got[i] != 0x00 {
			t.Fatalf("expected zero fill at %d, got %#x", i, got[i])
		}
	}
	if !bytes.Equal(got[150:350], src[100:300]) {
		t.Fatal("suffix after the insert point was not shifted correctly")
	}
}

func TestRawFileDeleteBytes(t *testing.T) {
	src := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	path := writeTempFile(t, src)
	f, err := OpenRawFile(path, true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if err := f.DeleteBytes(2, 3, 2); err != nil {
		t.Fatalf("delete_bytes: %v", err)
	}
	if err := f.Resize(3); err != nil {
		t.Fatalf("resize: %v", err)
	}

	got, err := f.Read(0, 3)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []byte{0x01, 0x02, 0x06}
	if !bytes.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRawFileInsertAtEOFIsPureAppend(t *testing.T) {
	path := writeTempFile(t, []byte("abc"))
	f, err := OpenRawFile(path, true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if err := f.InsertBytes(3, 2, 4); err != nil {
		t.Fatalf("insert_bytes at EOF: %v", err)
	}
	if err := f.Resize(5); err != nil {
		t.Fatalf("resize: %v", err)
	}
	got, err := f.Read(0, 5)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []byte{'a', 'b', 'c', 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
