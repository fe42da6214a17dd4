package loom

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestReadUint32LittleEndian(t *testing.T) {
	v, _ := openView(t, []byte{0x78, 0x56, 0x34, 0x12}, Flags{Mode: WholeMode})
	got, err := v.ReadUint32(0, binary.LittleEndian)
	if err != nil {
		t.Fatalf("read uint32: %v", err)
	}
	if got != 0x12345678 {
		t.Fatalf("expected 0x12345678, got %#x", got)
	}
}

func TestReadUint16BigEndian(t *testing.T) {
	v, _ := openView(t, []byte{0x01, 0x02}, Flags{Mode: WholeMode})
	got, err := v.ReadUint16(0, binary.BigEndian)
	if err != nil {
		t.Fatalf("read uint16: %v", err)
	}
	if got != 0x0102 {
		t.Fatalf("expected 0x0102, got %#x", got)
	}
}

func TestReadFloat32RoundTrip(t *testing.T) {
	want := float32(3.14159)
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(want))

	v, _ := openView(t, buf, Flags{Mode: WholeMode})
	got, err := v.ReadFloat32(0, binary.LittleEndian)
	if err != nil {
		t.Fatalf("read float32: %v", err)
	}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestReadShortTypedReadErrors(t *testing.T) {
	v, _ := openView(t, []byte{0x01}, Flags{Mode: WholeMode})
	if _, err := v.ReadUint32(0, binary.LittleEndian); err == nil {
		t.Fatal("expected an error reading a width wider than the file")
	}
}
