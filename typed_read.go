package loom

import (
	"encoding/binary"
	"math"
)

// readExact is the common short-read guard for every typed accessor below:
// ReadBytes already stops early at EOF, so a typed read simply checks it
// got the width it asked for.
func (v *View) readExact(pos Natural, width int) ([]byte, error) {
	data, err := v.ReadBytes(pos, width)
	if err != nil {
		return nil, err
	}
	if len(data) < width {
		return nil, &RangeError{Position: pos, Err: ErrShortTypedRead}
	}
	return data, nil
}

// ReadUint16 decodes a 16-bit unsigned integer starting at pos using order.
func (v *View) ReadUint16(pos Natural, order binary.ByteOrder) (uint16, error) {
	data, err := v.readExact(pos, 2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(data), nil
}

// ReadUint32 decodes a 32-bit unsigned integer starting at pos using order.
func (v *View) ReadUint32(pos Natural, order binary.ByteOrder) (uint32, error) {
	data, err := v.readExact(pos, 4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(data), nil
}

// ReadUint64 decodes a 64-bit unsigned integer starting at pos using order.
func (v *View) ReadUint64(pos Natural, order binary.ByteOrder) (uint64, error) {
	data, err := v.readExact(pos, 8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(data), nil
}

// ReadFloat32 decodes an IEEE-754 single-precision float starting at pos
// using order, via an explicit bits-to-float conversion rather than a
// pointer-punning reinterpretation of the underlying bytes.
func (v *View) ReadFloat32(pos Natural, order binary.ByteOrder) (float32, error) {
	bits, err := v.ReadUint32(pos, order)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadFloat64 decodes an IEEE-754 double-precision float starting at pos
// using order, via an explicit bits-to-float conversion.
func (v *View) ReadFloat64(pos Natural, order binary.ByteOrder) (float64, error) {
	bits, err := v.ReadUint64(pos, order)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}
