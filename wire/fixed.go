package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/wippyai/postcard/errors"
)

// Fixed-width values are written with no prefix; the width comes from the
// static type.

func putU16(b []byte, v uint16) []byte {
	binary.LittleEndian.PutUint16(b, v)
	return b[:2]
}

func putU32(b []byte, v uint32) []byte {
	binary.LittleEndian.PutUint32(b, v)
	return b[:4]
}

func putU64(b []byte, v uint64) []byte {
	binary.LittleEndian.PutUint64(b, v)
	return b[:8]
}

// ValidChar reports whether v is a Unicode scalar value.
func ValidChar(v uint32) bool {
	return v <= utf8.MaxRune && (v < 0xD800 || v > 0xDFFF)
}

// fixed returns the next width bytes of the input, or UnexpectedEnd.
func (r *Reader) fixed(width int) ([]byte, error) {
	if len(r.data)-r.pos < width {
		return nil, errors.UnexpectedEnd(errors.PhaseDecode, r.pos, width, len(r.data)-r.pos)
	}
	b := r.data[r.pos : r.pos+width]
	r.pos += width
	return b, nil
}

// DeserializeU8 reads one byte.
func (r *Reader) DeserializeU8() (uint8, error) {
	b, err := r.fixed(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// DeserializeU16 reads a little-endian 16-bit integer.
func (r *Reader) DeserializeU16() (uint16, error) {
	b, err := r.fixed(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// DeserializeU32 reads a little-endian 32-bit integer.
func (r *Reader) DeserializeU32() (uint32, error) {
	b, err := r.fixed(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// DeserializeU64 reads a little-endian 64-bit integer.
func (r *Reader) DeserializeU64() (uint64, error) {
	b, err := r.fixed(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// DeserializeI8 reads one byte as a two's complement integer.
func (r *Reader) DeserializeI8() (int8, error) {
	v, err := r.DeserializeU8()
	return int8(v), err
}

// DeserializeI16 reads a little-endian two's complement 16-bit integer.
func (r *Reader) DeserializeI16() (int16, error) {
	v, err := r.DeserializeU16()
	return int16(v), err
}

// DeserializeI32 reads a little-endian two's complement 32-bit integer.
func (r *Reader) DeserializeI32() (int32, error) {
	v, err := r.DeserializeU32()
	return int32(v), err
}

// DeserializeI64 reads a little-endian two's complement 64-bit integer.
func (r *Reader) DeserializeI64() (int64, error) {
	v, err := r.DeserializeU64()
	return int64(v), err
}

// DeserializeF32 reads the IEEE 754 bits of a float32.
func (r *Reader) DeserializeF32() (float32, error) {
	v, err := r.DeserializeU32()
	return math.Float32frombits(v), err
}

// DeserializeF64 reads the IEEE 754 bits of a float64.
func (r *Reader) DeserializeF64() (float64, error) {
	v, err := r.DeserializeU64()
	return math.Float64frombits(v), err
}

// DeserializeChar reads a 4-byte scalar value. Surrogates and values past
// U+10FFFF fail with BadChar.
func (r *Reader) DeserializeChar() (rune, error) {
	start := r.pos
	v, err := r.DeserializeU32()
	if err != nil {
		return 0, err
	}
	if !ValidChar(v) {
		return 0, errors.InvalidChar(errors.PhaseDecode, nil, start, v)
	}
	return rune(v), nil
}

// SerializeU8 writes one byte.
func (w *Writer) SerializeU8(v uint8) error {
	return w.sink.Push(v)
}

// SerializeU16 writes v little-endian in 2 bytes.
func (w *Writer) SerializeU16(v uint16) error {
	return w.sink.Extend(putU16(w.scratch[:], v))
}

// SerializeU32 writes v little-endian in 4 bytes.
func (w *Writer) SerializeU32(v uint32) error {
	return w.sink.Extend(putU32(w.scratch[:], v))
}

// SerializeU64 writes v little-endian in 8 bytes.
func (w *Writer) SerializeU64(v uint64) error {
	return w.sink.Extend(putU64(w.scratch[:], v))
}

// SerializeI8 writes v as one two's complement byte.
func (w *Writer) SerializeI8(v int8) error {
	return w.sink.Push(uint8(v))
}

// SerializeI16 writes v two's complement, little-endian in 2 bytes.
func (w *Writer) SerializeI16(v int16) error {
	return w.SerializeU16(uint16(v))
}

// SerializeI32 writes v two's complement, little-endian in 4 bytes.
func (w *Writer) SerializeI32(v int32) error {
	return w.SerializeU32(uint32(v))
}

// SerializeI64 writes v two's complement, little-endian in 8 bytes.
func (w *Writer) SerializeI64(v int64) error {
	return w.SerializeU64(uint64(v))
}

// SerializeF32 writes the IEEE 754 bits of v in 4 bytes.
func (w *Writer) SerializeF32(v float32) error {
	return w.SerializeU32(math.Float32bits(v))
}

// SerializeF64 writes the IEEE 754 bits of v in 8 bytes.
func (w *Writer) SerializeF64(v float64) error {
	return w.SerializeU64(math.Float64bits(v))
}

// SerializeChar writes r as a 4-byte scalar value. Runes that could not be
// decoded again fail with BadChar.
func (w *Writer) SerializeChar(r rune) error {
	if r < 0 || !ValidChar(uint32(r)) {
		return errors.InvalidChar(errors.PhaseEncode, nil, -1, uint32(r))
	}
	return w.SerializeU32(uint32(r))
}
