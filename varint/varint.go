// Package varint implements the unsigned variable-length integer codec used
// for lengths, element counts and enum ordinals.
//
// Values are split into 7-bit groups, least significant group first. Every
// byte except the last has its high bit set:
//
//	0   -> 00
//	127 -> 7F
//	128 -> 80 01
//	300 -> AC 02
package varint

import (
	"github.com/wippyai/postcard/errors"
)

const (
	// MaxLen64 is the longest encoding of a 64-bit value.
	MaxLen64 = 10
	// MaxLen32 is the longest encoding of a 32-bit value.
	MaxLen32 = 5
)

// Len returns the number of bytes Append would write for v.
func Len(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// Append appends the encoding of v to dst.
func Append(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Put writes the encoding of v into buf and returns the number of bytes
// written. It panics if buf is shorter than Len(v).
func Put(buf []byte, v uint64) int {
	i := 0
	for v >= 0x80 {
		buf[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	buf[i] = byte(v)
	return i + 1
}

// Decode reads a 64-bit value from the front of buf and returns it with the
// number of bytes consumed. Non-minimal encodings are accepted.
//
// Errors carry offsets relative to buf: UnexpectedEnd if buf ends before
// the terminating byte, BadVarint if no terminator appears within MaxLen64
// bytes or the final group carries bits above bit 63.
func Decode(buf []byte) (uint64, int, error) {
	return decode(buf, MaxLen64, 64)
}

// DecodeU32 is Decode bounded to 32-bit values.
func DecodeU32(buf []byte) (uint32, int, error) {
	v, n, err := decode(buf, MaxLen32, 32)
	return uint32(v), n, err
}

// DecodeCanonical is Decode that also rejects encodings longer than
// necessary (a trailing zero group).
func DecodeCanonical(buf []byte) (uint64, int, error) {
	v, n, err := decode(buf, MaxLen64, 64)
	if err != nil {
		return 0, 0, err
	}
	if n > 1 && buf[n-1] == 0 {
		return 0, 0, errors.New(errors.PhaseDecode, errors.KindBadVarint).
			Offset(0).
			Detail("non-canonical encoding of %d in %d bytes", v, n).
			Build()
	}
	return v, n, nil
}

func decode(buf []byte, maxLen int, width uint) (uint64, int, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxLen; i++ {
		if i >= len(buf) {
			return 0, 0, errors.UnexpectedEnd(errors.PhaseDecode, i, 1, 0)
		}
		b := buf[i]
		if i == maxLen-1 && uint64(b) > lastGroupMax(width, shift) {
			return 0, 0, errors.New(errors.PhaseDecode, errors.KindBadVarint).
				Offset(0).
				Detail("value exceeds %d bits", width).
				Build()
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, errors.New(errors.PhaseDecode, errors.KindBadVarint).
		Offset(0).
		Detail("no terminator within %d bytes", maxLen).
		Build()
}

// lastGroupMax is the largest byte allowed in the final position: it must
// terminate and may only carry the bits left over below width.
func lastGroupMax(width, shift uint) uint64 {
	return (uint64(1) << (width - shift)) - 1
}
