// Package cobs implements Consistent Overhead Byte Stuffing, the framing
// used to carry encoded messages over byte links that reserve 0x00 as a
// frame delimiter.
//
// A stuffed frame is a run of blocks. Each block starts with a code byte c
// (1..255) followed by c-1 non-zero data bytes; a block with c < 255 stands
// for its data bytes plus one zero, except for the last block of a frame.
// The frame ends with a single 0x00:
//
//	raw      11 22 00 33
//	stuffed  03 11 22 02 33 00
package cobs

import (
	"github.com/wippyai/postcard/errors"
)

// Delimiter terminates every stuffed frame.
const Delimiter byte = 0x00

const maxRun = 0xFF

// MaxEncodedLen returns the largest stuffed size of an n-byte message,
// including the trailing delimiter.
func MaxEncodedLen(n int) int {
	if n == 0 {
		return 2
	}
	return n + (n+253)/254 + 1
}

// Encode returns the stuffed form of src with a trailing delimiter.
func Encode(src []byte) []byte {
	return Append(make([]byte, 0, MaxEncodedLen(len(src))), src)
}

// Append appends the stuffed form of src and a trailing delimiter to dst.
// The appended bytes contain no zero except the delimiter.
func Append(dst, src []byte) []byte {
	codeIdx := len(dst)
	dst = append(dst, 0)
	code := byte(1)

	for i, b := range src {
		if b == 0 {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
			continue
		}
		dst = append(dst, b)
		code++
		if code == maxRun && i+1 < len(src) {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
		}
	}
	dst[codeIdx] = code
	return append(dst, Delimiter)
}

// DecodeInPlace destuffs the frame at the start of buf into the same
// memory and returns the decoded length. Decoding stops at the first
// delimiter or at the end of buf.
func DecodeInPlace(buf []byte) (int, error) {
	n, _, err := DecodeFrame(buf)
	return n, err
}

// DecodeFrame is DecodeInPlace that also reports how many input bytes the
// frame occupied, including its delimiter when one was found.
func DecodeFrame(buf []byte) (n, used int, err error) {
	src, dst := 0, 0
	for src < len(buf) {
		code := buf[src]
		if code == Delimiter {
			return dst, src + 1, nil
		}
		start := src
		src++
		end := src + int(code) - 1
		if end > len(buf) {
			return 0, 0, errors.New(errors.PhaseFrame, errors.KindBadEncoding).
				Offset(start).
				Detail("block of %d bytes runs past end of input (%d bytes left)", code-1, len(buf)-src).
				Build()
		}
		for ; src < end; src++ {
			b := buf[src]
			if b == 0 {
				return 0, 0, errors.New(errors.PhaseFrame, errors.KindBadEncoding).
					Offset(src).
					Detail("zero byte inside a %d-byte block", code-1).
					Build()
			}
			buf[dst] = b
			dst++
		}
		if code != maxRun && src < len(buf) && buf[src] != Delimiter {
			buf[dst] = 0
			dst++
		}
	}
	return dst, src, nil
}

// Decode destuffs the frame at the start of src into a new slice, leaving
// src untouched.
func Decode(src []byte) ([]byte, error) {
	buf := make([]byte, len(src))
	copy(buf, src)
	n, err := DecodeInPlace(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
