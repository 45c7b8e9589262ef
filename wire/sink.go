package wire

import "io"

// Sink receives encoded bytes. Errors returned by a Sink are passed through
// the Writer and the encoder unchanged.
type Sink interface {
	Push(b byte) error
	Extend(p []byte) error
}

// SliceSink appends to a growable byte slice.
type SliceSink struct {
	buf []byte
}

// NewSliceSink returns a sink that appends to dst.
func NewSliceSink(dst []byte) *SliceSink {
	return &SliceSink{buf: dst}
}

func (s *SliceSink) Push(b byte) error {
	s.buf = append(s.buf, b)
	return nil
}

func (s *SliceSink) Extend(p []byte) error {
	s.buf = append(s.buf, p...)
	return nil
}

// Bytes returns the accumulated output.
func (s *SliceSink) Bytes() []byte { return s.buf }

// FixedSink writes into a caller-provided buffer and fails with
// io.ErrShortBuffer once it is full. Bytes written before the failure are
// left in place.
type FixedSink struct {
	buf []byte
	n   int
}

// NewFixedSink returns a sink over buf's full length.
func NewFixedSink(buf []byte) *FixedSink {
	return &FixedSink{buf: buf}
}

func (s *FixedSink) Push(b byte) error {
	if s.n >= len(s.buf) {
		return io.ErrShortBuffer
	}
	s.buf[s.n] = b
	s.n++
	return nil
}

func (s *FixedSink) Extend(p []byte) error {
	if len(p) > len(s.buf)-s.n {
		return io.ErrShortBuffer
	}
	s.n += copy(s.buf[s.n:], p)
	return nil
}

// Len returns the number of bytes written.
func (s *FixedSink) Len() int { return s.n }

// Bytes returns the written prefix of the buffer.
func (s *FixedSink) Bytes() []byte { return s.buf[:s.n] }

// SizeSink counts bytes without storing them.
type SizeSink struct {
	n int
}

func (s *SizeSink) Push(byte) error {
	s.n++
	return nil
}

func (s *SizeSink) Extend(p []byte) error {
	s.n += len(p)
	return nil
}

// Len returns the number of bytes counted.
func (s *SizeSink) Len() int { return s.n }
