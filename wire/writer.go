package wire

import (
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/postcard/errors"
	"github.com/wippyai/postcard/varint"
)

// Writer serializes primitives into a Sink. It never retains the sink past
// the lifetime of the Writer.
type Writer struct {
	sink    Sink
	scratch [varint.MaxLen64]byte
}

// NewWriter returns a Writer over s.
func NewWriter(s Sink) *Writer {
	return &Writer{sink: s}
}

// Sink returns the sink being written.
func (w *Writer) Sink() Sink { return w.sink }

// SerializeBool writes 0 or 1.
func (w *Writer) SerializeBool(v bool) error {
	if v {
		return w.sink.Push(1)
	}
	return w.sink.Push(0)
}

// SerializeVarint writes v as a variable-length integer.
func (w *Writer) SerializeVarint(v uint64) error {
	if v < 0x80 {
		return w.sink.Push(byte(v))
	}
	n := varint.Put(w.scratch[:], v)
	return w.sink.Extend(w.scratch[:n])
}

// SerializeStr writes the byte length then the bytes. Strings that are not
// valid UTF-8 fail with BadUtf8.
func (w *Writer) SerializeStr(v string) error {
	data := unsafe.Slice(unsafe.StringData(v), len(v))
	if !utf8.Valid(data) {
		return errors.InvalidUTF8(errors.PhaseEncode, nil, -1, data)
	}
	return w.SerializeBytes(data)
}

// SerializeBytes writes a varint length followed by v.
func (w *Writer) SerializeBytes(v []byte) error {
	if err := w.SerializeVarint(uint64(len(v))); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	return w.sink.Extend(v)
}

// SerializeNone writes the absent tag of an option.
func (w *Writer) SerializeNone() error { return w.sink.Push(0) }

// SerializeSome writes the present tag of an option. The value follows.
func (w *Writer) SerializeSome() error { return w.sink.Push(1) }

// SerializeUnit writes nothing.
func (w *Writer) SerializeUnit() error { return nil }

// SerializeLen writes a sequence element count.
func (w *Writer) SerializeLen(n uint64) error { return w.SerializeVarint(n) }

// SerializeVariantIndex writes an enum ordinal as a varint.
func (w *Writer) SerializeVariantIndex(i uint32) error { return w.SerializeVarint(uint64(i)) }
