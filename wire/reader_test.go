package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"unsafe"

	pcerrors "github.com/wippyai/postcard/errors"
)

func TestReader_Primitives(t *testing.T) {
	data := []byte{
		0x01,
		0xC7, 0xA5,
		0xFE, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, 0x80, 0x3F,
		0xAC, 0x20, 0x00, 0x00,
		0x02, 'h', 'i',
		0x00,
		0x01,
		0xAC, 0x02,
		0x03,
	}
	r := NewReader(data)

	if v, err := r.DeserializeBool(); err != nil || !v {
		t.Fatalf("bool = %v, %v", v, err)
	}
	if v, err := r.DeserializeU16(); err != nil || v != 0xA5C7 {
		t.Fatalf("u16 = %#x, %v", v, err)
	}
	if v, err := r.DeserializeI32(); err != nil || v != -2 {
		t.Fatalf("i32 = %d, %v", v, err)
	}
	if v, err := r.DeserializeF32(); err != nil || v != 1.0 {
		t.Fatalf("f32 = %v, %v", v, err)
	}
	if v, err := r.DeserializeChar(); err != nil || v != '€' {
		t.Fatalf("char = %q, %v", v, err)
	}
	if v, err := r.DeserializeStr(); err != nil || v != "hi" {
		t.Fatalf("str = %q, %v", v, err)
	}
	if v, err := r.DeserializeOptionTag(); err != nil || v {
		t.Fatalf("none = %v, %v", v, err)
	}
	if v, err := r.DeserializeOptionTag(); err != nil || !v {
		t.Fatalf("some = %v, %v", v, err)
	}
	if v, err := r.DeserializeLen(); err != nil || v != 300 {
		t.Fatalf("len = %d, %v", v, err)
	}
	if v, err := r.DeserializeVariantIndex(); err != nil || v != 3 {
		t.Fatalf("variant = %d, %v", v, err)
	}
	if r.Len() != 0 || r.Offset() != len(data) {
		t.Errorf("Offset = %d, Len = %d", r.Offset(), r.Len())
	}
}

func TestReader_ZeroCopy(t *testing.T) {
	data := []byte{0x03, 'a', 'b', 'c', 0x02, 0x09, 0x08}
	r := NewReader(data)

	s, err := r.DeserializeStr()
	if err != nil {
		t.Fatalf("DeserializeStr: %v", err)
	}
	if unsafe.StringData(s) != &data[1] {
		t.Error("string does not alias the input")
	}

	b, err := r.DeserializeBytes()
	if err != nil {
		t.Fatalf("DeserializeBytes: %v", err)
	}
	if &b[0] != &data[5] {
		t.Error("bytes do not alias the input")
	}
	if cap(b) != 2 {
		t.Errorf("cap = %d, borrowed slice must not extend past its payload", cap(b))
	}
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		fn     func(r *Reader) error
		want   error
		offset int
	}{
		{"bool empty", nil, func(r *Reader) error { _, err := r.DeserializeBool(); return err }, pcerrors.ErrUnexpectedEnd, 0},
		{"bool 2", []byte{0x02}, func(r *Reader) error { _, err := r.DeserializeBool(); return err }, pcerrors.ErrBadBool, 0},
		{"option 2", []byte{0x02}, func(r *Reader) error { _, err := r.DeserializeOptionTag(); return err }, pcerrors.ErrBadOption, 0},
		{"u32 short", []byte{1, 2, 3}, func(r *Reader) error { _, err := r.DeserializeU32(); return err }, pcerrors.ErrUnexpectedEnd, 0},
		{"f64 short", make([]byte, 7), func(r *Reader) error { _, err := r.DeserializeF64(); return err }, pcerrors.ErrUnexpectedEnd, 0},
		{"char surrogate", []byte{0x00, 0xD8, 0, 0}, func(r *Reader) error { _, err := r.DeserializeChar(); return err }, pcerrors.ErrBadChar, 0},
		{"char too large", []byte{0x00, 0x00, 0x11, 0}, func(r *Reader) error { _, err := r.DeserializeChar(); return err }, pcerrors.ErrBadChar, 0},
		{"str bad utf8", []byte{0x02, 0xC3, 0x28}, func(r *Reader) error { _, err := r.DeserializeStr(); return err }, pcerrors.ErrBadUTF8, 0},
		{"str truncated", []byte{0x05, 'a'}, func(r *Reader) error { _, err := r.DeserializeStr(); return err }, pcerrors.ErrUnexpectedEnd, 1},
		{"str huge length", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, func(r *Reader) error { _, err := r.DeserializeBytes(); return err }, pcerrors.ErrUnexpectedEnd, 10},
		{"len bad varint", bytes.Repeat([]byte{0x80}, 12), func(r *Reader) error { _, err := r.DeserializeLen(); return err }, pcerrors.ErrBadVarint, 0},
		{"len truncated", []byte{0x80}, func(r *Reader) error { _, err := r.DeserializeLen(); return err }, pcerrors.ErrUnexpectedEnd, 1},
		{"variant too large", []byte{0x80, 0x80, 0x80, 0x80, 0x10}, func(r *Reader) error { _, err := r.DeserializeVariantIndex(); return err }, pcerrors.ErrBadEnum, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var e *pcerrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if e.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", e.Offset, tt.offset)
			}
		})
	}
}

func TestReader_VariantIndexBoundary(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F})
	v, err := r.DeserializeVariantIndex()
	if err != nil || v != math.MaxUint32 {
		t.Fatalf("variant = %d, %v", v, err)
	}
}

func TestReader_OffsetsAreAbsolute(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x80})
	if _, err := r.DeserializeU16(); err != nil {
		t.Fatal(err)
	}
	_, err := r.DeserializeLen()
	var e *pcerrors.Error
	if !errors.As(err, &e) || e.Offset != 3 {
		t.Fatalf("error = %v, want UnexpectedEnd at offset 3", err)
	}
}

func TestReader_SelfDescribing(t *testing.T) {
	r := NewReader([]byte{0x01})
	for name, fn := range map[string]func() error{
		"any":        r.DeserializeAny,
		"identifier": r.DeserializeIdentifier,
		"ignored":    r.DeserializeIgnoredAny,
	} {
		if err := fn(); !errors.Is(err, pcerrors.ErrNotSupported) {
			t.Errorf("%s: error = %v, want NotSupported", name, err)
		}
	}
	if err := r.DeserializeMap(); !errors.Is(err, pcerrors.ErrNotImplemented) {
		t.Errorf("map: error = %v, want NotImplemented", err)
	}
	if r.Offset() != 0 {
		t.Error("failed requests must not consume input")
	}
}

func TestReader_Seq(t *testing.T) {
	r := NewReader([]byte{0x03, 0x0A, 0x0B, 0x0C, 0xFF})
	seq, err := r.DeserializeSeq()
	if err != nil {
		t.Fatalf("DeserializeSeq: %v", err)
	}
	var got []byte
	for seq.Next() {
		b, err := r.DeserializeU8()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, b)
	}
	if !bytes.Equal(got, []byte{0x0A, 0x0B, 0x0C}) {
		t.Errorf("elements = %x", got)
	}
	if seq.Remaining() != 0 || !bytes.Equal(r.Remaining(), []byte{0xFF}) {
		t.Errorf("Remaining = %d, %x", seq.Remaining(), r.Remaining())
	}
}

func TestReader_CanonicalVarints(t *testing.T) {
	r := NewReader([]byte{0x81, 0x00})
	if v, err := r.DeserializeLen(); err != nil || v != 1 {
		t.Fatalf("lenient: %d, %v", v, err)
	}

	r = NewReader([]byte{0x05, 0x81, 0x00})
	r.CanonicalVarints = true
	if _, err := r.DeserializeU8(); err != nil {
		t.Fatal(err)
	}
	_, err := r.DeserializeLen()
	var e *pcerrors.Error
	if !errors.As(err, &e) || e.Kind != pcerrors.KindBadVarint || e.Offset != 1 {
		t.Fatalf("error = %v, want BadVarint at 1", err)
	}
}

func TestRoundTrip_WriterReader(t *testing.T) {
	s := NewSliceSink(nil)
	w := NewWriter(s)
	_ = w.SerializeI64(math.MinInt64)
	_ = w.SerializeF64(math.Inf(-1))
	_ = w.SerializeU64(math.MaxUint64)
	_ = w.SerializeI8(-128)
	_ = w.SerializeChar(0x10FFFF)

	r := NewReader(s.Bytes())
	if v, _ := r.DeserializeI64(); v != math.MinInt64 {
		t.Errorf("i64 = %d", v)
	}
	if v, _ := r.DeserializeF64(); !math.IsInf(v, -1) {
		t.Errorf("f64 = %v", v)
	}
	if v, _ := r.DeserializeU64(); v != math.MaxUint64 {
		t.Errorf("u64 = %d", v)
	}
	if v, _ := r.DeserializeI8(); v != -128 {
		t.Errorf("i8 = %d", v)
	}
	if v, err := r.DeserializeChar(); err != nil || v != 0x10FFFF {
		t.Errorf("char = %#x, %v", v, err)
	}
}
