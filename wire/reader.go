package wire

import (
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/postcard/errors"
	"github.com/wippyai/postcard/varint"
)

// Reader deserializes primitives from an immutable byte slice. The cursor
// only moves forward; after a failed call its position is unspecified and
// the Reader should be discarded.
type Reader struct {
	data []byte
	pos  int

	// CanonicalVarints rejects varints with redundant trailing groups.
	CanonicalVarints bool
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.pos }

// Remaining returns the unconsumed suffix of the input.
func (r *Reader) Remaining() []byte { return r.data[r.pos:] }

// Len returns the number of unconsumed bytes.
func (r *Reader) Len() int { return len(r.data) - r.pos }

// DeserializeVarint reads a variable-length integer of up to 64 bits.
func (r *Reader) DeserializeVarint() (uint64, error) {
	decode := varint.Decode
	if r.CanonicalVarints {
		decode = varint.DecodeCanonical
	}
	v, n, err := decode(r.data[r.pos:])
	if err != nil {
		return 0, r.rebase(err)
	}
	r.pos += n
	return v, nil
}

// rebase shifts an offset relative to the cursor into an input offset.
func (r *Reader) rebase(err error) error {
	e, ok := err.(*errors.Error)
	if !ok || e.Offset < 0 {
		return err
	}
	cp := *e
	cp.Offset += r.pos
	return &cp
}

// DeserializeBool reads a byte that must be 0 or 1; anything else fails with BadBool.
func (r *Reader) DeserializeBool() (bool, error) {
	if r.pos >= len(r.data) {
		return false, errors.UnexpectedEnd(errors.PhaseDecode, r.pos, 1, 0)
	}
	switch b := r.data[r.pos]; b {
	case 0:
		r.pos++
		return false, nil
	case 1:
		r.pos++
		return true, nil
	default:
		return false, errors.New(errors.PhaseDecode, errors.KindBadBool).
			Offset(r.pos).
			Value(b).
			Detail("byte 0x%02X is not a bool", b).
			Build()
	}
}

// DeserializeOptionTag reads the presence byte of an option.
func (r *Reader) DeserializeOptionTag() (bool, error) {
	if r.pos >= len(r.data) {
		return false, errors.UnexpectedEnd(errors.PhaseDecode, r.pos, 1, 0)
	}
	switch b := r.data[r.pos]; b {
	case 0:
		r.pos++
		return false, nil
	case 1:
		r.pos++
		return true, nil
	default:
		return false, errors.New(errors.PhaseDecode, errors.KindBadOption).
			Offset(r.pos).
			Value(b).
			Detail("byte 0x%02X is not an option tag", b).
			Build()
	}
}

// DeserializeBytes reads a length-prefixed byte string. The result aliases
// the input.
func (r *Reader) DeserializeBytes() ([]byte, error) {
	n, err := r.DeserializeVarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(r.data)-r.pos) {
		return nil, errors.UnexpectedEnd(errors.PhaseDecode, r.pos, clampInt(n), len(r.data)-r.pos)
	}
	b := r.data[r.pos : r.pos+int(n) : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

// DeserializeStr reads a length-prefixed UTF-8 string without copying.
func (r *Reader) DeserializeStr() (string, error) {
	start := r.pos
	b, err := r.DeserializeBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, nil, start, b)
	}
	if len(b) == 0 {
		return "", nil
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// DeserializeUnit consumes nothing.
func (r *Reader) DeserializeUnit() error { return nil }

// DeserializeLen reads a sequence element count.
func (r *Reader) DeserializeLen() (uint64, error) {
	return r.DeserializeVarint()
}

// DeserializeSeq reads a sequence count and returns an accessor that yields
// exactly that many elements.
func (r *Reader) DeserializeSeq() (*SeqAccess, error) {
	n, err := r.DeserializeLen()
	if err != nil {
		return nil, err
	}
	return &SeqAccess{remaining: n}, nil
}

// DeserializeVariantIndex reads an enum ordinal. Ordinals above
// 0xFFFFFFFF fail with BadEnum.
func (r *Reader) DeserializeVariantIndex() (uint32, error) {
	start := r.pos
	v, err := r.DeserializeVarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, errors.New(errors.PhaseDecode, errors.KindBadEnum).
			Offset(start).
			Value(v).
			Detail("variant index %d exceeds 32 bits", v).
			Build()
	}
	return uint32(v), nil
}

// DeserializeAny fails with NotSupported; the format carries no type tags.
func (r *Reader) DeserializeAny() error {
	return errors.NotSupported("DeserializeAny")
}

// DeserializeIdentifier fails with NotSupported.
func (r *Reader) DeserializeIdentifier() error {
	return errors.NotSupported("DeserializeIdentifier")
}

// DeserializeIgnoredAny fails with NotSupported; an unknown value cannot be skipped.
func (r *Reader) DeserializeIgnoredAny() error {
	return errors.NotSupported("DeserializeIgnoredAny")
}

// DeserializeMap fails with NotImplemented.
func (r *Reader) DeserializeMap() error {
	return errors.NotImplemented(errors.PhaseDecode, nil, "maps are not part of the format")
}

// SeqAccess pulls the elements of a sequence. The caller decodes one
// element per successful Next.
type SeqAccess struct {
	remaining uint64
}

// Next reports whether another element is pending and claims it.
func (s *SeqAccess) Next() bool {
	if s.remaining == 0 {
		return false
	}
	s.remaining--
	return true
}

// Remaining returns the number of elements not yet claimed.
func (s *SeqAccess) Remaining() uint64 { return s.remaining }

func clampInt(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
