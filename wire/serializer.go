package wire

// Serializer is the write side of the format, one method per shape
// primitive. Composite shapes are expressed as sequences of calls:
//
//	option   SerializeNone, or SerializeSome then the value
//	sequence SerializeLen(count) then each element
//	enum     SerializeVariantIndex(ordinal) then the payload
//	tuple, struct, newtype   the fields in order, nothing else
type Serializer interface {
	SerializeBool(v bool) error
	SerializeU8(v uint8) error
	SerializeU16(v uint16) error
	SerializeU32(v uint32) error
	SerializeU64(v uint64) error
	SerializeI8(v int8) error
	SerializeI16(v int16) error
	SerializeI32(v int32) error
	SerializeI64(v int64) error
	SerializeF32(v float32) error
	SerializeF64(v float64) error
	SerializeChar(v rune) error
	SerializeStr(v string) error
	SerializeBytes(v []byte) error
	SerializeNone() error
	SerializeSome() error
	SerializeUnit() error
	SerializeLen(n uint64) error
	SerializeVariantIndex(i uint32) error
}

// Deserializer is the read side of the format. Each call consumes exactly
// the bytes of one primitive. Strings and byte slices returned by
// DeserializeStr and DeserializeBytes alias the input.
type Deserializer interface {
	DeserializeBool() (bool, error)
	DeserializeU8() (uint8, error)
	DeserializeU16() (uint16, error)
	DeserializeU32() (uint32, error)
	DeserializeU64() (uint64, error)
	DeserializeI8() (int8, error)
	DeserializeI16() (int16, error)
	DeserializeI32() (int32, error)
	DeserializeI64() (int64, error)
	DeserializeF32() (float32, error)
	DeserializeF64() (float64, error)
	DeserializeChar() (rune, error)
	DeserializeStr() (string, error)
	DeserializeBytes() ([]byte, error)
	DeserializeOptionTag() (bool, error)
	DeserializeUnit() error
	DeserializeLen() (uint64, error)
	DeserializeSeq() (*SeqAccess, error)
	DeserializeVariantIndex() (uint32, error)

	// The format carries no type information, so these always fail.
	DeserializeAny() error
	DeserializeIdentifier() error
	DeserializeIgnoredAny() error
	DeserializeMap() error
}

var (
	_ Serializer   = (*Writer)(nil)
	_ Deserializer = (*Reader)(nil)
)
