package transcoder

import (
	"github.com/wippyai/postcard/transcoder/internal/types"
	"github.com/wippyai/postcard/wire"
)

type TypeKind = types.Kind

const (
	KindBool       = types.KindBool
	KindU8         = types.KindU8
	KindI8         = types.KindI8
	KindU16        = types.KindU16
	KindI16        = types.KindI16
	KindU32        = types.KindU32
	KindI32        = types.KindI32
	KindU64        = types.KindU64
	KindI64        = types.KindI64
	KindF32        = types.KindF32
	KindF64        = types.KindF64
	KindChar       = types.KindChar
	KindString     = types.KindString
	KindBytes      = types.KindBytes
	KindOption     = types.KindOption
	KindUnit       = types.KindUnit
	KindUnitStruct = types.KindUnitStruct
	KindNewtype    = types.KindNewtype
	KindSeq        = types.KindSeq
	KindTuple      = types.KindTuple
	KindStruct     = types.KindStruct
	KindEnum       = types.KindEnum
	KindUnitEnum   = types.KindUnitEnum
	KindInterface  = types.KindInterface
	KindCustom     = types.KindCustom
)

type CompiledType = types.CompiledType
type CompiledField = types.Field
type CompiledVariant = types.Variant

// Char is a Unicode scalar value. Go's rune is an alias of int32 and
// encodes as i32; use Char where the char shape is wanted.
type Char rune

// Marshaler is implemented by types that write their own encoding.
type Marshaler interface {
	MarshalPostcard(s wire.Serializer) error
}

// Unmarshaler is implemented by types that read their own encoding. The
// receiver must be a pointer.
type Unmarshaler interface {
	UnmarshalPostcard(d wire.Deserializer) error
}
