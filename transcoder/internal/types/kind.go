package types

type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindU64
	KindI64
	KindF32
	KindF64
	KindChar
	KindString
	KindBytes
	KindOption
	KindUnit
	KindUnitStruct
	KindNewtype
	KindSeq
	KindTuple
	KindStruct
	KindEnum
	KindUnitEnum
	KindInterface
	KindCustom
)

var kindNames = [...]string{
	KindBool:       "bool",
	KindU8:         "u8",
	KindI8:         "i8",
	KindU16:        "u16",
	KindI16:        "i16",
	KindU32:        "u32",
	KindI32:        "i32",
	KindU64:        "u64",
	KindI64:        "i64",
	KindF32:        "f32",
	KindF64:        "f64",
	KindChar:       "char",
	KindString:     "string",
	KindBytes:      "bytes",
	KindOption:     "option",
	KindUnit:       "unit",
	KindUnitStruct: "unit_struct",
	KindNewtype:    "newtype",
	KindSeq:        "seq",
	KindTuple:      "tuple",
	KindStruct:     "struct",
	KindEnum:       "enum",
	KindUnitEnum:   "unit_enum",
	KindInterface:  "interface",
	KindCustom:     "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsPrimitive() bool {
	return k <= KindChar
}

// FixedSize returns the encoded width of a primitive kind, or 0.
func (k Kind) FixedSize() int {
	switch k {
	case KindBool, KindU8, KindI8:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32, KindF32, KindChar:
		return 4
	case KindU64, KindI64, KindF64:
		return 8
	default:
		return 0
	}
}
