// Package transcoder maps Go values onto the postcard wire format.
//
// It walks values by reflection and drives a wire.Serializer or
// wire.Deserializer, one primitive at a time:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Go Value ←→ [Transcoder] ←→ wire.Writer/Reader      │
//	└─────────────────────────────────────────────────────┘
//
// # Shapes
//
// The static Go type decides how a value is laid out; nothing about the
// type is written to the stream.
//
//	Go type                    Shape        Encoding
//	──────────────────────────────────────────────────────────────
//	bool                       bool         1 byte
//	int8..int64, int           i8..i64      fixed LE (int as i64)
//	uint8..uint64, uint        u8..u64      fixed LE (uint as u64)
//	float32, float64           f32, f64     fixed LE
//	Char                       char         4-byte LE scalar value
//	string                     string       varint len + UTF-8
//	[]byte                     bytes        varint len + bytes
//	*T                         option<T>    0x00 | 0x01 T
//	struct{}                   unit         nothing
//	named struct, no fields    unit struct  nothing
//	named struct, one field    newtype      the field
//	struct                     struct       fields in order
//	[N]T                       tuple        N elements, no count
//	[]T                        sequence     varint count + elements
//	registered interface       enum         varint ordinal + payload
//	registered integer         unit enum    varint ordinal
//
// Maps fail with NotImplemented. Channels, functions, complex numbers and
// uintptr fail with Unsupported. Unexported fields and fields tagged
// `postcard:"-"` are skipped.
//
// # Enums
//
// Go has no sum types, so enums are interfaces whose variants are
// registered with the Compiler in ordinal order:
//
//	type Command interface{ isCommand() }
//	type Stop struct{}
//	type Move struct{ X, Y int16 }
//
//	c.RegisterEnum(reflect.TypeFor[Command](), Stop{}, Move{})
//
// A Stop encodes as 00 and Move{1, 2} as 01 01 00 02 00. Interfaces with no
// registration encode by their dynamic type and cannot be decoded.
//
// # Custom Codecs
//
// Types implementing Marshaler or Unmarshaler bypass reflection and
// talk to the wire interfaces directly.
//
// # Zero-Copy Decoding
//
// By default decoded strings and byte slices alias the input buffer and
// are only valid while it is unchanged. DecoderConfig.Copy gives each
// decoded value its own memory.
//
// # Thread Safety
//
// Compiler, Encoder and Decoder are safe for concurrent use. Register enums
// before first use; registration discards compiled shapes.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[decode] bad_bool at Reading.Valid (offset 9): byte 0x02 is not a bool
//	[compile] not_implemented at Config.Tags: map map[string]string has no encoding
package transcoder
