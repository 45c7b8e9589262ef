// Package postcard encodes Go values in the postcard wire format: a compact,
// deterministic binary encoding for constrained transports such as UARTs and
// small radio links.
//
// The stream carries no type tags and no field names. A value's static Go
// type decides its shape, and the reader must decode into the same shape the
// writer encoded from.
//
// # Architecture Overview
//
//	postcard/            Marshal, Unmarshal, Take and their COBS variants
//	├── transcoder/      Go types to shapes; reflect-driven Encoder and Decoder
//	├── wire/            Serializer and Deserializer engines, fixed-width codec, sinks
//	├── varint/          7-bit group variable-length integers
//	├── cobs/            zero-free framing, in-place destuffing, stream accumulator
//	├── schema/          compiled shapes rendered as WIT types
//	├── errors/          structured error types
//	└── cmd/pcframe/     stuff and destuff frames from the command line
//
// # Quick Start
//
//	type Reading struct {
//	    Sensor  string
//	    Value   float32
//	    Samples []uint16
//	}
//
//	data, err := postcard.Marshal(Reading{"t1", 1.5, []uint16{1, 300}})
//	// 02 74 31 00 00 c0 3f 02 01 00 2c 01
//
//	var r Reading
//	err = postcard.Unmarshal(data, &r)
//
// Several messages can be packed back to back and peeled off with Take:
//
//	rest, err := postcard.Take(buf, &first)
//	rest, err = postcard.Take(rest, &second)
//
// # Framing
//
// MarshalCOBS stuffs the encoding so that the only zero byte is the frame
// terminator, letting a receiver resynchronise on 0x00 after line noise.
// UnmarshalCOBS and TakeCOBS destuff in place, overwriting the caller's
// buffer, and decode from the result.
//
// # Enums
//
// Interfaces become enums once their variants are registered:
//
//	type Command interface{ isCommand() }
//
//	postcard.RegisterEnum[Command](Stop{}, Move{}, Say{})
//
// Integer types with named constants register as unit-only enums with
// RegisterUnitEnum.
//
// # Zero-Copy
//
// Decoded strings and byte slices alias the input and are valid only while
// it is unchanged. Use a Codec with DecoderConfig.Copy to detach them.
package postcard
