// Package wire holds the byte-level engines of the format.
//
// Writer serializes one shape primitive at a time into a Sink; Reader
// deserializes from an immutable byte slice with a forward-only cursor.
// Neither knows about Go types beyond primitives: the transcoder package
// walks values and drives them through the Serializer and Deserializer
// interfaces, which hand-written codecs may also call directly.
//
// # Encoding rules
//
//	bool            1 byte, 0x00 or 0x01
//	u8..u64, i8..i64  width/8 bytes, little-endian
//	f32, f64        IEEE-754 bits, little-endian
//	char            4 bytes, little-endian scalar value
//	string, bytes   varint byte length, then the bytes
//	option          0x00, or 0x01 followed by the value
//	unit            nothing
//	sequence        varint element count, then the elements
//	tuple, struct   the elements in order, no count
//	enum            varint ordinal, then the variant payload
//
// No type tags are written. Decoding is driven entirely by the expected
// shape, so self-describing requests fail with NotSupported.
package wire
