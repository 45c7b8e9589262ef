package postcard

import (
	"reflect"

	"github.com/wippyai/postcard/cobs"
	"github.com/wippyai/postcard/transcoder"
	"github.com/wippyai/postcard/wire"
)

// Codec pairs an Encoder and a Decoder that share one Compiler, so enums
// registered on the Compiler apply to both directions. A Codec is safe for
// concurrent use.
type Codec struct {
	compiler *transcoder.Compiler
	enc      *transcoder.Encoder
	dec      *transcoder.Decoder
}

// New returns a Codec with its own Compiler and the given decoder settings.
func New(cfg transcoder.DecoderConfig) *Codec {
	c := transcoder.NewCompiler()
	return &Codec{
		compiler: c,
		enc:      transcoder.NewEncoderWithCompiler(c),
		dec:      transcoder.NewDecoderWithConfig(c, cfg),
	}
}

var std = New(transcoder.DefaultDecoderConfig())

// Default returns the Codec used by the package-level functions.
func Default() *Codec { return std }

// Compiler returns the Compiler holding this Codec's shapes and enums.
func (c *Codec) Compiler() *transcoder.Compiler { return c.compiler }

// Marshal returns the encoding of v.
func (c *Codec) Marshal(v any) ([]byte, error) {
	return c.AppendMarshal(nil, v)
}

// AppendMarshal appends the encoding of v to dst. On error dst is returned
// with its original length.
func (c *Codec) AppendMarshal(dst []byte, v any) ([]byte, error) {
	s := wire.NewSliceSink(dst)
	if err := c.enc.Encode(wire.NewWriter(s), v); err != nil {
		return dst, err
	}
	return s.Bytes(), nil
}

// MarshalTo encodes v into buf and returns the number of bytes written. It
// fails with io.ErrShortBuffer when buf is too small.
func (c *Codec) MarshalTo(buf []byte, v any) (int, error) {
	s := wire.NewFixedSink(buf)
	if err := c.enc.Encode(wire.NewWriter(s), v); err != nil {
		return 0, err
	}
	return s.Len(), nil
}

// Size returns the length of v's encoding.
func (c *Codec) Size(v any) (int, error) {
	return c.enc.Size(v)
}

// Unmarshal decodes one value from the front of data into v, which must be
// a non-nil pointer. Bytes after the value are ignored.
func (c *Codec) Unmarshal(data []byte, v any) error {
	_, err := c.Take(data, v)
	return err
}

// Take decodes one value from the front of data into v and returns the
// unconsumed rest of data.
func (c *Codec) Take(data []byte, v any) ([]byte, error) {
	r := c.dec.NewReader(data)
	if err := c.dec.Decode(r, v); err != nil {
		return nil, err
	}
	return r.Remaining(), nil
}

// MarshalCOBS returns the COBS-stuffed encoding of v, terminated by 0x00.
func (c *Codec) MarshalCOBS(v any) ([]byte, error) {
	return c.AppendMarshalCOBS(nil, v)
}

// AppendMarshalCOBS appends the stuffed encoding of v and its terminator to
// dst.
func (c *Codec) AppendMarshalCOBS(dst []byte, v any) ([]byte, error) {
	raw, err := c.Marshal(v)
	if err != nil {
		return dst, err
	}
	return cobs.Append(dst, raw), nil
}

// UnmarshalCOBS destuffs the frame at the start of buf in place and decodes
// v from it. buf is overwritten.
func (c *Codec) UnmarshalCOBS(buf []byte, v any) error {
	n, err := cobs.DecodeInPlace(buf)
	if err != nil {
		return err
	}
	return c.Unmarshal(buf[:n], v)
}

// TakeCOBS destuffs the frame at the start of buf in place, decodes v from
// it and returns the bytes after the frame's terminator.
func (c *Codec) TakeCOBS(buf []byte, v any) ([]byte, error) {
	n, used, err := cobs.DecodeFrame(buf)
	if err != nil {
		return nil, err
	}
	if err := c.Unmarshal(buf[:n], v); err != nil {
		return nil, err
	}
	return buf[used:], nil
}

func Marshal(v any) ([]byte, error) { return std.Marshal(v) }

func AppendMarshal(dst []byte, v any) ([]byte, error) { return std.AppendMarshal(dst, v) }

func MarshalTo(buf []byte, v any) (int, error) { return std.MarshalTo(buf, v) }

func Size(v any) (int, error) { return std.Size(v) }

func Unmarshal(data []byte, v any) error { return std.Unmarshal(data, v) }

func Take(data []byte, v any) ([]byte, error) { return std.Take(data, v) }

func MarshalCOBS(v any) ([]byte, error) { return std.MarshalCOBS(v) }

func AppendMarshalCOBS(dst []byte, v any) ([]byte, error) { return std.AppendMarshalCOBS(dst, v) }

func UnmarshalCOBS(buf []byte, v any) error { return std.UnmarshalCOBS(buf, v) }

func TakeCOBS(buf []byte, v any) ([]byte, error) { return std.TakeCOBS(buf, v) }

// RegisterEnum registers the variants of interface type I, in ordinal
// order, with the default Codec.
func RegisterEnum[I any](variants ...I) error {
	return RegisterEnumOn(std, variants...)
}

// RegisterEnumOn is RegisterEnum for a specific Codec.
func RegisterEnumOn[I any](c *Codec, variants ...I) error {
	vs := make([]any, len(variants))
	for i, v := range variants {
		vs[i] = v
	}
	return c.compiler.RegisterEnum(reflect.TypeFor[I](), vs...)
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// RegisterUnitEnum registers integer type T as a unit-only enum on the
// default Codec. names[i] names the value i.
func RegisterUnitEnum[T integer](names ...string) error {
	return RegisterUnitEnumOn[T](std, names...)
}

// RegisterUnitEnumOn is RegisterUnitEnum for a specific Codec.
func RegisterUnitEnumOn[T integer](c *Codec, names ...string) error {
	return c.compiler.RegisterUnitEnum(reflect.TypeFor[T](), names...)
}
