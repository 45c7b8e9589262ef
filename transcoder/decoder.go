package transcoder

import (
	"bytes"
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/postcard/errors"
	"github.com/wippyai/postcard/wire"
)

type Decoder struct {
	compiler *Compiler
	config   DecoderConfig
}

func NewDecoder() *Decoder {
	return NewDecoderWithCompiler(NewCompiler())
}

func NewDecoderWithCompiler(c *Compiler) *Decoder {
	return NewDecoderWithConfig(c, DefaultDecoderConfig())
}

func NewDecoderWithConfig(c *Compiler, cfg DecoderConfig) *Decoder {
	return &Decoder{compiler: c, config: cfg}
}

// Compiler returns the compiler used to resolve shapes.
func (d *Decoder) Compiler() *Compiler { return d.compiler }

// NewReader returns a Reader over data configured for this Decoder.
func (d *Decoder) NewReader(data []byte) *wire.Reader {
	r := wire.NewReader(data)
	r.CanonicalVarints = d.config.CanonicalVarints
	return r
}

// Decode reads one value of v's element type from r into *v.
func (d *Decoder) Decode(r wire.Deserializer, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer {
		return errors.TypeMismatch(errors.PhaseDecode, nil, typeString(reflect.TypeOf(v)), "a non-nil pointer")
	}
	if rv.IsNil() {
		return errors.NilPointer(errors.PhaseDecode, nil, rv.Type().String())
	}
	elem := rv.Elem()
	ct, err := d.compiler.Compile(elem.Type())
	if err != nil {
		return err
	}
	return d.DecodeValue(r, ct, elem)
}

// DecodeValue reads a value of shape ct into v, which must be settable.
func (d *Decoder) DecodeValue(r wire.Deserializer, ct *CompiledType, v reflect.Value) error {
	return d.decode(r, ct, v, 0)
}

func (d *Decoder) decode(r wire.Deserializer, ct *CompiledType, v reflect.Value, depth int) error {
	switch ct.Kind {
	case KindBool:
		x, err := r.DeserializeBool()
		if err != nil {
			return err
		}
		v.SetBool(x)
		return nil
	case KindU8:
		x, err := r.DeserializeU8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case KindI8:
		x, err := r.DeserializeI8()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case KindU16:
		x, err := r.DeserializeU16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case KindI16:
		x, err := r.DeserializeI16()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case KindU32:
		x, err := r.DeserializeU32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case KindI32:
		x, err := r.DeserializeI32()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case KindU64:
		x, err := r.DeserializeU64()
		if err != nil {
			return err
		}
		v.SetUint(x)
		return nil
	case KindI64:
		x, err := r.DeserializeI64()
		if err != nil {
			return err
		}
		v.SetInt(x)
		return nil
	case KindF32:
		x, err := r.DeserializeF32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(x))
		return nil
	case KindF64:
		x, err := r.DeserializeF64()
		if err != nil {
			return err
		}
		v.SetFloat(x)
		return nil
	case KindChar:
		x, err := r.DeserializeChar()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case KindString:
		x, err := r.DeserializeStr()
		if err != nil {
			return err
		}
		if d.config.Copy {
			x = strings.Clone(x)
		}
		v.SetString(x)
		return nil
	case KindBytes:
		x, err := r.DeserializeBytes()
		if err != nil {
			return err
		}
		if len(x) == 0 {
			v.SetZero()
			return nil
		}
		if d.config.Copy {
			x = bytes.Clone(x)
		}
		v.SetBytes(x)
		return nil
	case KindUnit, KindUnitStruct:
		return r.DeserializeUnit()
	case KindUnitEnum:
		return d.decodeUnitEnum(r, ct, v)
	case KindCustom:
		return d.decodeCustom(r, ct, v)
	case KindInterface:
		return errors.New(errors.PhaseDecode, errors.KindNotSupported).
			GoType(ct.GoType.String()).
			Detail("interface has no registered variants; the format carries no type information").
			Build()
	}

	if limit := d.config.Limits.MaxDepth; limit > 0 && depth >= limit {
		return errors.Overflow(errors.PhaseDecode, nil, depth, "maximum nesting depth")
	}
	depth++

	switch ct.Kind {
	case KindOption:
		some, err := r.DeserializeOptionTag()
		if err != nil {
			return err
		}
		if !some {
			v.SetZero()
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return d.decode(r, ct.Elem, v.Elem(), depth)

	case KindNewtype, KindStruct:
		for _, f := range ct.Fields {
			if err := d.decode(r, f.Type, v.Field(f.Index), depth); err != nil {
				return errors.AtPath(err, f.Name)
			}
		}
		return nil

	case KindTuple:
		for i := 0; i < ct.Len; i++ {
			if err := d.decode(r, ct.Elem, v.Index(i), depth); err != nil {
				return errors.AtPath(err, "["+strconv.Itoa(i)+"]")
			}
		}
		return nil

	case KindSeq:
		return d.decodeSeq(r, ct, v, depth)

	case KindEnum:
		return d.decodeEnum(r, ct, v, depth)

	default:
		return errors.New(errors.PhaseDecode, errors.KindUnsupported).
			GoType(ct.GoType.String()).
			Detail("no decoder for kind %s", ct.Kind).
			Build()
	}
}

// decodeSeq pulls exactly the declared number of elements. Preallocation
// is bounded by the input left, so a forged count cannot force a large
// allocation up front.
func (d *Decoder) decodeSeq(r wire.Deserializer, ct *CompiledType, v reflect.Value, depth int) error {
	off := offsetOf(r)
	seq, err := r.DeserializeSeq()
	if err != nil {
		return err
	}
	n := seq.Remaining()
	if limit := d.config.Limits.MaxSequenceLength; limit > 0 && n > limit {
		return errors.New(errors.PhaseDecode, errors.KindOverflow).
			Offset(off).
			Value(n).
			Detail("sequence of %d elements exceeds limit %d", n, limit).
			Build()
	}
	if n == 0 {
		v.SetZero()
		return nil
	}

	prealloc := n
	if lr, ok := r.(interface{ Len() int }); ok && uint64(lr.Len()) < prealloc {
		prealloc = uint64(lr.Len())
	}
	v.Set(reflect.MakeSlice(v.Type(), 0, int(prealloc)))

	for i := 0; seq.Next(); i++ {
		if v.Len() == v.Cap() {
			v.Grow(1)
		}
		v.SetLen(i + 1)
		if err := d.decode(r, ct.Elem, v.Index(i), depth); err != nil {
			return errors.AtPath(err, "["+strconv.Itoa(i)+"]")
		}
	}
	return nil
}

func (d *Decoder) decodeEnum(r wire.Deserializer, ct *CompiledType, v reflect.Value, depth int) error {
	off := offsetOf(r)
	idx, err := r.DeserializeVariantIndex()
	if err != nil {
		return err
	}
	if uint64(idx) >= uint64(len(ct.Variants)) {
		return errors.InvalidDiscriminant(errors.PhaseDecode, nil, off, uint64(idx), len(ct.Variants))
	}
	variant := ct.Variants[idx]

	var target, out reflect.Value
	if variant.Pointer {
		out = reflect.New(variant.GoType.Elem())
		target = out.Elem()
	} else {
		out = reflect.New(variant.GoType).Elem()
		target = out
	}
	if err := d.decode(r, variant.Type, target, depth); err != nil {
		return errors.AtPath(err, variant.Name)
	}
	v.Set(out)
	return nil
}

func (d *Decoder) decodeUnitEnum(r wire.Deserializer, ct *CompiledType, v reflect.Value) error {
	off := offsetOf(r)
	idx, err := r.DeserializeVariantIndex()
	if err != nil {
		return err
	}
	if uint64(idx) >= uint64(len(ct.Names)) {
		return errors.InvalidDiscriminant(errors.PhaseDecode, nil, off, uint64(idx), len(ct.Names))
	}
	if v.CanInt() {
		v.SetInt(int64(idx))
	} else {
		v.SetUint(uint64(idx))
	}
	return nil
}

func (d *Decoder) decodeCustom(r wire.Deserializer, ct *CompiledType, v reflect.Value) error {
	if !ct.Unmarshaler {
		return errors.New(errors.PhaseDecode, errors.KindUnsupported).
			GoType(ct.GoType.String()).
			Detail("type implements Marshaler but not Unmarshaler").
			Build()
	}
	return v.Addr().Interface().(Unmarshaler).UnmarshalPostcard(r)
}

func offsetOf(r wire.Deserializer) int {
	if o, ok := r.(interface{ Offset() int }); ok {
		return o.Offset()
	}
	return -1
}
