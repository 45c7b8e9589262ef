package transcoder

import (
	"reflect"
	"strconv"
	"unsafe"

	"github.com/wippyai/postcard/errors"
	"github.com/wippyai/postcard/wire"
)

// cycleCheckDepth is the nesting depth past which the encoder tracks the
// pointers and slices on the current path, so a cycle fails instead of
// recursing forever.
const cycleCheckDepth = 1000

type Encoder struct {
	compiler *Compiler
}

// visit identifies a pointer or slice on the current path.
type visit struct {
	ptr unsafe.Pointer
	typ reflect.Type
	len int
}

func NewEncoder() *Encoder {
	return NewEncoderWithCompiler(NewCompiler())
}

func NewEncoderWithCompiler(c *Compiler) *Encoder {
	return &Encoder{compiler: c}
}

// Compiler returns the compiler used to resolve shapes.
func (e *Encoder) Compiler() *Compiler { return e.compiler }

// Encode writes v to s. A pointer argument is followed once, so Encode(x)
// and Encode(&x) write the same bytes; pass a pointer to an interface
// variable to encode it as an enum.
func (e *Encoder) Encode(s wire.Serializer, v any) error {
	rv, err := indirect(v)
	if err != nil {
		return err
	}
	ct, err := e.compiler.Compile(rv.Type())
	if err != nil {
		return err
	}
	return e.EncodeValue(s, ct, rv)
}

// EncodeValue writes v, which must be of type ct.GoType.
func (e *Encoder) EncodeValue(s wire.Serializer, ct *CompiledType, v reflect.Value) error {
	return e.encode(s, ct, v, 0, nil)
}

// Size returns the number of bytes Encode would write for v.
func (e *Encoder) Size(v any) (int, error) {
	rv, err := indirect(v)
	if err != nil {
		return 0, err
	}
	ct, err := e.compiler.Compile(rv.Type())
	if err != nil {
		return 0, err
	}
	if n, ok := ct.FixedSize(); ok {
		return n, nil
	}
	var sink wire.SizeSink
	if err := e.EncodeValue(wire.NewWriter(&sink), ct, rv); err != nil {
		return 0, err
	}
	return sink.Len(), nil
}

func indirect(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Value{}, errors.NilPointer(errors.PhaseEncode, nil, "<nil>")
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, errors.NilPointer(errors.PhaseEncode, nil, rv.Type().String())
		}
		rv = rv.Elem()
	}
	return rv, nil
}

func (e *Encoder) encode(s wire.Serializer, ct *CompiledType, v reflect.Value, depth int, path map[visit]struct{}) error {
	switch ct.Kind {
	case KindBool:
		return s.SerializeBool(v.Bool())
	case KindU8:
		return s.SerializeU8(uint8(v.Uint()))
	case KindI8:
		return s.SerializeI8(int8(v.Int()))
	case KindU16:
		return s.SerializeU16(uint16(v.Uint()))
	case KindI16:
		return s.SerializeI16(int16(v.Int()))
	case KindU32:
		return s.SerializeU32(uint32(v.Uint()))
	case KindI32:
		return s.SerializeI32(int32(v.Int()))
	case KindU64:
		return s.SerializeU64(v.Uint())
	case KindI64:
		return s.SerializeI64(v.Int())
	case KindF32:
		return s.SerializeF32(float32(v.Float()))
	case KindF64:
		return s.SerializeF64(v.Float())
	case KindChar:
		return s.SerializeChar(rune(v.Int()))
	case KindString:
		return s.SerializeStr(v.String())
	case KindBytes:
		return s.SerializeBytes(v.Bytes())
	case KindUnit, KindUnitStruct:
		return s.SerializeUnit()
	case KindUnitEnum:
		return e.encodeUnitEnum(s, ct, v)
	case KindCustom:
		return e.encodeCustom(s, ct, v)
	}

	depth++
	if depth > cycleCheckDepth && path == nil {
		path = make(map[visit]struct{})
	}

	switch ct.Kind {
	case KindOption:
		if v.IsNil() {
			return s.SerializeNone()
		}
		if err := s.SerializeSome(); err != nil {
			return err
		}
		if path != nil {
			key := visit{ptr: v.UnsafePointer(), typ: v.Type()}
			if err := enter(path, key); err != nil {
				return err
			}
			defer delete(path, key)
		}
		return e.encode(s, ct.Elem, v.Elem(), depth, path)

	case KindNewtype, KindStruct:
		for _, f := range ct.Fields {
			if err := e.encode(s, f.Type, v.Field(f.Index), depth, path); err != nil {
				return errors.AtPath(err, f.Name)
			}
		}
		return nil

	case KindTuple:
		for i := 0; i < ct.Len; i++ {
			if err := e.encode(s, ct.Elem, v.Index(i), depth, path); err != nil {
				return errors.AtPath(err, "["+strconv.Itoa(i)+"]")
			}
		}
		return nil

	case KindSeq:
		n := v.Len()
		if err := s.SerializeLen(uint64(n)); err != nil {
			return err
		}
		if path != nil && n > 0 {
			key := visit{ptr: v.UnsafePointer(), typ: v.Type(), len: n}
			if err := enter(path, key); err != nil {
				return err
			}
			defer delete(path, key)
		}
		for i := 0; i < n; i++ {
			if err := e.encode(s, ct.Elem, v.Index(i), depth, path); err != nil {
				return errors.AtPath(err, "["+strconv.Itoa(i)+"]")
			}
		}
		return nil

	case KindEnum:
		return e.encodeEnum(s, ct, v, depth, path)

	case KindInterface:
		if v.IsNil() {
			return errors.NilPointer(errors.PhaseEncode, nil, ct.GoType.String())
		}
		dyn := v.Elem()
		dct, err := e.compiler.Compile(dyn.Type())
		if err != nil {
			return err
		}
		return e.encode(s, dct, dyn, depth, path)

	default:
		return errors.New(errors.PhaseEncode, errors.KindUnsupported).
			GoType(ct.GoType.String()).
			Detail("no encoder for kind %s", ct.Kind).
			Build()
	}
}

func (e *Encoder) encodeEnum(s wire.Serializer, ct *CompiledType, v reflect.Value, depth int, path map[visit]struct{}) error {
	if v.IsNil() {
		return errors.NilPointer(errors.PhaseEncode, nil, ct.GoType.String())
	}
	dyn := v.Elem()
	idx, ok := ct.VariantIndex(dyn.Type())
	if !ok {
		return errors.New(errors.PhaseEncode, errors.KindBadEnum).
			GoType(dyn.Type().String()).
			Detail("not a registered variant of %s", ct.GoType).
			Build()
	}
	variant := ct.Variants[idx]

	if err := s.SerializeVariantIndex(uint32(idx)); err != nil {
		return err
	}
	payload := dyn
	if variant.Pointer {
		if dyn.IsNil() {
			return errors.NilPointer(errors.PhaseEncode, []string{variant.Name}, variant.GoType.String())
		}
		payload = dyn.Elem()
		if path != nil {
			key := visit{ptr: dyn.UnsafePointer(), typ: dyn.Type()}
			if err := enter(path, key); err != nil {
				return err
			}
			defer delete(path, key)
		}
	}
	return errors.AtPath(e.encode(s, variant.Type, payload, depth, path), variant.Name)
}

func enter(path map[visit]struct{}, key visit) error {
	if _, ok := path[key]; ok {
		return errors.New(errors.PhaseEncode, errors.KindUnsupported).
			GoType(key.typ.String()).
			Detail("encountered a cycle").
			Build()
	}
	path[key] = struct{}{}
	return nil
}

func (e *Encoder) encodeUnitEnum(s wire.Serializer, ct *CompiledType, v reflect.Value) error {
	var ord uint64
	if v.CanInt() {
		i := v.Int()
		if i < 0 {
			return errors.InvalidDiscriminant(errors.PhaseEncode, nil, -1, uint64(i), len(ct.Names))
		}
		ord = uint64(i)
	} else {
		ord = v.Uint()
	}
	if ord >= uint64(len(ct.Names)) {
		return errors.InvalidDiscriminant(errors.PhaseEncode, nil, -1, ord, len(ct.Names))
	}
	return s.SerializeVariantIndex(uint32(ord))
}

func (e *Encoder) encodeCustom(s wire.Serializer, ct *CompiledType, v reflect.Value) error {
	if !ct.Marshaler {
		return errors.New(errors.PhaseEncode, errors.KindUnsupported).
			GoType(ct.GoType.String()).
			Detail("type implements Unmarshaler but not Marshaler").
			Build()
	}
	if m, ok := v.Interface().(Marshaler); ok {
		return m.MarshalPostcard(s)
	}
	if !v.CanAddr() {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		v = p.Elem()
	}
	return v.Addr().Interface().(Marshaler).MarshalPostcard(s)
}
