package transcoder

import (
	"math"
	"reflect"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/postcard/errors"
)

var (
	charType        = reflect.TypeFor[Char]()
	marshalerType   = reflect.TypeFor[Marshaler]()
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
)

// Compiler maps Go types to compiled shapes and holds the enum registry.
// It is safe for concurrent use.
type Compiler struct {
	cache sync.Map // reflect.Type -> *CompiledType

	mu        sync.RWMutex
	enums     map[reflect.Type][]reflect.Type
	unitEnums map[reflect.Type][]string
}

func NewCompiler() *Compiler {
	return &Compiler{
		enums:     make(map[reflect.Type][]reflect.Type),
		unitEnums: make(map[reflect.Type][]string),
	}
}

// Compile returns the shape of goType. Results are cached until the next
// registration.
func (c *Compiler) Compile(goType reflect.Type) (*CompiledType, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}

	if cached, ok := c.cache.Load(goType); ok {
		return cached.(*CompiledType), nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	ct, err := c.compile(goType, make(map[reflect.Type]*CompiledType))
	if err != nil {
		return nil, err
	}

	actual, _ := c.cache.LoadOrStore(goType, ct)
	return actual.(*CompiledType), nil
}

// RegisterEnum declares iface, an interface type, as an enum whose
// variants are the dynamic types of variants, in ordinal order. A pointer
// variant *T decodes into a fresh *T and carries T's payload.
func (c *Compiler) RegisterEnum(iface reflect.Type, variants ...any) error {
	if iface == nil || iface.Kind() != reflect.Interface {
		return errors.Registration(typeString(iface), "enum type must be an interface")
	}
	if len(variants) == 0 {
		return errors.Registration(iface.String(), "enum needs at least one variant")
	}

	types := make([]reflect.Type, 0, len(variants))
	seen := make(map[reflect.Type]bool, len(variants))
	for i, v := range variants {
		vt := reflect.TypeOf(v)
		if vt == nil {
			return errors.Registration(iface.String(), "variant "+strconv.Itoa(i)+" is nil")
		}
		if !vt.Implements(iface) {
			return errors.Registration(iface.String(), vt.String()+" does not implement the enum interface")
		}
		if seen[vt] {
			return errors.Registration(iface.String(), vt.String()+" registered twice")
		}
		seen[vt] = true
		types = append(types, vt)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.enums[iface] = types
	c.cache.Clear()

	Logger().Debug("registered enum",
		zap.Stringer("type", iface),
		zap.Int("variants", len(types)))
	return nil
}

// RegisterUnitEnum declares an integer type as an enum of unit variants.
// The integer value is the ordinal; names[i] names ordinal i.
func (c *Compiler) RegisterUnitEnum(t reflect.Type, names ...string) error {
	if t == nil || !isInteger(t.Kind()) {
		return errors.Registration(typeString(t), "unit enum type must be an integer")
	}
	if len(names) == 0 {
		return errors.Registration(t.String(), "enum needs at least one variant")
	}
	if last := uint64(len(names) - 1); last > maxOrdinal(t) {
		return errors.Registration(t.String(),
			strconv.Itoa(len(names))+" variants do not fit in "+t.Kind().String())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.unitEnums[t] = append([]string(nil), names...)
	c.cache.Clear()

	Logger().Debug("registered unit enum",
		zap.Stringer("type", t),
		zap.Strings("variants", names))
	return nil
}

func (c *Compiler) compile(t reflect.Type, inProgress map[reflect.Type]*CompiledType) (*CompiledType, error) {
	if ct, ok := inProgress[t]; ok {
		return ct, nil
	}
	if cached, ok := c.cache.Load(t); ok {
		return cached.(*CompiledType), nil
	}

	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		m := t.Implements(marshalerType) || reflect.PointerTo(t).Implements(marshalerType)
		u := reflect.PointerTo(t).Implements(unmarshalerType)
		if m || u {
			return &CompiledType{GoType: t, Name: t.Name(), Kind: KindCustom, Marshaler: m, Unmarshaler: u}, nil
		}
	}

	if names, ok := c.unitEnums[t]; ok {
		return &CompiledType{GoType: t, Name: t.Name(), Kind: KindUnitEnum, Names: names}, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return primitive(t, KindBool), nil
	case reflect.Uint8:
		return primitive(t, KindU8), nil
	case reflect.Int8:
		return primitive(t, KindI8), nil
	case reflect.Uint16:
		return primitive(t, KindU16), nil
	case reflect.Int16:
		return primitive(t, KindI16), nil
	case reflect.Uint32:
		return primitive(t, KindU32), nil
	case reflect.Int32:
		if t == charType {
			return primitive(t, KindChar), nil
		}
		return primitive(t, KindI32), nil
	case reflect.Uint64, reflect.Uint:
		return primitive(t, KindU64), nil
	case reflect.Int64, reflect.Int:
		return primitive(t, KindI64), nil
	case reflect.Float32:
		return primitive(t, KindF32), nil
	case reflect.Float64:
		return primitive(t, KindF64), nil
	case reflect.String:
		return primitive(t, KindString), nil
	case reflect.Slice:
		return c.compileSlice(t, inProgress)
	case reflect.Array:
		return c.compileArray(t, inProgress)
	case reflect.Pointer:
		return c.compileOption(t, inProgress)
	case reflect.Struct:
		return c.compileStruct(t, inProgress)
	case reflect.Interface:
		return c.compileInterface(t, inProgress)
	case reflect.Map:
		return nil, errors.NotImplemented(errors.PhaseCompile, nil, "map "+t.String()+" has no encoding")
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			GoType(t.String()).
			Detail("%s values have no shape", t.Kind()).
			Build()
	}
}

func primitive(t reflect.Type, kind TypeKind) *CompiledType {
	return &CompiledType{GoType: t, Name: t.Name(), Kind: kind}
}

func (c *Compiler) compileSlice(t reflect.Type, inProgress map[reflect.Type]*CompiledType) (*CompiledType, error) {
	ct := &CompiledType{GoType: t, Name: t.Name()}
	if et := t.Elem(); et.Kind() == reflect.Uint8 && !hasHooks(et) {
		// A unit enum element keeps its varint ordinal and range check.
		if _, ok := c.unitEnums[et]; !ok {
			ct.Kind = KindBytes
			return ct, nil
		}
	}

	inProgress[t] = ct
	elem, err := c.compile(t.Elem(), inProgress)
	if err != nil {
		return nil, errors.AtPath(err, "[elem]")
	}
	ct.Kind = KindSeq
	ct.Elem = elem
	return ct, nil
}

func (c *Compiler) compileArray(t reflect.Type, inProgress map[reflect.Type]*CompiledType) (*CompiledType, error) {
	ct := &CompiledType{GoType: t, Name: t.Name(), Kind: KindTuple, Len: t.Len()}
	inProgress[t] = ct
	elem, err := c.compile(t.Elem(), inProgress)
	if err != nil {
		return nil, errors.AtPath(err, "[elem]")
	}
	ct.Elem = elem
	return ct, nil
}

func (c *Compiler) compileOption(t reflect.Type, inProgress map[reflect.Type]*CompiledType) (*CompiledType, error) {
	ct := &CompiledType{GoType: t, Name: t.Name(), Kind: KindOption}
	inProgress[t] = ct
	elem, err := c.compile(t.Elem(), inProgress)
	if err != nil {
		return nil, err
	}
	ct.Elem = elem
	return ct, nil
}

// compileStruct takes exported fields in declaration order, skipping those
// tagged `postcard:"-"`.
func (c *Compiler) compileStruct(t reflect.Type, inProgress map[reflect.Type]*CompiledType) (*CompiledType, error) {
	ct := &CompiledType{GoType: t, Name: t.Name()}
	inProgress[t] = ct

	fields := make([]CompiledField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("postcard") == "-" {
			continue
		}
		ft, err := c.compile(f.Type, inProgress)
		if err != nil {
			return nil, errors.AtPath(err, f.Name)
		}
		fields = append(fields, CompiledField{Type: ft, Name: f.Name, Index: i})
	}
	ct.Fields = fields

	switch {
	case len(fields) == 0 && t.Name() == "":
		ct.Kind = KindUnit
	case len(fields) == 0:
		ct.Kind = KindUnitStruct
	case len(fields) == 1 && t.Name() != "":
		ct.Kind = KindNewtype
	default:
		ct.Kind = KindStruct
	}
	return ct, nil
}

func (c *Compiler) compileInterface(t reflect.Type, inProgress map[reflect.Type]*CompiledType) (*CompiledType, error) {
	ct := &CompiledType{GoType: t, Name: t.Name()}
	variants, ok := c.enums[t]
	if !ok {
		ct.Kind = KindInterface
		return ct, nil
	}

	inProgress[t] = ct
	ct.Kind = KindEnum
	ct.Variants = make([]CompiledVariant, 0, len(variants))
	for _, vt := range variants {
		payload, ptr := vt, false
		if vt.Kind() == reflect.Pointer {
			payload, ptr = vt.Elem(), true
		}
		vct, err := c.compile(payload, inProgress)
		if err != nil {
			return nil, errors.AtPath(err, payload.Name())
		}
		ct.Variants = append(ct.Variants, CompiledVariant{
			Type:    vct,
			GoType:  vt,
			Name:    payload.Name(),
			Pointer: ptr,
		})
	}
	return ct, nil
}

func hasHooks(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return t.Implements(marshalerType) || pt.Implements(marshalerType) || pt.Implements(unmarshalerType)
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// maxOrdinal is the largest ordinal an integer type can hold.
func maxOrdinal(t reflect.Type) uint64 {
	bits := t.Bits()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 1<<(bits-1) - 1
	}
	if bits == 64 {
		return math.MaxUint64
	}
	return 1<<bits - 1
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
