package types

import (
	"reflect"
)

type CompiledType struct {
	GoType reflect.Type
	// Elem is the element shape of an option, seq or tuple.
	Elem     *CompiledType
	Fields   []Field
	Variants []Variant
	// Names lists the variants of a unit enum by ordinal.
	Names []string
	// Name is the Go type name, empty for unnamed types.
	Name string
	// Len is the arity of a tuple.
	Len         int
	Kind        Kind
	Marshaler   bool
	Unmarshaler bool
}

type Field struct {
	Type  *CompiledType
	Name  string
	Index int
}

type Variant struct {
	Type   *CompiledType
	GoType reflect.Type
	Name   string
	// Pointer is set when the registered variant is *T; Type then describes T.
	Pointer bool
}

func (ct *CompiledType) IsPrimitive() bool {
	return ct.Kind.IsPrimitive()
}

// FixedSize returns the encoded size of values of ct when it does not
// depend on the value, and false otherwise. Recursive shapes are never
// fixed.
func (ct *CompiledType) FixedSize() (int, bool) {
	return ct.fixedSize(make(map[*CompiledType]bool))
}

func (ct *CompiledType) fixedSize(seen map[*CompiledType]bool) (int, bool) {
	if n := ct.Kind.FixedSize(); n > 0 {
		return n, true
	}
	if seen[ct] {
		return 0, false
	}
	seen[ct] = true
	defer delete(seen, ct)

	switch ct.Kind {
	case KindUnit, KindUnitStruct:
		return 0, true
	case KindNewtype, KindStruct:
		total := 0
		for _, f := range ct.Fields {
			n, ok := f.Type.fixedSize(seen)
			if !ok {
				return 0, false
			}
			total += n
		}
		return total, true
	case KindTuple:
		n, ok := ct.Elem.fixedSize(seen)
		if !ok {
			return 0, false
		}
		return n * ct.Len, true
	default:
		return 0, false
	}
}

// VariantIndex returns the ordinal of the registered variant type t.
func (ct *CompiledType) VariantIndex(t reflect.Type) (int, bool) {
	for i, v := range ct.Variants {
		if v.GoType == t {
			return i, true
		}
	}
	return -1, false
}
