package types

import (
	"reflect"
	"testing"
)

func TestCompiledTypeIsPrimitive(t *testing.T) {
	if !(&CompiledType{Kind: KindU32}).IsPrimitive() {
		t.Error("u32 should be primitive")
	}
	if (&CompiledType{Kind: KindString}).IsPrimitive() {
		t.Error("string should not be primitive")
	}
}

func TestCompiledTypeFixedSize(t *testing.T) {
	u32 := &CompiledType{Kind: KindU32}
	str := &CompiledType{Kind: KindString}

	t.Run("primitive", func(t *testing.T) {
		if n, ok := u32.FixedSize(); !ok || n != 4 {
			t.Errorf("got %d, %v", n, ok)
		}
	})

	t.Run("string", func(t *testing.T) {
		if _, ok := str.FixedSize(); ok {
			t.Error("string has no fixed size")
		}
	})

	t.Run("struct of primitives", func(t *testing.T) {
		ct := &CompiledType{
			Kind: KindStruct,
			Fields: []Field{
				{Type: u32},
				{Type: &CompiledType{Kind: KindBool}},
				{Type: &CompiledType{Kind: KindUnit}},
			},
		}
		if n, ok := ct.FixedSize(); !ok || n != 5 {
			t.Errorf("got %d, %v", n, ok)
		}
	})

	t.Run("struct with string", func(t *testing.T) {
		ct := &CompiledType{Kind: KindStruct, Fields: []Field{{Type: u32}, {Type: str}}}
		if _, ok := ct.FixedSize(); ok {
			t.Error("struct with string has no fixed size")
		}
	})

	t.Run("tuple", func(t *testing.T) {
		ct := &CompiledType{Kind: KindTuple, Elem: &CompiledType{Kind: KindI16}, Len: 3}
		if n, ok := ct.FixedSize(); !ok || n != 6 {
			t.Errorf("got %d, %v", n, ok)
		}
	})

	t.Run("option and seq", func(t *testing.T) {
		for _, k := range []Kind{KindOption, KindSeq, KindEnum} {
			if _, ok := (&CompiledType{Kind: k, Elem: u32}).FixedSize(); ok {
				t.Errorf("%s has no fixed size", k)
			}
		}
	})

	t.Run("recursive", func(t *testing.T) {
		ct := &CompiledType{Kind: KindStruct}
		ct.Fields = []Field{{Type: ct}}
		if _, ok := ct.FixedSize(); ok {
			t.Error("recursive shape must not report a fixed size")
		}
	})

	t.Run("shared field shape", func(t *testing.T) {
		u16 := &CompiledType{Kind: KindU16}
		pair := &CompiledType{Kind: KindStruct, Fields: []Field{{Type: u16}, {Type: u16}}}
		outer := &CompiledType{Kind: KindStruct, Fields: []Field{{Type: pair}, {Type: pair}}}
		if n, ok := outer.FixedSize(); !ok || n != 8 {
			t.Errorf("FixedSize = %d, %v; want 8, true", n, ok)
		}
	})
}

func TestVariantIndex(t *testing.T) {
	a, b := reflect.TypeOf(int8(0)), reflect.TypeOf("")
	ct := &CompiledType{Kind: KindEnum, Variants: []Variant{{GoType: a}, {GoType: b}}}
	if i, ok := ct.VariantIndex(b); !ok || i != 1 {
		t.Errorf("VariantIndex = %d, %v", i, ok)
	}
	if _, ok := ct.VariantIndex(reflect.TypeOf(0)); ok {
		t.Error("unregistered type should not be found")
	}
}
