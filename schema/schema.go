package schema

import (
	"reflect"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/postcard/errors"
	"github.com/wippyai/postcard/transcoder"
)

// Of compiles t with c and describes the result.
func Of(c *transcoder.Compiler, t reflect.Type) (wit.Type, error) {
	ct, err := c.Compile(t)
	if err != nil {
		return nil, err
	}
	return Describe(ct)
}

// Describe returns the WIT type of ct. Named Go types become named
// TypeDefs; a recursive shape refers back to the same TypeDef.
func Describe(ct *transcoder.CompiledType) (wit.Type, error) {
	d := describer{defs: make(map[*transcoder.CompiledType]*wit.TypeDef)}
	return d.describe(ct)
}

type describer struct {
	defs map[*transcoder.CompiledType]*wit.TypeDef
}

func (d *describer) describe(ct *transcoder.CompiledType) (wit.Type, error) {
	if td, ok := d.defs[ct]; ok {
		return td, nil
	}

	switch ct.Kind {
	case transcoder.KindBool:
		return wit.Bool{}, nil
	case transcoder.KindU8:
		return wit.U8{}, nil
	case transcoder.KindI8:
		return wit.S8{}, nil
	case transcoder.KindU16:
		return wit.U16{}, nil
	case transcoder.KindI16:
		return wit.S16{}, nil
	case transcoder.KindU32:
		return wit.U32{}, nil
	case transcoder.KindI32:
		return wit.S32{}, nil
	case transcoder.KindU64:
		return wit.U64{}, nil
	case transcoder.KindI64:
		return wit.S64{}, nil
	case transcoder.KindF32:
		return wit.F32{}, nil
	case transcoder.KindF64:
		return wit.F64{}, nil
	case transcoder.KindChar:
		return wit.Char{}, nil
	case transcoder.KindString:
		return wit.String{}, nil
	case transcoder.KindBytes:
		return &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}, nil
	case transcoder.KindUnit:
		return &wit.TypeDef{Kind: &wit.Tuple{}}, nil
	case transcoder.KindUnitStruct:
		return d.define(ct, &wit.Tuple{}), nil
	case transcoder.KindCustom, transcoder.KindInterface:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			GoType(ct.GoType.String()).
			Detail("%s has no static shape", ct.Kind).
			Build()
	}

	switch ct.Kind {
	case transcoder.KindOption:
		elem, err := d.describe(ct.Elem)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.Option{Type: elem}}, nil

	case transcoder.KindSeq:
		elem, err := d.describe(ct.Elem)
		if err != nil {
			return nil, errors.AtPath(err, "[elem]")
		}
		return d.maybeDefine(ct, &wit.List{Type: elem}), nil

	case transcoder.KindTuple:
		elem, err := d.describe(ct.Elem)
		if err != nil {
			return nil, errors.AtPath(err, "[elem]")
		}
		types := make([]wit.Type, ct.Len)
		for i := range types {
			types[i] = elem
		}
		return d.maybeDefine(ct, &wit.Tuple{Types: types}), nil

	case transcoder.KindNewtype:
		td := d.define(ct, nil)
		inner, err := d.describe(ct.Fields[0].Type)
		if err != nil {
			return nil, errors.AtPath(err, ct.Fields[0].Name)
		}
		td.Kind = inner
		return td, nil

	case transcoder.KindStruct:
		rec := &wit.Record{}
		td := d.maybeDefine(ct, rec)
		for _, f := range ct.Fields {
			ft, err := d.describe(f.Type)
			if err != nil {
				return nil, errors.AtPath(err, f.Name)
			}
			rec.Fields = append(rec.Fields, wit.Field{Name: kebab(f.Name), Type: ft})
		}
		return td, nil

	case transcoder.KindEnum:
		v := &wit.Variant{}
		td := d.maybeDefine(ct, v)
		for _, variant := range ct.Variants {
			payload, err := d.payload(variant.Type)
			if err != nil {
				return nil, errors.AtPath(err, variant.Name)
			}
			v.Cases = append(v.Cases, wit.Case{Name: kebab(variant.Name), Type: payload})
		}
		return td, nil

	case transcoder.KindUnitEnum:
		e := &wit.Enum{}
		for _, name := range ct.Names {
			e.Cases = append(e.Cases, wit.EnumCase{Name: kebab(name)})
		}
		return d.maybeDefine(ct, e), nil

	default:
		return nil, errors.Unsupported(errors.PhaseCompile, "no WIT form for kind "+ct.Kind.String())
	}
}

// payload describes a variant's data. Unit variants carry none, and a
// newtype variant carries its field directly.
func (d *describer) payload(ct *transcoder.CompiledType) (wit.Type, error) {
	switch ct.Kind {
	case transcoder.KindUnit, transcoder.KindUnitStruct:
		return nil, nil
	case transcoder.KindNewtype:
		return d.describe(ct.Fields[0].Type)
	default:
		return d.describe(ct)
	}
}

func (d *describer) define(ct *transcoder.CompiledType, kind wit.TypeDefKind) *wit.TypeDef {
	name := kebab(ct.Name)
	td := &wit.TypeDef{Name: &name, Kind: kind}
	d.defs[ct] = td
	return td
}

func (d *describer) maybeDefine(ct *transcoder.CompiledType, kind wit.TypeDefKind) *wit.TypeDef {
	if ct.Name == "" {
		return &wit.TypeDef{Kind: kind}
	}
	return d.define(ct, kind)
}

// Format renders t on one line. The outermost named type is expanded and
// named types nested inside it are referred to by name.
func Format(t wit.Type) string {
	var b strings.Builder
	format(&b, t, true)
	return b.String()
}

func format(b *strings.Builder, t wit.Type, top bool) {
	td, ok := t.(*wit.TypeDef)
	if !ok {
		b.WriteString(primitiveName(t))
		return
	}
	if td.Name != nil && !top {
		b.WriteString(*td.Name)
		return
	}

	name := ""
	if td.Name != nil {
		name = *td.Name + " "
	}

	switch k := td.Kind.(type) {
	case *wit.Record:
		b.WriteString("record " + name + "{ ")
		for i, f := range k.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name + ": ")
			format(b, f.Type, false)
		}
		b.WriteString(" }")
	case *wit.Variant:
		b.WriteString("variant " + name + "{ ")
		for i, c := range k.Cases {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name)
			if c.Type != nil {
				b.WriteByte('(')
				format(b, c.Type, false)
				b.WriteByte(')')
			}
		}
		b.WriteString(" }")
	case *wit.Enum:
		b.WriteString("enum " + name + "{ ")
		for i, c := range k.Cases {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name)
		}
		b.WriteString(" }")
	case *wit.List:
		if name != "" {
			b.WriteString("type " + name + "= ")
		}
		b.WriteString("list<")
		format(b, k.Type, false)
		b.WriteByte('>')
	case *wit.Option:
		b.WriteString("option<")
		format(b, k.Type, false)
		b.WriteByte('>')
	case *wit.Tuple:
		if name != "" {
			b.WriteString("type " + name + "= ")
		}
		b.WriteString("tuple<")
		for i, et := range k.Types {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, et, false)
		}
		b.WriteByte('>')
	case wit.Type:
		b.WriteString("type " + name + "= ")
		format(b, k, false)
	default:
		b.WriteString("<unknown>")
	}
}

func primitiveName(t wit.Type) string {
	switch t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	default:
		return "<unknown>"
	}
}
