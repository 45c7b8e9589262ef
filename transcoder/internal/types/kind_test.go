package types //nolint:revive // package name is used by internal consumers

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{"bool", KindBool},
		{"u8", KindU8},
		{"i8", KindI8},
		{"u16", KindU16},
		{"i16", KindI16},
		{"u32", KindU32},
		{"i32", KindI32},
		{"u64", KindU64},
		{"i64", KindI64},
		{"f32", KindF32},
		{"f64", KindF64},
		{"char", KindChar},
		{"string", KindString},
		{"bytes", KindBytes},
		{"option", KindOption},
		{"unit", KindUnit},
		{"unit_struct", KindUnitStruct},
		{"newtype", KindNewtype},
		{"seq", KindSeq},
		{"tuple", KindTuple},
		{"struct", KindStruct},
		{"enum", KindEnum},
		{"unit_enum", KindUnitEnum},
		{"interface", KindInterface},
		{"custom", KindCustom},
		{"unknown", Kind(255)},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindIsPrimitive(t *testing.T) {
	for k := KindBool; k <= KindChar; k++ {
		if !k.IsPrimitive() {
			t.Errorf("%s should be primitive", k)
		}
	}
	for _, k := range []Kind{KindString, KindBytes, KindOption, KindSeq, KindEnum} {
		if k.IsPrimitive() {
			t.Errorf("%s should not be primitive", k)
		}
	}
}

func TestKindFixedSize(t *testing.T) {
	tests := map[Kind]int{
		KindBool: 1, KindI8: 1, KindU16: 2, KindI32: 4, KindChar: 4,
		KindF32: 4, KindU64: 8, KindF64: 8, KindString: 0, KindSeq: 0,
	}
	for k, want := range tests {
		if got := k.FixedSize(); got != want {
			t.Errorf("%s.FixedSize() = %d, want %d", k, got, want)
		}
	}
}
