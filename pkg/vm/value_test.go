package vm

import "testing"

func TestValue_NullIsZeroValue(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Error("expected zero Value to be null")
	}
	if NewValue().Variant() != VariantNull {
		t.Error("expected NewValue to be null")
	}
}

func TestValue_Constructors(t *testing.T) {
	if NumberValue(3).Variant() != VariantNumber {
		t.Error("expected number variant")
	}
	if BooleanValue(true).Variant() != VariantBoolean {
		t.Error("expected boolean variant")
	}
	if StringValue("x").Variant() != VariantString {
		t.Error("expected string variant")
	}
	if HandleValue(7).Variant() != VariantHandle {
		t.Error("expected handle variant")
	}
}

func TestValue_GetNumberCoercion(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{Null(), 0},
		{BooleanValue(true), 1},
		{BooleanValue(false), 0},
		{StringValue("42"), 42},
		{HandleValue(5), 5},
	}
	for _, c := range cases {
		if got := c.v.GetNumber(); got != c.want {
			t.Errorf("GetNumber(%v) = %v, want %v", c.v, got, c.want)
		}
	}

	n := StringValue("not a number").GetNumber()
	if n == n {
		t.Errorf("expected NaN for unparseable string, got %v", n)
	}
}

func TestValue_GetStringCoercion(t *testing.T) {
	if got := NumberValue(1.5).GetString(); got != "1.5" {
		t.Errorf("GetString(1.5) = %q", got)
	}
	if got := BooleanValue(true).GetString(); got != "true" {
		t.Errorf("GetString(true) = %q", got)
	}
	if got := Null().GetString(); got != "null" {
		t.Errorf("GetString(null) = %q", got)
	}
}

func TestValue_CompareSameVariant(t *testing.T) {
	if NumberValue(1).Compare(NumberValue(2)) >= 0 {
		t.Error("expected 1 < 2")
	}
	if StringValue("a").Compare(StringValue("b")) >= 0 {
		t.Error("expected \"a\" < \"b\"")
	}
	if BooleanValue(false).Compare(BooleanValue(true)) >= 0 {
		t.Error("expected false < true")
	}
}

func TestValue_CompareCrossVariantCoercesToNumber(t *testing.T) {
	if NumberValue(10).Compare(StringValue("5")) <= 0 {
		t.Error("expected 10 > \"5\" via numeric coercion")
	}
}

func TestValue_CompareCrossVariantFallsBackToString(t *testing.T) {
	if StringValue("abc").Compare(NumberValue(1)) == 0 {
		t.Error("expected non-zero comparison")
	}
}

func TestValue_CloneAndCopyAreIndependent(t *testing.T) {
	src := StringValue("original")
	dst := src.Clone()
	if dst.GetString() != "original" {
		t.Errorf("Clone produced %q", dst.GetString())
	}

	var target Value
	Copy(&target, src)
	if target.GetString() != "original" {
		t.Errorf("Copy produced %q", target.GetString())
	}
}

func TestValue_Swap(t *testing.T) {
	a := NumberValue(1)
	b := NumberValue(2)
	Swap(&a, &b)
	if a.GetNumber() != 2 || b.GetNumber() != 1 {
		t.Error("expected Swap to exchange contents")
	}
}
