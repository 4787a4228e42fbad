package builtins

import (
	"testing"

	"github.com/codylico/surgescript/pkg/vm"
)

func newArray(t *testing.T) (*vm.VM, *vm.Object) {
	t.Helper()
	v := vm.NewVM()
	RegisterArray(v)
	v.Launch()
	arr := v.SpawnObject(v.RootObject(), "Array", nil, nil, nil)
	return v, arr
}

func TestArray_PushPopShiftBasics(t *testing.T) {
	_, arr := newArray(t)

	arr.CallMethod("push", []vm.Value{vm.NumberValue(10)})
	arr.CallMethod("push", []vm.Value{vm.NumberValue(20)})
	arr.CallMethod("push", []vm.Value{vm.NumberValue(30)})

	if got := arr.CallMethod("length", nil).GetNumber(); got != 3 {
		t.Fatalf("length() = %v, want 3", got)
	}
	if got := arr.CallMethod("get", []vm.Value{vm.NumberValue(0)}).GetNumber(); got != 10 {
		t.Errorf("get(0) = %v, want 10", got)
	}
	if got := arr.CallMethod("get", []vm.Value{vm.NumberValue(2)}).GetNumber(); got != 30 {
		t.Errorf("get(2) = %v, want 30", got)
	}

	if got := arr.CallMethod("pop", nil).GetNumber(); got != 30 {
		t.Errorf("pop() = %v, want 30", got)
	}
	if got := arr.CallMethod("length", nil).GetNumber(); got != 2 {
		t.Errorf("length() = %v, want 2", got)
	}

	if got := arr.CallMethod("shift", nil).GetNumber(); got != 10 {
		t.Errorf("shift() = %v, want 10", got)
	}
	if got := arr.CallMethod("get", []vm.Value{vm.NumberValue(0)}).GetNumber(); got != 20 {
		t.Errorf("get(0) = %v, want 20", got)
	}
	if got := arr.CallMethod("length", nil).GetNumber(); got != 1 {
		t.Errorf("length() = %v, want 1", got)
	}
}

func TestArray_PopAndShiftOnEmptyReturnNull(t *testing.T) {
	_, arr := newArray(t)
	if !arr.CallMethod("pop", nil).IsNull() {
		t.Error("expected pop() on empty array to be null")
	}
	if !arr.CallMethod("shift", nil).IsNull() {
		t.Error("expected shift() on empty array to be null")
	}
}

func TestArray_Sort(t *testing.T) {
	_, arr := newArray(t)
	input := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3}
	for _, n := range input {
		arr.CallMethod("push", []vm.Value{vm.NumberValue(n)})
	}

	arr.CallMethod("sort", nil)

	want := []float64{1, 1, 2, 3, 3, 4, 5, 5, 6, 9}
	length := int(arr.CallMethod("length", nil).GetNumber())
	if length != len(want) {
		t.Fatalf("length() = %d, want %d", length, len(want))
	}
	for i, expected := range want {
		got := arr.CallMethod("get", []vm.Value{vm.NumberValue(float64(i))}).GetNumber()
		if got != expected {
			t.Errorf("get(%d) = %v, want %v", i, got, expected)
		}
	}
}

func TestArray_IndexOf(t *testing.T) {
	_, arr := newArray(t)
	arr.CallMethod("push", []vm.Value{vm.NumberValue(10)})
	arr.CallMethod("push", []vm.Value{vm.NumberValue(20)})
	arr.CallMethod("push", []vm.Value{vm.NumberValue(30)})

	if got := arr.CallMethod("indexOf", []vm.Value{vm.NumberValue(20)}).GetNumber(); got != 1 {
		t.Errorf("indexOf(20) = %v, want 1", got)
	}
	if got := arr.CallMethod("indexOf", []vm.Value{vm.NumberValue(40)}).GetNumber(); got != -1 {
		t.Errorf("indexOf(40) = %v, want -1", got)
	}
}

func TestArray_ReverseIsSelfInverse(t *testing.T) {
	_, arr := newArray(t)
	for _, n := range []float64{1, 2, 3, 4} {
		arr.CallMethod("push", []vm.Value{vm.NumberValue(n)})
	}

	arr.CallMethod("reverse", nil)
	arr.CallMethod("reverse", nil)

	for i, want := range []float64{1, 2, 3, 4} {
		got := arr.CallMethod("get", []vm.Value{vm.NumberValue(float64(i))}).GetNumber()
		if got != want {
			t.Errorf("get(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestArray_SetGrowsAndClones(t *testing.T) {
	_, arr := newArray(t)
	arr.CallMethod("set", []vm.Value{vm.NumberValue(2), vm.StringValue("x")})

	if got := arr.CallMethod("length", nil).GetNumber(); got != 3 {
		t.Errorf("length() = %v, want 3 after set(2, ...)", got)
	}
	if got := arr.CallMethod("get", []vm.Value{vm.NumberValue(2)}).GetString(); got != "x" {
		t.Errorf("get(2) = %q, want \"x\"", got)
	}
}

func TestArray_GetOutOfRangeAborts(t *testing.T) {
	_, arr := newArray(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an out-of-range get")
		}
	}()
	arr.CallMethod("get", []vm.Value{vm.NumberValue(0)})
}

func TestArray_SetBeyondRunawayGuardAborts(t *testing.T) {
	_, arr := newArray(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a runaway set index")
		}
	}()
	arr.CallMethod("set", []vm.Value{vm.NumberValue(arrayRunawayGuard + 1), vm.NumberValue(1)})
}
