package builtins

import (
	"testing"

	"github.com/codylico/surgescript/pkg/vm"
)

func newDictionary(t *testing.T) (*vm.VM, *vm.Object) {
	t.Helper()
	v := vm.NewVM()
	RegisterDictionary(v)
	v.Launch()
	dict := v.SpawnObject(v.RootObject(), "Dictionary", nil, nil, nil)
	return v, dict
}

func TestDictionary_SetAndGet(t *testing.T) {
	_, dict := newDictionary(t)
	dict.CallMethod("set", []vm.Value{vm.StringValue("name"), vm.StringValue("Surge")})

	if got := dict.CallMethod("get", []vm.Value{vm.StringValue("name")}).GetString(); got != "Surge" {
		t.Errorf("get(name) = %q, want \"Surge\"", got)
	}
}

func TestDictionary_GetMissingKeyIsNull(t *testing.T) {
	_, dict := newDictionary(t)
	if !dict.CallMethod("get", []vm.Value{vm.StringValue("absent")}).IsNull() {
		t.Error("expected get on a missing key to be null")
	}
}

func TestDictionary_HasAndDelete(t *testing.T) {
	_, dict := newDictionary(t)
	dict.CallMethod("set", []vm.Value{vm.StringValue("k"), vm.NumberValue(1)})

	if !dict.CallMethod("has", []vm.Value{vm.StringValue("k")}).GetBoolean() {
		t.Error("expected has(k) to be true")
	}

	deleted := dict.CallMethod("delete", []vm.Value{vm.StringValue("k")}).GetBoolean()
	if !deleted {
		t.Error("expected delete(k) to report true")
	}
	if dict.CallMethod("has", []vm.Value{vm.StringValue("k")}).GetBoolean() {
		t.Error("expected has(k) to be false after delete")
	}
}

func TestDictionary_CountTracksEntries(t *testing.T) {
	_, dict := newDictionary(t)
	dict.CallMethod("set", []vm.Value{vm.StringValue("a"), vm.NumberValue(1)})
	dict.CallMethod("set", []vm.Value{vm.StringValue("b"), vm.NumberValue(2)})

	if got := dict.CallMethod("count", nil).GetNumber(); got != 2 {
		t.Errorf("count() = %v, want 2", got)
	}

	// Overwriting an existing key must not change the count.
	dict.CallMethod("set", []vm.Value{vm.StringValue("a"), vm.NumberValue(99)})
	if got := dict.CallMethod("count", nil).GetNumber(); got != 2 {
		t.Errorf("count() = %v after overwrite, want 2", got)
	}
}

func TestDictionary_ForEachVisitsInInsertionOrder(t *testing.T) {
	v, dict := newDictionary(t)

	var keys []string
	v.Bind("Collector", "call", func(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
		keys = append(keys, params[0].GetString())
		return nil
	}, 2)
	collector := v.SpawnObject(v.RootObject(), "Collector", nil, nil, nil)

	dict.CallMethod("set", []vm.Value{vm.StringValue("first"), vm.NumberValue(1)})
	dict.CallMethod("set", []vm.Value{vm.StringValue("second"), vm.NumberValue(2)})
	dict.CallMethod("forEach", []vm.Value{vm.HandleValue(collector.Handle())})

	if len(keys) != 2 || keys[0] != "first" || keys[1] != "second" {
		t.Errorf("keys = %v, want [first second]", keys)
	}
}

func TestDictionary_Clear(t *testing.T) {
	_, dict := newDictionary(t)
	dict.CallMethod("set", []vm.Value{vm.StringValue("a"), vm.NumberValue(1)})
	dict.CallMethod("clear", nil)

	if got := dict.CallMethod("count", nil).GetNumber(); got != 0 {
		t.Errorf("count() = %v after clear, want 0", got)
	}
}
