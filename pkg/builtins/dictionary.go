package builtins

import "github.com/codylico/surgescript/pkg/vm"

// dictState is the native representation backing a Dictionary object.
// It keeps entries insertion-ordered the way a scripted object expects
// to walk them, since Go's map iteration order is intentionally
// randomized and can't be used directly for that.
type dictState struct {
	keys   []string
	values map[string]vm.Value
}

func newDictState() *dictState {
	return &dictState{values: make(map[string]vm.Value)}
}

// RegisterDictionary binds every Dictionary method to v.
func RegisterDictionary(v *vm.VM) {
	v.Bind("Dictionary", "__constructor", dictConstructor, 0)
	v.Bind("Dictionary", "__destructor", dictDestructor, 0)
	v.Bind("Dictionary", "state:main", dictMain, 0)
	v.Bind("Dictionary", "get", dictGet, 1)
	v.Bind("Dictionary", "set", dictSet, 2)
	v.Bind("Dictionary", "has", dictHas, 1)
	v.Bind("Dictionary", "delete", dictDelete, 1)
	v.Bind("Dictionary", "count", dictCount, 0)
	v.Bind("Dictionary", "clear", dictClear, 0)
	v.Bind("Dictionary", "forEach", dictForEach, 1)
}

func dictConstructor(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	owner.SetUserData(newDictState())
	result := vm.HandleValue(owner.Handle())
	return &result
}

func dictDestructor(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	owner.SetUserData(nil)
	return nil
}

func dictMain(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	return nil
}

func state(owner *vm.Object) *dictState {
	return owner.UserData().(*dictState)
}

func dictGet(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	st := state(owner)
	key := params[0].GetString()
	value, ok := st.values[key]
	if !ok {
		result := vm.Null()
		return &result
	}
	result := value.Clone()
	return &result
}

func dictSet(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	st := state(owner)
	key := params[0].GetString()
	value := params[1]

	if _, exists := st.values[key]; !exists {
		st.keys = append(st.keys, key)
	}
	st.values[key] = value.Clone()

	result := value.Clone()
	return &result
}

func dictHas(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	st := state(owner)
	_, ok := st.values[params[0].GetString()]
	result := vm.BooleanValue(ok)
	return &result
}

func dictDelete(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	st := state(owner)
	key := params[0].GetString()

	_, existed := st.values[key]
	if existed {
		delete(st.values, key)
		for i, k := range st.keys {
			if k == key {
				st.keys = append(st.keys[:i], st.keys[i+1:]...)
				break
			}
		}
	}

	result := vm.BooleanValue(existed)
	return &result
}

func dictCount(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	st := state(owner)
	result := vm.NumberValue(float64(len(st.keys)))
	return &result
}

func dictClear(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	owner.SetUserData(newDictState())
	return nil
}

// dictForEach walks entries in insertion order, invoking "call" on the
// handle passed as params[0] with (key, value) as arguments - the same
// callback-object convention the rest of the runtime uses wherever a
// script needs to hand over a function, since there is no first-class
// function value in the cell representation.
func dictForEach(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	st := state(owner)
	callbackHandle := params[0].GetObjectHandle()
	callback, ok := owner.Manager().Get(callbackHandle)
	if !ok {
		return nil
	}

	for _, key := range append([]string(nil), st.keys...) {
		value, exists := st.values[key]
		if !exists {
			continue
		}
		callback.CallMethod("call", []vm.Value{vm.StringValue(key), value})
	}
	return nil
}
