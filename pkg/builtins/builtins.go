package builtins

import "github.com/codylico/surgescript/pkg/vm"

// RegisterAll binds every native object this package provides into v.
// An embedder that only needs one of them is free to call RegisterArray
// or RegisterDictionary directly instead.
func RegisterAll(v *vm.VM) {
	RegisterArray(v)
	RegisterDictionary(v)
}
