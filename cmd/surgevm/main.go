package main

import (
	"fmt"
	"os"

	"github.com/codylico/surgescript/pkg/builtins"
	"github.com/codylico/surgescript/pkg/vm"
)

// This is a minimal embedder, not a compiler front-end: it binds a
// couple of native behaviors onto "Application" by hand and drives the
// tick loop the way a host program would, with no script source or
// lexer involved anywhere.
func main() {
	fmt.Println("--- surgescript vm [core] ---")

	myVM := vm.NewVM()
	builtins.RegisterAll(myVM)

	tick := 0
	myVM.Bind("Application", "state:main", func(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
		tick++
		fmt.Printf("tick %d: application is alive\n", tick)
		if tick >= 3 {
			owner.Kill()
		}
		return nil
	}, 0)

	myVM.SetFaultHandler(func(f vm.Fault) {
		fmt.Fprintf(os.Stderr, "fatal fault: %s\n", f.Error())
		os.Exit(1)
	})

	myVM.Launch()
	for myVM.Update() {
	}

	fmt.Println("--- done ---")
}
