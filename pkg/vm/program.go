package vm

// NativeFunc is the embedder-supplied implementation of a native
// program: given the owning object and the parameter cells pushed by
// the caller, it returns the produced cell, or nil if the call produces
// nothing (treated as null by the caller). paramCount is redundant with
// len(params) but kept so the function body reads the same as the C
// original's fixed-arity callbacks.
type NativeFunc func(owner *Object, params []Value, paramCount int) *Value

// ProgramKind distinguishes the two ways a Program can be backed.
type ProgramKind uint8

const (
	ProgramNative ProgramKind = iota
	ProgramBytecode
)

// Chunk is the bytecode payload of a compiled program: an opcode
// vector plus its local constant pool. Opcode semantics belong to the
// bytecode-decoder collaborator (out of scope here); this core only
// needs to own and route to the chunk.
type Chunk struct {
	Opcodes   []byte
	Constants []Value
}

// BytecodeExecutor runs a Chunk against a runtime environment. The core
// does not implement one (the opcode decoder is an external
// collaborator, out of scope here); a VM that wires one in via
// VM.SetBytecodeExecutor can make bytecode Programs callable.
type BytecodeExecutor interface {
	Execute(renv *RuntimeEnv, chunk *Chunk) (Value, bool)
}

// Program is a callable registered in a ProgramPool under an
// (object-name, method-name) key: either a native Go function with a
// declared arity, or a bytecode chunk with a declared parameter count.
type Program struct {
	Kind  ProgramKind
	Arity int

	native NativeFunc
	chunk  *Chunk
}

// NewNativeProgram wraps a Go function and its declared arity into a
// Program, the same thing surgescript_cprogram_create does for a C
// function pointer.
func NewNativeProgram(arity int, fn NativeFunc) *Program {
	return &Program{Kind: ProgramNative, Arity: arity, native: fn}
}

// NewBytecodeProgram wraps a compiled chunk and its declared parameter
// count into a Program.
func NewBytecodeProgram(arity int, chunk *Chunk) *Program {
	return &Program{Kind: ProgramBytecode, Arity: arity, chunk: chunk}
}

// Invoke runs the program against renv with the given arguments. By
// convention the caller has already pushed exactly Arity cells and a
// frame before calling Invoke, and pops the frame afterwards. Invoke
// itself only dispatches and returns the produced cell (Null if the
// program produced nothing, or if it is a bytecode program and no
// BytecodeExecutor is wired in).
func (p *Program) Invoke(renv *RuntimeEnv, args []Value) Value {
	switch p.Kind {
	case ProgramNative:
		result := p.native(renv.Owner, args, len(args))
		if result == nil {
			return Null()
		}
		return *result
	case ProgramBytecode:
		if renv.Manager.executor == nil {
			// No bytecode decoder wired in: the opcode domain is out of
			// scope for this core, so an unexecutable chunk behaves as
			// a no-op program rather than a fatal fault.
			return Null()
		}
		result, ok := renv.Manager.executor.Execute(renv, p.chunk)
		if !ok {
			return Null()
		}
		return result
	default:
		return Null()
	}
}
