package vm

// tempCellCount is the number of scratch cells reserved for the
// currently-executing program's activation. It is small and fixed, as
// in the original runtime environment.
const tempCellCount = 4

// RuntimeEnv is the transient bundle threaded through a single program
// activation: the owning object, the shared stack/heap/pool/manager
// references, and a scratch bank of temporary cells private to this
// activation. The shared references are never copied per call; only
// the temporaries are fresh on each Clone, so nested calls get
// independent scratch space without disturbing the long-lived
// subsystems.
type RuntimeEnv struct {
	Owner   *Object
	Stack   *Stack
	Heap    *Heap
	Pool    *ProgramPool
	Manager *ObjectManager

	temp [tempCellCount]Value
}

func newRuntimeEnv(owner *Object, stack *Stack, heap *Heap, pool *ProgramPool, manager *ObjectManager) *RuntimeEnv {
	return &RuntimeEnv{Owner: owner, Stack: stack, Heap: heap, Pool: pool, Manager: manager}
}

// Tmp returns a pointer to temporary cell i of this activation
// (0 <= i < tempCellCount).
func (r *RuntimeEnv) Tmp(i int) *Value {
	return &r.temp[i]
}

// Clone returns a new RuntimeEnv sharing every long-lived reference
// with r but carrying a fresh, zeroed temporary bank - the shape a
// nested call needs: its own scratch space without losing access to
// the caller's stack, heap, pool, and manager.
func (r *RuntimeEnv) Clone() *RuntimeEnv {
	return newRuntimeEnv(r.Owner, r.Stack, r.Heap, r.Pool, r.Manager)
}

// Destroy releases the bundle itself. It never touches the shared
// subsystems it points to - those outlive any single activation - and
// in Go it exists only to keep the lifecycle explicit for callers
// coming from the C original, where it frees a struct.
func (r *RuntimeEnv) Destroy() {
	*r = RuntimeEnv{}
}
