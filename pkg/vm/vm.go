package vm

// rootObjectName is the fixed type name of the object spawned by
// Launch. It has no parent: the tree grows from it.
const rootObjectName = "Application"

// VM bundles the stack, program pool and object manager a host
// application needs to run a tree of scripted objects. It is the
// surface the embedder actually touches: create one, bind native
// methods, launch it, and call Update once per tick until it reports
// the VM is no longer active.
type VM struct {
	stack   *Stack
	pool    *ProgramPool
	manager *ObjectManager

	lastFault    Fault
	faultHandler func(Fault)
}

// NewVM creates an empty VM: a fresh stack, program pool and object
// manager, with no objects spawned yet.
func NewVM() *VM {
	stack := NewStack()
	pool := NewProgramPool()
	manager := NewObjectManager(pool, stack)
	return &VM{stack: stack, pool: pool, manager: manager}
}

// Destroy releases the VM's resources. Go's garbage collector reclaims
// everything reachable from the VM once it is dropped; Destroy exists
// for embedder-API symmetry with NewVM/Launch/Kill and to give callers
// migrating from the C original a place to put teardown logic.
func (v *VM) Destroy() {
	v.manager = nil
	v.pool = nil
	v.stack = nil
}

// Launch boots the VM by spawning the root object, named "Application",
// with no parent.
func (v *VM) Launch() {
	v.manager.Spawn(rootObjectName, nil, nil, nil)
}

// IsActive reports whether the VM's root object still exists and no
// fatal fault has been recovered by Update.
func (v *VM) IsActive() bool {
	return v.lastFault == nil && v.manager.Exists(v.manager.Root())
}

// Update runs one tick: the root's program for its current state runs,
// then each descendant's, in pre-order with siblings in insertion
// order, then objects killed during the tick are swept. It returns
// whether the VM is still active afterwards.
//
// A fatal fault raised by any program during the tick aborts the
// remainder of the tick (the sweep still runs, so objects killed before
// the fault are cleaned up) and is recorded; LastFault reports it, the
// VM's configured fault handler, if any, is notified, and the VM is no
// longer active.
func (v *VM) Update() bool {
	if !v.IsActive() {
		return false
	}

	func() {
		defer func() {
			if fault := recoverFault(); fault != nil {
				v.lastFault = fault
				if v.faultHandler != nil {
					v.faultHandler(fault)
				}
			}
		}()
		root, _ := v.manager.Get(v.manager.Root())
		root.TraverseTree(func(o *Object) { o.Update() })
	}()

	v.manager.Sweep()
	return v.IsActive()
}

// Kill marks the root object for destruction; it takes effect at the
// next Update's sweep.
func (v *VM) Kill() {
	if root, ok := v.manager.Get(v.manager.Root()); ok {
		root.Kill()
	}
}

// SpawnObject spawns a new object of object-name as a child of parent
// and returns it. userData, onInit and onRelease may be nil.
func (v *VM) SpawnObject(parent *Object, objectName string, userData interface{}, onInit, onRelease func(*Object) bool) *Object {
	var parentHandle ObjectHandle
	if parent != nil {
		parentHandle = parent.Handle()
	}
	handle := v.manager.SpawnTemporary(parentHandle, objectName, userData, onInit, onRelease)
	obj, _ := v.manager.Get(handle)
	return obj
}

// Bind registers a native program under (objectName, methodName). It is
// the embedder's primary way of giving script objects behavior without
// a compiler: the native function runs with this signature every time a
// script calls methodName on an object of type objectName (and, when
// objectName is "Object", on any type that does not define methodName
// itself, via the "Object" fallback).
func (v *VM) Bind(objectName, methodName string, fn NativeFunc, arity int) {
	v.pool.Put(objectName, methodName, NewNativeProgram(arity, fn))
}

// SetBytecodeExecutor wires the bytecode-decoder collaborator into the
// VM's object manager; see ObjectManager.SetBytecodeExecutor.
func (v *VM) SetBytecodeExecutor(executor BytecodeExecutor) {
	v.manager.SetBytecodeExecutor(executor)
}

// SetFaultHandler installs a callback invoked whenever Update recovers
// a fatal fault - the Go-idiomatic analogue of the original's
// host-supplied error-sink functions.
func (v *VM) SetFaultHandler(handler func(Fault)) {
	v.faultHandler = handler
}

// LastFault returns the most recent fatal fault recovered by Update, or
// nil if none has occurred.
func (v *VM) LastFault() Fault {
	return v.lastFault
}

// ProgramPool returns the VM's program pool.
func (v *VM) ProgramPool() *ProgramPool {
	return v.pool
}

// ObjectManager returns the VM's object manager.
func (v *VM) ObjectManager() *ObjectManager {
	return v.manager
}

// RootObject returns the VM's root object, or nil if it does not exist
// (before Launch, or after the root has been destroyed).
func (v *VM) RootObject() *Object {
	obj, _ := v.manager.Get(v.manager.Root())
	return obj
}
