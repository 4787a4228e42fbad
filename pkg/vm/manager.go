package vm

// ObjectManager is the authoritative registry of every live object: it
// allocates stable handles, owns the spawn/destroy lifecycle, and
// drives the pre-order tree walk. It is the single owner of object
// records, which is why parents and children only ever hold handles.
type ObjectManager struct {
	objects    map[ObjectHandle]*Object
	nextHandle ObjectHandle
	root       ObjectHandle

	pool     *ProgramPool
	stack    *Stack
	executor BytecodeExecutor
}

// NewObjectManager creates a manager bound to the given program pool
// and call stack. Both are shared for the lifetime of the manager:
// every object spawned from it dispatches methods through this pool and
// this stack.
func NewObjectManager(pool *ProgramPool, stack *Stack) *ObjectManager {
	return &ObjectManager{
		objects: make(map[ObjectHandle]*Object),
		// handle 0 is reserved for NullHandle, so allocation starts at 1
		nextHandle: 1,
		pool:       pool,
		stack:      stack,
	}
}

// SetBytecodeExecutor wires in the external bytecode-decoder
// collaborator, making bytecode Programs runnable. The core never
// requires this; it is a pure Go-idiomatic plug point for an external
// collaborator.
func (m *ObjectManager) SetBytecodeExecutor(executor BytecodeExecutor) {
	m.executor = executor
}

// Spawn creates a new object of the given type. It allocates a handle,
// constructs the object record with an empty heap, invokes
// "__constructor" (if bound) with no parameters, then runs onInit (if
// non-nil). If onInit returns false, the object is destroyed on the
// spot and NullHandle is returned. userData, onInit and onRelease may
// all be nil.
func (m *ObjectManager) Spawn(typeName string, userData interface{}, onInit, onRelease func(*Object) bool) ObjectHandle {
	handle := m.nextHandle
	m.nextHandle++

	obj := &Object{
		handle:    handle,
		typeName:  typeName,
		parent:    NullHandle,
		heap:      NewHeap(),
		state:     defaultState,
		userData:  userData,
		onInit:    onInit,
		onRelease: onRelease,
		manager:   m,
	}
	m.objects[handle] = obj

	if m.root == NullHandle {
		m.root = handle
	}

	obj.CallMethod("__constructor", nil)

	if onInit != nil && !onInit(obj) {
		m.Destroy(handle)
		return NullHandle
	}

	return handle
}

// SpawnTemporary spawns a child of parent and attaches it: a
// convenience binding that does what the embedder's SpawnObject does,
// for native code that wants to create helper objects without going
// through the VM handle.
func (m *ObjectManager) SpawnTemporary(parent ObjectHandle, typeName string, userData interface{}, onInit, onRelease func(*Object) bool) ObjectHandle {
	handle := m.Spawn(typeName, userData, onInit, onRelease)
	if handle == NullHandle {
		return NullHandle
	}
	if parentObj, ok := m.Get(parent); ok {
		parentObj.AddChild(handle)
		if child, ok := m.Get(handle); ok {
			child.parent = parent
		}
	}
	return handle
}

// Get returns the live object for handle, if any.
func (m *ObjectManager) Get(handle ObjectHandle) (*Object, bool) {
	obj, ok := m.objects[handle]
	return obj, ok
}

// Exists reports whether handle names a live object.
func (m *ObjectManager) Exists(handle ObjectHandle) bool {
	_, ok := m.objects[handle]
	return ok
}

// Root returns the handle of the tree's root object, or NullHandle if
// none has been spawned yet.
func (m *ObjectManager) Root() ObjectHandle {
	return m.root
}

// Destroy immediately destroys handle: any children are destroyed
// first, in reverse insertion order, then onRelease and "__destructor"
// run, the object is detached from its parent's child list, and its
// heap and record are freed. Destroying a handle that doesn't exist is
// a no-op.
func (m *ObjectManager) Destroy(handle ObjectHandle) {
	obj, ok := m.objects[handle]
	if !ok {
		return
	}

	children := obj.children
	for i := len(children) - 1; i >= 0; i-- {
		m.Destroy(children[i])
	}

	if obj.onRelease != nil {
		obj.onRelease(obj)
	}
	obj.CallMethod("__destructor", nil)

	if parent, ok := m.objects[obj.parent]; ok {
		parent.RemoveChild(handle)
	}

	delete(m.objects, handle)

	if m.root == handle {
		m.root = NullHandle
	}
}

// Sweep removes every object in the root's tree whose killed flag is
// set, bottom-up; objects not reachable from the root are not visited (a
// killed parent's killed-or-not descendants are destroyed as part of
// destroying the parent, so visiting post-order here never operates on
// an already-removed handle).
func (m *ObjectManager) Sweep() {
	root := m.root
	if root == NullHandle {
		return
	}

	var killedInPostOrder []ObjectHandle
	var visit func(ObjectHandle)
	visit = func(handle ObjectHandle) {
		obj, ok := m.objects[handle]
		if !ok {
			return
		}
		for _, child := range append([]ObjectHandle(nil), obj.children...) {
			visit(child)
		}
		if obj.killed {
			killedInPostOrder = append(killedInPostOrder, handle)
		}
	}
	visit(root)

	for _, handle := range killedInPostOrder {
		if m.Exists(handle) {
			m.Destroy(handle)
		}
	}
}
