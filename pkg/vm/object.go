package vm

// Object is a live instance in the tree: a type name, a stable handle,
// parent/children links (stored as handles, never pointers, so the
// tree survives object-record reallocation), a private heap, the
// current state name, a user-data slot for native objects, optional
// init/release callbacks, and a killed flag.
type Object struct {
	handle   ObjectHandle
	typeName string
	parent   ObjectHandle
	children []ObjectHandle
	heap     *Heap
	state    string
	userData interface{}
	onInit   func(*Object) bool
	onRelease func(*Object) bool
	killed   bool

	manager *ObjectManager
}

// defaultState is the state every object starts in.
const defaultState = "main"

// Handle returns the object's stable handle.
func (o *Object) Handle() ObjectHandle { return o.handle }

// Name returns the object's type name.
func (o *Object) Name() string { return o.typeName }

// Parent returns the handle of the object's parent, or NullHandle for
// the root.
func (o *Object) Parent() ObjectHandle { return o.parent }

// Children returns the object's children, in insertion order. The
// returned slice is owned by the object; callers that need to survive
// structural changes during iteration should copy it (TraverseTree
// does this internally).
func (o *Object) Children() []ObjectHandle { return o.children }

// Heap returns the object's private heap.
func (o *Object) Heap() *Heap { return o.heap }

// Manager returns the ObjectManager that owns this object, letting
// native code look up other objects by handle (e.g. a callback target
// passed in as a Value).
func (o *Object) Manager() *ObjectManager { return o.manager }

// UserData returns the native user-data pointer attached at spawn time.
func (o *Object) UserData() interface{} { return o.userData }

// SetUserData overwrites the native user-data pointer. Built-in native
// objects (Array, Dictionary) use this to keep representation state
// that doesn't fit the value-cell heap.
func (o *Object) SetUserData(data interface{}) { o.userData = data }

// State returns the object's current state name.
func (o *Object) State() string { return o.state }

// SetState switches the object's current state. The next tick will run
// whatever program is bound to "state:<name>" under this object's type;
// an unknown state name is tolerated and simply produces no program on
// the next lookup.
func (o *Object) SetState(name string) { o.state = name }

// IsKilled reports whether Kill has been called on this object.
func (o *Object) IsKilled() bool { return o.killed }

// Kill marks the object for destruction. It is idempotent and takes
// effect only at the next sweep; an in-progress call into this object
// is not aborted.
func (o *Object) Kill() { o.killed = true }

// AddChild appends handle to this object's child list.
func (o *Object) AddChild(handle ObjectHandle) {
	o.children = append(o.children, handle)
}

// RemoveChild removes handle from this object's child list, if present.
func (o *Object) RemoveChild(handle ObjectHandle) {
	for i, h := range o.children {
		if h == handle {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// CallMethod dispatches to the program bound to (this object's type,
// name), pushing args as a frame and popping it afterwards. A method
// that is not found (including via the "Object" fallback) returns null
// silently: absence is a legitimate outcome, since a state or method
// may simply be unimplemented for this type.
func (o *Object) CallMethod(name string, args []Value) Value {
	program, ok := o.manager.pool.Get(o.typeName, name)
	if !ok {
		return Null()
	}
	return o.invoke(program, args)
}

// Update runs the program bound to this object's current state
// ("state:<name>"); if none is registered, it is a no-op.
func (o *Object) Update() {
	program, ok := o.manager.pool.Get(o.typeName, "state:"+o.state)
	if !ok {
		return
	}
	o.invoke(program, nil)
}

func (o *Object) invoke(program *Program, args []Value) Value {
	stack := o.manager.stack
	for _, a := range args {
		stack.Push(a)
	}
	stack.PushFrame()

	renv := newRuntimeEnv(o, stack, o.heap, o.manager.pool, o.manager)
	result := program.Invoke(renv, args)

	stack.PopFrame()
	for range args {
		stack.Pop()
	}
	return result
}

// TraverseTree visits o and every descendant, pre-order, children in
// insertion order. Each node's children are snapshotted at the start of
// that node's visit, so additions and removals made by one node's
// update do not perturb the walk already under way for its siblings.
//
// An object killed during the tick still runs its update for the
// remainder of that tick - killing only marks an object for deletion,
// and an object stays observable by its parent until the tick-end
// sweep actually removes it. Only a child whose record has already
// been destroyed outright (sweep ran, or native code called
// ObjectManager.Destroy directly) is skipped, since there is no object
// left to dispatch to.
func (o *Object) TraverseTree(visitor func(*Object)) {
	snapshot := append([]ObjectHandle(nil), o.children...)
	visitor(o)

	for _, handle := range snapshot {
		child, ok := o.manager.Get(handle)
		if !ok {
			continue
		}
		child.TraverseTree(visitor)
	}
}
