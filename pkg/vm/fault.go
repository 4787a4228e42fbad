package vm

import "fmt"

// Fault is the interface implemented by every fatal, program-integrity
// error in this package. It deliberately mirrors the small
// error-interface pattern (Kind, Message, the embedded error) rather
// than a single sentinel error value, so a fault handler can branch on
// Kind() without string matching.
//
// Recoverable conditions (method-not-found, pop/shift on an empty
// array, a missing dictionary key, an unparseable numeric coercion)
// never become a Fault: they are encoded directly into the returned
// Value instead.
type Fault interface {
	error
	Kind() string
	Message() string
}

// baseFault is embedded by every concrete fault below to avoid
// repeating the error-interface boilerplate.
type baseFault struct {
	kind string
	msg  string
}

func (f *baseFault) Error() string   { return fmt.Sprintf("%s: %s", f.kind, f.msg) }
func (f *baseFault) Kind() string    { return f.kind }
func (f *baseFault) Message() string { return f.msg }

// StackUnderflowFault is raised when a pop would cross the current
// frame's base.
type StackUnderflowFault struct{ baseFault }

func newStackUnderflowFault() *StackUnderflowFault {
	return &StackUnderflowFault{baseFault{"stack-underflow", "pop past the current frame base"}}
}

// BadPointerFault is raised when a heap pointer that was never
// allocated, or was already freed, is dereferenced.
type BadPointerFault struct{ baseFault }

func newBadPointerFault(ptr HeapPointer) *BadPointerFault {
	return &BadPointerFault{baseFault{"bad-pointer", fmt.Sprintf("heap pointer %d is not live", ptr)}}
}

// DuplicateDefinitionFault is raised when the program pool already has
// an exact (object, method) entry and Put is asked to insert another.
type DuplicateDefinitionFault struct{ baseFault }

func newDuplicateDefinitionFault(object, method string) *DuplicateDefinitionFault {
	return &DuplicateDefinitionFault{baseFault{
		"duplicate-definition",
		fmt.Sprintf("duplicate function %q in object %q", method, object),
	}}
}

// IndexOutOfRangeFault is raised by Array.get on an out-of-bounds
// index.
type IndexOutOfRangeFault struct{ baseFault }

// NewIndexOutOfRangeFault builds an IndexOutOfRangeFault for the given
// index. Exported for native object implementations outside this
// package, such as the Array builtin.
func NewIndexOutOfRangeFault(index int) *IndexOutOfRangeFault {
	return &IndexOutOfRangeFault{baseFault{
		"index-out-of-range",
		fmt.Sprintf("can't get the %d%s element of the array: the index is out of bounds", index, ordinalSuffix(index)),
	}}
}

// RunawayIndexFault is raised by Array.set when the requested index
// would grow the array by more than the 1024-slot guard.
type RunawayIndexFault struct{ baseFault }

// NewRunawayIndexFault builds a RunawayIndexFault for the given index.
func NewRunawayIndexFault(index int) *RunawayIndexFault {
	return &RunawayIndexFault{baseFault{
		"index-too-far",
		fmt.Sprintf("can't set the %d%s element of the array: the index is out of bounds", index, ordinalSuffix(index)),
	}}
}

// AllocationFailureFault is raised when the VM cannot obtain the memory
// it needs to continue (in practice: a defensive guard, since Go's
// allocator itself already panics on out-of-memory).
type AllocationFailureFault struct{ baseFault }

// NewAllocationFailureFault builds an AllocationFailureFault carrying
// reason.
func NewAllocationFailureFault(reason string) *AllocationFailureFault {
	return &AllocationFailureFault{baseFault{"allocation-failure", reason}}
}

func ordinalSuffix(i int) string {
	switch i {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// faultSignal is the payload carried by a panic raised through Abort.
// VM.Update recovers it at the top of a tick and turns it back into a
// regular Fault value; this keeps every intermediate call in the object
// tree free of explicit error-plumbing for conditions that, per the
// spec, should abort the whole tick rather than unwind one call at a
// time.
type faultSignal struct {
	fault Fault
}

// Abort raises a fatal fault, unwinding to the enclosing VM.Update,
// which recovers it. Native
// methods call this for program-integrity violations; it must never be
// used for a recoverable condition.
func Abort(f Fault) {
	panic(faultSignal{f})
}

// recoverFault converts a panic carrying a faultSignal into a Fault,
// re-panicking anything else untouched.
func recoverFault() Fault {
	r := recover()
	if r == nil {
		return nil
	}
	if sig, ok := r.(faultSignal); ok {
		return sig.fault
	}
	panic(r)
}
