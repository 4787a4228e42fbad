package vm

import "container/heap"

// HeapPointer addresses a single cell inside an object's heap. It is
// stable for the lifetime of the slot it names: at(ptr) returns the
// same cell until that ptr is freed, regardless of what else happens to
// the heap in the meantime.
type HeapPointer int

// Heap is an object's private, growable vector of value cells. New
// slots are bump-allocated onto the tail; freed slots below the tail
// join a free list and are reused, lowest index first, before the tail
// grows again. Slot indexes stay stable. The free list is a min-heap,
// so malloc and free cost O(log k) for k free slots below the tail; a
// free that shrinks the tail also scans the free list once per slot it
// drops.
type Heap struct {
	slots []Value
	alive []bool
	free  minIndexHeap
	size  int // logical count of live slots
}

// NewHeap creates an empty heap.
func NewHeap() *Heap {
	return &Heap{}
}

// Malloc allocates a new cell, preferring the lowest free index over
// growing the tail, and returns its pointer. The cell starts out null.
func (h *Heap) Malloc() HeapPointer {
	if len(h.free) > 0 {
		ptr := heap.Pop(&h.free).(HeapPointer)
		h.slots[ptr] = Null()
		h.alive[ptr] = true
		h.size++
		return ptr
	}

	ptr := HeapPointer(len(h.slots))
	h.slots = append(h.slots, Null())
	h.alive = append(h.alive, true)
	h.size++
	return ptr
}

// Free releases ptr. If ptr names the current tail slot, the tail
// shrinks (and keeps shrinking through any newly-exposed freed slots,
// so the vector never carries a dead tail); otherwise the slot joins
// the free list for reuse.
func (h *Heap) Free(ptr HeapPointer) {
	h.mustBeLive(ptr)

	h.alive[ptr] = false
	h.size--

	if int(ptr) == len(h.slots)-1 {
		h.slots = h.slots[:ptr]
		h.alive = h.alive[:ptr]
		for len(h.alive) > 0 && !h.alive[len(h.alive)-1] {
			h.slots = h.slots[:len(h.slots)-1]
			h.alive = h.alive[:len(h.alive)-1]
			h.free.removeValue(HeapPointer(len(h.alive)))
		}
		return
	}

	heap.Push(&h.free, ptr)
}

// At returns a borrowed pointer to the cell named by ptr. The pointer
// is valid until the matching Free call or the next Malloc, whichever
// comes first: a Malloc that grows the heap may move every cell, and a
// pointer taken before it no longer refers to the heap. Calling At on a freed or
// never-allocated pointer is a program-integrity bug and raises a
// BadPointerFault.
func (h *Heap) At(ptr HeapPointer) *Value {
	h.mustBeLive(ptr)
	return &h.slots[ptr]
}

// Size returns the logical count of live slots.
func (h *Heap) Size() int {
	return h.size
}

func (h *Heap) mustBeLive(ptr HeapPointer) {
	if ptr < 0 || int(ptr) >= len(h.alive) || !h.alive[ptr] {
		Abort(newBadPointerFault(ptr))
	}
}

// minIndexHeap is a container/heap.Interface over HeapPointer values,
// used to hand out the lowest free index first.
type minIndexHeap []HeapPointer

func (m minIndexHeap) Len() int            { return len(m) }
func (m minIndexHeap) Less(i, j int) bool  { return m[i] < m[j] }
func (m minIndexHeap) Swap(i, j int)       { m[i], m[j] = m[j], m[i] }
func (m *minIndexHeap) Push(x interface{}) { *m = append(*m, x.(HeapPointer)) }
func (m *minIndexHeap) Pop() interface{} {
	old := *m
	n := len(old)
	v := old[n-1]
	*m = old[:n-1]
	return v
}

// removeValue drops ptr from the free list if present, used when a
// cascading tail-shrink in Free makes a previously-free slot vanish
// from the heap entirely rather than becoming reusable.
func (m *minIndexHeap) removeValue(ptr HeapPointer) {
	for i, v := range *m {
		if v == ptr {
			heap.Remove(m, i)
			return
		}
	}
}
