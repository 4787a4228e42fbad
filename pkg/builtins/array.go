// Package builtins provides the canonical native object implementations
// that exercise the runtime core: a resizable Array and an
// insertion-ordered Dictionary. Both register themselves into a *vm.VM
// the same way the embedder would register any other native object,
// via VM.Bind - there is nothing privileged about them.
package builtins

import "github.com/codylico/surgescript/pkg/vm"

// Array is laid out directly on the owning object's private heap: slot
// 0 holds the length, slots 1..n hold the elements contiguously. This
// mirrors the original's sslib array exactly (LENGTH_ADDR=0,
// BASE_ADDR=1) and exploits the same property the original relies on:
// the heap's bump-allocation policy makes push O(1) with no resize
// bookkeeping, since a freshly malloc'd slot always lands right after
// the previous tail.
const (
	arrayLengthAddr vm.HeapPointer = 0
	arrayBaseAddr   vm.HeapPointer = 1
)

// arrayRunawayGuard bounds how far past the current length a single
// Set call may grow the array, to catch a runaway index rather than
// silently allocating unbounded memory.
const arrayRunawayGuard = 1024

// RegisterArray binds every Array method to v, the same set
// surgescript_sslib_register_array binds in the original.
func RegisterArray(v *vm.VM) {
	v.Bind("Array", "__constructor", arrayConstructor, 0)
	v.Bind("Array", "__destructor", arrayDestructor, 0)
	v.Bind("Array", "state:main", arrayMain, 0)
	v.Bind("Array", "get", arrayGet, 1)
	v.Bind("Array", "set", arraySet, 2)
	v.Bind("Array", "length", arrayLength, 0)
	v.Bind("Array", "push", arrayPush, 1)
	v.Bind("Array", "pop", arrayPop, 0)
	v.Bind("Array", "shift", arrayShift, 0)
	v.Bind("Array", "unshift", arrayUnshift, 1)
	v.Bind("Array", "sort", arraySort, 0)
	v.Bind("Array", "reverse", arrayReverse, 0)
	v.Bind("Array", "indexOf", arrayIndexOf, 1)
}

func arrayLen(heap *vm.Heap) int {
	return int(heap.At(arrayLengthAddr).GetNumber())
}

func setArrayLen(heap *vm.Heap, n int) {
	heap.At(arrayLengthAddr).SetNumber(float64(n))
}

func arrayConstructor(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	// Since nothing is ever freed from this heap except the tail, cells
	// stay contiguous: the length slot is guaranteed to land at address
	// 0 because it is the very first allocation this object ever makes.
	heap := owner.Heap()
	lengthAddr := heap.Malloc()
	heap.At(lengthAddr).SetNumber(0)
	if lengthAddr != arrayLengthAddr {
		vm.Abort(vm.NewAllocationFailureFault("array length cell did not land at heap address 0"))
	}
	result := vm.HandleValue(owner.Handle())
	return &result
}

func arrayDestructor(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	// The heap is freed when the owning object is destroyed; there is
	// nothing extra to release here.
	return nil
}

func arrayMain(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	return nil
}

func arrayLength(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	result := vm.NumberValue(float64(arrayLen(owner.Heap())))
	return &result
}

func arrayGet(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	heap := owner.Heap()
	index := int(params[0].GetNumber())
	length := arrayLen(heap)

	if index < 0 || index >= length {
		vm.Abort(vm.NewIndexOutOfRangeFault(index))
	}
	result := heap.At(arrayBaseAddr + vm.HeapPointer(index)).Clone()
	return &result
}

func arraySet(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	heap := owner.Heap()
	index := int(params[0].GetNumber())
	value := params[1]
	length := arrayLen(heap)

	if index < 0 || index >= length+arrayRunawayGuard {
		vm.Abort(vm.NewRunawayIndexFault(index))
	}

	for index >= length {
		heap.Malloc()
		length++
		setArrayLen(heap, length)
	}

	vm.Copy(heap.At(arrayBaseAddr+vm.HeapPointer(index)), value)
	result := value.Clone()
	return &result
}

func arrayPush(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	heap := owner.Heap()
	ptr := heap.Malloc()
	vm.Copy(heap.At(ptr), params[0])
	setArrayLen(heap, arrayLen(heap)+1)
	return nil
}

func arrayPop(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	heap := owner.Heap()
	length := arrayLen(heap)
	if length == 0 {
		return nil
	}

	last := arrayBaseAddr + vm.HeapPointer(length-1)
	result := heap.At(last).Clone()
	setArrayLen(heap, length-1)
	heap.Free(last)
	return &result
}

func arrayShift(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	heap := owner.Heap()
	length := arrayLen(heap)
	if length == 0 {
		return nil
	}

	result := heap.At(arrayBaseAddr).Clone()
	for i := 0; i < length-1; i++ {
		vm.Copy(heap.At(arrayBaseAddr+vm.HeapPointer(i)), *heap.At(arrayBaseAddr+vm.HeapPointer(i+1)))
	}
	setArrayLen(heap, length-1)
	heap.Free(arrayBaseAddr + vm.HeapPointer(length-1))
	return &result
}

func arrayUnshift(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	heap := owner.Heap()
	value := params[0]
	length := arrayLen(heap)

	heap.Malloc()
	length++
	setArrayLen(heap, length)

	for i := length - 1; i > 0; i-- {
		vm.Copy(heap.At(arrayBaseAddr+vm.HeapPointer(i)), *heap.At(arrayBaseAddr+vm.HeapPointer(i-1)))
	}
	vm.Copy(heap.At(arrayBaseAddr), value)
	return nil
}

func arrayReverse(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	heap := owner.Heap()
	length := arrayLen(heap)
	for i := 0; i < length/2; i++ {
		a := heap.At(arrayBaseAddr + vm.HeapPointer(i))
		b := heap.At(arrayBaseAddr + vm.HeapPointer(length-1-i))
		vm.Swap(a, b)
	}
	return nil
}

func arraySort(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	heap := owner.Heap()
	length := arrayLen(heap)
	if length > 0 {
		quicksort(heap, arrayBaseAddr, arrayBaseAddr+vm.HeapPointer(length-1))
	}
	return nil
}

func arrayIndexOf(owner *vm.Object, params []vm.Value, paramCount int) *vm.Value {
	heap := owner.Heap()
	needle := params[0]
	length := arrayLen(heap)

	for i := 0; i < length; i++ {
		element := heap.At(arrayBaseAddr + vm.HeapPointer(i))
		if element.Compare(needle) == 0 {
			result := vm.NumberValue(float64(i))
			return &result
		}
	}
	result := vm.NumberValue(-1)
	return &result
}

// quicksort sorts heap[begin..end] in place using a median-of-three
// pivot, exactly as the original sslib array does. It is not required
// to be stable.
func quicksort(heap *vm.Heap, begin, end vm.HeapPointer) {
	if begin < end {
		p := partition(heap, begin, end)
		if p > begin {
			quicksort(heap, begin, p-1)
		}
		quicksort(heap, p+1, end)
	}
}

// partition returns p such that heap[begin..p-1] <= heap[p] < heap[p+1..end].
func partition(heap *vm.Heap, begin, end vm.HeapPointer) vm.HeapPointer {
	pivot := heap.At(end)
	mid := begin + (end-begin)/2
	vm.Swap(pivot, med3(heap.At(begin), heap.At(mid), pivot))

	p := begin
	for i := begin; i <= end-1; i++ {
		if heap.At(i).Compare(*pivot) <= 0 {
			vm.Swap(heap.At(i), heap.At(p))
			p++
		}
	}

	vm.Swap(heap.At(p), pivot)
	return p
}

// med3 returns whichever of a, b, c holds the median value.
func med3(a, b, c *vm.Value) *vm.Value {
	ab := a.Compare(*b)
	bc := b.Compare(*c)
	ac := a.Compare(*c)

	switch {
	case ab >= 0 && ac >= 0: // a = max(a, b, c)
		if bc >= 0 {
			return b
		}
		return c
	case ab <= 0 && bc >= 0: // b = max(a, b, c)
		if ac >= 0 {
			return a
		}
		return c
	default: // c = max(a, b, c)
		if ab >= 0 {
			return a
		}
		return b
	}
}
