package vm

import "hash/fnv"

// baseObjectName is the universal fallback type: a method not found on
// the exact object name is retried here before giving up.
const baseObjectName = "Object"

// poolEntry pairs a program with the exact (object, method) strings
// that named it, so a 64-bit signature collision can be resolved by a
// direct string comparison instead of silently aliasing two distinct
// methods. The original C pool does not do this (see DESIGN.md); this
// reimplementation closes that gap since it costs one extra string
// compare on the (rare) collision path and nothing on the common one.
type poolEntry struct {
	object  string
	method  string
	program *Program
}

// ProgramPool maps (object-name, method-name) pairs to Programs, with a
// fallback lookup under the universal base name "Object" on a miss.
type ProgramPool struct {
	buckets  map[uint64][]poolEntry
	metadata map[string][]string // object name -> method names, insertion order
}

// NewProgramPool creates an empty pool.
func NewProgramPool() *ProgramPool {
	return &ProgramPool{
		buckets:  make(map[uint64][]poolEntry),
		metadata: make(map[string][]string),
	}
}

// signature combines two independent 32-bit FNV-1a hashes of the pair
// into a 64-bit key, the same "two keyed hashes, one wide key" scheme
// the original pool uses (there it's hashlittle2 feeding a single
// uthash table); here it's two FNV-1a passes over the pair in opposite
// order, which is enough entropy for a live keyspace of script object
// and method names while staying dependency-free.
func signature(object, method string) uint64 {
	h1 := fnv.New32a()
	h1.Write([]byte(object))
	h1.Write([]byte{0})
	h1.Write([]byte(method))

	h2 := fnv.New32a()
	h2.Write([]byte(method))
	h2.Write([]byte{0})
	h2.Write([]byte(object))

	return uint64(h1.Sum32()) | uint64(h2.Sum32())<<32
}

func (p *ProgramPool) find(object, method string) *Program {
	sig := signature(object, method)
	for _, e := range p.buckets[sig] {
		if e.object == object && e.method == method {
			return e.program
		}
	}
	return nil
}

// ShallowCheck reports whether object-name defines method-name exactly
// (no "Object" fallback).
func (p *ProgramPool) ShallowCheck(object, method string) bool {
	return p.find(object, method) != nil
}

// Put inserts a program under the exact (object, method) pair. It
// raises a fatal DuplicateDefinitionFault if that exact pair is already
// registered, matching the original pool's ssfatal on collision.
func (p *ProgramPool) Put(object, method string, program *Program) {
	if p.ShallowCheck(object, method) {
		Abort(newDuplicateDefinitionFault(object, method))
	}
	p.insert(object, method, program)
}

func (p *ProgramPool) insert(object, method string, program *Program) {
	sig := signature(object, method)
	p.buckets[sig] = append(p.buckets[sig], poolEntry{object, method, program})
	p.metadata[object] = append(p.metadata[object], method)
}

// Get looks up a program for (object, method), falling back to the
// universal "Object" base name on a miss. It returns (nil, false) if
// neither the exact pair nor the fallback is registered; dispatch on a
// nil result is a recoverable condition (method-not-found), never a
// fault.
func (p *ProgramPool) Get(object, method string) (*Program, bool) {
	if prog := p.find(object, method); prog != nil {
		return prog, true
	}
	if object != baseObjectName {
		if prog := p.find(baseObjectName, method); prog != nil {
			return prog, true
		}
	}
	return nil, false
}

// Replace destroys the prior program for (object, method), if any, and
// installs the new one; if none existed it behaves like Put.
func (p *ProgramPool) Replace(object, method string, program *Program) {
	sig := signature(object, method)
	bucket := p.buckets[sig]
	for i, e := range bucket {
		if e.object == object && e.method == method {
			bucket[i].program = program
			return
		}
	}
	p.insert(object, method, program)
}

// Delete removes the exact (object, method) entry, if present.
func (p *ProgramPool) Delete(object, method string) {
	sig := signature(object, method)
	bucket := p.buckets[sig]
	for i, e := range bucket {
		if e.object == object && e.method == method {
			p.buckets[sig] = append(bucket[:i], bucket[i+1:]...)
			p.removeMetadata(object, method)
			return
		}
	}
}

// Purge removes every method registered for object-name.
func (p *ProgramPool) Purge(object string) {
	for _, method := range append([]string(nil), p.metadata[object]...) {
		sig := signature(object, method)
		bucket := p.buckets[sig]
		for i, e := range bucket {
			if e.object == object && e.method == method {
				p.buckets[sig] = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
	}
	delete(p.metadata, object)
}

// IsCompiled reports whether object-name has at least one method
// registered under its exact name.
func (p *ProgramPool) IsCompiled(object string) bool {
	return len(p.metadata[object]) > 0
}

// ForEach calls callback once for each method name registered exactly
// under object-name (not including anything inherited via the "Object"
// fallback), in insertion order.
func (p *ProgramPool) ForEach(object string, callback func(method string)) {
	for _, method := range p.metadata[object] {
		callback(method)
	}
}

func (p *ProgramPool) removeMetadata(object, method string) {
	names := p.metadata[object]
	for i, m := range names {
		if m == method {
			p.metadata[object] = append(names[:i], names[i+1:]...)
			return
		}
	}
}
