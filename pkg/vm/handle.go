package vm

// ObjectHandle is a stable, opaque reference to a live object, valid for
// the object's entire lifetime within one VM session. It is the only
// long-lived reference to an object outside the object manager; parents
// and children store handles rather than pointers so that the tree
// survives reallocation of the underlying object records.
type ObjectHandle uint32

// NullHandle never refers to a live object. It is the parent handle of
// the root and the zero value of ObjectHandle.
const NullHandle ObjectHandle = 0
