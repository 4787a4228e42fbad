package vm

import (
	"math"
	"strconv"
)

// Variant identifies which payload a Value currently holds.
type Variant uint8

const (
	VariantNull Variant = iota
	VariantNumber
	VariantBoolean
	VariantString
	VariantHandle
)

// String returns a human-readable name for the variant, mostly for
// diagnostics and fault messages.
func (vr Variant) String() string {
	switch vr {
	case VariantNull:
		return "null"
	case VariantNumber:
		return "number"
	case VariantBoolean:
		return "boolean"
	case VariantString:
		return "string"
	case VariantHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// Value is the tagged cell shared by every subsystem: the heap, the
// stack, program parameters and return values all traffic in Values.
// Go's value semantics already give copy-on-assign for the string field
// (strings are immutable, so an assigned Value never shares a mutable
// buffer with another cell) and a plain field copy for the handle, which
// is exactly the "deep string, shallow handle" rule the cell contract
// requires.
type Value struct {
	variant Variant
	number  float64
	boolean bool
	str     string
	handle  ObjectHandle
}

// NewValue returns a null cell, the zero value of a Value in every
// meaningful sense.
func NewValue() Value {
	return Value{variant: VariantNull}
}

// Null returns a null-variant cell.
func Null() Value {
	return Value{variant: VariantNull}
}

// NumberValue returns a number-variant cell.
func NumberValue(n float64) Value {
	return Value{variant: VariantNumber, number: n}
}

// BooleanValue returns a boolean-variant cell.
func BooleanValue(b bool) Value {
	return Value{variant: VariantBoolean, boolean: b}
}

// StringValue returns a string-variant cell.
func StringValue(s string) Value {
	return Value{variant: VariantString, str: s}
}

// HandleValue returns an object-handle-variant cell.
func HandleValue(h ObjectHandle) Value {
	return Value{variant: VariantHandle, handle: h}
}

// Variant reports the cell's current tag.
func (v Value) Variant() Variant {
	return v.variant
}

// IsNull reports whether the cell holds the null variant.
func (v Value) IsNull() bool {
	return v.variant == VariantNull
}

// Clone returns a deep copy of v. For this Value representation a plain
// copy already satisfies the deep-copy contract (see the type doc), so
// Clone and Copy exist to keep the reference-semantics API explicit at
// call sites, not because Go needs extra bookkeeping here.
func (v Value) Clone() Value {
	return v
}

// Copy overwrites dst with a deep copy of src, releasing whatever dst
// used to hold first (a no-op in Go, since there is nothing to free).
func Copy(dst *Value, src Value) {
	*dst = src
}

// Swap exchanges the contents of a and b in place, without allocating.
func Swap(a, b *Value) {
	*a, *b = *b, *a
}

// SetNull overwrites v with the null variant.
func (v *Value) SetNull() {
	*v = Value{variant: VariantNull}
}

// SetNumber overwrites v with a number cell.
func (v *Value) SetNumber(n float64) {
	*v = Value{variant: VariantNumber, number: n}
}

// SetString overwrites v with a string cell.
func (v *Value) SetString(s string) {
	*v = Value{variant: VariantString, str: s}
}

// SetBoolean overwrites v with a boolean cell.
func (v *Value) SetBoolean(b bool) {
	*v = Value{variant: VariantBoolean, boolean: b}
}

// SetObjectHandle overwrites v with a handle cell.
func (v *Value) SetObjectHandle(h ObjectHandle) {
	*v = Value{variant: VariantHandle, handle: h}
}

// GetNumber coerces v to a number. Booleans become 0/1, null becomes 0,
// handles become their integer value, and strings are parsed; an
// unparseable string yields NaN rather than an error, since coercion
// failures are recoverable and never abort the caller.
func (v Value) GetNumber() float64 {
	switch v.variant {
	case VariantNumber:
		return v.number
	case VariantBoolean:
		if v.boolean {
			return 1
		}
		return 0
	case VariantString:
		n, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	case VariantHandle:
		return float64(v.handle)
	default: // VariantNull
		return 0
	}
}

// GetString coerces v to a string. Numbers are formatted with the
// shortest representation that round-trips exactly ('g' with -1
// precision).
func (v Value) GetString() string {
	switch v.variant {
	case VariantString:
		return v.str
	case VariantNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case VariantBoolean:
		if v.boolean {
			return "true"
		}
		return "false"
	case VariantHandle:
		return strconv.FormatUint(uint64(v.handle), 10)
	default: // VariantNull
		return "null"
	}
}

// GetBoolean coerces v to a boolean: null and zero-ish values are
// false, everything else is true.
func (v Value) GetBoolean() bool {
	switch v.variant {
	case VariantBoolean:
		return v.boolean
	case VariantNull:
		return false
	case VariantNumber:
		return v.number != 0
	case VariantString:
		return v.str != ""
	case VariantHandle:
		return v.handle != NullHandle
	default:
		return false
	}
}

// GetObjectHandle returns the handle payload, or NullHandle if v is not
// a handle cell.
func (v Value) GetObjectHandle() ObjectHandle {
	if v.variant == VariantHandle {
		return v.handle
	}
	return NullHandle
}

// Compare orders two cells. Same-variant comparisons use the natural
// ordering for that variant (numeric, lexicographic, false<true,
// handle-as-integer). Cross-variant comparisons coerce toward number
// first; if either side doesn't parse as a number, they fall back to
// string comparison.
func (v Value) Compare(other Value) int {
	if v.variant == other.variant {
		switch v.variant {
		case VariantNumber:
			return compareFloat(v.number, other.number)
		case VariantString:
			return compareString(v.str, other.str)
		case VariantBoolean:
			return compareBool(v.boolean, other.boolean)
		case VariantHandle:
			return compareUint(uint32(v.handle), uint32(other.handle))
		default: // VariantNull
			return 0
		}
	}

	an, bn := v.GetNumber(), other.GetNumber()
	if !math.IsNaN(an) && !math.IsNaN(bn) {
		return compareFloat(an, bn)
	}
	return compareString(v.GetString(), other.GetString())
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func compareUint(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
