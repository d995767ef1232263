// Package types defines the closed set of type descriptors Pecco
// understands. Types are compared by name; there is no subtyping,
// coercion, or inference beyond what the type checker does locally.
package types

// Name is a type tag drawn from the fixed set of built-in types.
type Name string

const (
	I32    Name = "i32"
	F64    Name = "f64"
	Bool   Name = "bool"
	String Name = "string"
	Void   Name = "void"

	// Unknown marks an expression whose type could not be determined
	// (e.g. a reference to an undeclared identifier). It is distinct
	// from Void and never appears in generated code.
	Unknown Name = ""
)

// Valid reports whether n is one of the five built-in type names.
func Valid(n Name) bool {
	switch n {
	case I32, F64, Bool, String, Void:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether n supports arithmetic operators.
func IsNumeric(n Name) bool {
	return n == I32 || n == F64
}

// Known reports whether n is a non-empty, determined type.
func Known(n Name) bool {
	return n != Unknown
}

// SameTuple reports whether two parameter-type lists are identical,
// element by element. Used by overload lookup in internal/symbols.
func SameTuple(a, b []Name) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
