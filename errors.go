package randomevents

import "fmt"

// InvalidAtomError reports an atom that cannot be constructed: an
// interval with a NaN bound, or a symbolic element outside its ambient.
type InvalidAtomError struct {
	Reason string
}

func (e *InvalidAtomError) Error() string {
	return fmt.Sprintf("invalid atom: %s", e.Reason)
}

// KindMismatchError reports assigning a value of the wrong kind to a
// variable, or combining composites/events of incompatible kinds.
type KindMismatchError struct {
	Variable string
	Want     VariableKind
	Got      VariableKind
}

func (e *KindMismatchError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("kind mismatch: want %v, got %v", e.Want, e.Got)
	}
	return fmt.Sprintf("kind mismatch for variable %q: want %v, got %v", e.Variable, e.Want, e.Got)
}

// AmbientMismatchError reports symbolic elements or sets from different
// ambients being combined.
type AmbientMismatchError struct {
	Reason string
}

func (e *AmbientMismatchError) Error() string {
	return fmt.Sprintf("ambient mismatch: %s", e.Reason)
}

// UnknownVariableError reports a name lookup failing against a set of
// variables.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable %q", e.Name)
}

// DeserializationError reports an unknown type tag or a malformed
// envelope during deserialization (C8).
type DeserializationError struct {
	Reason string
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialization failed: %s", e.Reason)
}
