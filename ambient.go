package randomevents

import (
	"fmt"
	"io"
)

// Ambient is the fixed, finite, ordered universe a SymbolicElement
// belongs to (§3). Its ordering is frozen at construction time
// ("insertion-frozen") and shared by reference across every element and
// set built against it.
type Ambient[T comparable] struct {
	values []T
	index  map[T]int
	trace  io.Writer
}

// AmbientOption configures NewAmbient.
type AmbientOption[T comparable] func(*Ambient[T])

// AmbientTrace logs a line to w for every duplicate value NewAmbient
// skips while deduplicating, mirroring the make_disjoint trace hook
// (LogTo) on compositeSet unions. Nil w (the default) stays silent.
func AmbientTrace[T comparable](w io.Writer) AmbientOption[T] {
	return func(a *Ambient[T]) { a.trace = w }
}

// NewAmbient builds an ambient from the given values in iteration
// order, deduplicated (matching C4's from_iterable).
func NewAmbient[T comparable](values []T, opts ...AmbientOption[T]) *Ambient[T] {
	a := &Ambient[T]{
		values: make([]T, 0, len(values)),
		index:  make(map[T]int, len(values)),
	}
	for _, opt := range opts {
		opt(a)
	}
	for _, v := range values {
		if _, seen := a.index[v]; seen {
			if a.trace != nil {
				fmt.Fprintf(a.trace, "ambient: skipping duplicate value %v\n", v)
			}
			continue
		}
		a.index[v] = len(a.values)
		a.values = append(a.values, v)
	}
	return a
}

// Len returns the number of distinct members of the ambient.
func (a *Ambient[T]) Len() int {
	return len(a.values)
}

// Value returns the member at the given ambient index.
func (a *Ambient[T]) Value(index int) T {
	return a.values[index]
}

// IndexOf returns the ambient index of v and whether v is a member.
func (a *Ambient[T]) IndexOf(v T) (int, bool) {
	i, ok := a.index[v]
	return i, ok
}

// Values returns the ambient's members in frozen order.
func (a *Ambient[T]) Values() []T {
	return append([]T(nil), a.values...)
}

// Element builds the SymbolicElement for value v, or an error if v is
// not a member of the ambient (§7 InvalidAtom).
func (a *Ambient[T]) Element(v T) (SymbolicElement[T], error) {
	i, ok := a.index[v]
	if !ok {
		return SymbolicElement[T]{}, &InvalidAtomError{Reason: "value is not a member of the ambient"}
	}
	return SymbolicElement[T]{index: i, ambient: a}, nil
}
