package randomevents

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// SymbolicElement is a single member of a finite ambient set (C4),
// identified by its index into the ambient. Two elements intersect iff
// their indices are equal.
type SymbolicElement[T comparable] struct {
	index   int
	ambient *Ambient[T]
}

func emptySymbolicElement[T comparable](a *Ambient[T]) SymbolicElement[T] {
	return SymbolicElement[T]{index: -1, ambient: a}
}

// Value returns the ambient member this element identifies.
func (e SymbolicElement[T]) Value() T {
	return e.ambient.Value(e.index)
}

func (e SymbolicElement[T]) IsEmpty() bool {
	return e.index < 0
}

func (e SymbolicElement[T]) checkSameAmbient(other SymbolicElement[T]) {
	if e.ambient != other.ambient {
		panic(&AmbientMismatchError{Reason: "symbolic elements belong to different ambients"})
	}
}

func (e SymbolicElement[T]) IntersectWith(other SymbolicElement[T]) SymbolicElement[T] {
	e.checkSameAmbient(other)
	if e.index == other.index {
		return e
	}
	return emptySymbolicElement(e.ambient)
}

func (e SymbolicElement[T]) Complement() []SymbolicElement[T] {
	if e.IsEmpty() {
		result := make([]SymbolicElement[T], e.ambient.Len())
		for i := range result {
			result[i] = SymbolicElement[T]{index: i, ambient: e.ambient}
		}
		return result
	}
	result := make([]SymbolicElement[T], 0, e.ambient.Len()-1)
	for i := 0; i < e.ambient.Len(); i++ {
		if i != e.index {
			result = append(result, SymbolicElement[T]{index: i, ambient: e.ambient})
		}
	}
	return result
}

func (e SymbolicElement[T]) Contains(v T) bool {
	i, ok := e.ambient.IndexOf(v)
	return ok && i == e.index
}

func (e SymbolicElement[T]) Compare(other SymbolicElement[T]) int {
	e.checkSameAmbient(other)
	return e.index - other.index
}

func (e SymbolicElement[T]) MergeAdjacent(next SymbolicElement[T]) (SymbolicElement[T], bool) {
	e.checkSameAmbient(next)
	if e.index == next.index {
		return e, true
	}
	return SymbolicElement[T]{}, false
}

func (e SymbolicElement[T]) String() string {
	if e.IsEmpty() {
		return emptySetSymbol
	}
	return fmt.Sprint(e.Value())
}

// SymbolicSet is a composite set over symbolic elements sharing one
// ambient (C4 specialized from C2). Its membership is stored as a
// bitset over ambient indices rather than a slice of atoms: every
// public operation on a finite index domain reduces to a bitwise op, so
// the generic atom-slice engine in simpleset.go is bypassed here for a
// dense representation sized to the ambient rather than capped at 64
// members (see DESIGN.md).
type SymbolicSet[T comparable] struct {
	ambient *Ambient[T]
	bits    *bitset.BitSet
}

// EmptySymbolicSet returns the empty set over the given ambient.
func EmptySymbolicSet[T comparable](ambient *Ambient[T]) SymbolicSet[T] {
	return SymbolicSet[T]{ambient: ambient, bits: bitset.New(uint(ambient.Len()))}
}

// FullSymbolicSet returns the set containing every member of the
// ambient (the ambient's domain).
func FullSymbolicSet[T comparable](ambient *Ambient[T]) SymbolicSet[T] {
	return SymbolicSet[T]{ambient: ambient, bits: bitset.New(uint(ambient.Len())).Complement()}
}

// NewSymbolicSet builds a set containing exactly the given values, each
// of which must be a member of the ambient.
func NewSymbolicSet[T comparable](ambient *Ambient[T], values ...T) (SymbolicSet[T], error) {
	s := EmptySymbolicSet(ambient)
	for _, v := range values {
		i, ok := ambient.IndexOf(v)
		if !ok {
			return SymbolicSet[T]{}, &InvalidAtomError{Reason: "value is not a member of the ambient"}
		}
		s.bits.Set(uint(i))
	}
	return s, nil
}

func (s SymbolicSet[T]) checkSameAmbient(other SymbolicSet[T]) {
	if s.ambient != other.ambient {
		panic(&AmbientMismatchError{Reason: "symbolic sets belong to different ambients"})
	}
}

func (s SymbolicSet[T]) IsEmpty() bool {
	return s.bits == nil || s.bits.None()
}

func (s SymbolicSet[T]) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

func (s SymbolicSet[T]) Contains(v T) bool {
	i, ok := s.ambient.IndexOf(v)
	return ok && s.bits.Test(uint(i))
}

// Equal reports whether both sets hold the same members. Ambients with
// the same member list count as the same ambient here (a decoded set
// carries a fresh ambient); any other ambient mismatch panics.
func (s SymbolicSet[T]) Equal(other SymbolicSet[T]) bool {
	if s.ambient == nil || other.ambient == nil || !slices.Equal(s.ambient.values, other.ambient.values) {
		s.checkSameAmbient(other)
	}
	return s.bits.Equal(other.bits)
}

func (s SymbolicSet[T]) Compare(other SymbolicSet[T]) int {
	s.checkSameAmbient(other)
	ai, bi := s.indices(), other.indices()
	for i := 0; i < len(ai) && i < len(bi); i++ {
		if ai[i] != bi[i] {
			return int(ai[i]) - int(bi[i])
		}
	}
	return len(ai) - len(bi)
}

func (s SymbolicSet[T]) indices() []uint {
	if s.bits == nil {
		return nil
	}
	var out []uint
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, i)
	}
	return out
}

func (s SymbolicSet[T]) Union(other SymbolicSet[T]) SymbolicSet[T] {
	s.checkSameAmbient(other)
	return SymbolicSet[T]{ambient: s.ambient, bits: s.bits.Union(other.bits)}
}

func (s SymbolicSet[T]) Intersect(other SymbolicSet[T]) SymbolicSet[T] {
	s.checkSameAmbient(other)
	return SymbolicSet[T]{ambient: s.ambient, bits: s.bits.Intersection(other.bits)}
}

func (s SymbolicSet[T]) Difference(other SymbolicSet[T]) SymbolicSet[T] {
	s.checkSameAmbient(other)
	return SymbolicSet[T]{ambient: s.ambient, bits: s.bits.Difference(other.bits)}
}

func (s SymbolicSet[T]) Complement() SymbolicSet[T] {
	return SymbolicSet[T]{ambient: s.ambient, bits: s.bits.Complement()}
}

// MakeDisjoint and Simplify are identities for symbolic sets: the
// bitset representation cannot hold duplicate or overlapping atoms, so
// the invariants I1-I4 hold by construction (spec 4.2's "for symbolic:
// dedup by index; already sorted").
func (s SymbolicSet[T]) MakeDisjoint() SymbolicSet[T] { return s }
func (s SymbolicSet[T]) Simplify() SymbolicSet[T]     { return s }

func (s SymbolicSet[T]) IsDisjoint() bool { return true }

// Atoms returns the set's members as individual SymbolicElements, in
// ambient order.
func (s SymbolicSet[T]) Atoms() []SymbolicElement[T] {
	indices := s.indices()
	out := make([]SymbolicElement[T], len(indices))
	for i, idx := range indices {
		out[i] = SymbolicElement[T]{index: int(idx), ambient: s.ambient}
	}
	return out
}

func (s SymbolicSet[T]) String() string {
	if s.IsEmpty() {
		return emptySetSymbol
	}
	var b strings.Builder
	b.WriteString("{")
	for i, e := range s.Atoms() {
		if i > 0 {
			b.WriteString(" u ")
		}
		b.WriteString(e.String())
	}
	b.WriteString("}")
	return b.String()
}
