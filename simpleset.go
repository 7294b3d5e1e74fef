package randomevents

import (
	"fmt"
	"io"
	"slices"
)

// SimpleSet is the contract every atom of the algebra satisfies (C1).
// Self is the atom's own type; Point is the kind of value Contains
// accepts (float64 for intervals, the ambient's value type T for
// SymbolicElement[T]).
//
// Contract: a.IntersectWith(b).IsEmpty() holds, or the intersection is a
// subset of both a and b; the union of a.Complement() covers exactly the
// ambient minus a, as disjoint atoms.
type SimpleSet[Self any, Point any] interface {
	// IntersectWith returns the intersection of this atom with another,
	// which may be empty.
	IntersectWith(other Self) Self
	// Complement returns a disjoint set of atoms covering the ambient
	// minus this atom.
	Complement() []Self
	// IsEmpty reports whether this atom is empty.
	IsEmpty() bool
	// Contains reports whether this atom contains the given point.
	Contains(point Point) bool
	// Compare orders atoms of the same kind; used to keep composite sets
	// canonically sorted.
	Compare(other Self) int
	// MergeAdjacent attempts to merge this atom with another atom that
	// sorts immediately after it, returning the merged atom and true if
	// they coalesce (touching intervals, or equal symbolic atoms).
	MergeAdjacent(next Self) (merged Self, ok bool)
}

// compositeSet is the generic disjoint-union engine (C2): a finite
// ordered collection of pairwise disjoint, non-empty atoms of a single
// kind, kept canonical (I1-I4) across every public operation.
type compositeSet[Self SimpleSet[Self, Point], Point any] struct {
	atoms []Self
}

// trace, when non-nil, receives a line of diagnostic text for each
// make_disjoint recursion step. Nil is safe and silent, matching the
// teacher's nil-safe indentWriter.
type trace struct {
	w io.Writer
}

func (t *trace) logf(format string, args ...any) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, format+"\n", args...)
}

// TraceOption configures the diagnostic trace sink accepted by every
// *Traced operation (Interval.UnionTraced, Interval.MakeDisjointTraced,
// Event.UnionTraced): the same hook reused at each call site rather than
// each type growing its own ad hoc writer parameter.
type TraceOption func(*trace)

// LogTo directs make_disjoint diagnostics to w, mirroring the teacher's
// Discriminate(..., LogTo(w)) option.
func LogTo(w io.Writer) TraceOption {
	return func(t *trace) { t.w = w }
}

func newTrace(opts ...TraceOption) *trace {
	if len(opts) == 0 {
		return nil
	}
	t := &trace{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func newCompositeSet[Self SimpleSet[Self, Point], Point any](atoms []Self) compositeSet[Self, Point] {
	nonEmpty := make([]Self, 0, len(atoms))
	for _, a := range atoms {
		if !a.IsEmpty() {
			nonEmpty = append(nonEmpty, a)
		}
	}
	return compositeSet[Self, Point]{atoms: simplifyAtoms(nonEmpty)}
}

func (c compositeSet[Self, Point]) isEmpty() bool {
	return len(c.atoms) == 0
}

func (c compositeSet[Self, Point]) contains(p Point) bool {
	for _, a := range c.atoms {
		if a.Contains(p) {
			return true
		}
	}
	return false
}

func (c compositeSet[Self, Point]) isDisjoint() bool {
	for i := range c.atoms {
		for j := i + 1; j < len(c.atoms); j++ {
			if !c.atoms[i].IntersectWith(c.atoms[j]).IsEmpty() {
				return false
			}
		}
	}
	return true
}

func (c compositeSet[Self, Point]) compare(other compositeSet[Self, Point]) int {
	for i := 0; i < len(c.atoms) && i < len(other.atoms); i++ {
		if cmp := c.atoms[i].Compare(other.atoms[i]); cmp != 0 {
			return cmp
		}
	}
	return len(c.atoms) - len(other.atoms)
}

func (c compositeSet[Self, Point]) equal(other compositeSet[Self, Point]) bool {
	return c.compare(other) == 0
}

// union returns a ∪ b with invariants I1-I4 restored: concatenate, then
// make_disjoint, then simplify.
func (c compositeSet[Self, Point]) union(other compositeSet[Self, Point], tr *trace) compositeSet[Self, Point] {
	all := make([]Self, 0, len(c.atoms)+len(other.atoms))
	all = append(all, c.atoms...)
	all = append(all, other.atoms...)
	return compositeSet[Self, Point]{atoms: simplifyAtoms(makeDisjointAtoms(all, tr))}
}

// intersect returns a ∩ b. Pairwise atom intersections are automatically
// disjoint because the inputs are disjoint.
func (c compositeSet[Self, Point]) intersect(other compositeSet[Self, Point]) compositeSet[Self, Point] {
	var result []Self
	for _, a := range c.atoms {
		for _, b := range other.atoms {
			if inter := a.IntersectWith(b); !inter.IsEmpty() {
				result = append(result, inter)
			}
		}
	}
	return compositeSet[Self, Point]{atoms: simplifyAtoms(result)}
}

// difference returns a \ b. Each atom of a is differenced against every
// atom of b in turn; since fragments produced from a single disjoint
// atom of a stay disjoint, make_disjoint is unnecessary (only sorting
// via simplify is needed).
func (c compositeSet[Self, Point]) difference(other compositeSet[Self, Point]) compositeSet[Self, Point] {
	var result []Self
	for _, a := range c.atoms {
		result = append(result, atomMinusAtoms(a, other.atoms)...)
	}
	return compositeSet[Self, Point]{atoms: simplifyAtoms(result)}
}

// complement returns the complement of c. whenEmpty supplies the
// ambient (the complement of the empty set) when c has no atoms at all,
// since the generic engine has no notion of the ambient on its own.
func (c compositeSet[Self, Point]) complement(whenEmpty func() compositeSet[Self, Point]) compositeSet[Self, Point] {
	if c.isEmpty() {
		return whenEmpty()
	}
	result := newCompositeSet[Self, Point](c.atoms[0].Complement())
	for _, a := range c.atoms[1:] {
		result = result.intersect(newCompositeSet[Self, Point](a.Complement()))
	}
	return result
}

// atomMinusAtoms computes x minus every atom in others, sequentially,
// preserving every resulting fragment (an atom punctured in its
// interior by several overlapping others can split into more than one
// fragment; the Python original assumed exactly one fragment per step,
// which does not hold in general).
func atomMinusAtoms[Self SimpleSet[Self, Point], Point any](x Self, others []Self) []Self {
	fragments := []Self{x}
	for _, b := range others {
		if len(fragments) == 0 {
			break
		}
		var next []Self
		for _, f := range fragments {
			next = append(next, atomDifference[Self, Point](f, b)...)
		}
		fragments = next
	}
	return fragments
}

// atomDifference computes self \ other for two atoms, per C1:
// complement(self ∩ other) ∩ self, restricted to non-empty pieces.
func atomDifference[Self SimpleSet[Self, Point], Point any](self, other Self) []Self {
	intersection := self.IntersectWith(other)
	if intersection.IsEmpty() {
		return []Self{self}
	}
	var result []Self
	for _, piece := range intersection.Complement() {
		if frag := piece.IntersectWith(self); !frag.IsEmpty() {
			result = append(result, frag)
		}
	}
	return result
}

// makeDisjointAtoms transforms a possibly-overlapping multiset of atoms
// into a disjoint set of atoms with identical union (C2's make_disjoint).
func makeDisjointAtoms[Self SimpleSet[Self, Point], Point any](atoms []Self, tr *trace) []Self {
	if len(atoms) <= 1 {
		return atoms
	}

	var remainder []Self
	var collisions []Self
	for i, a := range atoms {
		others := make([]Self, 0, len(atoms)-1)
		for j, b := range atoms {
			if i != j {
				others = append(others, b)
			}
		}
		remainder = append(remainder, atomMinusAtoms(a, others)...)
	}
	for i := range atoms {
		for j := i + 1; j < len(atoms); j++ {
			if inter := atoms[i].IntersectWith(atoms[j]); !inter.IsEmpty() {
				collisions = append(collisions, inter)
			}
		}
	}

	if len(collisions) == 0 {
		return remainder
	}
	tr.logf("make_disjoint: %d non-empty collisions among %d atoms, recursing", len(collisions), len(atoms))
	return append(remainder, makeDisjointAtoms(collisions, tr)...)
}

// simplifyAtoms sorts atoms and merges adjacent ones via MergeAdjacent,
// dropping duplicates/empties along the way.
func simplifyAtoms[Self SimpleSet[Self, Point], Point any](atoms []Self) []Self {
	filtered := make([]Self, 0, len(atoms))
	for _, a := range atoms {
		if !a.IsEmpty() {
			filtered = append(filtered, a)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	slices.SortFunc(filtered, func(a, b Self) int { return a.Compare(b) })

	result := make([]Self, 0, len(filtered))
	result = append(result, filtered[0])
	for _, cur := range filtered[1:] {
		last := result[len(result)-1]
		if merged, ok := last.MergeAdjacent(cur); ok {
			result[len(result)-1] = merged
			continue
		}
		result = append(result, cur)
	}
	return result
}
