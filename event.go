package randomevents

// Event is a disjoint union of SimpleEvent components sharing a common
// key set (C7). The key set is the union of its components' keys,
// computed at construction; every component is normalized against it
// via FillMissingVariables to restore P3 (every component names every
// key).
//
// Event reuses the generic compositeSet engine from simpleset.go for
// union/intersect/difference/complement/make_disjoint, with
// SimpleEvent as the atom kind (Point = map[string]any, the tuple
// shape Contains expects). Simplify is specific to product events
// (§4.7: merge pairs differing in exactly one variable) and is
// implemented separately below rather than through the generic engine.
type Event struct {
	keys []Variable
	set  compositeSet[SimpleEvent, map[string]any]
}

func keysOf(components []SimpleEvent) []Variable {
	byName := make(map[string]Variable)
	for _, c := range components {
		for _, v := range c.Keys() {
			byName[v.Name()] = v
		}
	}
	out := make([]Variable, 0, len(byName))
	for _, v := range byName {
		out = append(out, v)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Compare(out[j-1]) < 0; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// NewEvent builds an Event from zero or more components, normalizing
// keys (every component is filled to the common key set), dropping
// empty components and sorting the rest. It does not make overlapping
// components disjoint and does not merge components (see Union and
// Simplify for that).
func NewEvent(components ...SimpleEvent) Event {
	keys := keysOf(components)
	filled := make([]SimpleEvent, len(components))
	for i, c := range components {
		filled[i] = c.FillMissingVariables(keys)
	}
	return Event{keys: keys, set: newCompositeSet[SimpleEvent, map[string]any](filled)}
}

func (ev Event) Keys() []Variable { return append([]Variable(nil), ev.keys...) }

func (ev Event) Components() []SimpleEvent {
	return append([]SimpleEvent(nil), ev.set.atoms...)
}

func (ev Event) IsEmpty() bool    { return ev.set.isEmpty() }
func (ev Event) IsDisjoint() bool { return ev.set.isDisjoint() }

// Contains reports whether any component contains tuple.
func (ev Event) Contains(tuple map[string]any) bool { return ev.set.contains(tuple) }

func (ev Event) Equal(other Event) bool { return ev.set.equal(other.set) }

func (ev Event) Compare(other Event) int { return ev.set.compare(other.set) }

// Union restores I1-I4 over the concatenation of both events'
// components (§4.7): concatenate, make_disjoint, simplify.
func (ev Event) Union(other Event) Event {
	return ev.UnionTraced(other)
}

// UnionTraced is Union with an optional diagnostic trace of the
// make_disjoint recursion, off by default.
func (ev Event) UnionTraced(other Event, opts ...TraceOption) Event {
	merged := ev.set.union(other.set, newTrace(opts...))
	return Event{keys: keysOf(merged.atoms), set: merged}.Simplify()
}

// Intersect pairwise-intersects components; the result is already
// disjoint since the inputs are.
func (ev Event) Intersect(other Event) Event {
	merged := ev.set.intersect(other.set)
	return Event{keys: keysOf(merged.atoms), set: merged}
}

// Difference is intersect(a, complement(b)).
func (ev Event) Difference(other Event) Event {
	return ev.Intersect(other.Complement())
}

// Complement folds intersection over the complement of each component.
func (ev Event) Complement() Event {
	if ev.IsEmpty() {
		return fullEvent(ev.keys)
	}
	result := NewEvent(ev.set.atoms[0].Complement()...)
	for _, c := range ev.set.atoms[1:] {
		result = result.Intersect(NewEvent(c.Complement()...))
	}
	return result
}

func fullEvent(keys []Variable) Event {
	if len(keys) == 0 {
		return NewEvent(NewSimpleEvent(nil))
	}
	assignments := make(map[Variable]Assignment, len(keys))
	for _, v := range keys {
		assignments[v] = v.Domain()
	}
	return NewEvent(NewSimpleEvent(assignments))
}

// Simplify repeatedly finds a pair of components differing in exactly
// one variable and replaces them with a single component whose
// assignment on that variable is the union of the two, stopping when
// no pair qualifies (§4.7: a canonicalization toward minimality, not
// guaranteed minimum -- see DESIGN.md Open Question 2).
func (ev Event) Simplify() Event {
	atoms := append([]SimpleEvent(nil), ev.set.atoms...)
	for {
		i, j, _, merged, found := findMergeablePair(atoms, ev.keys)
		if !found {
			break
		}
		next := make([]SimpleEvent, 0, len(atoms)-1)
		for k, a := range atoms {
			if k == i || k == j {
				continue
			}
			next = append(next, a)
		}
		next = append(next, merged)
		atoms = next
	}
	return Event{keys: ev.keys, set: compositeSet[SimpleEvent, map[string]any]{atoms: simplifyAtoms(atoms)}}
}

// findMergeablePair scans for the first pair of components that differ
// in exactly one variable's assignment, returning the merged component
// (that variable's assignment replaced by the union of the two).
func findMergeablePair(atoms []SimpleEvent, keys []Variable) (i, j int, diffVar Variable, merged SimpleEvent, ok bool) {
	for a := 0; a < len(atoms); a++ {
		for b := a + 1; b < len(atoms); b++ {
			if dv, match := singleDifferingVariable(atoms[a], atoms[b], keys); match {
				assignments := make(map[Variable]Assignment, len(keys))
				for _, v := range keys {
					assignments[v] = atoms[a].ValueFor(v)
				}
				assignments[dv] = atoms[a].ValueFor(dv).UnionWith(atoms[b].ValueFor(dv))
				return a, b, dv, NewSimpleEvent(assignments), true
			}
		}
	}
	return 0, 0, Variable{}, SimpleEvent{}, false
}

// singleDifferingVariable reports the one variable (if exactly one
// exists) on which x and y disagree.
func singleDifferingVariable(x, y SimpleEvent, keys []Variable) (Variable, bool) {
	var diff Variable
	count := 0
	for _, v := range keys {
		if !x.ValueFor(v).Equal(y.ValueFor(v)) {
			count++
			diff = v
			if count > 1 {
				return Variable{}, false
			}
		}
	}
	return diff, count == 1
}

// Marginal projects every component onto vars, then restores canonical
// form (make_disjoint, simplify): projecting away a variable can make
// previously-disjoint components overlap.
func (ev Event) Marginal(vars []Variable) Event {
	projected := make([]SimpleEvent, len(ev.set.atoms))
	for i, c := range ev.set.atoms {
		projected[i] = c.Marginal(vars)
	}
	disjoint := makeDisjointAtoms(projected, nil)
	keys := keysOf(disjoint)
	filled := make([]SimpleEvent, len(disjoint))
	for i, c := range disjoint {
		filled[i] = c.FillMissingVariables(keys)
	}
	return Event{keys: keys, set: compositeSet[SimpleEvent, map[string]any]{atoms: simplifyAtoms(filled)}}.Simplify()
}

// BoundingBox returns the single SimpleEvent whose per-variable
// assignment is the union of the corresponding assignments across all
// components: the smallest enclosing product rectangle.
func (ev Event) BoundingBox() SimpleEvent {
	if len(ev.set.atoms) == 0 {
		return NewSimpleEvent(nil)
	}
	assignments := make(map[Variable]Assignment, len(ev.keys))
	for _, v := range ev.keys {
		value := ev.set.atoms[0].ValueFor(v)
		for _, c := range ev.set.atoms[1:] {
			value = value.UnionWith(c.ValueFor(v))
		}
		assignments[v] = value
	}
	return NewSimpleEvent(assignments)
}

func (ev Event) String() string {
	return joinAtomStrings(ev.set.atoms)
}
