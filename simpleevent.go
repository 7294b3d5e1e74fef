package randomevents

import "sort"

// simpleEventEntry pairs a Variable with its Assignment inside a
// SimpleEvent. Variables are canonicalized by name: the entry slice is
// always kept sorted by Variable.name, which also makes Complement's
// "processed variables in iteration order" deterministic per the
// Design Notes.
type simpleEventEntry struct {
	variable Variable
	value    Assignment
}

// SimpleEvent is a single product-event component (C6): a mapping from
// a set of variables to per-variable assignments. A variable absent
// from the mapping is treated as assigned its entire domain. Lookup is
// exposed by both variable name and Variable value, backed by one
// name-indexed table (Design Notes: "dual string/variable lookup").
type SimpleEvent struct {
	entries []simpleEventEntry
	byName  map[string]int
}

// NewSimpleEvent builds a SimpleEvent from the given variable/value
// pairs. Every map key becomes its own entry; if two keys share a
// name, both entries are kept and lookups by name return only one.
func NewSimpleEvent(assignments map[Variable]Assignment) SimpleEvent {
	entries := make([]simpleEventEntry, 0, len(assignments))
	for v, a := range assignments {
		entries = append(entries, simpleEventEntry{variable: v, value: a})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].variable.Compare(entries[j].variable) < 0
	})
	byName := make(map[string]int, len(entries))
	for i, e := range entries {
		byName[e.variable.Name()] = i
	}
	return SimpleEvent{entries: entries, byName: byName}
}

// Keys returns the variables this event explicitly assigns, in name
// order.
func (e SimpleEvent) Keys() []Variable {
	out := make([]Variable, len(e.entries))
	for i, entry := range e.entries {
		out[i] = entry.variable
	}
	return out
}

// Get looks up the assignment for a variable by name. A variable not
// present in the mapping is reported as absent (ok == false); callers
// wanting the default-domain semantics should use ValueFor.
func (e SimpleEvent) Get(name string) (Assignment, bool) {
	i, ok := e.byName[name]
	if !ok {
		return nil, false
	}
	return e.entries[i].value, true
}

// GetVariable looks up the assignment for a variable by identity
// (canonicalized to its name), the counterpart to Get(name).
func (e SimpleEvent) GetVariable(v Variable) (Assignment, bool) {
	return e.Get(v.Name())
}

// ValueFor returns the assignment for v: its explicit value if present,
// otherwise v's entire domain (the "absent variable" convention).
func (e SimpleEvent) ValueFor(v Variable) Assignment {
	if a, ok := e.GetVariable(v); ok {
		return a
	}
	return v.Domain()
}

// IsEmpty reports whether any explicit assignment is empty.
func (e SimpleEvent) IsEmpty() bool {
	for _, entry := range e.entries {
		if entry.value.IsEmpty() {
			return true
		}
	}
	return false
}

// unionKeys merges the variable sets of two events, deduplicated by
// name and sorted, preferring the Variable value seen in a.
func unionKeys(a, b SimpleEvent) []Variable {
	byName := make(map[string]Variable, len(a.entries)+len(b.entries))
	for _, entry := range a.entries {
		byName[entry.variable.Name()] = entry.variable
	}
	for _, entry := range b.entries {
		if _, ok := byName[entry.variable.Name()]; !ok {
			byName[entry.variable.Name()] = entry.variable
		}
	}
	out := make([]Variable, 0, len(byName))
	for _, v := range byName {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// IntersectWith intersects two SimpleEvents variable-by-variable over
// the union of their keys, using each variable's domain where a side
// leaves it unassigned (§4.6).
func (e SimpleEvent) IntersectWith(other SimpleEvent) SimpleEvent {
	keys := unionKeys(e, other)
	assignments := make(map[Variable]Assignment, len(keys))
	for _, v := range keys {
		assignments[v] = e.ValueFor(v).IntersectWith(other.ValueFor(v))
	}
	return NewSimpleEvent(assignments)
}

// Contains reports whether tuple (keyed by variable name) lies inside
// every assignment this event makes explicitly.
func (e SimpleEvent) Contains(tuple map[string]any) bool {
	for _, entry := range e.entries {
		point, ok := tuple[entry.variable.Name()]
		if !ok || !entry.value.Contains(point) {
			return false
		}
	}
	return true
}

// Marginal restricts the mapping to the given subset of variables.
func (e SimpleEvent) Marginal(vars []Variable) SimpleEvent {
	assignments := make(map[Variable]Assignment, len(vars))
	for _, v := range vars {
		if a, ok := e.GetVariable(v); ok {
			assignments[v] = a
		}
	}
	return NewSimpleEvent(assignments)
}

// FillMissingVariables returns a SimpleEvent explicitly assigning every
// variable in vars: those already present keep their value, those
// absent are assigned their entire domain.
func (e SimpleEvent) FillMissingVariables(vars []Variable) SimpleEvent {
	assignments := make(map[Variable]Assignment, len(vars))
	for _, v := range vars {
		assignments[v] = e.ValueFor(v)
	}
	return NewSimpleEvent(assignments)
}

// Complement implements §4.6's disjoint-cover algorithm: variables are
// processed in name order; for the variable at position i, the i-th
// complement component assigns that variable to domain\value, every
// variable before it to its value in e, and every variable after it to
// its entire domain. Empty components are discarded.
func (e SimpleEvent) Complement() []SimpleEvent {
	var components []SimpleEvent
	for i, pivot := range e.entries {
		assignments := make(map[Variable]Assignment, len(e.entries))
		for j, before := range e.entries {
			if j < i {
				assignments[before.variable] = before.value
			}
		}
		assignments[pivot.variable] = pivot.variable.Domain().DifferenceWith(pivot.value)
		component := NewSimpleEvent(assignments)
		if !component.IsEmpty() {
			components = append(components, component)
		}
	}
	return components
}

// Equal compares two SimpleEvents as functions on variables: they are
// equal when, for the union of their keys, every per-variable
// assignment agrees (absent variables compare as their domain).
func (e SimpleEvent) Equal(other SimpleEvent) bool {
	for _, v := range unionKeys(e, other) {
		if !e.ValueFor(v).Equal(other.ValueFor(v)) {
			return false
		}
	}
	return true
}

// Compare orders SimpleEvents lexicographically by variable order, then
// by assignment order, over the union of their keys.
func (e SimpleEvent) Compare(other SimpleEvent) int {
	for _, v := range unionKeys(e, other) {
		if c := e.ValueFor(v).Compare(other.ValueFor(v)); c != 0 {
			return c
		}
	}
	return 0
}

// MergeAdjacent never merges: SimpleEvent's own canonicalization
// (Event.Simplify) uses a different rule than adjacency ("differ in
// exactly one variable", §4.7) and is applied separately. Declaring
// this lets SimpleEvent satisfy SimpleSet so Event can reuse the
// generic make_disjoint engine for union/intersect/difference/complement.
func (e SimpleEvent) MergeAdjacent(next SimpleEvent) (SimpleEvent, bool) {
	return SimpleEvent{}, false
}

func (e SimpleEvent) String() string {
	if len(e.entries) == 0 {
		return "{}"
	}
	out := "{"
	for i, entry := range e.entries {
		if i > 0 {
			out += ", "
		}
		out += entry.variable.Name() + "=" + entry.value.String()
	}
	return out + "}"
}
