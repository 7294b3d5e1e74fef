package randomevents

// Assignment is the tagged-variant dispatch point a per-variable value
// can take inside a SimpleEvent: either an Interval (Continuous/Integer)
// or a SymbolicSet[string] (Symbolic). Re-modeling the spec's C1/C6
// virtual dispatch as a tagged variant follows the Design Notes and the
// teacher's own DecisionNode pattern (node.go: LeafNode |
// KindSwitchNode | FieldAbsenceNode | ValueSwitchNode).
//
// Combining two Assignments of different kinds is a programmer error
// (mixing atom kinds, per spec 4.2): it panics rather than erroring,
// since it can only happen if a caller built a SimpleEvent mapping one
// variable to two different kinds of domain, which the Variable/
// SimpleEvent constructors never do on their own.
type Assignment interface {
	Kind() VariableKind
	IsEmpty() bool
	Contains(point any) bool
	UnionWith(other Assignment) Assignment
	IntersectWith(other Assignment) Assignment
	DifferenceWith(other Assignment) Assignment
	Complement() Assignment
	Equal(other Assignment) bool
	Compare(other Assignment) int
	String() string
}

type intervalAssignment struct {
	Interval
}

// NewIntervalAssignment wraps iv as an Assignment.
func NewIntervalAssignment(iv Interval) Assignment {
	return intervalAssignment{Interval: iv}
}

func (a intervalAssignment) Kind() VariableKind { return ContinuousKind }

func (a intervalAssignment) Contains(point any) bool {
	v, ok := point.(float64)
	return ok && a.Interval.Contains(v)
}

func asInterval(other Assignment) intervalAssignment {
	iv, ok := other.(intervalAssignment)
	if !ok {
		panic(&KindMismatchError{Want: ContinuousKind, Got: other.Kind()})
	}
	return iv
}

func (a intervalAssignment) UnionWith(other Assignment) Assignment {
	return intervalAssignment{Interval: a.Interval.Union(asInterval(other).Interval)}
}

func (a intervalAssignment) IntersectWith(other Assignment) Assignment {
	return intervalAssignment{Interval: a.Interval.Intersect(asInterval(other).Interval)}
}

func (a intervalAssignment) DifferenceWith(other Assignment) Assignment {
	return intervalAssignment{Interval: a.Interval.Difference(asInterval(other).Interval)}
}

func (a intervalAssignment) Complement() Assignment {
	return intervalAssignment{Interval: a.Interval.Complement()}
}

func (a intervalAssignment) Equal(other Assignment) bool {
	o, ok := other.(intervalAssignment)
	return ok && a.Interval.Equal(o.Interval)
}

func (a intervalAssignment) Compare(other Assignment) int {
	return a.Interval.Compare(asInterval(other).Interval)
}

type symbolicAssignment struct {
	SymbolicSet[string]
}

// NewSymbolicAssignment wraps s as an Assignment.
func NewSymbolicAssignment(s SymbolicSet[string]) Assignment {
	return symbolicAssignment{SymbolicSet: s}
}

func (a symbolicAssignment) Kind() VariableKind { return SymbolicKind }

func (a symbolicAssignment) Contains(point any) bool {
	v, ok := point.(string)
	return ok && a.SymbolicSet.Contains(v)
}

func asSymbolic(other Assignment) symbolicAssignment {
	s, ok := other.(symbolicAssignment)
	if !ok {
		panic(&KindMismatchError{Want: SymbolicKind, Got: other.Kind()})
	}
	return s
}

func (a symbolicAssignment) UnionWith(other Assignment) Assignment {
	return symbolicAssignment{SymbolicSet: a.SymbolicSet.Union(asSymbolic(other).SymbolicSet)}
}

func (a symbolicAssignment) IntersectWith(other Assignment) Assignment {
	return symbolicAssignment{SymbolicSet: a.SymbolicSet.Intersect(asSymbolic(other).SymbolicSet)}
}

func (a symbolicAssignment) DifferenceWith(other Assignment) Assignment {
	return symbolicAssignment{SymbolicSet: a.SymbolicSet.Difference(asSymbolic(other).SymbolicSet)}
}

func (a symbolicAssignment) Complement() Assignment {
	return symbolicAssignment{SymbolicSet: a.SymbolicSet.Complement()}
}

func (a symbolicAssignment) Equal(other Assignment) bool {
	o, ok := other.(symbolicAssignment)
	return ok && a.SymbolicSet.Equal(o.SymbolicSet)
}

func (a symbolicAssignment) Compare(other Assignment) int {
	return a.SymbolicSet.Compare(asSymbolic(other).SymbolicSet)
}
