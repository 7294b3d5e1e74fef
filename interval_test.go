package randomevents

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestIntervalUnionTracedLogsCollisions(t *testing.T) {
	a0, _ := Closed(0, 2)
	a1, _ := Closed(1, 3)
	x := NewInterval(a0)
	y := NewInterval(a1)

	var buf bytes.Buffer
	result := x.UnionTraced(y, LogTo(&buf))

	want, _ := Closed(0, 3)
	qt.Assert(t, qt.IsTrue(result.Equal(NewInterval(want))))
	if buf.Len() == 0 {
		t.Fatal("want trace output for colliding atoms")
	}
}

func TestIntervalMakeDisjointTracedLogsCollisions(t *testing.T) {
	a0, _ := Closed(0, 2)
	a1, _ := Closed(1, 3)
	overlapping := Interval{set: compositeSet[SimpleInterval, float64]{atoms: []SimpleInterval{a0, a1}}}

	var buf bytes.Buffer
	result := overlapping.MakeDisjointTraced(LogTo(&buf))

	qt.Assert(t, qt.IsTrue(result.IsDisjoint()))
	if buf.Len() == 0 {
		t.Fatal("want trace output for colliding atoms")
	}
}

func TestIntervalConstructorsRejectNaN(t *testing.T) {
	_, err := Open(math.NaN(), 1)
	if err == nil {
		t.Fatal("want error for NaN bound, got nil")
	}
	if _, ok := err.(*InvalidAtomError); !ok {
		t.Fatalf("want *InvalidAtomError, got %T", err)
	}
}

func TestIntervalEmptyDegenerate(t *testing.T) {
	atom, err := Open(1, 1)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(atom.IsEmpty()))

	atom, err = Closed(1, 1)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(atom.IsEmpty()))

	atom, err = Closed(2, 1)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(atom.IsEmpty()))
}

func TestIntervalUnionMerge(t *testing.T) {
	a, _ := Closed(0, 1)
	b, _ := Closed(0.5, 1.5)
	c, _ := ClosedOpen(1.5, 2)
	d, _ := Closed(3, 4)

	result := NewInterval(a).Union(NewInterval(b)).Union(NewInterval(c)).Union(NewInterval(d))

	want0, _ := Closed(0, 2)
	want1, _ := Closed(3, 4)
	qt.Assert(t, qt.DeepEquals(result.Atoms(), []SimpleInterval{want0, want1}))
}

func TestIntervalComplementOfBounded(t *testing.T) {
	atom, _ := Closed(0, 1)
	complement := NewInterval(atom).Complement()

	qt.Assert(t, qt.IsTrue(complement.Contains(-1)))
	qt.Assert(t, qt.IsTrue(complement.Contains(2)))
	qt.Assert(t, qt.IsFalse(complement.Contains(0)))
	qt.Assert(t, qt.IsFalse(complement.Contains(1)))
	qt.Assert(t, qt.IsFalse(complement.Contains(0.5)))
}

func TestIntervalDoubleComplement(t *testing.T) {
	a, _ := Closed(0, 1)
	b, _ := OpenClosed(2, 3)
	x := NewInterval(a, b)

	qt.Assert(t, qt.IsTrue(x.Complement().Complement().Equal(x)))
}

func TestIntervalDeMorgan(t *testing.T) {
	a, _ := Closed(0, 2)
	b, _ := Closed(1, 3)
	x := NewInterval(a)
	y := NewInterval(b)

	lhs := x.Union(y).Complement()
	rhs := x.Complement().Intersect(y.Complement())
	qt.Assert(t, qt.IsTrue(lhs.Equal(rhs)))
}

func TestIntervalDifferenceIsIntersectComplement(t *testing.T) {
	a, _ := Closed(0, 5)
	b, _ := Closed(2, 3)
	x := NewInterval(a)
	y := NewInterval(b)

	qt.Assert(t, qt.IsTrue(x.Difference(y).Equal(x.Intersect(y.Complement()))))
}

func TestIntervalContainedIntegers(t *testing.T) {
	closed, _ := Closed(2, 4)
	qt.Assert(t, qt.DeepEquals(closed.ContainedIntegers(), []int{2, 3, 4}))

	halfOpen, _ := ClosedOpen(4.5, 6)
	qt.Assert(t, qt.DeepEquals(halfOpen.ContainedIntegers(), []int{5}))
}

func TestIntervalCenter(t *testing.T) {
	atom, _ := Closed(0, 4)
	qt.Assert(t, qt.Equals(atom.Center(), 2.0))
}

func TestIntervalIsDisjointAfterUnion(t *testing.T) {
	a, _ := Closed(0, 1)
	b, _ := Closed(0.5, 2)
	result := NewInterval(a).Union(NewInterval(b))
	qt.Assert(t, qt.IsTrue(result.IsDisjoint()))
}

func TestIntervalSimplifyIdempotent(t *testing.T) {
	a, _ := Closed(0, 1)
	b, _ := Closed(2, 3)
	x := NewInterval(a, b)
	qt.Assert(t, qt.IsTrue(x.Simplify().Equal(x)))
	qt.Assert(t, qt.IsTrue(x.Simplify().Simplify().Equal(x.Simplify())))
}

func TestRealLineComplementIsEmpty(t *testing.T) {
	qt.Assert(t, qt.IsTrue(Reals().Complement().IsEmpty()))
}

func TestSymbolicComplement(t *testing.T) {
	ambient := NewAmbient([]string{"a", "b", "c"})
	set, err := NewSymbolicSet(ambient, "a", "b")
	qt.Assert(t, qt.IsNil(err))

	want, err := NewSymbolicSet(ambient, "c")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(set.Complement().Equal(want)))
}
