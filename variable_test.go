package randomevents

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestVariableOrderingByName(t *testing.T) {
	x := Continuous("X")
	y := Continuous("Y")
	qt.Assert(t, qt.IsTrue(x.Compare(y) < 0))
	qt.Assert(t, qt.IsTrue(y.Compare(x) > 0))
	qt.Assert(t, qt.Equals(x.Compare(x), 0))
}

func TestContinuousMakeValueNumber(t *testing.T) {
	x := Continuous("X")
	a, err := x.MakeValue(2.0)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(a.Contains(2.0)))
	qt.Assert(t, qt.IsFalse(a.Contains(2.1)))
}

func TestContinuousMakeValuePair(t *testing.T) {
	x := Continuous("X")
	a, err := x.MakeValue([2]float64{1, 3})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(a.Contains(1.0)))
	qt.Assert(t, qt.IsTrue(a.Contains(3.0)))
	qt.Assert(t, qt.IsFalse(a.Contains(3.1)))
}

func TestContinuousMakeValueRejectsBadInput(t *testing.T) {
	x := Continuous("X")
	_, err := x.MakeValue("not a number")
	if err == nil {
		t.Fatal("want error coercing a string into a continuous value")
	}
	if _, ok := err.(*KindMismatchError); !ok {
		t.Fatalf("want *KindMismatchError, got %T", err)
	}
}

func TestSymbolicMakeValueSingleAndList(t *testing.T) {
	ambient := NewAmbient([]string{"a", "b", "c"})
	v := Symbolic("A", ambient)

	single, err := v.MakeValue("a")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(single.Contains("a")))
	qt.Assert(t, qt.IsFalse(single.Contains("b")))

	list, err := v.MakeValue([]string{"a", "b"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(list.Contains("a")))
	qt.Assert(t, qt.IsTrue(list.Contains("b")))
	qt.Assert(t, qt.IsFalse(list.Contains("c")))
}

func TestSymbolicMakeValueRejectsOutsideAmbient(t *testing.T) {
	ambient := NewAmbient([]string{"a", "b"})
	v := Symbolic("A", ambient)
	_, err := v.MakeValue("q")
	if err == nil {
		t.Fatal("want error for value outside ambient")
	}
}

func TestVariableDefaultDomainIsFull(t *testing.T) {
	x := Continuous("X")
	qt.Assert(t, qt.IsTrue(x.Domain().Contains(1e9)))

	ambient := NewAmbient([]string{"a", "b"})
	v := Symbolic("A", ambient)
	qt.Assert(t, qt.IsTrue(v.Domain().Contains("a")))
	qt.Assert(t, qt.IsTrue(v.Domain().Contains("b")))
}
