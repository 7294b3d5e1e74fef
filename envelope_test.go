package randomevents

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestDecodeUnknownTypeTag(t *testing.T) {
	_, err := Decode([]byte(`{"type": "nonsense.Thing"}`))
	if err == nil {
		t.Fatal("want error for unrecognized type tag")
	}
	if _, ok := err.(*DeserializationError); !ok {
		t.Fatalf("want *DeserializationError, got %T", err)
	}
}

func TestBoundRoundTrip(t *testing.T) {
	for _, b := range []Bound{BoundOpen, BoundClosed} {
		data, err := json.Marshal(b)
		qt.Assert(t, qt.IsNil(err))
		entity, err := Decode(data)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(entity.(Bound), b))
	}
}

func TestSimpleIntervalRoundTrip(t *testing.T) {
	atom, _ := ClosedOpen(1, 3)
	data, err := json.Marshal(atom)
	qt.Assert(t, qt.IsNil(err))
	entity, err := Decode(data)
	qt.Assert(t, qt.IsNil(err))
	got := entity.(SimpleInterval)
	qt.Assert(t, qt.Equals(got.Compare(atom), 0))
}

func TestSimpleIntervalRoundTripInfiniteBounds(t *testing.T) {
	atom := RealLine()
	data, err := json.Marshal(atom)
	qt.Assert(t, qt.IsNil(err))
	entity, err := Decode(data)
	qt.Assert(t, qt.IsNil(err))
	got := entity.(SimpleInterval)
	qt.Assert(t, qt.Equals(got.Compare(atom), 0))

	oneSided, _ := OpenClosed(math.Inf(-1), 5)
	data, err = json.Marshal(oneSided)
	qt.Assert(t, qt.IsNil(err))
	entity, err = Decode(data)
	qt.Assert(t, qt.IsNil(err))
	got = entity.(SimpleInterval)
	qt.Assert(t, qt.Equals(got.Compare(oneSided), 0))
}

func TestIntervalRoundTripUnbounded(t *testing.T) {
	iv := Reals()
	data, err := json.Marshal(iv)
	qt.Assert(t, qt.IsNil(err))
	entity, err := Decode(data)
	qt.Assert(t, qt.IsNil(err))
	got := entity.(Interval)
	qt.Assert(t, qt.IsTrue(got.Equal(iv)))
}

func TestIntervalRoundTrip(t *testing.T) {
	a, _ := Closed(0, 1)
	b, _ := Closed(3, 4)
	iv := NewInterval(a, b)

	data, err := json.Marshal(iv)
	qt.Assert(t, qt.IsNil(err))
	entity, err := Decode(data)
	qt.Assert(t, qt.IsNil(err))
	got := entity.(Interval)
	qt.Assert(t, qt.IsTrue(got.Equal(iv)))
}

func TestSymbolicElementRoundTrip(t *testing.T) {
	ambient := NewAmbient([]string{"a", "b", "c"})
	elem, err := ambient.Element("b")
	qt.Assert(t, qt.IsNil(err))

	data, err := json.Marshal(elem)
	qt.Assert(t, qt.IsNil(err))
	entity, err := Decode(data)
	qt.Assert(t, qt.IsNil(err))
	got := entity.(SymbolicElement[string])
	qt.Assert(t, qt.Equals(got.Value(), "b"))
}

func TestSymbolicSetRoundTrip(t *testing.T) {
	ambient := NewAmbient([]string{"a", "b", "c"})
	s, _ := NewSymbolicSet(ambient, "a", "c")

	data, err := json.Marshal(s)
	qt.Assert(t, qt.IsNil(err))
	entity, err := Decode(data)
	qt.Assert(t, qt.IsNil(err))
	got := entity.(SymbolicSet[string])
	qt.Assert(t, qt.IsTrue(got.Equal(s)))
}

func TestVariableRoundTripAllKinds(t *testing.T) {
	ambient := NewAmbient([]string{"a", "b"})
	for _, v := range []Variable{Continuous("X"), Integer("N"), Symbolic("A", ambient)} {
		data, err := json.Marshal(v)
		qt.Assert(t, qt.IsNil(err))
		entity, err := Decode(data)
		qt.Assert(t, qt.IsNil(err))
		got := entity.(Variable)
		qt.Assert(t, qt.IsTrue(got.Equal(v)))
	}
}

func TestSimpleEventRoundTrip(t *testing.T) {
	x := Continuous("X")
	y := Continuous("Y")
	e := NewSimpleEvent(map[Variable]Assignment{
		x: rectAssignment(0, 1),
		y: rectAssignment(2, 3),
	})

	data, err := json.Marshal(e)
	qt.Assert(t, qt.IsNil(err))
	entity, err := Decode(data)
	qt.Assert(t, qt.IsNil(err))
	got := entity.(SimpleEvent)
	qt.Assert(t, qt.IsTrue(got.Equal(e)))
}

func TestEventRoundTrip(t *testing.T) {
	x := Continuous("X")
	y := Continuous("Y")
	ev := NewEvent(rect(x, y, 0, 1, 0, 1), rect(x, y, 2, 3, 2, 3))

	data, err := json.Marshal(ev)
	qt.Assert(t, qt.IsNil(err))
	entity, err := Decode(data)
	qt.Assert(t, qt.IsNil(err))
	got := entity.(Event)
	qt.Assert(t, qt.IsTrue(got.Equal(ev)))
}
