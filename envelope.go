package randomevents

import (
	"encoding/json"
	"fmt"
	"math"
)

// Entity is anything with a qualified type tag for the serialization
// envelope (C8): a flat JSON-compatible `{"type": "...", ...fields}`
// object, encoded with the standard library's encoding/json (justified
// in SPEC_FULL.md: no corpus library specializes in tagged polymorphic
// envelopes).
type Entity interface {
	TypeName() string
}

type decodeFunc func(json.RawMessage) (Entity, error)

// registry maps type tags to decoders, replacing the original source's
// dynamic __subclasses__ scan with a static table built at package
// init (Design Notes: "cached computed properties" -> "a single
// eagerly constructed table").
var registry = map[string]decodeFunc{}

// Register adds a decoder for a type tag. Every entity of this package
// is registered from the single init() below.
func Register(name string, decode decodeFunc) {
	registry[name] = decode
}

func init() {
	Register(boundTypeName, decodeBoundEnvelope)
	Register(simpleIntervalTypeName, decodeSimpleIntervalEnvelope)
	Register(intervalTypeName, decodeIntervalEnvelope)
	Register(symbolicElementTypeName, decodeSymbolicElementEnvelope)
	Register(symbolicSetTypeName, decodeSymbolicSetEnvelope)
	Register(variableTypeName, decodeVariableEnvelope)
	Register(simpleEventTypeName, decodeSimpleEventEnvelope)
	Register(eventTypeName, decodeEventEnvelope)
}

// Decode dispatches on the envelope's "type" tag to the registered
// decoder. An unrecognized tag or malformed envelope is a
// *DeserializationError (§7).
func Decode(data []byte) (Entity, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, &DeserializationError{Reason: err.Error()}
	}
	decode, ok := registry[head.Type]
	if !ok {
		return nil, &DeserializationError{Reason: fmt.Sprintf("unknown type tag %q", head.Type)}
	}
	entity, err := decode(data)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

const (
	boundTypeName           = "randomevents.Bound"
	simpleIntervalTypeName  = "randomevents.SimpleInterval"
	intervalTypeName        = "randomevents.Interval"
	symbolicElementTypeName = "randomevents.SymbolicElement"
	symbolicSetTypeName     = "randomevents.SymbolicSet"
	variableTypeName        = "randomevents.Variable"
	simpleEventTypeName     = "randomevents.SimpleEvent"
	eventTypeName           = "randomevents.Event"
)

// --- Bound ---

func (b Bound) TypeName() string { return boundTypeName }

type boundEnvelope struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (b Bound) MarshalJSON() ([]byte, error) {
	return json.Marshal(boundEnvelope{Type: boundTypeName, Value: b.String()})
}

func boundFromString(s string) (Bound, error) {
	switch s {
	case "OPEN":
		return BoundOpen, nil
	case "CLOSED":
		return BoundClosed, nil
	default:
		return 0, &DeserializationError{Reason: fmt.Sprintf("invalid bound value %q", s)}
	}
}

func decodeBoundEnvelope(data json.RawMessage) (Entity, error) {
	var env boundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DeserializationError{Reason: err.Error()}
	}
	b, err := boundFromString(env.Value)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// --- SimpleInterval ---

func (s SimpleInterval) TypeName() string { return simpleIntervalTypeName }

// jsonFloat serializes a float64 the way encoding/json can't on its own:
// ±Inf as a sentinel string, everything else as a plain JSON number.
// Spec §6 requires infinite bounds to round-trip, and Reals()/RealLine()/
// any Complement() of a bounded interval produce them routinely.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	switch v := float64(f); {
	case math.IsInf(v, 1):
		return json.Marshal("+Inf")
	case math.IsInf(v, -1):
		return json.Marshal("-Inf")
	default:
		return json.Marshal(v)
	}
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "+Inf":
			*f = jsonFloat(math.Inf(1))
		case "-Inf":
			*f = jsonFloat(math.Inf(-1))
		default:
			return &DeserializationError{Reason: fmt.Sprintf("invalid float sentinel %q", s)}
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

type simpleIntervalEnvelope struct {
	Type  string    `json:"type"`
	Lower jsonFloat `json:"lower"`
	Upper jsonFloat `json:"upper"`
	Left  string    `json:"left"`
	Right string    `json:"right"`
}

func (s SimpleInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal(simpleIntervalEnvelope{
		Type:  simpleIntervalTypeName,
		Lower: jsonFloat(s.Lower),
		Upper: jsonFloat(s.Upper),
		Left:  s.Left.String(),
		Right: s.Right.String(),
	})
}

func decodeSimpleIntervalEnvelope(data json.RawMessage) (Entity, error) {
	var env simpleIntervalEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DeserializationError{Reason: err.Error()}
	}
	left, err := boundFromString(env.Left)
	if err != nil {
		return nil, err
	}
	right, err := boundFromString(env.Right)
	if err != nil {
		return nil, err
	}
	atom, err := newIntervalAtom(float64(env.Lower), float64(env.Upper), left, right)
	if err != nil {
		return nil, err
	}
	return atom, nil
}

// --- Interval ---

func (iv Interval) TypeName() string { return intervalTypeName }

type intervalEnvelope struct {
	Type  string           `json:"type"`
	Atoms []SimpleInterval `json:"atoms"`
}

func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalEnvelope{Type: intervalTypeName, Atoms: iv.Atoms()})
}

func decodeIntervalEnvelope(data json.RawMessage) (Entity, error) {
	var env struct {
		Atoms []json.RawMessage `json:"atoms"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DeserializationError{Reason: err.Error()}
	}
	atoms := make([]SimpleInterval, 0, len(env.Atoms))
	for _, raw := range env.Atoms {
		atom, err := decodeSimpleIntervalEnvelope(raw)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom.(SimpleInterval))
	}
	return NewInterval(atoms...), nil
}

// --- SymbolicElement[T] / SymbolicSet[T] ---
//
// MarshalJSON/TypeName are generic over T (Go allows a generic method
// receiver to stay generic; encoding/json marshals T's value via
// reflection regardless of what it is). Decoding, however, is
// registered through the non-generic Entity registry, so the
// registered decoders below fix T=string: the only ambient element
// type actually serialized is the one Assignment/Variable use
// (assignment.go fixes the symbolic domain to string at that layer).
// {value, content} with content the ambient's ordered list, per §6. A
// fresh *Ambient[string] is rebuilt from content on decode, so
// round-tripping two elements of the same original ambient separately
// yields two distinct (but value-equal) ambients; combining them
// afterwards would be an AmbientMismatch, matching a fresh-pointer
// ambient identity model. SymbolicSet.Equal alone accepts ambients with
// the same member list, so a decoded set still equals its original.

func (e SymbolicElement[T]) TypeName() string { return symbolicElementTypeName }

type symbolicElementEnvelope[T any] struct {
	Type    string `json:"type"`
	Value   T      `json:"value"`
	Content []T    `json:"content"`
}

func (e SymbolicElement[T]) MarshalJSON() ([]byte, error) {
	env := symbolicElementEnvelope[T]{Type: symbolicElementTypeName, Content: e.ambient.Values()}
	if !e.IsEmpty() {
		env.Value = e.Value()
	}
	return json.Marshal(env)
}

func decodeSymbolicElementEnvelope(data json.RawMessage) (Entity, error) {
	var env symbolicElementEnvelope[string]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DeserializationError{Reason: err.Error()}
	}
	ambient := NewAmbient(env.Content)
	return ambient.Element(env.Value)
}

func (s SymbolicSet[T]) TypeName() string { return symbolicSetTypeName }

type symbolicSetEnvelope[T any] struct {
	Type    string `json:"type"`
	Values  []T    `json:"values"`
	Content []T    `json:"content"`
}

func (s SymbolicSet[T]) MarshalJSON() ([]byte, error) {
	values := make([]T, 0, s.Len())
	for _, a := range s.Atoms() {
		values = append(values, a.Value())
	}
	return json.Marshal(symbolicSetEnvelope[T]{
		Type:    symbolicSetTypeName,
		Values:  values,
		Content: s.ambient.Values(),
	})
}

func decodeSymbolicSetEnvelope(data json.RawMessage) (Entity, error) {
	var env symbolicSetEnvelope[string]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DeserializationError{Reason: err.Error()}
	}
	ambient := NewAmbient(env.Content)
	set, err := NewSymbolicSet(ambient, env.Values...)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// --- Variable ---

func (v Variable) TypeName() string { return variableTypeName }

type variableEnvelope struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Content []string `json:"content,omitempty"`
}

func (v Variable) MarshalJSON() ([]byte, error) {
	env := variableEnvelope{Type: variableTypeName, Name: v.name, Kind: v.kind.String()}
	if v.kind == SymbolicKind {
		env.Content = v.ambient().Values()
	}
	return json.Marshal(env)
}

func decodeVariableEnvelope(data json.RawMessage) (Entity, error) {
	var env variableEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DeserializationError{Reason: err.Error()}
	}
	switch env.Kind {
	case "Continuous":
		return Continuous(env.Name), nil
	case "Integer":
		return Integer(env.Name), nil
	case "Symbolic":
		return Symbolic(env.Name, NewAmbient(env.Content)), nil
	default:
		return nil, &DeserializationError{Reason: fmt.Sprintf("unknown variable kind %q", env.Kind)}
	}
}

// --- SimpleEvent ---

func (e SimpleEvent) TypeName() string { return simpleEventTypeName }

// simpleEventAssignmentEnvelope holds both the Variable and its value
// as raw envelopes (not as typed struct fields): Variable/Interval/
// SymbolicSet all carry unexported fields, so they only round-trip
// through their own MarshalJSON/registry decoder, never through
// encoding/json's default struct reflection.
type simpleEventAssignmentEnvelope struct {
	Variable json.RawMessage `json:"variable"`
	Value    json.RawMessage `json:"value"`
}

type simpleEventEnvelope struct {
	Type        string                          `json:"type"`
	Assignments []simpleEventAssignmentEnvelope `json:"assignments"`
}

func (e SimpleEvent) MarshalJSON() ([]byte, error) {
	entries := make([]simpleEventAssignmentEnvelope, 0, len(e.entries))
	for _, entry := range e.entries {
		varRaw, err := json.Marshal(entry.variable)
		if err != nil {
			return nil, err
		}
		valRaw, err := marshalAssignment(entry.value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, simpleEventAssignmentEnvelope{Variable: varRaw, Value: valRaw})
	}
	return json.Marshal(simpleEventEnvelope{Type: simpleEventTypeName, Assignments: entries})
}

func marshalAssignment(a Assignment) (json.RawMessage, error) {
	switch a.Kind() {
	case ContinuousKind, IntegerKind:
		return json.Marshal(asInterval(a).Interval)
	case SymbolicKind:
		return json.Marshal(asSymbolic(a).SymbolicSet)
	default:
		return nil, &DeserializationError{Reason: "assignment has unknown kind"}
	}
}

func unmarshalAssignment(kind VariableKind, raw json.RawMessage) (Assignment, error) {
	entity, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ContinuousKind, IntegerKind:
		iv, ok := entity.(Interval)
		if !ok {
			return nil, &DeserializationError{Reason: "expected an Interval assignment"}
		}
		return NewIntervalAssignment(iv), nil
	case SymbolicKind:
		s, ok := entity.(SymbolicSet[string])
		if !ok {
			return nil, &DeserializationError{Reason: "expected a SymbolicSet assignment"}
		}
		return NewSymbolicAssignment(s), nil
	default:
		return nil, &DeserializationError{Reason: "variable has unknown kind"}
	}
}

func decodeSimpleEventEnvelope(data json.RawMessage) (Entity, error) {
	var env simpleEventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DeserializationError{Reason: err.Error()}
	}
	assignments := make(map[Variable]Assignment, len(env.Assignments))
	for _, entry := range env.Assignments {
		variable, err := decodeVariable(entry.Variable)
		if err != nil {
			return nil, err
		}
		value, err := unmarshalAssignment(variable.Kind(), entry.Value)
		if err != nil {
			return nil, err
		}
		assignments[variable] = value
	}
	return NewSimpleEvent(assignments), nil
}

func decodeVariable(raw json.RawMessage) (Variable, error) {
	entity, err := Decode(raw)
	if err != nil {
		return Variable{}, err
	}
	v, ok := entity.(Variable)
	if !ok {
		return Variable{}, &DeserializationError{Reason: "expected a Variable"}
	}
	return v, nil
}

func decodeSimpleEvent(raw json.RawMessage) (SimpleEvent, error) {
	entity, err := Decode(raw)
	if err != nil {
		return SimpleEvent{}, err
	}
	e, ok := entity.(SimpleEvent)
	if !ok {
		return SimpleEvent{}, &DeserializationError{Reason: "expected a SimpleEvent"}
	}
	return e, nil
}

// --- Event ---

func (ev Event) TypeName() string { return eventTypeName }

type eventEnvelope struct {
	Type       string            `json:"type"`
	Variables  []json.RawMessage `json:"variables"`
	Components []json.RawMessage `json:"components"`
}

func (ev Event) MarshalJSON() ([]byte, error) {
	variables := make([]json.RawMessage, 0, len(ev.keys))
	for _, v := range ev.keys {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		variables = append(variables, raw)
	}
	components := make([]json.RawMessage, 0, len(ev.set.atoms))
	for _, c := range ev.set.atoms {
		raw, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		components = append(components, raw)
	}
	return json.Marshal(eventEnvelope{Type: eventTypeName, Variables: variables, Components: components})
}

func decodeEventEnvelope(data json.RawMessage) (Entity, error) {
	var env eventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &DeserializationError{Reason: err.Error()}
	}
	components := make([]SimpleEvent, 0, len(env.Components))
	for _, raw := range env.Components {
		c, err := decodeSimpleEvent(raw)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return NewEvent(components...), nil
}
