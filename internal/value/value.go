// Package value holds resolved default values. A Value mirrors the shape of
// the TypeRef it was resolved against and is immutable once built.
package value

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Value is a resolved default. Implementations: Null, Scalar, EnumCase,
// List, Map and Record.
type Value interface {
	// GoString renders the value for diagnostics and the `list` command.
	GoString() string
	value()
}

// Null is an absent optional value.
type Null struct{}

func (Null) value() {}

func (Null) GoString() string { return "null" }

// Scalar wraps a known, non-null cty bool, number or string.
type Scalar struct {
	V cty.Value
}

func (Scalar) value() {}

func (s Scalar) GoString() string {
	switch s.V.Type() {
	case cty.String:
		return fmt.Sprintf("%q", s.V.AsString())
	case cty.Number:
		if f := s.V.AsBigFloat(); f.IsInt() {
			return f.Text('f', 0)
		}
		return s.V.AsBigFloat().Text('g', -1)
	case cty.Bool:
		if s.V.True() {
			return "true"
		}
		return "false"
	}
	return s.V.GoString()
}

// String builds a string scalar.
func String(s string) Scalar { return Scalar{V: cty.StringVal(s)} }

// Bool builds a bool scalar.
func Bool(b bool) Scalar { return Scalar{V: cty.BoolVal(b)} }

// Int builds an integer scalar.
func Int(n int64) Scalar { return Scalar{V: cty.NumberIntVal(n)} }

// EnumCase is a single variant of an enum.
type EnumCase struct {
	Variant string
}

func (EnumCase) value() {}

func (e EnumCase) GoString() string { return e.Variant }

// List holds items in manifest order.
type List struct {
	Items []Value
}

func (List) value() {}

func (l List) GoString() string {
	parts := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		parts = append(parts, item.GoString())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Value
	Value Value
}

// Map keeps its entries in manifest declaration order; it is never sorted.
type Map struct {
	Entries []Entry
}

func (Map) value() {}

func (m Map) GoString() string {
	parts := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		parts = append(parts, e.Key.GoString()+": "+e.Value.GoString())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FieldValue binds a record field to its value.
type FieldValue struct {
	Name  string
	Value Value
}

// Record holds one value per record field, in the record's declaration order.
type Record struct {
	Fields []FieldValue
}

func (Record) value() {}

func (r Record) GoString() string {
	parts := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		parts = append(parts, f.Name+" = "+f.Value.GoString())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Field returns the value bound to the named field.
func (r Record) Field(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}
