package types

import (
	"fmt"
	"strings"
)

// TypeRef is a node in the type model. The set of implementations is closed:
// Primitive, Enum, Optional, List, Map, Record and the loader-only Named.
type TypeRef interface {
	// FriendlyName returns the manifest spelling of the type, e.g. `map(Section, bool)`.
	FriendlyName() string
	typeRef()
}

// Kind identifies a primitive type.
type Kind int

const (
	Bool Kind = iota
	Int
	Float
	String
	// Text is a user-visible string that may be a localized resource reference.
	Text
	// Image is a named drawable resource.
	Image
)

var kindNames = map[Kind]string{
	Bool:   "bool",
	Int:    "int",
	Float:  "float",
	String: "string",
	Text:   "text",
	Image:  "image",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindByName maps a manifest keyword to its primitive kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Primitive is a scalar type.
type Primitive struct {
	Kind Kind
}

func (Primitive) typeRef() {}

func (p Primitive) FriendlyName() string { return p.Kind.String() }

// Enum is an enumeration; its values are enum-literal primitives.
type Enum struct {
	Name     string
	Variants []string
}

func (*Enum) typeRef() {}

func (e *Enum) FriendlyName() string { return e.Name }

// HasVariant reports whether v is one of the enum's variants.
func (e *Enum) HasVariant(v string) bool {
	for _, variant := range e.Variants {
		if variant == v {
			return true
		}
	}
	return false
}

// Optional is optional-of(Inner).
type Optional struct {
	Inner TypeRef
}

func (Optional) typeRef() {}

func (o Optional) FriendlyName() string {
	return fmt.Sprintf("optional(%s)", o.Inner.FriendlyName())
}

// List is list-of(Elem).
type List struct {
	Elem TypeRef
}

func (List) typeRef() {}

func (l List) FriendlyName() string {
	return fmt.Sprintf("list(%s)", l.Elem.FriendlyName())
}

// Map is map-of(Key, Value).
type Map struct {
	Key   TypeRef
	Value TypeRef
}

func (Map) typeRef() {}

func (m Map) FriendlyName() string {
	return fmt.Sprintf("map(%s, %s)", m.Key.FriendlyName(), m.Value.FriendlyName())
}

// Field is a single named member of a Record.
type Field struct {
	Name string
	Type TypeRef
}

// Record is record-of(fields). Records are shared by pointer so that the
// linker can fill Fields after every record name is known.
type Record struct {
	Name   string
	Fields []*Field
}

func (*Record) typeRef() {}

func (r *Record) FriendlyName() string { return r.Name }

// Field returns the field with the given name.
func (r *Record) Field(name string) (*Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FieldNames lists the record's fields in declaration order.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Named is an unresolved reference to an enum or record definition. Loaders
// produce it and config.Link replaces it; it never reaches the resolver.
type Named struct {
	Name string
}

func (Named) typeRef() {}

func (n Named) FriendlyName() string { return n.Name }

// Equal reports whether two types are structurally identical. Enums and
// records compare by name since definitions are unique per manifest.
func Equal(a, b TypeRef) bool {
	switch at := a.(type) {
	case Primitive:
		bt, ok := b.(Primitive)
		return ok && at.Kind == bt.Kind
	case *Enum:
		bt, ok := b.(*Enum)
		return ok && at.Name == bt.Name
	case Optional:
		bt, ok := b.(Optional)
		return ok && Equal(at.Inner, bt.Inner)
	case List:
		bt, ok := b.(List)
		return ok && Equal(at.Elem, bt.Elem)
	case Map:
		bt, ok := b.(Map)
		return ok && Equal(at.Key, bt.Key) && Equal(at.Value, bt.Value)
	case *Record:
		bt, ok := b.(*Record)
		return ok && at.Name == bt.Name
	case Named:
		bt, ok := b.(Named)
		return ok && at.Name == bt.Name
	}
	return false
}

// Walk calls fn for t and every type nested inside it, depth first. Record
// fields are not descended into; callers that need them walk each field.
func Walk(t TypeRef, fn func(TypeRef)) {
	fn(t)
	switch tt := t.(type) {
	case Optional:
		Walk(tt.Inner, fn)
	case List:
		Walk(tt.Elem, fn)
	case Map:
		Walk(tt.Key, fn)
		Walk(tt.Value, fn)
	}
}

// Describe renders a record with its fields, for diagnostics and listings.
func Describe(t TypeRef) string {
	r, ok := t.(*Record)
	if !ok {
		return t.FriendlyName()
	}
	parts := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Name, f.Type.FriendlyName()))
	}
	return fmt.Sprintf("%s{%s}", r.Name, strings.Join(parts, ", "))
}
