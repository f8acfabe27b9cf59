package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/fmlgen/internal/types"
	"github.com/vk/fmlgen/internal/value"
)

// Manifest is the unified, format-agnostic representation of every loaded
// manifest file: the generated registry's naming metadata plus the enum,
// object and feature definitions in declaration order.
type Manifest struct {
	About    About
	Enums    []*EnumDefinition
	Objects  []*ObjectDefinition
	Features []*FeatureDefinition
}

// About carries the naming metadata backends need for the generated registry.
type About struct {
	ObjectName  string
	Package     string
	Description string
	Range       hcl.Range
}

// EnumDefinition is the format-agnostic representation of an `enum` block.
type EnumDefinition struct {
	Name        string
	Description string
	Variants    []string
	Range       hcl.Range
}

// ObjectDefinition is the format-agnostic representation of an `object`
// block. Its fields seed the default of every record of this type.
type ObjectDefinition struct {
	Name        string
	Description string
	Fields      []*PropertyDefinition
	Range       hcl.Range
}

// FeatureDefinition is the format-agnostic representation of a `feature` block.
type FeatureDefinition struct {
	Name        string
	Description string
	// ClassName overrides the backend's class naming for the constructor.
	ClassName  string
	Properties []*PropertyDefinition
	Range      hcl.Range
}

// PropertyDefinition defines a single typed, defaulted property of a feature
// or a field of an object.
type PropertyDefinition struct {
	Name        string
	Description string
	Type        types.TypeRef
	RawDefault  *RawValue   // nil when the manifest gives no default
	Default     value.Value // set by the resolver on a resolved copy
	Range       hcl.Range
}

// Enum returns the enum definition with the given name.
func (m *Manifest) Enum(name string) (*EnumDefinition, bool) {
	for _, e := range m.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Object returns the object definition with the given name.
func (m *Manifest) Object(name string) (*ObjectDefinition, bool) {
	for _, o := range m.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// Feature returns the feature definition with the given name.
func (m *Manifest) Feature(name string) (*FeatureDefinition, bool) {
	for _, f := range m.Features {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Property returns the property with the given name.
func (f *FeatureDefinition) Property(name string) (*PropertyDefinition, bool) {
	return findProperty(f.Properties, name)
}

// Field returns the object field with the given name.
func (o *ObjectDefinition) Field(name string) (*PropertyDefinition, bool) {
	return findProperty(o.Fields, name)
}

func findProperty(props []*PropertyDefinition, name string) (*PropertyDefinition, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}
