package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// About names the generated registry object.
type About struct {
	ObjectName  string `hcl:"object_name"`
	Package     string `hcl:"package,optional"`
	Description string `hcl:"description,optional"`
}

// EnumDefinition represents an `enum` block.
type EnumDefinition struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Variants    []string `hcl:"variants"`
}

// PropertyDefinition represents a `property` block of a feature or a
// `field` block of an object. Type and Default stay expressions so the
// loader can walk them in source order.
type PropertyDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

// ObjectDefinition represents an `object` block, the definition behind a
// record type.
type ObjectDefinition struct {
	Name        string                `hcl:"name,label"`
	Description string                `hcl:"description,optional"`
	Fields      []*PropertyDefinition `hcl:"field,block"`
}

// FeatureDefinition represents a `feature` block.
type FeatureDefinition struct {
	Name        string                `hcl:"name,label"`
	Description string                `hcl:"description,optional"`
	ClassName   string                `hcl:"class_name,optional"`
	Properties  []*PropertyDefinition `hcl:"property,block"`
}

// ManifestFile represents the top-level structure of a manifest file.
type ManifestFile struct {
	About    *About               `hcl:"about,block"`
	Enums    []*EnumDefinition    `hcl:"enum,block"`
	Objects  []*ObjectDefinition  `hcl:"object,block"`
	Features []*FeatureDefinition `hcl:"feature,block"`
}
