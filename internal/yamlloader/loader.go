package yamlloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/ctxlog"
	hcltypes "github.com/vk/fmlgen/internal/hcl"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of the config.FileLoader interface.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.FileLoader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// manifestFile is the top level of a YAML manifest. The definition sections
// stay as nodes so their declaration order survives decoding.
type manifestFile struct {
	About    *aboutFile `yaml:"about"`
	Enums    yaml.Node  `yaml:"enums"`
	Objects  yaml.Node  `yaml:"objects"`
	Features yaml.Node  `yaml:"features"`
}

type aboutFile struct {
	ObjectName  string `yaml:"object_name"`
	Package     string `yaml:"package"`
	Description string `yaml:"description"`
}

type enumFile struct {
	Description string   `yaml:"description"`
	Variants    []string `yaml:"variants"`
}

type objectFile struct {
	Description string    `yaml:"description"`
	Fields      yaml.Node `yaml:"fields"`
}

type featureFile struct {
	Description string    `yaml:"description"`
	ClassName   string    `yaml:"class_name"`
	Properties  yaml.Node `yaml:"properties"`
}

type propertyFile struct {
	Description string    `yaml:"description"`
	Type        yaml.Node `yaml:"type"`
	Default     yaml.Node `yaml:"default"`
}

// LoadFile parses a single YAML manifest file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx).With("file", path)
	logger.Debug("Parsing YAML manifest.")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var root manifestFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	t := &translator{ctx: ctx, file: path}
	m := &config.Manifest{}
	if root.About != nil {
		m.About = config.About{
			ObjectName:  root.About.ObjectName,
			Package:     root.About.Package,
			Description: root.About.Description,
		}
	}

	err = eachPair(&root.Enums, "enums", func(name string, node *yaml.Node) error {
		var e enumFile
		if err := t.decodeStrict(node, &e, "description", "variants"); err != nil {
			return fmt.Errorf("in enum '%s': %w", name, err)
		}
		if len(e.Variants) == 0 {
			return fmt.Errorf("enum '%s' declares no variants", name)
		}
		seen := make(map[string]struct{})
		for _, v := range e.Variants {
			if _, dup := seen[v]; dup {
				return fmt.Errorf("enum '%s': variant '%s' is declared more than once", name, v)
			}
			seen[v] = struct{}{}
		}
		m.Enums = append(m.Enums, &config.EnumDefinition{
			Name: name, Description: e.Description, Variants: e.Variants, Range: t.rangeOf(node),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	err = eachPair(&root.Objects, "objects", func(name string, node *yaml.Node) error {
		var o objectFile
		if err := t.decodeStrict(node, &o, "description", "fields"); err != nil {
			return fmt.Errorf("in object '%s': %w", name, err)
		}
		fields, err := t.properties(&o.Fields, "object", name)
		if err != nil {
			return err
		}
		m.Objects = append(m.Objects, &config.ObjectDefinition{
			Name: name, Description: o.Description, Fields: fields, Range: t.rangeOf(node),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	err = eachPair(&root.Features, "features", func(name string, node *yaml.Node) error {
		var f featureFile
		if err := t.decodeStrict(node, &f, "description", "class_name", "properties"); err != nil {
			return fmt.Errorf("in feature '%s': %w", name, err)
		}
		props, err := t.properties(&f.Properties, "feature", name)
		if err != nil {
			return err
		}
		m.Features = append(m.Features, &config.FeatureDefinition{
			Name: name, Description: f.Description, ClassName: f.ClassName, Properties: props, Range: t.rangeOf(node),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("YAML manifest translated.", "enums", len(m.Enums), "objects", len(m.Objects), "features", len(m.Features))
	return m, nil
}

// translator carries the per-file state needed to build ranges and parse
// type expressions.
type translator struct {
	ctx  context.Context
	file string
}

func (t *translator) rangeOf(n *yaml.Node) hcl.Range {
	pos := hcl.Pos{Line: n.Line, Column: n.Column}
	return hcl.Range{Filename: t.file, Start: pos, End: pos}
}

// decodeStrict decodes a mapping node into out after rejecting keys that are
// not listed in allowed.
func (t *translator) decodeStrict(n *yaml.Node, out any, allowed ...string) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i]
		known := false
		for _, a := range allowed {
			if key.Value == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
	}
	return n.Decode(out)
}

func (t *translator) properties(section *yaml.Node, ownerKind, ownerName string) ([]*config.PropertyDefinition, error) {
	var props []*config.PropertyDefinition
	err := eachPair(section, "properties", func(name string, node *yaml.Node) error {
		var p propertyFile
		if err := t.decodeStrict(node, &p, "description", "type", "default"); err != nil {
			return fmt.Errorf("in %s '%s', property '%s': %w", ownerKind, ownerName, name, err)
		}
		if p.Type.Kind != yaml.ScalarNode || p.Type.Value == "" {
			return fmt.Errorf("in %s '%s', property '%s': missing type", ownerKind, ownerName, name)
		}
		start := hcl.Pos{Line: p.Type.Line, Column: p.Type.Column}
		parsedType, err := hcltypes.ParseTypeString(t.ctx, p.Type.Value, t.file, start)
		if err != nil {
			return fmt.Errorf("in %s '%s', property '%s': %w", ownerKind, ownerName, name, err)
		}

		var raw *config.RawValue
		if p.Default.Kind != 0 {
			raw, err = t.defaultNodeToRaw(&p.Default)
			if err != nil {
				return fmt.Errorf("invalid default value for property '%s' in %s '%s': %w", name, ownerKind, ownerName, err)
			}
		}

		props = append(props, &config.PropertyDefinition{
			Name:        name,
			Description: p.Description,
			Type:        parsedType,
			RawDefault:  raw,
			Range:       t.rangeOf(&p.Type),
		})
		return nil
	})
	return props, err
}

// eachPair walks a mapping node in document order. An absent section is
// empty; duplicate keys are rejected.
func eachPair(n *yaml.Node, what string, fn func(key string, value *yaml.Node) error) error {
	if n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null") {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %s must be a mapping", n.Line, what)
	}
	seen := make(map[string]struct{})
	for i := 0; i < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if _, dup := seen[key.Value]; dup {
			return fmt.Errorf("line %d: %s: '%s' is declared more than once", key.Line, what, key.Value)
		}
		seen[key.Value] = struct{}{}
		if err := fn(key.Value, val); err != nil {
			return err
		}
	}
	return nil
}
