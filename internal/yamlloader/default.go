package yamlloader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/fmlgen/internal/config"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// refTag marks a scalar as a reference to a sibling property, as in
// `default: !ref sections_enabled`.
const refTag = "!ref"

// defaultNodeToRaw converts a YAML default node into a raw default tree,
// keeping mapping order.
func (t *translator) defaultNodeToRaw(n *yaml.Node) (*config.RawValue, error) {
	rng := t.rangeOf(n)

	switch n.Kind {
	case yaml.AliasNode:
		return t.defaultNodeToRaw(n.Alias)

	case yaml.SequenceNode:
		raw := &config.RawValue{Kind: config.RawList, Range: rng}
		for i, item := range n.Content {
			child, err := t.defaultNodeToRaw(item)
			if err != nil {
				return nil, fmt.Errorf("in list element %d: %w", i, err)
			}
			raw.Items = append(raw.Items, child)
		}
		return raw, nil

	case yaml.MappingNode:
		raw := &config.RawValue{Kind: config.RawObject, Range: rng}
		for i := 0; i < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: keys in a default object must be scalars", key.Line)
			}
			child, err := t.defaultNodeToRaw(val)
			if err != nil {
				return nil, fmt.Errorf("in key '%s': %w", key.Value, err)
			}
			raw.Entries = append(raw.Entries, &config.RawEntry{Key: key.Value, Value: child, Range: t.rangeOf(key)})
		}
		return raw, nil

	case yaml.ScalarNode:
		return t.scalarToRaw(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func (t *translator) scalarToRaw(n *yaml.Node) (*config.RawValue, error) {
	rng := t.rangeOf(n)
	scalar := func(v cty.Value) (*config.RawValue, error) {
		return &config.RawValue{Kind: config.RawScalar, Scalar: v, Range: rng}, nil
	}

	switch n.Tag {
	case refTag:
		name := strings.TrimSpace(n.Value)
		if name == "" {
			return nil, fmt.Errorf("line %d: %s needs a property name", n.Line, refTag)
		}
		return &config.RawValue{Kind: config.RawRef, Ref: name, Range: rng}, nil
	}

	switch n.ShortTag() {
	case "!!null":
		return &config.RawValue{Kind: config.RawNull, Range: rng}, nil
	case "!!str":
		return scalar(cty.StringVal(n.Value))
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return scalar(cty.BoolVal(b))
	case "!!int":
		digits := strings.ReplaceAll(n.Value, "_", "")
		if v, err := cty.ParseNumberVal(digits); err == nil {
			return scalar(v)
		}
		// Hex, octal and binary forms.
		i, err := strconv.ParseInt(digits, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid integer %q", n.Line, n.Value)
		}
		return scalar(cty.NumberIntVal(i))
	case "!!float":
		v, err := cty.ParseNumberVal(strings.ReplaceAll(n.Value, "_", ""))
		if err != nil {
			return nil, fmt.Errorf("line %d: unsupported number %q", n.Line, n.Value)
		}
		return scalar(v)
	}
	return nil, fmt.Errorf("line %d: unsupported tag %s", n.Line, n.Tag)
}
