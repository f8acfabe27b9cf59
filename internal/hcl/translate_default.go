// This file converts HCL default expressions into raw default trees. Object
// constructors are walked item by item instead of evaluated, since cty
// objects forget the order their keys were written in.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// refRoot is the traversal root that marks a reference to a sibling
// property, as in `default = property.sections_enabled`.
const refRoot = "property"

// defaultExprToRaw converts a default expression into a raw default tree.
func defaultExprToRaw(ctx context.Context, expr hcl.Expression) (*config.RawValue, error) {
	rng := expr.Range()

	switch e := expr.(type) {
	case *hclsyntax.ParenthesesExpr:
		return defaultExprToRaw(ctx, e.Expression)

	case *hclsyntax.TupleConsExpr:
		raw := &config.RawValue{Kind: config.RawList, Range: rng}
		for i, item := range e.Exprs {
			child, err := defaultExprToRaw(ctx, item)
			if err != nil {
				return nil, fmt.Errorf("in list element %d: %w", i, err)
			}
			raw.Items = append(raw.Items, child)
		}
		return raw, nil

	case *hclsyntax.ObjectConsExpr:
		raw := &config.RawValue{Kind: config.RawObject, Range: rng}
		for _, item := range e.Items {
			key, err := objectKey(item.KeyExpr)
			if err != nil {
				return nil, err
			}
			child, err := defaultExprToRaw(ctx, item.ValueExpr)
			if err != nil {
				return nil, fmt.Errorf("in key '%s': %w", key, err)
			}
			raw.Entries = append(raw.Entries, &config.RawEntry{Key: key, Value: child, Range: item.KeyExpr.Range()})
		}
		return raw, nil

	case *hclsyntax.ScopeTraversalExpr:
		if e.Traversal.RootName() != refRoot || len(e.Traversal) != 2 {
			return nil, fmt.Errorf("unsupported reference %q: defaults may only reference %s.<name>", traversalString(e.Traversal), refRoot)
		}
		attr, ok := e.Traversal[1].(hcl.TraverseAttr)
		if !ok {
			return nil, fmt.Errorf("unsupported reference %q: expected %s.<name>", traversalString(e.Traversal), refRoot)
		}
		ctxlog.FromContext(ctx).Debug("Parsed default reference.", "property", attr.Name)
		return &config.RawValue{Kind: config.RawRef, Ref: attr.Name, Range: rng}, nil
	}

	// Literals, quoted strings and negated numbers are all constant.
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("default must be a constant value: %w", diags)
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("default must be a constant value")
	}
	return config.FromCty(val, rng), nil
}

// objectKey extracts the key of an object constructor item. Keys are either
// bare identifiers or quoted strings.
func objectKey(expr hcl.Expression) (string, error) {
	if keyExpr, ok := expr.(*hclsyntax.ObjectConsKeyExpr); ok {
		switch kexpr := keyExpr.Wrapped.(type) {
		case *hclsyntax.ScopeTraversalExpr:
			if len(kexpr.Traversal) == 1 {
				return kexpr.Traversal.RootName(), nil
			}
		case *hclsyntax.TemplateExpr:
			if len(kexpr.Parts) == 1 {
				if lit, isLit := kexpr.Parts[0].(*hclsyntax.LiteralValueExpr); isLit && lit.Val.Type().Equals(cty.String) {
					return lit.Val.AsString(), nil
				}
			}
		case *hclsyntax.LiteralValueExpr:
			// Bare `true`, `false` and numbers used as keys.
			if str, err := convertKey(kexpr.Val); err == nil {
				return str, nil
			}
		}
	}
	return "", fmt.Errorf("invalid key in default object at %s: keys must be simple identifiers or quoted strings", expr.Range())
}

func convertKey(v cty.Value) (string, error) {
	if v.IsNull() || !v.IsKnown() {
		return "", fmt.Errorf("null key")
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case cty.Bool:
		if v.True() {
			return "true", nil
		}
		return "false", nil
	}
	return "", fmt.Errorf("unsupported key type %s", v.Type().FriendlyName())
}

func traversalString(t hcl.Traversal) string {
	s := t.RootName()
	for _, step := range t[1:] {
		switch st := step.(type) {
		case hcl.TraverseAttr:
			s += "." + st.Name
		case hcl.TraverseIndex:
			s += "[...]"
		}
	}
	return s
}
