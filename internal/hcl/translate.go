// This file contains the logic for translating HCL schema structs into the
// format-agnostic manifest model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/ctxlog"
	"github.com/vk/fmlgen/internal/schema"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expression fields with
// zero-width placeholder expressions, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// translateProperty processes a single `property` or `field` block, parsing
// its type and its default expression.
func translateProperty(ctx context.Context, in *schema.PropertyDefinition, ownerKind, ownerName string) (*config.PropertyDefinition, error) {
	parsedType, err := ParseTypeExpr(ctx, in.Type)
	if err != nil {
		return nil, fmt.Errorf("in %s '%s', property '%s': %w", ownerKind, ownerName, in.Name, err)
	}

	var rawDefault *config.RawValue
	if isExprDefined(ctx, in.Default, in.Name+".default") {
		rawDefault, err = defaultExprToRaw(ctx, in.Default)
		if err != nil {
			return nil, fmt.Errorf("invalid default value for property '%s' in %s '%s': %w", in.Name, ownerKind, ownerName, err)
		}
	}

	return &config.PropertyDefinition{
		Name:        in.Name,
		Description: in.Description,
		Type:        parsedType,
		RawDefault:  rawDefault,
		Range:       in.Type.Range(),
	}, nil
}

// translateFeature converts a `feature` block into the agnostic model.
func translateFeature(ctx context.Context, s *schema.FeatureDefinition) (*config.FeatureDefinition, error) {
	f := &config.FeatureDefinition{
		Name:        s.Name,
		Description: s.Description,
		ClassName:   s.ClassName,
	}
	seen := make(map[string]struct{})
	for _, p := range s.Properties {
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("in feature '%s': property '%s' is declared more than once", s.Name, p.Name)
		}
		seen[p.Name] = struct{}{}

		prop, err := translateProperty(ctx, p, "feature", s.Name)
		if err != nil {
			return nil, err
		}
		f.Properties = append(f.Properties, prop)
	}
	return f, nil
}

// translateObject converts an `object` block into the agnostic model.
func translateObject(ctx context.Context, s *schema.ObjectDefinition) (*config.ObjectDefinition, error) {
	o := &config.ObjectDefinition{
		Name:        s.Name,
		Description: s.Description,
	}
	seen := make(map[string]struct{})
	for _, fld := range s.Fields {
		if _, dup := seen[fld.Name]; dup {
			return nil, fmt.Errorf("in object '%s': field '%s' is declared more than once", s.Name, fld.Name)
		}
		seen[fld.Name] = struct{}{}

		field, err := translateProperty(ctx, fld, "object", s.Name)
		if err != nil {
			return nil, err
		}
		o.Fields = append(o.Fields, field)
	}
	return o, nil
}

// translateEnum converts an `enum` block into the agnostic model.
func translateEnum(s *schema.EnumDefinition) (*config.EnumDefinition, error) {
	if len(s.Variants) == 0 {
		return nil, fmt.Errorf("enum '%s' declares no variants", s.Name)
	}
	seen := make(map[string]struct{})
	for _, v := range s.Variants {
		if _, dup := seen[v]; dup {
			return nil, fmt.Errorf("enum '%s': variant '%s' is declared more than once", s.Name, v)
		}
		seen[v] = struct{}{}
	}
	return &config.EnumDefinition{
		Name:        s.Name,
		Description: s.Description,
		Variants:    s.Variants,
	}, nil
}
