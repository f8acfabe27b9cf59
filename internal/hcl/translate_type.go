// This file contains the logic for parsing HCL type expressions (e.g., `text`,
// `map(Section, bool)`) into the manifest type model.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/fmlgen/internal/ctxlog"
	"github.com/vk/fmlgen/internal/types"
)

// ParseTypeString parses a type written in the manifest type grammar. The
// YAML loader uses it so both formats share one grammar.
func ParseTypeString(ctx context.Context, src, filename string, start hcl.Pos) (types.TypeRef, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), filename, start)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid type %q: %w", src, diags)
	}
	return ParseTypeExpr(ctx, expr)
}

// ParseTypeExpr converts an HCL type expression into its TypeRef. Names that
// are not primitive keywords become types.Named for config.Link to bind.
func ParseTypeExpr(ctx context.Context, expr hcl.Expression) (types.TypeRef, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return nil, fmt.Errorf("missing type")
	}

	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a type constructor.", "call", v.Name)

		var want int
		switch v.Name {
		case "optional", "list":
			want = 1
		case "map":
			want = 2
		default:
			return nil, fmt.Errorf("unknown type constructor function %q", v.Name)
		}
		if len(v.Args) != want {
			return nil, fmt.Errorf("the %s() type constructor requires exactly %d argument(s), got %d", v.Name, want, len(v.Args))
		}

		args := make([]types.TypeRef, 0, len(v.Args))
		for _, arg := range v.Args {
			t, err := ParseTypeExpr(ctx, arg)
			if err != nil {
				return nil, err
			}
			args = append(args, t)
		}

		switch v.Name {
		case "optional":
			return types.Optional{Inner: args[0]}, nil
		case "list":
			return types.List{Elem: args[0]}, nil
		case "map":
			return types.Map{Key: args[0], Value: args[1]}, nil
		default:
			return nil, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return nil, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		if kind, ok := types.KindByName(rootName); ok {
			logger.Debug("Parsed primitive type.", "keyword", rootName)
			return types.Primitive{Kind: kind}, nil
		}
		logger.Debug("Parsed named type.", "name", rootName)
		return types.Named{Name: rootName}, nil

	default:
		return nil, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}
