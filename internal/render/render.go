package render

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vk/fmlgen/internal/backend"
	"github.com/vk/fmlgen/internal/diag"
	"github.com/vk/fmlgen/internal/types"
	"github.com/vk/fmlgen/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// textResourcePrefix marks a text default that names a string resource.
const textResourcePrefix = "@string/"

// imageResourcePrefix may precede the drawable name of an image default.
const imageResourcePrefix = "@drawable/"

// Context holds the two free variables every rendered literal may use: the
// accessor of the configuration provider in scope, and the enclosing runtime
// context used for resources and qualification. It is passed by value.
type Context struct {
	Accessor string
	Context  string
}

// Root returns the context a feature constructor is rendered in.
func Root(b backend.Backend) Context {
	accessor, context := b.Root()
	return Context{Accessor: accessor, Context: context}
}

// Within derives the context a nested field is rendered in; its accessor is
// scoped to the field.
func (c Context) Within(b backend.Backend, name string) Context {
	return Context{Accessor: b.Subscope(c.Accessor, name), Context: c.Context}
}

// Renderer converts resolved values into literals of one target language.
type Renderer struct {
	backend backend.Backend
}

// New creates a Renderer for b.
func New(b backend.Backend) *Renderer {
	return &Renderer{backend: b}
}

// Render converts v into a literal of type t. Dispatch is on t alone; v is
// only read in the shape t demands, and any other shape is an error rather
// than a guess. path names the property for diagnostics.
func (r *Renderer) Render(path string, v value.Value, t types.TypeRef, ctx Context) (string, error) {
	switch tt := t.(type) {
	case types.Optional:
		if _, absent := v.(value.Null); absent {
			return r.backend.Null(), nil
		}
		return r.Render(path, v, tt.Inner, ctx)

	case types.Primitive:
		return r.primitive(path, v, tt, ctx)

	case *types.Enum:
		ec, ok := v.(value.EnumCase)
		if !ok {
			return "", shapeError(path, t, v)
		}
		return r.backend.EnumCase(ctx.Context, tt.Name, ec.Variant), nil

	case types.List:
		lv, ok := v.(value.List)
		if !ok {
			return "", shapeError(path, t, v)
		}
		items := make([]string, 0, len(lv.Items))
		for i, item := range lv.Items {
			s, err := r.Render(fmt.Sprintf("%s[%d]", path, i), item, tt.Elem, ctx)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return r.backend.List(items), nil

	case types.Map:
		if !mapKeySupported(tt.Key) {
			return "", &diag.UnsupportedTypeError{
				Path:    path,
				Type:    t.FriendlyName(),
				Backend: r.backend.Name(),
				Reason:  "map keys must be string, text or an enum",
			}
		}
		mv, ok := v.(value.Map)
		if !ok {
			return "", shapeError(path, t, v)
		}
		entries := make([]backend.MapEntry, 0, len(mv.Entries))
		for _, e := range mv.Entries {
			entryPath := fmt.Sprintf("%s[%s]", path, e.Key.GoString())
			key, err := r.Render(entryPath, e.Key, tt.Key, ctx)
			if err != nil {
				return "", err
			}
			val, err := r.Render(entryPath, e.Value, tt.Value, ctx)
			if err != nil {
				return "", err
			}
			entries = append(entries, backend.MapEntry{Key: key, Value: val})
		}
		return r.backend.Map(entries), nil

	case *types.Record:
		rv, ok := v.(value.Record)
		if !ok {
			return "", shapeError(path, t, v)
		}
		args, err := r.Arguments(path, rv, tt, ctx)
		if err != nil {
			return "", err
		}
		return r.backend.Record(r.backend.ClassName(tt.Name), ctx.Accessor, args), nil
	}

	return "", &diag.UnsupportedTypeError{Path: path, Type: t.FriendlyName(), Backend: r.backend.Name(), Reason: "no rendering rule"}
}

// Check reports the first part of t the backend has no rendering rule for,
// whatever value the property holds. Record fields are checked recursively.
func (r *Renderer) Check(path string, t types.TypeRef) error {
	var err error
	types.Walk(t, func(n types.TypeRef) {
		if err != nil {
			return
		}
		switch nt := n.(type) {
		case types.Primitive:
			if nt.Kind != types.Image {
				return
			}
			if _, ok := r.backend.Image("", ""); !ok {
				err = &diag.UnsupportedTypeError{Path: path, Type: t.FriendlyName(), Backend: r.backend.Name(), Reason: "images are not available"}
			}
		case types.Map:
			if !mapKeySupported(nt.Key) {
				err = &diag.UnsupportedTypeError{Path: path, Type: t.FriendlyName(), Backend: r.backend.Name(), Reason: "map keys must be string, text or an enum"}
			}
		case *types.Record:
			for _, f := range nt.Fields {
				if err = r.Check(path+"."+f.Name, f.Type); err != nil {
					return
				}
			}
		}
	})
	return err
}

// Arguments renders one named argument per record field, in the record's
// field order. Each field renders within its own scoped accessor.
func (r *Renderer) Arguments(path string, rv value.Record, rec *types.Record, ctx Context) ([]backend.Argument, error) {
	args := make([]backend.Argument, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		fieldPath := path + "." + f.Name
		fv, ok := rv.Field(f.Name)
		if !ok {
			return nil, fmt.Errorf("%s: no value for field %q", fieldPath, f.Name)
		}
		s, err := r.Render(fieldPath, fv, f.Type, ctx.Within(r.backend, f.Name))
		if err != nil {
			return nil, err
		}
		args = append(args, backend.Argument{Name: r.backend.VarName(f.Name), Value: s})
	}
	return args, nil
}

func (r *Renderer) primitive(path string, v value.Value, t types.Primitive, ctx Context) (string, error) {
	sv, ok := v.(value.Scalar)
	if !ok {
		return "", shapeError(path, t, v)
	}
	want := cty.String
	switch t.Kind {
	case types.Bool:
		want = cty.Bool
	case types.Int, types.Float:
		want = cty.Number
	}
	if !sv.V.Type().Equals(want) {
		return "", shapeError(path, t, v)
	}

	switch t.Kind {
	case types.Bool:
		return r.backend.Bool(sv.V.True()), nil
	case types.Int:
		digits, err := IntDigits(sv.V.AsBigFloat())
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		lit, ok := r.backend.Int(digits)
		if !ok {
			return "", &diag.UnsupportedTypeError{Path: path, Type: t.FriendlyName(), Backend: r.backend.Name(), Reason: digits + " is out of range"}
		}
		return lit, nil
	case types.Float:
		digits := FloatDigits(sv.V.AsBigFloat())
		lit, ok := r.backend.Float(digits)
		if !ok {
			return "", &diag.UnsupportedTypeError{Path: path, Type: t.FriendlyName(), Backend: r.backend.Name(), Reason: digits + " is out of range"}
		}
		return lit, nil
	case types.String:
		return r.backend.String(sv.V.AsString()), nil
	case types.Text:
		s := sv.V.AsString()
		if id, isResource := strings.CutPrefix(s, textResourcePrefix); isResource {
			expr, ok := r.backend.Text(ctx.Context, id)
			if !ok {
				return "", &diag.UnsupportedTypeError{Path: path, Type: t.FriendlyName(), Backend: r.backend.Name(), Reason: "string resources are not available"}
			}
			return expr, nil
		}
		return r.backend.String(s), nil
	case types.Image:
		name := strings.TrimPrefix(sv.V.AsString(), imageResourcePrefix)
		expr, ok := r.backend.Image(ctx.Context, name)
		if !ok {
			return "", &diag.UnsupportedTypeError{Path: path, Type: t.FriendlyName(), Backend: r.backend.Name(), Reason: "images are not available"}
		}
		return expr, nil
	}
	return "", &diag.UnsupportedTypeError{Path: path, Type: t.FriendlyName(), Backend: r.backend.Name()}
}

func mapKeySupported(t types.TypeRef) bool {
	switch kt := t.(type) {
	case *types.Enum:
		return true
	case types.Primitive:
		return kt.Kind == types.String || kt.Kind == types.Text
	}
	return false
}

// IntDigits returns the exact decimal digits of an integral number. Numbers
// with a fractional part are rejected rather than truncated.
func IntDigits(f *big.Float) (string, error) {
	if !f.IsInt() {
		return "", fmt.Errorf("%s is not an integer", f.Text('g', -1))
	}
	i, _ := f.Int(nil)
	return i.String(), nil
}

// FloatDigits returns the shortest decimal that reads back as f, always with
// a fraction or exponent so target languages parse it as a float.
func FloatDigits(f *big.Float) string {
	s := f.Text('g', -1)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func shapeError(path string, t types.TypeRef, v value.Value) error {
	return fmt.Errorf("%s: value %s does not have the shape of %s", path, v.GoString(), types.Describe(t))
}
