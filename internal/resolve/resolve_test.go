package resolve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/ctxlog"
	"github.com/vk/fmlgen/internal/diag"
	"github.com/vk/fmlgen/internal/types"
	"github.com/vk/fmlgen/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// --- raw default builders ---

func str(s string) *config.RawValue {
	return &config.RawValue{Kind: config.RawScalar, Scalar: cty.StringVal(s)}
}

func num(s string) *config.RawValue {
	return &config.RawValue{Kind: config.RawScalar, Scalar: cty.MustParseNumberVal(s)}
}

func boolean(b bool) *config.RawValue {
	return &config.RawValue{Kind: config.RawScalar, Scalar: cty.BoolVal(b)}
}

func null() *config.RawValue { return &config.RawValue{Kind: config.RawNull} }

func ref(name string) *config.RawValue { return &config.RawValue{Kind: config.RawRef, Ref: name} }

func list(items ...*config.RawValue) *config.RawValue {
	return &config.RawValue{Kind: config.RawList, Items: items}
}

// obj takes alternating keys and values.
func obj(kv ...any) *config.RawValue {
	raw := &config.RawValue{Kind: config.RawObject}
	for i := 0; i < len(kv); i += 2 {
		raw.Entries = append(raw.Entries, &config.RawEntry{Key: kv[i].(string), Value: kv[i+1].(*config.RawValue)})
	}
	return raw
}

var (
	boolT   = types.Primitive{Kind: types.Bool}
	intT    = types.Primitive{Kind: types.Int}
	floatT  = types.Primitive{Kind: types.Float}
	stringT = types.Primitive{Kind: types.String}
	textT   = types.Primitive{Kind: types.Text}
	section = &types.Enum{Name: "Section", Variants: []string{"topSites", "pocket"}}
)

// cmpValues compares value trees, including the exact numbers inside cty leaves.
var cmpValues = cmp.Comparer(func(a, b cty.Value) bool { return a.RawEquals(b) })

func prop(name string, t types.TypeRef, raw *config.RawValue) *config.PropertyDefinition {
	return &config.PropertyDefinition{Name: name, Type: t, RawDefault: raw}
}

func TestValue_Literals(t *testing.T) {
	t.Parallel()
	r := New(&config.Manifest{})

	testCases := []struct {
		name string
		typ  types.TypeRef
		raw  *config.RawValue
		want value.Value
	}{
		{"bool", boolT, boolean(true), value.Bool(true)},
		{"negative int", intT, num("-42"), value.Int(-42)},
		{"int at int64 max", intT, num("9223372036854775807"), value.Scalar{V: cty.MustParseNumberVal("9223372036854775807")}},
		{"float keeps digits", floatT, num("0.1"), value.Scalar{V: cty.MustParseNumberVal("0.1")}},
		{"float from integer literal", floatT, num("3"), value.Scalar{V: cty.MustParseNumberVal("3")}},
		{"text", textT, str("@string/title"), value.String("@string/title")},
		{"enum", section, str("pocket"), value.EnumCase{Variant: "pocket"}},
		{"absent optional", types.Optional{Inner: stringT}, nil, value.Null{}},
		{"explicit null optional", types.Optional{Inner: stringT}, null(), value.Null{}},
		{"present optional unwraps", types.Optional{Inner: intT}, num("7"), value.Int(7)},
		{
			"list keeps order",
			types.List{Elem: stringT},
			list(str("b"), str("a"), str("c")),
			value.List{Items: []value.Value{value.String("b"), value.String("a"), value.String("c")}},
		},
		{
			"map keeps declaration order",
			types.Map{Key: section, Value: boolT},
			obj("topSites", boolean(true), "pocket", boolean(false)),
			value.Map{Entries: []value.Entry{
				{Key: value.EnumCase{Variant: "topSites"}, Value: value.Bool(true)},
				{Key: value.EnumCase{Variant: "pocket"}, Value: value.Bool(false)},
			}},
		},
		{
			"map with int keys",
			types.Map{Key: intT, Value: stringT},
			obj("10", str("ten"), "2", str("two")),
			value.Map{Entries: []value.Entry{
				{Key: value.Int(10), Value: value.String("ten")},
				{Key: value.Int(2), Value: value.String("two")},
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// --- Act ---
			got, err := r.Value("f.p", tc.typ, tc.raw)

			// --- Assert ---
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got, cmpValues); diff != "" {
				t.Errorf("resolved value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValue_TypeMismatches(t *testing.T) {
	t.Parallel()
	r := New(&config.Manifest{})

	testCases := []struct {
		name    string
		typ     types.TypeRef
		raw     *config.RawValue
		wantErr string
	}{
		{"list for bool", boolT, list(), "expected bool: got a list"},
		{"fraction for int", intT, num("1.5"), "the number 1.5 has a fractional part"},
		{"int overflow", intT, num("9223372036854775808"), "does not fit in 64 bits"},
		{"string for int", intT, str("1"), `expected int: got the string "1"`},
		{"unknown variant", section, str("news"), `"news" is not a variant; variants are "topSites", "pocket"`},
		{"null for non-optional", stringT, null(), "expected string: got null"},
		{"absent for non-optional", stringT, nil, "expected string: no default given"},
		{"bad list item", types.List{Elem: intT}, list(num("1"), str("x")), "f.p[1]: type mismatch"},
		{"duplicate map key", types.Map{Key: stringT, Value: intT}, obj("a", num("1"), "a", num("2")), "duplicate key a"},
		{"bad map key", types.Map{Key: boolT, Value: intT}, obj("yes", num("1")), `key "yes" is not a bool`},
		{"list map key", types.Map{Key: types.List{Elem: stringT}, Value: intT}, obj("a", num("1")), "cannot be written in a manifest"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// --- Act ---
			_, err := r.Value("f.p", tc.typ, tc.raw)

			// --- Assert ---
			require.Error(t, err)
			var mismatch *diag.TypeMismatchError
			require.True(t, errors.As(err, &mismatch), "want a TypeMismatchError, got %T", err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValue_ReferenceWithoutScopeIsUnknown(t *testing.T) {
	t.Parallel()
	_, err := New(&config.Manifest{}).Value("f.p", stringT, ref("other"))

	var unknown *diag.UnknownReferenceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "other", unknown.Reference)
}

func buttonManifest() (*config.Manifest, *types.Record) {
	inner := &types.Record{Name: "Insets", Fields: []*types.Field{
		{Name: "top", Type: intT},
		{Name: "bottom", Type: intT},
	}}
	button := &types.Record{Name: "Button", Fields: []*types.Field{
		{Name: "label", Type: textT},
		{Name: "color", Type: types.Optional{Inner: stringT}},
		{Name: "padding", Type: inner},
	}}
	m := &config.Manifest{
		Objects: []*config.ObjectDefinition{
			{Name: "Insets", Fields: []*config.PropertyDefinition{
				prop("top", intT, num("0")),
				prop("bottom", intT, property0()),
			}},
			{Name: "Button", Fields: []*config.PropertyDefinition{
				prop("label", textT, nil),
				prop("color", types.Optional{Inner: stringT}, nil),
				prop("padding", inner, obj("top", num("4"))),
			}},
		},
	}
	return m, button
}

// property0 makes Insets.bottom follow Insets.top.
func property0() *config.RawValue { return ref("top") }

func TestValue_RecordsPatchObjectDefaults(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	m, button := buttonManifest()
	r := New(m)

	// --- Act ---
	got, err := r.Value("f.p", button, obj("label", str("OK"), "padding", obj("bottom", num("9"))))

	// --- Assert ---
	require.NoError(t, err)
	want := value.Record{Fields: []value.FieldValue{
		{Name: "label", Value: value.String("OK")},
		{Name: "color", Value: value.Null{}},
		{Name: "padding", Value: value.Record{Fields: []value.FieldValue{
			{Name: "top", Value: value.Int(4)},
			{Name: "bottom", Value: value.Int(9)},
		}}},
	}}
	if diff := cmp.Diff(want, got, cmpValues); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestValue_RecordErrors(t *testing.T) {
	t.Parallel()
	m, button := buttonManifest()
	r := New(m)

	_, err := r.Value("f.p", button, obj("color", str("red")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `f.p.label: type mismatch: expected text: field "label" has no default and is not set`)

	_, err = r.Value("f.p", button, obj("label", str("OK"), "size", num("1")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "size"; fields are "label", "color", "padding"`)

	_, err = r.Value("f.p", button, list())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected Button{label: text, color: optional(string), padding: Insets}: got a list")
}

func TestManifest_ResolvesReferencesInAnyOrder(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	m := &config.Manifest{Features: []*config.FeatureDefinition{{
		Name: "homescreen",
		Properties: []*config.PropertyDefinition{
			prop("tabs", types.List{Elem: stringT}, list(str("home"), ref("primary"))),
			prop("primary", stringT, ref("fallback")),
			prop("fallback", stringT, str("search")),
		},
	}}}
	ctx := ctxlog.Discard(context.Background())

	// --- Act ---
	resolved, err := Manifest(ctx, m)

	// --- Assert ---
	require.NoError(t, err)
	tabs := resolved.Features[0].Properties[0].Default
	want := value.List{Items: []value.Value{value.String("home"), value.String("search")}}
	if diff := cmp.Diff(want, tabs, cmpValues); diff != "" {
		t.Errorf("tabs mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, m.Features[0].Properties[0].Default, "the input manifest must not be modified")
}

func TestManifest_ReportsEveryOffendingPropertyOnce(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	m := &config.Manifest{Features: []*config.FeatureDefinition{
		{Name: "a", Properties: []*config.PropertyDefinition{
			prop("count", intT, str("many")),
			prop("ok", boolT, boolean(true)),
			prop("missing", stringT, ref("nowhere")),
		}},
		{Name: "b", Properties: []*config.PropertyDefinition{
			prop("first", stringT, ref("second")),
			prop("second", stringT, ref("first")),
			prop("echo", stringT, ref("second")),
			prop("wrong", intT, ref("first")),
		}},
	}}
	ctx := ctxlog.Discard(context.Background())

	// --- Act ---
	_, err := Manifest(ctx, m)

	// --- Assert ---
	require.Error(t, err)
	errs := diag.All(err)
	require.Len(t, errs, 4, "got:\n%s", err)

	var mismatch *diag.TypeMismatchError
	require.True(t, errors.As(errs[0], &mismatch))
	assert.Equal(t, "a.count", mismatch.Path)

	var unknown *diag.UnknownReferenceError
	require.True(t, errors.As(errs[1], &unknown))
	assert.Equal(t, "a.missing", unknown.Path)

	var cyclic *diag.CyclicDefaultReferenceError
	require.True(t, errors.As(errs[2], &cyclic))
	assert.Equal(t, []string{"first", "second", "first"}, cyclic.Chain)

	assert.Contains(t, errs[3].Error(), "b.wrong: type mismatch: expected int: property first has type string")
	assert.True(t, strings.HasPrefix(err.Error(), "default resolution failed:\n- "))
}

func TestManifest_DepthGuardStopsLongChains(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	var props []*config.PropertyDefinition
	for i := 0; i < maxReferenceDepth+5; i++ {
		props = append(props, prop(name(i), intT, ref(name(i+1))))
	}
	props = append(props, prop(name(maxReferenceDepth+5), intT, num("1")))
	m := &config.Manifest{Features: []*config.FeatureDefinition{{Name: "deep", Properties: props}}}
	ctx := ctxlog.Discard(context.Background())

	// --- Act ---
	_, err := Manifest(ctx, m)

	// --- Assert ---
	require.Error(t, err)
	var cyclic *diag.CyclicDefaultReferenceError
	require.True(t, errors.As(err, &cyclic))
	assert.Len(t, cyclic.Chain, maxReferenceDepth+1)
}

func name(i int) string {
	return "p" + strings.Repeat("x", i)
}

func TestManifest_ResolvesObjectFields(t *testing.T) {
	t.Parallel()
	m, _ := buttonManifest()
	ctx := ctxlog.Discard(context.Background())

	resolved, err := Manifest(ctx, m)

	require.NoError(t, err)
	insets := resolved.Objects[0]
	if diff := cmp.Diff(value.Value(value.Int(0)), insets.Fields[1].Default, cmpValues); diff != "" {
		t.Errorf("Insets.bottom mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, resolved.Objects[1].Fields[0].Default, "a field without default stays unset")
}
