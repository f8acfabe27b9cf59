package yamlloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/ctxlog"
	"github.com/vk/fmlgen/internal/types"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_TranslatesDefinitionsInOrder(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	path := writeManifest(t, `
about:
  object_name: MyNimbus
enums:
  Section:
    variants: [topSites, pocket]
objects:
  Button:
    fields:
      label:
        type: text
        default: "@string/ok"
features:
  zeta:
    properties:
      enabled:
        type: bool
        default: true
  homescreen:
    class_name: HomescreenConfig
    properties:
      sections_enabled:
        type: map(Section, bool)
        default: {topSites: true, pocket: false}
      title:
        type: optional(text)
`)
	ctx := ctxlog.Discard(context.Background())

	// --- Act ---
	m, err := NewLoader().LoadFile(ctx, path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "MyNimbus", m.About.ObjectName)
	require.Len(t, m.Enums, 1)
	assert.Equal(t, "Section", m.Enums[0].Name)
	require.Len(t, m.Objects, 1)
	assert.Equal(t, "label", m.Objects[0].Fields[0].Name)

	require.Len(t, m.Features, 2)
	assert.Equal(t, "zeta", m.Features[0].Name)
	assert.Equal(t, "homescreen", m.Features[1].Name)
	assert.Equal(t, "HomescreenConfig", m.Features[1].ClassName)

	sections := m.Features[1].Properties[0]
	assert.Equal(t, types.Map{Key: types.Named{Name: "Section"}, Value: types.Primitive{Kind: types.Bool}}, sections.Type)
	require.Equal(t, config.RawObject, sections.RawDefault.Kind)
	assert.Equal(t, "topSites", sections.RawDefault.Entries[0].Key)
	assert.Equal(t, "pocket", sections.RawDefault.Entries[1].Key)
	assert.Equal(t, "the bool false", sections.RawDefault.Entries[1].Value.Describe())

	title := m.Features[1].Properties[1]
	assert.Nil(t, title.RawDefault)
	assert.Equal(t, path, title.Range.Filename)
}

func TestLoadFile_Scalars(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	path := writeManifest(t, `
features:
  f:
    properties:
      big:
        type: int
        default: 9007199254740993
      hex:
        type: int
        default: 0x1F
      ratio:
        type: float
        default: -0.1
      quoted:
        type: string
        default: "123"
      nothing:
        type: optional(string)
        default: null
      other:
        type: string
        default: !ref quoted
`)
	ctx := ctxlog.Discard(context.Background())

	// --- Act ---
	m, err := NewLoader().LoadFile(ctx, path)

	// --- Assert ---
	require.NoError(t, err)
	props := m.Features[0].Properties
	require.Len(t, props, 6)
	assert.Equal(t, "the number 9007199254740993", props[0].RawDefault.Describe())
	assert.Equal(t, "the number 31", props[1].RawDefault.Describe())
	assert.Equal(t, "the number -0.1", props[2].RawDefault.Describe())
	assert.Equal(t, `the string "123"`, props[3].RawDefault.Describe())
	assert.Equal(t, config.RawNull, props[4].RawDefault.Kind)
	assert.Equal(t, config.RawRef, props[5].RawDefault.Kind)
	assert.Equal(t, "quoted", props[5].RawDefault.Ref)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown top level key",
			content: "widgets: {}\n",
			wantErr: "failed to decode YAML file",
		},
		{
			name: "unknown property key",
			content: `features:
  f:
    properties:
      p:
        type: bool
        defualt: true
`,
			wantErr: `unknown key "defualt"`,
		},
		{
			name: "missing type",
			content: `features:
  f:
    properties:
      p:
        default: true
`,
			wantErr: "in feature 'f', property 'p': missing type",
		},
		{
			name: "bad type expression",
			content: `features:
  f:
    properties:
      p:
        type: set(string)
`,
			wantErr: `unknown type constructor function "set"`,
		},
		{
			name: "duplicate feature",
			content: `features:
  f: {}
  f: {}
`,
			wantErr: "is declared more than once",
		},
		{
			name: "unsupported number",
			content: `features:
  f:
    properties:
      p:
        type: float
        default: .inf
`,
			wantErr: `unsupported number ".inf"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// --- Arrange ---
			path := writeManifest(t, tc.content)
			ctx := ctxlog.Discard(context.Background())

			// --- Act ---
			_, err := NewLoader().LoadFile(ctx, path)

			// --- Assert ---
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadFile_EmptyFile(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, "")
	ctx := ctxlog.Discard(context.Background())

	m, err := NewLoader().LoadFile(ctx, path)

	require.NoError(t, err)
	assert.Empty(t, m.Features)
}
