package kotlin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fmlgen/internal/backend"
	"github.com/vk/fmlgen/internal/registry"
)

func TestModule_RegistersBackend(t *testing.T) {
	t.Parallel()
	r := registry.New()

	(&Module{}).Register(r)

	b, ok := r.Backend("kotlin")
	require.True(t, ok)
	assert.Equal(t, ".kt", b.FileExtension())
}

func TestString_Escapes(t *testing.T) {
	t.Parallel()
	b := &Backend{}

	testCases := map[string]string{
		"plain":         `"plain"`,
		`say "hi"`:      `"say \"hi\""`,
		"cost: $5":      `"cost: \$5"`,
		"a\\b":          `"a\\b"`,
		"line1\nline2":  `"line1\nline2"`,
		"bell\a":        `"bell\u0007"`,
		"unicode ✓ é":   `"unicode ✓ é"`,
		"${injection}":  `"\${injection}"`,
		"tab\tand\rret": `"tab\tand\rret"`,
	}
	for in, want := range testCases {
		assert.Equal(t, want, b.String(in), "input %q", in)
	}
}

func TestLiterals(t *testing.T) {
	t.Parallel()
	b := &Backend{}

	assert.Equal(t, "listOf()", b.List(nil))
	assert.Equal(t, "listOf(1, 2)", b.List([]string{"1", "2"}))
	assert.Equal(t, "mapOf()", b.Map(nil))
	assert.Equal(t, `mapOf("a" to 1)`, b.Map([]backend.MapEntry{{Key: `"a"`, Value: "1"}}))
	assert.Equal(t, "Section.topSites", b.EnumCase("variables.context", "Section", "topSites"))
	assert.Equal(t, "PlayerKind.bot", b.EnumCase("variables.context", "player_kind", "bot"))
	assert.Equal(t, "null", b.Null())
	assert.Equal(t, `variables.getVariables("padding")`, b.Subscope("variables", "padding"))

	text, ok := b.Text("variables.context", "title")
	require.True(t, ok)
	assert.Equal(t, "variables.context.getString(R.string.title)", text)

	img, ok := b.Image("variables.context", "ic_logo")
	require.True(t, ok)
	assert.Equal(t, "Res.drawable(variables.context, R.drawable.ic_logo)", img)

	assert.Equal(t,
		`Button(variables.getVariables("cta"), label = "OK", color = null)`,
		b.Record("Button", `variables.getVariables("cta")`, []backend.Argument{{Name: "label", Value: `"OK"`}, {Name: "color", Value: "null"}}),
	)
}

func TestRegistrationAndFile(t *testing.T) {
	t.Parallel()
	b := &Backend{}

	block := b.Registration(backend.Registration{
		Accessor: "homescreen",
		Param:    "variables",
		Class:    "Homescreen",
		Args:     []backend.Argument{{Name: "enabled", Value: "true"}},
	})
	file := b.File(backend.FileHeader{ObjectName: "MyNimbus", Package: "org.example"}, b.Registry("MyNimbus", []string{block}))

	want := `// This file was generated by fmlgen. Do not edit.

package org.example

fun initializeMyNimbusFeatures() {
    MyNimbus.features.apply {
        homescreen.withInitializer { variables ->
            Homescreen(
                variables,
                enabled = true
            )
        }
    }
}
`
	assert.Equal(t, want, file)
}

func TestInt_Fits32Bits(t *testing.T) {
	t.Parallel()
	b := &Backend{}

	for _, digits := range []string{"0", "2147483647", "-2147483648"} {
		lit, ok := b.Int(digits)
		assert.True(t, ok, digits)
		assert.Equal(t, digits, lit)
	}
	for _, digits := range []string{"2147483648", "-2147483649", "9223372036854775807"} {
		_, ok := b.Int(digits)
		assert.False(t, ok, digits)
	}

	_, ok := b.Float("1e+400")
	assert.False(t, ok)
	lit, ok := b.Float("1.7976931348623157e+308")
	assert.True(t, ok)
	assert.Equal(t, "1.7976931348623157e+308", lit)
}
