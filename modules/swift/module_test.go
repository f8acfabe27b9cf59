package swift

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

	b, ok := r.Backend("swift")
	require.True(t, ok)
	assert.Equal(t, ".swift", b.FileExtension())
}

func TestString_Escapes(t *testing.T) {
	t.Parallel()
	b := &Backend{}

	assert.Equal(t, `"say \"hi\""`, b.String(`say "hi"`))
	assert.Equal(t, `"\\(notInterpolated)"`, b.String(`\(notInterpolated)`))
	assert.Equal(t, `"nul\0"`, b.String("nul\x00"))
	assert.Equal(t, `"bell\u{7}"`, b.String("bell\a"))
	assert.Equal(t, `"cost: $5"`, b.String("cost: $5"))
}

func TestLiterals(t *testing.T) {
	t.Parallel()
	b := &Backend{}

	assert.Equal(t, "[]", b.List(nil))
	assert.Equal(t, "[:]", b.Map(nil))
	assert.Equal(t, `["a": 1, "b": 2]`, b.Map([]backend.MapEntry{{Key: `"a"`, Value: "1"}, {Key: `"b"`, Value: "2"}}))
	assert.Equal(t, "nil", b.Null())

	_, ok := b.Image("variables.resourceBundles", "ic_logo")
	assert.False(t, ok, "swift has no drawable resources")

	text, ok := b.Text("variables.resourceBundles", "title")
	require.True(t, ok)
	assert.Equal(t, `variables.resourceBundles.getString(named: "title") ?? "title"`, text)
}

func TestRegistrationAndFile(t *testing.T) {
	t.Parallel()
	b := &Backend{}

	block := b.Registration(backend.Registration{
		Accessor: "homescreen",
		Param:    "variables",
		Class:    "Homescreen",
		Args:     []backend.Argument{{Name: "title", Value: "nil"}},
	})
	file := b.File(backend.FileHeader{ObjectName: "MyNimbus", Package: "ignored"}, b.Registry("MyNimbus", []string{block}))

	want := `// This file was generated by fmlgen. Do not edit.

import Foundation

public extension MyNimbus {
    static func initializeFeatures() {
        do {
            let features = MyNimbus.shared.features
            features.homescreen.with(initializer: { variables in
                Homescreen(
                    variables,
                    title: nil
                )
            })
        }
    }
}
`
	assert.Equal(t, want, file)
}

func TestNumbers_Range(t *testing.T) {
	t.Parallel()
	b := &Backend{}

	lit, ok := b.Int("9223372036854775807")
	assert.True(t, ok)
	assert.Equal(t, "9223372036854775807", lit)
	_, ok = b.Int("9223372036854775808")
	assert.False(t, ok)

	_, ok = b.Float("-1e+400")
	assert.False(t, ok)
}
