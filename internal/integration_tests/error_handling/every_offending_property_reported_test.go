package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/fmlgen/internal/diag"
	"github.com/vk/fmlgen/internal/testutil"
)

// TestErrorHandling_EveryOffendingPropertyIsReported validates that default
// resolution does not stop at the first failure and that properties which
// only inherit a failure are not reported twice.
func TestErrorHandling_EveryOffendingPropertyIsReported(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	manifest := `
about {
  object_name = "Reg"
}

enum "Size" {
  variants = ["small", "large"]
}

feature "first" {
  property "count" {
    type    = int
    default = 2.5
  }
  property "copy_of_count" {
    type    = int
    default = property.count
  }
  property "size" {
    type    = Size
    default = "huge"
  }
}

feature "second" {
  property "ping" {
    type    = string
    default = property.pong
  }
  property "pong" {
    type    = string
    default = property.ping
  }
  property "missing" {
    type    = bool
    default = property.nowhere
  }
  property "required" {
    type = string
  }
}
`

	// --- Act ---
	result := testutil.RunManifestTest(t, manifest, "kotlin")

	// --- Assert ---
	errs := testutil.RequireDiagnostics(t, result, 5)
	assert.Contains(t, errs[0].Error(), "first.count: type mismatch: expected int")
	assert.Contains(t, errs[1].Error(), `first.size: type mismatch: expected Size: "huge" is not a variant`)

	cyclic := testutil.RequireErrorAs[*diag.CyclicDefaultReferenceError](t, errs[2])
	assert.Equal(t, []string{"ping", "pong", "ping"}, cyclic.Chain)

	unknown := testutil.RequireErrorAs[*diag.UnknownReferenceError](t, errs[3])
	assert.Equal(t, "second.missing", unknown.Path)
	assert.Equal(t, "nowhere", unknown.Reference)

	mismatch := testutil.RequireErrorAs[*diag.TypeMismatchError](t, errs[4])
	assert.Equal(t, "second.required", mismatch.Path)

	for _, err := range errs {
		require.NotContains(t, err.Error(), "copy_of_count")
	}
}
