package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/fmlgen/internal/diag"
)

// AssertGenerated requires a successful run whose output for target
// contains every snippet.
func AssertGenerated(t *testing.T, result *HarnessResult, target string, snippets ...string) {
	t.Helper()

	require.NoError(t, result.Err, "generation failed; logs:\n%s", result.LogOutput)
	src, ok := result.Generated[target]
	require.True(t, ok, "no output for target %q", target)
	for _, s := range snippets {
		require.Contains(t, src, s, "generated %s code is missing a snippet", target)
	}
}

// RequireDiagnostics requires a failed run and returns its individual errors,
// requiring there are exactly n of them.
func RequireDiagnostics(t *testing.T, result *HarnessResult, n int) []error {
	t.Helper()

	require.Error(t, result.Err, "expected generation to fail")
	errs := diag.All(result.Err)
	require.Len(t, errs, n, "unexpected diagnostics:\n%s", result.Err)
	require.Empty(t, result.Generated, "no file may be written when generation fails")
	return errs
}

// RequireErrorAs requires err to wrap an error of type T and returns it.
func RequireErrorAs[T error](t *testing.T, err error) T {
	t.Helper()

	var target T
	require.True(t, errors.As(err, &target), "expected %T in %v", target, err)
	return target
}
