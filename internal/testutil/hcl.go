package testutil

import "testing"

// RunManifestTest is the single-file shorthand of RunIntegrationTest: it
// generates code for one HCL manifest.
func RunManifestTest(t *testing.T, manifestHCL string, targets ...string) *HarnessResult {
	t.Helper()
	return RunIntegrationTest(t, map[string]string{"main.hcl": manifestHCL}, targets)
}
