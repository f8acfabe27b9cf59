package integration_tests

import (
	"testing"

	"github.com/vk/fmlgen/internal/testutil"
)

func TestTypeSystem_CollectionsKeepManifestOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	manifest := `
about {
  object_name = "Nimbus"
}

enum "Section" {
  variants = ["top_sites", "pocket", "recent"]
}

feature "homescreen" {
  property "sections_enabled" {
    type    = map(Section, bool)
    default = { recent = false, top_sites = true, pocket = true }
  }
  property "order" {
    type    = list(Section)
    default = ["pocket", "recent"]
  }
  property "labels" {
    type    = map(string, optional(string))
    default = { zeta = "z", alpha = null }
  }
  property "empty" {
    type    = list(int)
    default = []
  }
  property "subtitle" {
    type = optional(string)
  }
}
`

	// --- Act ---
	result := testutil.RunManifestTest(t, manifest, "kotlin", "swift")

	// --- Assert ---
	testutil.AssertGenerated(t, result, "kotlin",
		"sectionsEnabled = mapOf(Section.recent to false, Section.top_sites to true, Section.pocket to true),",
		"order = listOf(Section.pocket, Section.recent),",
		`labels = mapOf("zeta" to "z", "alpha" to null),`,
		"empty = listOf(),",
		"subtitle = null\n",
	)
	testutil.AssertGenerated(t, result, "swift",
		"sectionsEnabled: [Section.recent: false, Section.top_sites: true, Section.pocket: true],",
		"order: [Section.pocket, Section.recent],",
		`labels: ["zeta": "z", "alpha": nil],`,
		"empty: [],",
		"subtitle: nil\n",
	)
}
