package integration_tests

import (
	"testing"

	"github.com/vk/fmlgen/internal/testutil"
)

const nestedObjectHCL = `
about {
  object_name = "Nimbus"
}

object "Insets" {
  field "top" {
    type    = int
    default = 0
  }
  field "bottom" {
    type    = int
    default = property.top
  }
}

object "Button" {
  field "label" {
    type = text
  }
  field "padding" {
    type    = Insets
    default = { top = 4 }
  }
  field "icon" {
    type = optional(image)
  }
}

feature "checkout" {
  property "pay_button" {
    type    = Button
    default = { label = "@string/pay", padding = { bottom = 12 } }
  }
  property "buttons" {
    type    = list(Button)
    default = [{ label = "Cancel" }]
  }
}
`

func TestTypeSystem_NestedObjectsPatchDefaults(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunManifestTest(t, nestedObjectHCL, "kotlin")

	// --- Assert ---
	// padding keeps top = 4 from the object default and overrides bottom.
	testutil.AssertGenerated(t, result, "kotlin",
		`payButton = Button(variables.getVariables("pay_button"), `+
			`label = variables.context.getString(R.string.pay), `+
			`padding = Insets(variables.getVariables("pay_button").getVariables("padding"), top = 4, bottom = 12), `+
			`icon = null),`,
		`buttons = listOf(Button(variables.getVariables("buttons"), label = "Cancel", `+
			`padding = Insets(variables.getVariables("buttons").getVariables("padding"), top = 4, bottom = 0), icon = null))`,
	)
}
