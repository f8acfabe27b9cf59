package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineDiff(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	var before, after []string
	for i := 0; i < 20; i++ {
		line := "line " + string(rune('a'+i))
		before = append(before, line)
		if i == 10 {
			line = "changed"
		}
		after = append(after, line)
	}

	// --- Act ---
	got := lineDiff("Out.kt", strings.Join(before, "\n")+"\n", strings.Join(after, "\n")+"\n")

	// --- Assert ---
	want := `--- Out.kt (on disk)
+++ Out.kt (generated)
@@ 7 unchanged lines @@
 line h
 line i
 line j
-line k
+changed
 line l
 line m
 line n
@@ 6 unchanged lines @@
`
	assert.Equal(t, want, got)
}

func TestLineDiff_MissingFile(t *testing.T) {
	t.Parallel()

	got := lineDiff("Out.kt", "", "a\nb\n")

	assert.Equal(t, "--- Out.kt (on disk)\n+++ Out.kt (generated)\n+a\n+b\n", got)
}
