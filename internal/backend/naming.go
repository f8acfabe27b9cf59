package backend

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// words splits a manifest name on underscores, dashes, dots and spaces.
func words(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})
}

// CamelCase joins the words of a snake_case or kebab-case name, capitalizing
// every word after the first. The first word is kept as written, so
// `sections_enabled` becomes `sectionsEnabled` and `Homescreen` stays put.
func CamelCase(name string) string {
	parts := words(name)
	if len(parts) == 0 {
		return name
	}
	// A Caser keeps state and must not be shared between goroutines.
	titler := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(titler.String(p))
	}
	return b.String()
}

// PascalCase converts a manifest name into UpperCamelCase.
func PascalCase(name string) string {
	parts := words(name)
	if len(parts) == 0 {
		return name
	}
	titler := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(titler.String(p))
	}
	return b.String()
}

// Indent prefixes every non-empty line of s with prefix.
func Indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
