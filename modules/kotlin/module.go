package kotlin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/fmlgen/internal/backend"
	"github.com/vk/fmlgen/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Kotlin backend with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBackend(&Backend{})
}

const indent = "    "

// Backend spells generated code for Android applications written in Kotlin.
type Backend struct{}

var _ backend.Backend = (*Backend)(nil)

func (b *Backend) Name() string          { return "kotlin" }
func (b *Backend) FileExtension() string { return ".kt" }

func (b *Backend) VarName(name string) string   { return backend.CamelCase(name) }
func (b *Backend) ClassName(name string) string { return backend.PascalCase(name) }

func (b *Backend) Root() (string, string) { return "variables", "variables.context" }

func (b *Backend) Subscope(accessor, name string) string {
	return fmt.Sprintf("%s.getVariables(%s)", accessor, b.String(name))
}

func (b *Backend) Bool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// Int accepts only what fits Kotlin's 32-bit Int; larger digits would be read
// as a Long literal.
func (b *Backend) Int(digits string) (string, bool) {
	if _, err := strconv.ParseInt(digits, 10, 32); err != nil {
		return "", false
	}
	return digits, true
}

func (b *Backend) Float(digits string) (string, bool) {
	if _, err := strconv.ParseFloat(digits, 64); err != nil {
		return "", false
	}
	return digits, true
}

// String quotes s as a Kotlin string literal. `$` is escaped so nothing in a
// default becomes a string template.
func (b *Backend) String(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '$':
			sb.WriteString(`\$`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (b *Backend) Text(context, resourceID string) (string, bool) {
	return fmt.Sprintf("%s.getString(R.string.%s)", context, resourceID), true
}

func (b *Backend) Image(context, name string) (string, bool) {
	return fmt.Sprintf("Res.drawable(%s, R.drawable.%s)", context, name), true
}

func (b *Backend) EnumCase(_, enum, variant string) string {
	return b.ClassName(enum) + "." + variant
}

func (b *Backend) Null() string { return "null" }

func (b *Backend) List(items []string) string {
	return "listOf(" + strings.Join(items, ", ") + ")"
}

func (b *Backend) Map(entries []backend.MapEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Key+" to "+e.Value)
	}
	return "mapOf(" + strings.Join(parts, ", ") + ")"
}

func (b *Backend) Record(class, accessor string, args []backend.Argument) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, accessor)
	for _, a := range args {
		parts = append(parts, a.Name+" = "+a.Value)
	}
	return class + "(" + strings.Join(parts, ", ") + ")"
}

// Registration binds the feature to a withInitializer closure, one
// constructor argument per line.
func (b *Backend) Registration(reg backend.Registration) string {
	lines := make([]string, 0, len(reg.Args)+1)
	lines = append(lines, reg.Param)
	for _, a := range reg.Args {
		lines = append(lines, a.Name+" = "+a.Value)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s.withInitializer { %s ->\n", reg.Accessor, reg.Param)
	fmt.Fprintf(&sb, "%s%s(\n", indent, reg.Class)
	sb.WriteString(backend.Indent(strings.Join(lines, ",\n"), indent+indent))
	fmt.Fprintf(&sb, "\n%s)\n}", indent)
	return sb.String()
}

func (b *Backend) Registry(objectName string, blocks []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s.features.apply {\n", objectName)
	for _, block := range blocks {
		sb.WriteString(backend.Indent(block, indent))
		sb.WriteByte('\n')
	}
	sb.WriteString("}")
	return sb.String()
}

func (b *Backend) File(h backend.FileHeader, registry string) string {
	var sb strings.Builder
	sb.WriteString("// This file was generated by fmlgen. Do not edit.\n")
	if h.Description != "" {
		for _, line := range strings.Split(strings.TrimSpace(h.Description), "\n") {
			sb.WriteString("// " + strings.TrimSpace(line) + "\n")
		}
	}
	sb.WriteString("\n")
	if h.Package != "" {
		fmt.Fprintf(&sb, "package %s\n\n", h.Package)
	}
	fmt.Fprintf(&sb, "fun initialize%sFeatures() {\n", h.ObjectName)
	sb.WriteString(backend.Indent(registry, indent))
	sb.WriteString("\n}\n")
	return sb.String()
}
