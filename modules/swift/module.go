package swift

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/fmlgen/internal/backend"
	"github.com/vk/fmlgen/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Swift backend with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBackend(&Backend{})
}

const indent = "    "

// Backend spells generated code for iOS applications written in Swift.
// Swift has no drawable resources, so image-typed properties cannot be
// generated for it.
type Backend struct{}

var _ backend.Backend = (*Backend)(nil)

func (b *Backend) Name() string          { return "swift" }
func (b *Backend) FileExtension() string { return ".swift" }

func (b *Backend) VarName(name string) string   { return backend.CamelCase(name) }
func (b *Backend) ClassName(name string) string { return backend.PascalCase(name) }

func (b *Backend) Root() (string, string) { return "variables", "variables.resourceBundles" }

func (b *Backend) Subscope(accessor, name string) string {
	return fmt.Sprintf("%s.getVariables(%s)", accessor, b.String(name))
}

func (b *Backend) Bool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// Int accepts what fits Swift's 64-bit Int.
func (b *Backend) Int(digits string) (string, bool) {
	if _, err := strconv.ParseInt(digits, 10, 64); err != nil {
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

// String quotes s as a Swift string literal.
func (b *Backend) String(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u{%x}`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (b *Backend) Text(context, resourceID string) (string, bool) {
	return fmt.Sprintf("%s.getString(named: %s) ?? %s", context, b.String(resourceID), b.String(resourceID)), true
}

func (b *Backend) Image(_, _ string) (string, bool) { return "", false }

func (b *Backend) EnumCase(_, enum, variant string) string {
	return b.ClassName(enum) + "." + variant
}

func (b *Backend) Null() string { return "nil" }

func (b *Backend) List(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

func (b *Backend) Map(entries []backend.MapEntry) string {
	if len(entries) == 0 {
		return "[:]"
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Key+": "+e.Value)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (b *Backend) Record(class, accessor string, args []backend.Argument) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, accessor)
	for _, a := range args {
		parts = append(parts, a.Name+": "+a.Value)
	}
	return class + "(" + strings.Join(parts, ", ") + ")"
}

func (b *Backend) Registration(reg backend.Registration) string {
	lines := make([]string, 0, len(reg.Args)+1)
	lines = append(lines, reg.Param)
	for _, a := range reg.Args {
		lines = append(lines, a.Name+": "+a.Value)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "features.%s.with(initializer: { %s in\n", reg.Accessor, reg.Param)
	fmt.Fprintf(&sb, "%s%s(\n", indent, reg.Class)
	sb.WriteString(backend.Indent(strings.Join(lines, ",\n"), indent+indent))
	fmt.Fprintf(&sb, "\n%s)\n})", indent)
	return sb.String()
}

func (b *Backend) Registry(objectName string, blocks []string) string {
	var sb strings.Builder
	sb.WriteString("do {\n")
	fmt.Fprintf(&sb, "%slet features = %s.shared.features\n", indent, objectName)
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
	sb.WriteString("\nimport Foundation\n\n")
	fmt.Fprintf(&sb, "public extension %s {\n", h.ObjectName)
	fmt.Fprintf(&sb, "%sstatic func initializeFeatures() {\n", indent)
	sb.WriteString(backend.Indent(registry, indent+indent))
	fmt.Fprintf(&sb, "\n%s}\n}\n", indent)
	return sb.String()
}
