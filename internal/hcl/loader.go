package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/ctxlog"
	"github.com/vk/fmlgen/internal/schema"
)

// Loader is the HCL-specific implementation of the config.FileLoader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.FileLoader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// LoadFile parses a single HCL manifest file and translates every block into
// the agnostic model, keeping block order.
func (l *Loader) LoadFile(ctx context.Context, path string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx).With("file", path)
	logger.Debug("Parsing HCL manifest.")

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root schema.ManifestFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	m := &config.Manifest{}
	if root.About != nil {
		m.About = config.About{
			ObjectName:  root.About.ObjectName,
			Package:     root.About.Package,
			Description: root.About.Description,
		}
	}
	for _, e := range root.Enums {
		def, err := translateEnum(e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		m.Enums = append(m.Enums, def)
	}
	for _, o := range root.Objects {
		def, err := translateObject(ctx, o)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		m.Objects = append(m.Objects, def)
	}
	for _, f := range root.Features {
		def, err := translateFeature(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		m.Features = append(m.Features, def)
	}

	logger.Debug("HCL manifest translated.", "enums", len(m.Enums), "objects", len(m.Objects), "features", len(m.Features))
	return m, nil
}
