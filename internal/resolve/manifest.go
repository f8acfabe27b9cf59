package resolve

import (
	"context"

	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/ctxlog"
	"github.com/vk/fmlgen/internal/diag"
)

// Manifest resolves every default of a linked manifest and returns a copy
// whose properties and object fields carry their Default. The input is not
// modified. Every offending property is reported, once.
func Manifest(ctx context.Context, m *config.Manifest) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	r := New(m)
	var errs []error

	out := &config.Manifest{About: m.About, Enums: m.Enums}

	for _, o := range m.Objects {
		s, _ := r.objectScope(o.Name)
		copied := *o
		copied.Fields = make([]*config.PropertyDefinition, 0, len(o.Fields))
		for _, f := range o.Fields {
			field := *f
			// A field without a default must be set by every record default.
			if f.RawDefault != nil {
				v, err := r.property(s, f)
				if err != nil {
					if !isDependencyFailure(err) {
						errs = append(errs, err)
					}
				} else {
					field.Default = v
				}
			}
			copied.Fields = append(copied.Fields, &field)
		}
		out.Objects = append(out.Objects, &copied)
	}

	for _, feat := range m.Features {
		logger.Debug("Resolving feature defaults.", "feature", feat.Name, "properties", len(feat.Properties))
		s := newScope(feat.Name, feat.Properties)
		copied := *feat
		copied.Properties = make([]*config.PropertyDefinition, 0, len(feat.Properties))
		for _, p := range feat.Properties {
			prop := *p
			v, err := r.property(s, p)
			if err != nil {
				if !isDependencyFailure(err) {
					errs = append(errs, err)
				}
			} else {
				prop.Default = v
			}
			copied.Properties = append(copied.Properties, &prop)
		}
		out.Features = append(out.Features, &copied)
	}

	if err := diag.Join("default resolution", errs...); err != nil {
		return nil, err
	}
	logger.Debug("All defaults resolved.", "features", len(out.Features), "objects", len(out.Objects))
	return out, nil
}
