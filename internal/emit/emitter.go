package emit

import (
	"context"
	"fmt"

	"github.com/vk/fmlgen/internal/backend"
	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/ctxlog"
	"github.com/vk/fmlgen/internal/diag"
	"github.com/vk/fmlgen/internal/render"
	"golang.org/x/sync/errgroup"
)

// Emitter renders the registration code of a resolved manifest.
type Emitter struct {
	workers int
}

// New creates an Emitter rendering up to workers features concurrently.
// Values below one mean one.
func New(workers int) *Emitter {
	if workers < 1 {
		workers = 1
	}
	return &Emitter{workers: workers}
}

// Emit returns the registry statement registering every feature of m in
// declaration order. m must be resolved. Any failure aborts the whole
// emission; every offending property is reported.
func (e *Emitter) Emit(ctx context.Context, m *config.Manifest, b backend.Backend) (string, error) {
	ctx = ctxlog.With(ctx, "target", b.Name())
	if m.About.ObjectName == "" {
		return "", fmt.Errorf("cannot generate %s code: the registry object name (about.object_name) is not set", b.Name())
	}

	blocks := make([]string, len(m.Features))
	errs := make([]error, len(m.Features))
	r := render.New(b)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, f := range m.Features {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			blocks[i], errs[i] = Feature(r, b, f)
			if errs[i] == nil {
				ctxlog.FromContext(gctx).Debug("Feature rendered.", "feature", f.Name, "properties", len(f.Properties))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	if err := diag.Join(fmt.Sprintf("%s code generation", b.Name()), errs...); err != nil {
		return "", err
	}

	rb := NewRegistryBuilder(b, m.About.ObjectName)
	for _, block := range blocks {
		rb.Add(block)
	}
	ctxlog.FromContext(ctx).Debug("Registry emitted.", "features", rb.Len())
	return rb.Build(), nil
}

// EmitFile wraps the registry statement in a complete source file.
func (e *Emitter) EmitFile(ctx context.Context, m *config.Manifest, b backend.Backend) (string, error) {
	registry, err := e.Emit(ctx, m, b)
	if err != nil {
		return "", err
	}
	return b.File(backend.FileHeader{
		ObjectName:  m.About.ObjectName,
		Package:     m.About.Package,
		Description: m.About.Description,
	}, registry), nil
}

// Feature renders the registration block of one resolved feature. The
// constructor is only spelled inside the initializer closure, so the
// generated code reads the provider when the feature is first used.
func Feature(r *render.Renderer, b backend.Backend, f *config.FeatureDefinition) (string, error) {
	root := render.Root(b)
	args := make([]backend.Argument, 0, len(f.Properties))
	var errs []error

	for _, p := range f.Properties {
		path := f.Name + "." + p.Name
		if err := r.Check(path, p.Type); err != nil {
			errs = append(errs, err)
			continue
		}
		if p.Default == nil {
			errs = append(errs, fmt.Errorf("%s: default has not been resolved", path))
			continue
		}
		lit, err := r.Render(path, p.Default, p.Type, root.Within(b, p.Name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		args = append(args, backend.Argument{Name: b.VarName(p.Name), Value: lit})
	}
	if err := diag.Join("feature "+f.Name, errs...); err != nil {
		return "", err
	}

	class := f.ClassName
	if class == "" {
		class = b.ClassName(f.Name)
	}
	return b.Registration(backend.Registration{
		Accessor: b.VarName(f.Name),
		Param:    root.Accessor,
		Class:    class,
		Args:     args,
	}), nil
}
