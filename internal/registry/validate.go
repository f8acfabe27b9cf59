package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/fmlgen/internal/backend"
	"github.com/vk/fmlgen/internal/ctxlog"
)

// ValidateTargets resolves the requested target names into backends, in the
// order given. Unknown and repeated targets are all reported together.
func (r *Registry) ValidateTargets(ctx context.Context, targets []string) ([]backend.Backend, error) {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	if len(targets) == 0 {
		errs = append(errs, fmt.Sprintf("no target given; available targets: %s", strings.Join(r.Names(), ", ")))
	}

	seen := make(map[string]struct{}, len(targets))
	backends := make([]backend.Backend, 0, len(targets))
	for _, name := range targets {
		if _, dup := seen[name]; dup {
			errs = append(errs, fmt.Sprintf("target '%s' is requested more than once", name))
			continue
		}
		seen[name] = struct{}{}

		b, ok := r.backends[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("unknown target '%s'; available targets: %s", name, strings.Join(r.Names(), ", ")))
			continue
		}
		logger.Debug("Target validated.", "target", name)
		backends = append(backends, b)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("target validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return backends, nil
}
