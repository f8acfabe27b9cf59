package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/fmlgen/internal/backend"
)

// Module is the interface that all backend modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered backends for a single application instance.
type Registry struct {
	backends map[string]backend.Backend
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		backends: make(map[string]backend.Backend),
	}
}

// RegisterBackend registers a target language backend under its name.
func (r *Registry) RegisterBackend(b backend.Backend) {
	name := b.Name()
	if _, exists := r.backends[name]; exists {
		panic(fmt.Sprintf("backend with name '%s' already registered", name))
	}
	slog.Debug("Registering backend.", "name", name, "extension", b.FileExtension())
	r.backends[name] = b
}

// Backend returns the backend registered under name.
func (r *Registry) Backend(name string) (backend.Backend, bool) {
	b, ok := r.backends[name]
	return b, ok
}

// Names returns every registered backend name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
