package emit

import "github.com/vk/fmlgen/internal/backend"

// RegistryBuilder collects feature registration blocks and assembles them
// into the registry statement of one backend. It stands in for the registry
// singleton the generated code talks to; nothing global is touched.
type RegistryBuilder struct {
	backend    backend.Backend
	objectName string
	blocks     []string
}

// NewRegistryBuilder creates a builder for the registry named objectName.
func NewRegistryBuilder(b backend.Backend, objectName string) *RegistryBuilder {
	return &RegistryBuilder{backend: b, objectName: objectName}
}

// Add appends a registration block. Blocks are emitted in the order added.
func (rb *RegistryBuilder) Add(block string) {
	rb.blocks = append(rb.blocks, block)
}

// Len returns the number of blocks added so far.
func (rb *RegistryBuilder) Len() int {
	return len(rb.blocks)
}

// Build assembles the registry statement.
func (rb *RegistryBuilder) Build() string {
	return rb.backend.Registry(rb.objectName, rb.blocks)
}
