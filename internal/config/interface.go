package config

import (
	"context"
)

// Loader is the interface for loading one or more manifest paths into the
// format-agnostic, linked model.
type Loader interface {
	// Load reads every manifest file under the given paths, merges them in
	// discovery order and links named types to their definitions.
	Load(ctx context.Context, paths ...string) (*Manifest, error)
}

// FileLoader is the interface for a format-specific manifest parser. It
// translates a single file into an unlinked Manifest fragment.
type FileLoader interface {
	// Extensions lists the file suffixes this loader understands, e.g. ".hcl".
	Extensions() []string

	// LoadFile parses one file. Types naming enums or objects are left as
	// types.Named placeholders for Link to bind.
	LoadFile(ctx context.Context, path string) (*Manifest, error)
}
