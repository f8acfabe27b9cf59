// Package config defines the format-agnostic manifest model, along with the
// core interfaces (Loader, FileLoader) for loading feature manifests from
// various sources.
//
// The `config.Manifest` is the single source of truth for the `resolve` and
// `emit` packages. Concrete file formats, such as HCL and YAML, are provided
// in separate packages; MultiLoader merges their fragments and Link binds
// named types to their enum and object definitions.
package config
