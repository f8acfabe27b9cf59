// Package registry provides the central "glue" for the backend system.
//
// The Registry maps the target names used on the command line (e.g.
// "kotlin") to the compiled backends that spell generated code for that
// language. Backends are contributed by modules at application startup, and
// the requested targets are validated against the registry before any
// manifest is rendered, so a typo in a target fails fast.
package registry
