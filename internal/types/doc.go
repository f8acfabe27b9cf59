// Package types defines the type model of a feature manifest: primitives,
// enums and the nested optional, list, map and record types a property can
// hold.
//
// The model is a tree. Record definitions may reference other records, but
// never themselves, directly or transitively; config.Link rejects such
// manifests before any default is resolved.
package types
