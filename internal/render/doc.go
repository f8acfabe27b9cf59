// Package render is the literal rendering engine: it turns a resolved
// default into source text of a target language, dispatching strictly on the
// declared type. The backend supplies the syntax; this package decides the
// structure, so every backend gets the same optional, list, map and record
// semantics.
package render
