// Package resolve turns the raw defaults read by a loader into typed value
// trees, checking each against its declared type.
//
// A default may be a literal, a `property.<name>` reference to a sibling
// property of the same type, or absent (allowed only for optional types).
// Record defaults start from the object's field defaults and overlay the
// entries they set, recursively for nested records.
package resolve
