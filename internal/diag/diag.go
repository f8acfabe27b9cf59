// Package diag defines the error taxonomy shared by the resolver, the
// renderer and the emitter, and the aggregate used to report every offending
// property of a manifest in one run.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// located prefixes msg with the source position when one is known.
func located(rng hcl.Range, msg string) string {
	if rng.Filename == "" {
		return msg
	}
	return fmt.Sprintf("%s:%d,%d: %s", rng.Filename, rng.Start.Line, rng.Start.Column, msg)
}

// TypeMismatchError reports a default whose shape cannot inhabit its type.
type TypeMismatchError struct {
	Path     string
	Expected string
	Reason   string
	Range    hcl.Range
}

func (e *TypeMismatchError) Error() string {
	return located(e.Range, fmt.Sprintf("%s: type mismatch: expected %s: %s", e.Path, e.Expected, e.Reason))
}

// UnknownReferenceError reports a default that inherits from a sibling
// property which does not exist.
type UnknownReferenceError struct {
	Path      string
	Reference string
	Range     hcl.Range
}

func (e *UnknownReferenceError) Error() string {
	return located(e.Range, fmt.Sprintf("%s: unknown reference to property %q", e.Path, e.Reference))
}

// UnsupportedTypeError reports a type the active backend cannot render.
type UnsupportedTypeError struct {
	Path    string
	Type    string
	Backend string
	Reason  string
}

func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("%s: type %s is not supported by the %s backend", e.Path, e.Type, e.Backend)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// CyclicDefaultReferenceError reports a chain of default references that
// loops back on itself or exceeds the resolution depth guard.
type CyclicDefaultReferenceError struct {
	Path  string
	Chain []string
	Range hcl.Range
}

func (e *CyclicDefaultReferenceError) Error() string {
	return located(e.Range, fmt.Sprintf("%s: cyclic default reference: %s", e.Path, strings.Join(e.Chain, " -> ")))
}

// Errors aggregates independent failures. errors.As and errors.Is see every
// member through Unwrap.
type Errors struct {
	Op   string
	Errs []error
}

func (e *Errors) Error() string {
	lines := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		lines = append(lines, err.Error())
	}
	return fmt.Sprintf("%s failed:\n- %s", e.Op, strings.Join(lines, "\n- "))
}

func (e *Errors) Unwrap() []error { return e.Errs }

// Join returns nil when errs is empty and an *Errors otherwise. Nested
// *Errors are flattened so each offending property appears once.
func Join(op string, errs ...error) error {
	var flat []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if agg, ok := err.(*Errors); ok {
			flat = append(flat, agg.Errs...)
			continue
		}
		flat = append(flat, err)
	}
	if len(flat) == 0 {
		return nil
	}
	return &Errors{Op: op, Errs: flat}
}

// All returns the individual errors inside err, or err itself.
func All(err error) []error {
	if err == nil {
		return nil
	}
	var agg *Errors
	if errors.As(err, &agg) {
		return agg.Errs
	}
	return []error{err}
}
