package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/diag"
	"github.com/vk/fmlgen/internal/types"
	"github.com/vk/fmlgen/internal/value"
)

// maxReferenceDepth bounds a chain of `property.x` references.
const maxReferenceDepth = 64

// errDependency marks a property whose default could not be built because a
// property it depends on failed. The failing property reports the cause.
var errDependency = errors.New("depends on a default that failed to resolve")

// Resolver turns raw defaults into value trees. Record defaults start from
// the object definitions of the manifest it was built for.
type Resolver struct {
	objects map[string]*config.ObjectDefinition
	scopes  map[string]*scope // object name -> field scope, built lazily
}

// New creates a Resolver for the objects of m. The manifest must be linked.
func New(m *config.Manifest) *Resolver {
	r := &Resolver{
		objects: make(map[string]*config.ObjectDefinition, len(m.Objects)),
		scopes:  make(map[string]*scope),
	}
	for _, o := range m.Objects {
		r.objects[o.Name] = o
	}
	return r
}

// Value resolves a single raw default against t. References have no sibling
// scope here, so any reference is unknown. A nil raw default is only valid
// for optional types.
func (r *Resolver) Value(path string, t types.TypeRef, raw *config.RawValue) (value.Value, error) {
	return r.resolveDefault(&scope{owner: path}, path, t, raw)
}

// scope is a set of sibling properties whose defaults may reference each
// other: the properties of a feature or the fields of an object.
type scope struct {
	owner      string
	props      []*config.PropertyDefinition
	values     map[string]value.Value
	errs       map[string]error
	inProgress map[string]bool
	chain      []string
}

func newScope(owner string, props []*config.PropertyDefinition) *scope {
	return &scope{
		owner:      owner,
		props:      props,
		values:     make(map[string]value.Value),
		errs:       make(map[string]error),
		inProgress: make(map[string]bool),
	}
}

func (s *scope) lookup(name string) (*config.PropertyDefinition, bool) {
	for _, p := range s.props {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func (s *scope) path(name string) string {
	return s.owner + "." + name
}

// property resolves the default of p, once. Sibling references are resolved
// on demand, so declaration order does not matter.
func (r *Resolver) property(s *scope, p *config.PropertyDefinition) (value.Value, error) {
	if v, ok := s.values[p.Name]; ok {
		return v, nil
	}
	if err, ok := s.errs[p.Name]; ok {
		return nil, err
	}

	s.inProgress[p.Name] = true
	s.chain = append(s.chain, p.Name)
	v, err := r.resolveDefault(s, s.path(p.Name), p.Type, p.RawDefault)
	s.chain = s.chain[:len(s.chain)-1]
	delete(s.inProgress, p.Name)

	if err != nil {
		s.errs[p.Name] = err
		return nil, err
	}
	s.values[p.Name] = v
	return v, nil
}

// resolveDefault handles an absent default before dispatching on t.
func (r *Resolver) resolveDefault(s *scope, path string, t types.TypeRef, raw *config.RawValue) (value.Value, error) {
	if raw == nil {
		if _, ok := t.(types.Optional); ok {
			return value.Null{}, nil
		}
		return nil, &diag.TypeMismatchError{Path: path, Expected: types.Describe(t), Reason: "no default given"}
	}
	return r.resolve(s, path, t, raw)
}

// resolve checks raw against t depth first. The first problem found inside a
// property is returned; callers aggregate across properties.
func (r *Resolver) resolve(s *scope, path string, t types.TypeRef, raw *config.RawValue) (value.Value, error) {
	if raw.Kind == config.RawRef {
		return r.reference(s, path, t, raw)
	}

	switch tt := t.(type) {
	case types.Optional:
		if raw.Kind == config.RawNull {
			return value.Null{}, nil
		}
		return r.resolve(s, path, tt.Inner, raw)

	case types.Primitive:
		return scalar(path, tt.Kind, raw)

	case *types.Enum:
		return enumCase(path, tt, raw)

	case types.List:
		if raw.Kind != config.RawList {
			return nil, mismatch(path, t, raw, "got "+raw.Describe())
		}
		items := make([]value.Value, 0, len(raw.Items))
		for i, item := range raw.Items {
			v, err := r.resolve(s, fmt.Sprintf("%s[%d]", path, i), tt.Elem, item)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return value.List{Items: items}, nil

	case types.Map:
		if raw.Kind != config.RawObject {
			return nil, mismatch(path, t, raw, "got "+raw.Describe())
		}
		seen := make(map[string]bool, len(raw.Entries))
		entries := make([]value.Entry, 0, len(raw.Entries))
		for _, e := range raw.Entries {
			entryPath := fmt.Sprintf("%s[%q]", path, e.Key)
			if seen[e.Key] {
				return nil, mismatch(entryPath, t, e.Value, "duplicate key "+e.Key)
			}
			seen[e.Key] = true
			key, err := mapKey(entryPath, tt.Key, e)
			if err != nil {
				return nil, err
			}
			v, err := r.resolve(s, entryPath, tt.Value, e.Value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, value.Entry{Key: key, Value: v})
		}
		return value.Map{Entries: entries}, nil

	case *types.Record:
		return r.record(s, path, tt, raw, r.objectDefaults(tt))
	}

	return nil, mismatch(path, t, raw, "type cannot hold a default")
}

// reference resolves `property.<name>` against the sibling scope. The
// referenced property must have exactly the type expected here.
func (r *Resolver) reference(s *scope, path string, t types.TypeRef, raw *config.RawValue) (value.Value, error) {
	target, ok := s.lookup(raw.Ref)
	if !ok {
		return nil, &diag.UnknownReferenceError{Path: path, Reference: raw.Ref, Range: raw.Range}
	}
	if s.inProgress[target.Name] || len(s.chain) >= maxReferenceDepth {
		chain := append(append([]string(nil), s.chain...), target.Name)
		return nil, &diag.CyclicDefaultReferenceError{Path: path, Chain: chain, Range: raw.Range}
	}
	if !types.Equal(target.Type, t) {
		return nil, mismatch(path, t, raw, fmt.Sprintf("property %s has type %s", target.Name, types.Describe(target.Type)))
	}
	v, err := r.property(s, target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, errDependency)
	}
	return v, nil
}

func mismatch(path string, t types.TypeRef, raw *config.RawValue, reason string) error {
	return &diag.TypeMismatchError{Path: path, Expected: types.Describe(t), Reason: reason, Range: raw.Range}
}

// isDependencyFailure reports whether err only echoes another property's
// failure.
func isDependencyFailure(err error) bool {
	return errors.Is(err, errDependency)
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
