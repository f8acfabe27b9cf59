package resolve

import (
	"fmt"

	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/types"
	"github.com/vk/fmlgen/internal/value"
)

// recordBase is what a record default is patched onto: the object's own
// field defaults, or the value an enclosing default already gave the field.
type recordBase struct {
	values  map[string]value.Value
	missing map[string]bool // non-optional fields without a default
	failed  map[string]bool // fields whose default did not resolve
}

func baseFromRecord(rec value.Record) *recordBase {
	b := &recordBase{values: make(map[string]value.Value, len(rec.Fields))}
	for _, f := range rec.Fields {
		b.values[f.Name] = f.Value
	}
	return b
}

// objectScope returns the field scope of an object, creating it on first use
// so every record of that type shares one resolution of its field defaults.
func (r *Resolver) objectScope(name string) (*scope, *config.ObjectDefinition) {
	obj, ok := r.objects[name]
	if !ok {
		return nil, nil
	}
	s, ok := r.scopes[name]
	if !ok {
		s = newScope(name, obj.Fields)
		r.scopes[name] = s
	}
	return s, obj
}

// objectDefaults resolves the field defaults of rec's object definition.
func (r *Resolver) objectDefaults(rec *types.Record) *recordBase {
	base := &recordBase{
		values:  make(map[string]value.Value),
		missing: make(map[string]bool),
		failed:  make(map[string]bool),
	}
	s, obj := r.objectScope(rec.Name)

	for _, f := range rec.Fields {
		var def *config.PropertyDefinition
		if obj != nil {
			def, _ = obj.Field(f.Name)
		}
		if def == nil || def.RawDefault == nil {
			if _, ok := f.Type.(types.Optional); ok {
				base.values[f.Name] = value.Null{}
			} else {
				base.missing[f.Name] = true
			}
			continue
		}
		v, err := r.property(s, def)
		if err != nil {
			base.failed[f.Name] = true
			continue
		}
		base.values[f.Name] = v
	}
	return base
}

// record overlays the entries of raw onto base. Nested records given as
// objects are patched onto the nested value in base instead of replacing it.
func (r *Resolver) record(s *scope, path string, rec *types.Record, raw *config.RawValue, base *recordBase) (value.Value, error) {
	if raw.Kind != config.RawObject {
		return nil, mismatch(path, rec, raw, "got "+raw.Describe())
	}

	provided := make(map[string]*config.RawEntry, len(raw.Entries))
	for _, e := range raw.Entries {
		if _, ok := rec.Field(e.Key); !ok {
			return nil, mismatch(path, rec, e.Value, fmt.Sprintf("unknown field %q; fields are %s", e.Key, quoteAll(rec.FieldNames())))
		}
		if _, dup := provided[e.Key]; dup {
			return nil, mismatch(path, rec, e.Value, fmt.Sprintf("field %q is set more than once", e.Key))
		}
		provided[e.Key] = e
	}

	fields := make([]value.FieldValue, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		fieldPath := path + "." + f.Name
		var (
			v   value.Value
			err error
		)
		if e, ok := provided[f.Name]; ok {
			v, err = r.overlay(s, fieldPath, f.Type, e.Value, base.values[f.Name])
		} else if bv, ok := base.values[f.Name]; ok {
			v = bv
		} else if base.failed[f.Name] {
			err = fmt.Errorf("%s: %w", fieldPath, errDependency)
		} else {
			err = mismatch(fieldPath, f.Type, raw, fmt.Sprintf("field %q has no default and is not set", f.Name))
		}
		if err != nil {
			return nil, err
		}
		fields = append(fields, value.FieldValue{Name: f.Name, Value: v})
	}
	return value.Record{Fields: fields}, nil
}

// overlay resolves a provided field value, patching nested records onto the
// value the field already had.
func (r *Resolver) overlay(s *scope, path string, t types.TypeRef, raw *config.RawValue, prev value.Value) (value.Value, error) {
	nested, isRecord := t.(*types.Record)
	prevRecord, hadRecord := prev.(value.Record)
	if isRecord && hadRecord && raw.Kind == config.RawObject {
		return r.record(s, path, nested, raw, baseFromRecord(prevRecord))
	}
	return r.resolve(s, path, t, raw)
}
