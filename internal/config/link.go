package config

import (
	"fmt"
	"strings"

	"github.com/vk/fmlgen/internal/diag"
	"github.com/vk/fmlgen/internal/types"
)

// Link binds every types.Named in the manifest to the enum or record built
// from its definition and rejects records that contain themselves. All
// problems are reported together.
func Link(m *Manifest) error {
	named := make(map[string]types.TypeRef)
	var errs []error

	for _, e := range m.Enums {
		named[e.Name] = &types.Enum{Name: e.Name, Variants: e.Variants}
	}
	records := make(map[string]*types.Record)
	for _, o := range m.Objects {
		if _, clash := named[o.Name]; clash {
			errs = append(errs, fmt.Errorf("object %q has the same name as an enum", o.Name))
			continue
		}
		rec := &types.Record{Name: o.Name}
		named[o.Name] = rec
		records[o.Name] = rec
	}

	bind := func(path string, t types.TypeRef) types.TypeRef {
		linked, err := link(t, named)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return t
		}
		return linked
	}

	for _, o := range m.Objects {
		rec, ok := records[o.Name]
		if !ok {
			continue
		}
		for _, f := range o.Fields {
			f.Type = bind(o.Name+"."+f.Name, f.Type)
			rec.Fields = append(rec.Fields, &types.Field{Name: f.Name, Type: f.Type})
		}
	}
	for _, feat := range m.Features {
		for _, p := range feat.Properties {
			p.Type = bind(feat.Name+"."+p.Name, p.Type)
		}
	}

	if err := diag.Join("type linking", errs...); err != nil {
		return err
	}
	return checkRecordCycles(m.Objects, records)
}

// link returns t with every Named replaced by its definition.
func link(t types.TypeRef, named map[string]types.TypeRef) (types.TypeRef, error) {
	switch tt := t.(type) {
	case types.Named:
		def, ok := named[tt.Name]
		if !ok {
			return nil, fmt.Errorf("unknown type %q", tt.Name)
		}
		return def, nil
	case types.Optional:
		inner, err := link(tt.Inner, named)
		if err != nil {
			return nil, err
		}
		if _, nested := inner.(types.Optional); nested {
			return nil, fmt.Errorf("optional(optional(...)) is not allowed")
		}
		return types.Optional{Inner: inner}, nil
	case types.List:
		elem, err := link(tt.Elem, named)
		if err != nil {
			return nil, err
		}
		return types.List{Elem: elem}, nil
	case types.Map:
		key, err := link(tt.Key, named)
		if err != nil {
			return nil, err
		}
		val, err := link(tt.Value, named)
		if err != nil {
			return nil, err
		}
		return types.Map{Key: key, Value: val}, nil
	}
	return t, nil
}

// checkRecordCycles rejects any record reachable from itself.
func checkRecordCycles(objects []*ObjectDefinition, records map[string]*types.Record) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int)
	var errs []error

	var visit func(rec *types.Record, chain []string)
	visit = func(rec *types.Record, chain []string) {
		chain = append(chain, rec.Name)
		switch state[rec.Name] {
		case visiting:
			errs = append(errs, fmt.Errorf("object %q contains itself: %s", rec.Name, strings.Join(chain, " -> ")))
			return
		case done:
			return
		}
		state[rec.Name] = visiting
		for _, f := range rec.Fields {
			types.Walk(f.Type, func(t types.TypeRef) {
				if child, ok := t.(*types.Record); ok {
					visit(child, chain)
				}
			})
		}
		state[rec.Name] = done
	}

	for _, o := range objects {
		if rec, ok := records[o.Name]; ok && state[o.Name] == unvisited {
			visit(rec, nil)
		}
	}
	return diag.Join("type linking", errs...)
}
