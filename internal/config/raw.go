package config

import (
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// RawKind discriminates the shapes a manifest default can take before it is
// checked against its declared type.
type RawKind int

const (
	RawNull RawKind = iota
	RawScalar
	RawList
	RawObject
	RawRef
)

func (k RawKind) String() string {
	switch k {
	case RawNull:
		return "null"
	case RawScalar:
		return "scalar"
	case RawList:
		return "list"
	case RawObject:
		return "object"
	case RawRef:
		return "reference"
	}
	return "unknown"
}

// RawValue is a default exactly as a loader read it. Object entries keep
// their source order, which later becomes map and record emission order.
type RawValue struct {
	Kind    RawKind
	Scalar  cty.Value // RawScalar: known, non-null bool, number or string
	Items   []*RawValue
	Entries []*RawEntry
	Ref     string // RawRef: name of the sibling property
	Range   hcl.Range
}

// RawEntry is one key of a RawObject.
type RawEntry struct {
	Key   string
	Value *RawValue
	Range hcl.Range
}

// Describe names the raw shape for diagnostics, e.g. `a list` or `the string "x"`.
func (r *RawValue) Describe() string {
	switch r.Kind {
	case RawNull:
		return "null"
	case RawList:
		return "a list"
	case RawObject:
		return "an object"
	case RawRef:
		return "a reference to " + r.Ref
	case RawScalar:
		switch r.Scalar.Type() {
		case cty.String:
			return "the string " + strconv.Quote(r.Scalar.AsString())
		case cty.Number:
			f := r.Scalar.AsBigFloat()
			if f.IsInt() {
				return "the number " + f.Text('f', 0)
			}
			return "the number " + f.Text('g', -1)
		case cty.Bool:
			if r.Scalar.True() {
				return "the bool true"
			}
			return "the bool false"
		}
	}
	return "an unknown value"
}

// Entry returns the entry with the given key.
func (r *RawValue) Entry(key string) (*RawEntry, bool) {
	for _, e := range r.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// FromCty converts an evaluated cty value into a raw tree. Object and map
// attributes come back in cty's lexical order, so loaders only use it for
// values whose source order is not available.
func FromCty(v cty.Value, rng hcl.Range) *RawValue {
	if v.IsNull() {
		return &RawValue{Kind: RawNull, Range: rng}
	}
	ty := v.Type()
	switch {
	case ty.IsPrimitiveType():
		return &RawValue{Kind: RawScalar, Scalar: v, Range: rng}
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		raw := &RawValue{Kind: RawList, Range: rng}
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			raw.Items = append(raw.Items, FromCty(elem, rng))
		}
		return raw
	case ty.IsMapType() || ty.IsObjectType():
		raw := &RawValue{Kind: RawObject, Range: rng}
		it := v.ElementIterator()
		for it.Next() {
			k, elem := it.Element()
			raw.Entries = append(raw.Entries, &RawEntry{Key: k.AsString(), Value: FromCty(elem, rng), Range: rng})
		}
		return raw
	}
	return &RawValue{Kind: RawNull, Range: rng}
}
