package resolve

import (
	"fmt"
	"math/big"

	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/diag"
	"github.com/vk/fmlgen/internal/types"
	"github.com/vk/fmlgen/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// scalar checks a raw scalar against a primitive kind. Numbers keep the
// exact big.Float the loader parsed.
func scalar(path string, kind types.Kind, raw *config.RawValue) (value.Value, error) {
	t := types.Primitive{Kind: kind}
	if raw.Kind != config.RawScalar {
		return nil, mismatch(path, t, raw, "got "+raw.Describe())
	}
	got := raw.Scalar.Type()

	switch kind {
	case types.Bool:
		if !got.Equals(cty.Bool) {
			return nil, mismatch(path, t, raw, "got "+raw.Describe())
		}
	case types.Int:
		if !got.Equals(cty.Number) {
			return nil, mismatch(path, t, raw, "got "+raw.Describe())
		}
		f := raw.Scalar.AsBigFloat()
		if !f.IsInt() {
			return nil, mismatch(path, t, raw, raw.Describe()+" has a fractional part")
		}
		if _, acc := f.Int64(); acc != big.Exact {
			return nil, mismatch(path, t, raw, raw.Describe()+" does not fit in 64 bits")
		}
	case types.Float:
		if !got.Equals(cty.Number) {
			return nil, mismatch(path, t, raw, "got "+raw.Describe())
		}
	case types.String, types.Text, types.Image:
		if !got.Equals(cty.String) {
			return nil, mismatch(path, t, raw, "got "+raw.Describe())
		}
	default:
		return nil, mismatch(path, t, raw, "unknown primitive kind")
	}
	return value.Scalar{V: raw.Scalar}, nil
}

func enumCase(path string, e *types.Enum, raw *config.RawValue) (value.Value, error) {
	if raw.Kind != config.RawScalar || !raw.Scalar.Type().Equals(cty.String) {
		return nil, mismatch(path, e, raw, "got "+raw.Describe())
	}
	variant := raw.Scalar.AsString()
	if !e.HasVariant(variant) {
		return nil, mismatch(path, e, raw, fmt.Sprintf("%q is not a variant; variants are %s", variant, quoteAll(e.Variants)))
	}
	return value.EnumCase{Variant: variant}, nil
}

// mapKey converts an object key into a key of the declared key type. Keys
// are always written as text, so numbers and bools are parsed from it.
func mapKey(path string, t types.TypeRef, e *config.RawEntry) (value.Value, error) {
	keyRaw := &config.RawValue{Kind: config.RawScalar, Scalar: cty.StringVal(e.Key), Range: e.Range}

	switch kt := t.(type) {
	case *types.Enum:
		return enumCase(path, kt, keyRaw)
	case types.Primitive:
		switch kt.Kind {
		case types.Int, types.Float:
			n, err := cty.ParseNumberVal(e.Key)
			if err != nil {
				return nil, mismatch(path, t, keyRaw, fmt.Sprintf("key %q is not a number", e.Key))
			}
			keyRaw.Scalar = n
		case types.Bool:
			switch e.Key {
			case "true":
				keyRaw.Scalar = cty.True
			case "false":
				keyRaw.Scalar = cty.False
			default:
				return nil, mismatch(path, t, keyRaw, fmt.Sprintf("key %q is not a bool", e.Key))
			}
		}
		return scalar(path, kt.Kind, keyRaw)
	}
	return nil, &diag.TypeMismatchError{
		Path:     path,
		Expected: "a scalar or enum map key",
		Reason:   "map keys of type " + types.Describe(t) + " cannot be written in a manifest",
		Range:    e.Range,
	}
}
