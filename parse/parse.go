// Package parse reads game asset documents into ir trees.
//
// Game assets are JSON with the usual hand-edited extensions: line and block
// comments, tabs, trailing commas, single-quoted strings, unquoted and
// repeated keys. Parse normalizes those away and decodes the result as a YAML
// flow document, which keeps object keys in source order. Of repeated keys
// the last value wins.
package parse

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/fastbreeding/breedpatch/ir"

	"github.com/goccy/go-yaml"
)

type parseOpts struct {
	strict bool
}

type ParseOption func(*parseOpts)

// Strict disables JSON5 normalization: the input must already be JSON or
// YAML.
func Strict(v bool) ParseOption {
	return func(o *parseOpts) { o.strict = v }
}

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, opt := range opts {
		opt(pOpts)
	}
	if !pOpts.strict {
		d = Normalize(d)
	}
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromAny(v)
}

// FromAny converts a decoded value into an ir tree.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return ir.FromFloat(float64(x)), nil
		}
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case yaml.MapSlice:
		// a repeated key keeps its first position and its last value
		kvs := make([]ir.KeyVal, 0, len(x))
		seen := make(map[string]int, len(x))
		for _, item := range x {
			val, err := FromAny(item.Value)
			if err != nil {
				return nil, err
			}
			key := keyString(item.Key)
			if i, ok := seen[key]; ok {
				kvs[i].Val = val
				continue
			}
			seen[key] = len(kvs)
			kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case map[string]any:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			val, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: k, Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i := range x {
			val, err := FromAny(x[i])
			if err != nil {
				return nil, err
			}
			vals[i] = val
		}
		return ir.FromSlice(vals), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

func keyString(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case nil:
		return "null"
	default:
		return fmt.Sprint(x)
	}
}
