package mask

import (
	"math"
	"sort"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// NormalizeValue converts a decoded value to the closed set of types used in configuration mappings:
// string, int, float64, bool, []any, *orderedmap.OrderedMap or nil.
// Integral numbers are converted to int.
func NormalizeValue(v any) any {
	switch v := v.(type) {
	case *orderedmap.OrderedMap:
		return NormalizeMap(v)
	case orderedmap.OrderedMap:
		return NormalizeMap(&v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := orderedmap.New()
		for _, k := range keys {
			out.Set(k, NormalizeValue(v[k]))
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, NormalizeValue(item))
		}
		return out
	case []string:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, item)
		}
		return out
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1<<53 {
			return int(v)
		}
		return v
	case float32:
		return NormalizeValue(float64(v))
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint64:
		return int(v) //nolint:gosec
	case string, int, bool, nil:
		return v
	default:
		return v
	}
}

// NormalizeMap returns a normalized deep copy of the map.
func NormalizeMap(m *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	out := orderedmap.New()
	if m == nil {
		return out
	}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		out.Set(k, NormalizeValue(v))
	}
	return out
}

// ToPlainValue converts ordered maps to plain maps recursively, for example for the JSON schema validation.
func ToPlainValue(v any) any {
	switch v := v.(type) {
	case *orderedmap.OrderedMap:
		out := make(map[string]any)
		if v == nil {
			return out
		}
		for _, k := range v.Keys() {
			item, _ := v.Get(k)
			out[k] = ToPlainValue(item)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, ToPlainValue(item))
		}
		return out
	default:
		return v
	}
}

// mapValue returns nested map or an empty map.
// PHP encodes an empty array as "[]", so an empty list is accepted as an empty map.
func mapValue(v any) (*orderedmap.OrderedMap, bool) {
	switch v := v.(type) {
	case *orderedmap.OrderedMap:
		if v == nil {
			return orderedmap.New(), true
		}
		return v, true
	case []any:
		if len(v) == 0 {
			return orderedmap.New(), true
		}
	case nil:
		return orderedmap.New(), true
	}
	return nil, false
}
