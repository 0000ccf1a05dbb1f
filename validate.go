package toolgate

import (
	"encoding/json"
	"math"
	"reflect"
)

// ValidateArgs checks args against the declared parameters and returns a
// fresh argument map: required parameters must be present, present values
// must satisfy their type tag (and enum, if any), absent optional parameters
// get their default, and arguments not in the declaration are rejected.
// Pure function; args is never mutated.
func ValidateArgs(params []Param, args Args) (Args, error) {
	declared := make(map[string]struct{}, len(params))
	for _, p := range params {
		declared[p.Name] = struct{}{}
	}
	for name := range args {
		if _, ok := declared[name]; !ok {
			return nil, errf(KindUnknownParameter, "unknown parameter %q", name)
		}
	}
	out := make(Args, len(params))
	for _, p := range params {
		v, ok := args[p.Name]
		if !ok {
			if p.Required {
				return nil, errf(KindMissingParameter, "missing required parameter %q", p.Name)
			}
			if p.Default != nil {
				out[p.Name] = p.Default
			}
			continue
		}
		if !matchesType(p.Type, v) {
			return nil, errf(KindTypeMismatch, "parameter %q: expected %s", p.Name, p.Type)
		}
		if len(p.Enum) > 0 && !enumContains(p.Enum, v) {
			return nil, errf(KindTypeMismatch, "parameter %q: value not in enum", p.Name)
		}
		out[p.Name] = v
	}
	return out, nil
}

// matchesType reports whether v satisfies the type tag. Values may come from
// JSON deserialization (float64 numbers, map[string]any objects) or be built
// directly in Go, so numeric tags accept the native integer and float kinds.
func matchesType(t ParamType, v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeNumber:
		_, ok := toFloat(v)
		return ok
	case TypeInteger:
		f, ok := toFloat(v)
		return ok && f == math.Trunc(f)
	case TypeArray:
		if v == nil {
			return false
		}
		k := reflect.TypeOf(v).Kind()
		return k == reflect.Slice || k == reflect.Array
	case TypeObject:
		if v == nil {
			return false
		}
		return reflect.TypeOf(v).Kind() == reflect.Map
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// enumContains compares v against enum members, normalizing numbers so that
// an enum declared with ints matches JSON's float64 values.
func enumContains(enum []any, v any) bool {
	vf, vIsNum := toFloat(v)
	for _, e := range enum {
		if reflect.DeepEqual(e, v) {
			return true
		}
		if vIsNum {
			if ef, ok := toFloat(e); ok && ef == vf {
				return true
			}
		}
	}
	return false
}
