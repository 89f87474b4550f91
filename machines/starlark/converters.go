package starlark

import (
	"errors"
	"fmt"

	starlarkLib "go.starlark.net/starlark"
)

// convertToStarlarkValue converts a Go value into its Starlark equivalent.
func convertToStarlarkValue(v any) (starlarkLib.Value, error) {
	if v == nil {
		return starlarkLib.None, nil
	}

	switch val := v.(type) {
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case float32:
		return starlarkLib.Float(float64(val)), nil
	case string:
		return starlarkLib.String(val), nil
	case []any:
		elems := make([]starlarkLib.Value, 0, len(val))
		for i, item := range val {
			sv, err := convertToStarlarkValue(item)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element %d: %w", i, err)
			}
			elems = append(elems, sv)
		}
		return starlarkLib.NewList(elems), nil
	case map[string]any:
		dict := starlarkLib.NewDict(len(val))
		for k, item := range val {
			sv, err := convertToStarlarkValue(item)
			if err != nil {
				return nil, fmt.Errorf("failed to convert map value for key %q: %w", k, err)
			}
			if err := dict.SetKey(starlarkLib.String(k), sv); err != nil {
				return nil, fmt.Errorf("failed to set dict key %q: %w", k, err)
			}
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported Go type %T", v)
	}
}

// convertStarlarkValueToInterface converts a Starlark value to a native Go value.
func convertStarlarkValueToInterface(v starlarkLib.Value) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch v := v.(type) {
	case starlarkLib.NoneType:
		return nil, nil
	case starlarkLib.Bool:
		return bool(v), nil
	case starlarkLib.Int:
		i, _ := v.Int64()
		return i, nil
	case starlarkLib.Float:
		return float64(v), nil
	case starlarkLib.String:
		return string(v), nil
	case *starlarkLib.List:
		list := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := convertStarlarkValueToInterface(v.Index(i))
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
			list = append(list, elem)
		}
		return list, nil
	case *starlarkLib.Dict:
		dict := make(map[string]any)
		for _, k := range v.Keys() {
			val, found, err := v.Get(k)
			if err != nil || !found {
				continue // Skip invalid entries
			}

			kStr, ok := k.(starlarkLib.String)
			if !ok {
				// Convert non-string keys to strings for map compatibility
				kStr = starlarkLib.String(k.String())
			}

			vv, err := convertStarlarkValueToInterface(val)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			dict[string(kStr)] = vv
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported Starlark type %T", v)
	}
}

// convertBindings converts a Go binding map into a Starlark StringDict, with
// each binding under its own name and the full set wrapped under ctxKey.
func convertBindings(ctxKey string, bindings map[string]any) (starlarkLib.StringDict, error) {
	sDict := make(starlarkLib.StringDict, len(bindings)+1)
	ctxDict := starlarkLib.NewDict(len(bindings))

	errz := make([]error, 0)
	for k, v := range bindings {
		sv, err := convertToStarlarkValue(v)
		if err != nil {
			errz = append(errz, fmt.Errorf("failed to convert binding %q: %w", k, err))
			continue
		}
		sDict[k] = sv
		if err := ctxDict.SetKey(starlarkLib.String(k), sv); err != nil {
			errz = append(errz, fmt.Errorf("failed to set ctx dict key %q: %w", k, err))
			continue
		}
	}

	if len(errz) > 0 {
		return nil, fmt.Errorf("failed to convert bindings: %w", errors.Join(errz...))
	}

	sDict[ctxKey] = ctxDict
	return sDict, nil
}
