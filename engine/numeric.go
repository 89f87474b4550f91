package engine

import "fmt"

// ToDouble coerces a raw script result to float64 using standard Go numeric
// conversion rules. Non-numeric values return ErrNotNumeric.
func ToDouble(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: got %T", ErrNotNumeric, v)
	}
}

// ToFloat coerces a raw script result to float32. The conversion narrows
// float64 results with standard Go conversion semantics.
func ToFloat(v any) (float32, error) {
	d, err := ToDouble(v)
	if err != nil {
		return 0, err
	}
	return float32(d), nil
}

// ToLong coerces a raw script result to int64. Float results truncate toward
// zero, matching Go's float-to-integer conversion.
func ToLong(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: got %T", ErrNotNumeric, v)
	}
}
