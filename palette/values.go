package palette

import (
	"encoding/json"
	"math"
	"reflect"
)

// toNumber converts the numeric kinds found in decoded data to float64.
// Strings are not coerced. NaN is returned as a number.
func toNumber(v interface{}) (float64, bool) {
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
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toFloat is toNumber with NaN treated as missing
func toFloat(v interface{}) (float64, bool) {
	f, ok := toNumber(v)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// levelKey is the map key a categorical value is stored under.
// Numbers are keyed by their float64 value so 1, int64(1) and json.Number("1") are the same level.
func levelKey(v interface{}) (interface{}, bool) {
	if v == nil {
		return nil, false
	}

	if f, isNumber := toNumber(v); isNumber {
		if math.IsNaN(f) {
			return nil, false
		}
		return f, true
	}

	if !reflect.TypeOf(v).Comparable() {
		return nil, false
	}

	return v, true
}

// Float64s converts a slice of float64 into values a palette accepts.
func Float64s(xs []float64) []interface{} {
	values := make([]interface{}, len(xs))
	for i, x := range xs {
		values[i] = x
	}
	return values
}

// numericSample extracts the non-NaN numbers of values.
func numericSample(values []interface{}) []float64 {
	sample := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := toFloat(v); ok {
			sample = append(sample, f)
		}
	}
	return sample
}
