package manifest

import (
	"encoding/json"
	"math"
	"strings"
)

func asObject(value any) (map[string]any, bool) {
	obj, ok := value.(map[string]any)
	return obj, ok && obj != nil
}

func asArray(value any) ([]any, bool) {
	arr, ok := value.([]any)
	return arr, ok
}

// asNumber accepts the numeric shapes produced by encoding/json (with and
// without UseNumber) and by yaml.v3. Non-finite values are rejected.
func asNumber(value any) (float64, bool) {
	var f float64
	switch n := value.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// maxExactInt is the largest magnitude at which float64 still holds every integer.
const maxExactInt = 1 << 53

func asInteger(value any) (int, bool) {
	f, ok := asNumber(value)
	if !ok || f != math.Trunc(f) || math.Abs(f) > maxExactInt || f > math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

func nonEmptyString(value any) (string, bool) {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
