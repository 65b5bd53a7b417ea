package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ResponseMap maps field id to the value entered: string, number, string list,
// or a nested map for matrix/scale fields. Values arrive JSON-decoded.
type ResponseMap map[string]any

// Clone returns a shallow copy; values are treated as immutable
func (r ResponseMap) Clone() ResponseMap {
	out := make(ResponseMap, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// With returns a copy with one value replaced
func (r ResponseMap) With(fieldID string, value any) ResponseMap {
	out := r.Clone()
	out[fieldID] = value
	return out
}

// IsEmpty reports whether v counts as "no answer": missing, nil or "".
// Lists and maps are never empty by this definition.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

// IsBlank is the stricter check used for required fields: IsEmpty, a
// whitespace-only string, or an empty list/map also count as blank.
func IsBlank(v any) bool {
	if IsEmpty(v) {
		return true
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case map[string]string:
		return len(t) == 0
	}
	return false
}

// AsString returns v when it is a string
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsNumber returns v as a float when it is numeric or a numeric string
func AsNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	// NaN and Inf are not answers and do not survive JSON encoding
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// AsList returns v when it is a list
func AsList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// AsStrings flattens a scalar or list response into strings
func AsStrings(v any) []string {
	if IsEmpty(v) {
		return nil
	}
	if l, ok := AsList(v); ok {
		out := make([]string, 0, len(l))
		for _, item := range l {
			if !IsEmpty(item) {
				out = append(out, Stringify(item))
			}
		}
		return out
	}
	return []string{Stringify(v)}
}

// AsMap returns v when it is a nested map (matrix/scale answers)
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

// Stringify renders a scalar the way it would be typed: 3 not 3.000000
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

// ValuesEqual compares two scalars: numerically when both are numbers,
// otherwise by their typed string form.
func ValuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if _, ok := a.(string); !ok {
		if _, ok := b.(string); !ok {
			an, aok := AsNumber(a)
			bn, bok := AsNumber(b)
			if aok && bok {
				return an == bn
			}
		}
	}
	_, aStr := a.(string)
	_, bStr := b.(string)
	if aStr != bStr {
		return false
	}
	return Stringify(a) == Stringify(b)
}
