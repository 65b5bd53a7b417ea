package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"formflow/internal/model"
)

// NormalizeResponses rewrites values decoded from BSON into the shapes the
// engine expects from JSON: []any lists, map[string]any documents and
// float64 numbers.
func NormalizeResponses(r model.ResponseMap) model.ResponseMap {
	if r == nil {
		return model.ResponseMap{}
	}
	out := make(model.ResponseMap, len(r))
	for k, v := range r {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case primitive.A:
		return normalizeList(t)
	case []any:
		return normalizeList(t)
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case primitive.M:
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case primitive.Decimal128:
		return t.String()
	}
	return v
}

func normalizeList(l []any) []any {
	out := make([]any, len(l))
	for i, item := range l {
		out[i] = normalizeValue(item)
	}
	return out
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

// normalizeSchema does the same for rule comparison values, which are
// stored as free-form BSON too
func normalizeSchema(s *model.FormSchema) {
	for i := range s.Fields {
		c := s.Fields[i].Conditional
		if c == nil {
			continue
		}
		for j := range c.Rules {
			c.Rules[j].Value = normalizeValue(c.Rules[j].Value)
		}
	}
}
