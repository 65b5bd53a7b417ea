// Package rules decides field visibility from conditional rule sets.
// Every function here is pure and never panics on malformed input: a rule
// that cannot be evaluated counts as not matched.
package rules

import (
	"strings"

	"formflow/internal/model"
)

// ShouldShowField reports whether field is visible given the current responses
func ShouldShowField(field *model.FieldDefinition, responses model.ResponseMap) bool {
	c := field.Conditional
	if c == nil || !c.Enabled || len(c.Rules) == 0 {
		return true
	}

	matched := combine(c.Combine, c.Rules, responses)
	if c.Action == model.ActionHide {
		return !matched
	}
	return matched
}

// VisibleFields returns the schema fields that are currently visible, in order
func VisibleFields(schema *model.FormSchema, responses model.ResponseMap) []model.FieldDefinition {
	out := make([]model.FieldDefinition, 0, len(schema.Fields))
	for i := range schema.Fields {
		if ShouldShowField(&schema.Fields[i], responses) {
			out = append(out, schema.Fields[i])
		}
	}
	return out
}

func combine(c model.Combinator, rules []model.ConditionalRule, responses model.ResponseMap) bool {
	if c == model.CombineAny {
		for _, r := range rules {
			if EvaluateRule(r, responses) {
				return true
			}
		}
		return false
	}
	for _, r := range rules {
		if !EvaluateRule(r, responses) {
			return false
		}
	}
	return true
}

// EvaluateRule evaluates a single rule against the source field's response
func EvaluateRule(rule model.ConditionalRule, responses model.ResponseMap) bool {
	value := responses[rule.SourceFieldID]

	switch rule.Operator {
	case model.OpEquals:
		return equals(value, rule.Value)
	case model.OpNotEquals:
		if model.IsEmpty(value) {
			return false
		}
		return !equals(value, rule.Value)
	case model.OpContains:
		return contains(value, rule.Value)
	case model.OpNotContains:
		if _, ok := model.AsString(value); !ok {
			return true
		}
		return !contains(value, rule.Value)
	case model.OpGreaterThan:
		a, b, ok := numbers(value, rule.Value)
		return ok && a > b
	case model.OpLessThan:
		a, b, ok := numbers(value, rule.Value)
		return ok && a < b
	case model.OpIsEmpty:
		return model.IsEmpty(value)
	case model.OpIsNotEmpty:
		return !model.IsEmpty(value)
	}
	return false
}

// equals is list membership when the rule value is a list. A multi-select
// response equals a scalar rule value when the value is among its selections.
func equals(value, ruleValue any) bool {
	if model.IsEmpty(value) {
		return false
	}
	if list, ok := model.AsList(ruleValue); ok {
		for _, candidate := range list {
			if model.ValuesEqual(value, candidate) {
				return true
			}
		}
		return false
	}
	if selected, ok := model.AsList(value); ok {
		for _, s := range selected {
			if model.ValuesEqual(s, ruleValue) {
				return true
			}
		}
		return false
	}
	return model.ValuesEqual(value, ruleValue)
}

func contains(value, ruleValue any) bool {
	s, ok := model.AsString(value)
	if !ok || ruleValue == nil {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(model.Stringify(ruleValue)))
}

func numbers(value, ruleValue any) (float64, float64, bool) {
	if model.IsEmpty(value) {
		return 0, 0, false
	}
	a, ok := model.AsNumber(value)
	if !ok {
		return 0, 0, false
	}
	b, ok := model.AsNumber(ruleValue)
	if !ok {
		return 0, 0, false
	}
	return a, b, true
}
