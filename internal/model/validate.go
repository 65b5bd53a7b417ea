package model

import "fmt"

// SchemaIssue is one authoring problem found in a schema
type SchemaIssue struct {
	FieldID string `json:"fieldId,omitempty"`
	Check   string `json:"check"`
	Message string `json:"message"`
}

func (i SchemaIssue) String() string {
	if i.FieldID == "" {
		return fmt.Sprintf("%s: %s", i.Check, i.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", i.Check, i.FieldID, i.Message)
}

// Validate checks the invariants the engine trusts: unique ids, known kinds,
// rule sources strictly earlier than the field that declares them, and jump
// targets that name section fields. An empty result means the schema is sound.
func (s *FormSchema) Validate() []SchemaIssue {
	var issues []SchemaIssue
	add := func(fieldID, check, format string, args ...any) {
		issues = append(issues, SchemaIssue{FieldID: fieldID, Check: check, Message: fmt.Sprintf(format, args...)})
	}

	position := make(map[string]int, len(s.Fields))
	for i, f := range s.Fields {
		if f.ID == "" {
			add("", "field_id", "field at position %d has no id", i+1)
			continue
		}
		if _, dup := position[f.ID]; dup {
			add(f.ID, "field_id", "duplicate field id")
			continue
		}
		position[f.ID] = i
	}

	for i, f := range s.Fields {
		if !f.Type.Known() {
			add(f.ID, "field_type", "unknown field type %q", f.Type)
		}
		if f.Type.IsChoice() && len(f.Options) == 0 {
			add(f.ID, "options", "%s field has no options", f.Type)
		}
		if f.Type == FieldMatrix && (f.Matrix == nil || len(f.Matrix.Rows) == 0 || len(f.Matrix.Columns) == 0) {
			add(f.ID, "matrix", "matrix needs at least one row and one column")
		}
		if f.Type == FieldScale && (f.Scale == nil || len(f.Scale.Statements) == 0 || len(f.Scale.Labels) == 0) {
			add(f.ID, "scale", "scale needs at least one statement and one label")
		}
		if f.Type == FieldRating && f.Rating != nil && (f.Rating.Max < 0 || f.Rating.Max > RatingLimit) {
			add(f.ID, "rating", "rating max %d outside 0..%d", f.Rating.Max, RatingLimit)
		}

		if c := f.Conditional; c != nil && c.Enabled {
			if c.Action != ActionShow && c.Action != ActionHide {
				add(f.ID, "conditional", "unknown action %q", c.Action)
			}
			if c.Combine != CombineAll && c.Combine != CombineAny {
				add(f.ID, "conditional", "unknown combinator %q", c.Combine)
			}
			for _, r := range c.Rules {
				src, ok := position[r.SourceFieldID]
				switch {
				case !ok:
					add(f.ID, "rule_source", "rule references unknown field %q", r.SourceFieldID)
				case src >= i:
					add(f.ID, "rule_source", "rule source %q must come before this field", r.SourceFieldID)
				}
				if !r.Operator.Known() {
					add(f.ID, "rule_operator", "unknown operator %q", r.Operator)
				}
			}
		}

		if len(f.Jumps) > 0 && !f.Type.IsChoice() {
			add(f.ID, "jump", "jump rules are only allowed on choice fields")
		}
		for _, j := range f.Jumps {
			if f.Type.IsChoice() && !containsString(f.Options, j.OptionValue) {
				add(f.ID, "jump", "jump option %q is not one of the field's options", j.OptionValue)
			}
			switch j.Action {
			case JumpContinue, JumpSubmit:
			case JumpTo:
				target, ok := position[j.TargetSectionID]
				if !ok || s.Fields[target].Type != FieldSection {
					add(f.ID, "jump_target", "jump target %q is not a section", j.TargetSectionID)
				}
			default:
				add(f.ID, "jump", "unknown jump action %q", j.Action)
			}
		}

		if g := f.Grading; g != nil && g.Enabled {
			if !f.Type.IsText() {
				add(f.ID, "grading", "grading is only allowed on text fields")
			}
			if g.MinWords > 0 && g.MaxWords > 0 && g.MinWords > g.MaxWords {
				add(f.ID, "grading", "minWords %d exceeds maxWords %d", g.MinWords, g.MaxWords)
			}
			if g.PassingThreshold < 0 || g.PassingThreshold > 100 {
				add(f.ID, "grading", "passing threshold %d outside 0-100", g.PassingThreshold)
			}
		}
	}
	return issues
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
