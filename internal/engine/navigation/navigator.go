// Package navigation moves a fill session between the sections of a form.
//
// The states are the section fields in schema order, an implicit start state
// (id "") holding the fields before the first section, and the terminal submit
// state. Fields between two sections belong to the section before them.
package navigation

import (
	"formflow/internal/engine/rules"
	"formflow/internal/model"
)

// Outcome is the kind of transition chosen
type Outcome string

const (
	// OutcomeStay means no state change: flat form, unknown field, or a jump
	// to a section that does not exist.
	OutcomeStay     Outcome = "stay"
	OutcomeContinue Outcome = "continue"
	OutcomeJump     Outcome = "jump"
	OutcomeSubmit   Outcome = "submit"
)

// Decision is the navigation result consumed by the rendering layer
type Decision struct {
	Outcome   Outcome `json:"outcome"`
	SectionID string  `json:"sectionId,omitempty"`
	// ByRule is set when a jump rule chose the outcome rather than schema order
	ByRule bool `json:"byRule,omitempty"`
}

func (d Decision) String() string {
	switch d.Outcome {
	case OutcomeContinue:
		return "continue-to-" + d.SectionID
	case OutcomeJump:
		return "jump-to-" + d.SectionID
	}
	return string(d.Outcome)
}

// Terminal reports whether the decision ends the fill
func (d Decision) Terminal() bool {
	return d.Outcome == OutcomeSubmit
}

// SubmitNow reports whether a jump rule asked for immediate submission
func (d Decision) SubmitNow() bool {
	return d.Outcome == OutcomeSubmit && d.ByRule
}

var stay = Decision{Outcome: OutcomeStay}

// Sections returns the section field ids in schema order
func Sections(schema *model.FormSchema) []string {
	var ids []string
	for _, f := range schema.Fields {
		if f.Type == model.FieldSection {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// EnclosingSection returns the section a field belongs to, "" for the start
// state. A section field encloses itself.
func EnclosingSection(schema *model.FormSchema, fieldID string) string {
	current := ""
	for _, f := range schema.Fields {
		if f.Type == model.FieldSection {
			current = f.ID
		}
		if f.ID == fieldID {
			return current
		}
	}
	return ""
}

// SectionFields returns the fields shown on a section page, excluding the
// section field itself. "" selects the fields before the first section.
func SectionFields(schema *model.FormSchema, sectionID string) []model.FieldDefinition {
	var out []model.FieldDefinition
	current := ""
	for _, f := range schema.Fields {
		if f.Type == model.FieldSection {
			current = f.ID
			continue
		}
		if current == sectionID {
			out = append(out, f)
		}
	}
	return out
}

// NextSection returns the section after sectionID in schema order, or false
// when sectionID is the last one.
func NextSection(schema *model.FormSchema, sectionID string) (string, bool) {
	ids := Sections(schema)
	if sectionID == "" {
		if len(ids) == 0 {
			return "", false
		}
		return ids[0], true
	}
	for i, id := range ids {
		if id == sectionID && i+1 < len(ids) {
			return ids[i+1], true
		}
	}
	return "", false
}

// Progress returns the 1-based position of sectionID among all sections and
// the section count. The start state reports position 0.
func Progress(schema *model.FormSchema, sectionID string) (current, total int) {
	ids := Sections(schema)
	for i, id := range ids {
		if id == sectionID {
			return i + 1, len(ids)
		}
	}
	return 0, len(ids)
}

// Decide picks the transition after fieldID was set to value
func Decide(schema *model.FormSchema, fieldID string, value any) Decision {
	if !schema.HasSections() {
		return stay
	}
	field, _ := schema.Field(fieldID)
	if field == nil {
		return stay
	}

	advance := normalAdvance(schema, EnclosingSection(schema, fieldID))
	if len(field.Jumps) == 0 || !field.Type.IsChoice() {
		return advance
	}

	rule := matchJump(field.Jumps, value)
	if rule == nil {
		return advance
	}
	switch rule.Action {
	case model.JumpTo:
		target, _ := schema.Field(rule.TargetSectionID)
		if target == nil || target.Type != model.FieldSection {
			return stay
		}
		return Decision{Outcome: OutcomeJump, SectionID: target.ID, ByRule: true}
	case model.JumpSubmit:
		return Decision{Outcome: OutcomeSubmit, ByRule: true}
	}
	return advance
}

func normalAdvance(schema *model.FormSchema, sectionID string) Decision {
	next, ok := NextSection(schema, sectionID)
	if !ok {
		return Decision{Outcome: OutcomeSubmit}
	}
	return Decision{Outcome: OutcomeContinue, SectionID: next}
}

// matchJump finds the rule for the selected option. For a multi-select value
// the first rule, in rule order, whose option is selected wins.
func matchJump(jumps []model.JumpRule, value any) *model.JumpRule {
	selected := model.AsStrings(value)
	for i := range jumps {
		for _, s := range selected {
			if s == jumps[i].OptionValue {
				return &jumps[i]
			}
		}
	}
	return nil
}

// DecideSection picks the transition out of sectionID given all responses.
// The last visible jump-bearing choice field of the section that has an
// answer steers; without one the session advances normally.
func DecideSection(schema *model.FormSchema, sectionID string, responses model.ResponseMap) Decision {
	if !schema.HasSections() {
		return stay
	}
	decision := normalAdvance(schema, sectionID)
	for _, f := range SectionFields(schema, sectionID) {
		if len(f.Jumps) == 0 || !f.Type.IsChoice() {
			continue
		}
		value, answered := responses[f.ID]
		if !answered || model.IsEmpty(value) || !rules.ShouldShowField(&f, responses) {
			continue
		}
		decision = Decide(schema, f.ID, value)
	}
	return decision
}
