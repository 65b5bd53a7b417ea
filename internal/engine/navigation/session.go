package navigation

import (
	"time"

	"formflow/internal/model"
)

// Start opens a session on the first page: the start state when fields precede
// the first section, otherwise the first section.
func Start(schema *model.FormSchema, id, formID string, now time.Time) model.FormSessionState {
	state := model.FormSessionState{
		ID:        id,
		FormID:    formID,
		Status:    model.SessionFilling,
		Responses: model.ResponseMap{},
		StartedAt: now,
		UpdatedAt: now,
	}
	if schema.HasSections() && len(SectionFields(schema, "")) == 0 {
		state.CurrentSectionID, _ = NextSection(schema, "")
	}
	return state
}

// Answer records a value and reports the transition it implies. The section
// does not change here; a submit decision is the caller's cue to submit now.
func Answer(schema *model.FormSchema, state model.FormSessionState, fieldID string, value any, now time.Time) (model.FormSessionState, Decision) {
	next := state.Clone()
	next.Responses[fieldID] = value
	next.UpdatedAt = now
	return next, Decide(schema, fieldID, value)
}

// Next leaves the current section. Continue and jump move the session and
// push the section left behind onto the history; submit and stay leave the
// section unchanged.
func Next(schema *model.FormSchema, state model.FormSessionState, now time.Time) (model.FormSessionState, Decision) {
	decision := DecideSection(schema, state.CurrentSectionID, state.Responses)
	next := state.Clone()
	switch decision.Outcome {
	case OutcomeContinue, OutcomeJump:
		next.History = append(next.History, state.CurrentSectionID)
		next.CurrentSectionID = decision.SectionID
		next.UpdatedAt = now
	}
	return next, decision
}

// Previous returns to the last section left behind when the current section
// allows it. Responses are kept. ok is false when going back is not allowed.
func Previous(schema *model.FormSchema, state model.FormSessionState, now time.Time) (model.FormSessionState, bool) {
	if len(state.History) == 0 {
		return state, false
	}
	section, _ := schema.Field(state.CurrentSectionID)
	if section == nil || !section.AllowsBack() {
		return state, false
	}
	next := state.Clone()
	last := len(next.History) - 1
	next.CurrentSectionID = next.History[last]
	next.History = next.History[:last]
	next.UpdatedAt = now
	return next, true
}
