package model

import "time"

// SessionStatus is the lifecycle of a fill session
type SessionStatus string

const (
	SessionFilling   SessionStatus = "filling"
	SessionSubmitted SessionStatus = "submitted"
)

// FormSessionState is the state of one in-progress fill. Transition functions
// take a state and return a new one; a state value is never mutated in place.
type FormSessionState struct {
	ID     string        `json:"id"`
	FormID string        `json:"formId"`
	Status SessionStatus `json:"status"`

	// CurrentSectionID is "" while the respondent is on the fields before
	// the first section, or when the form has no sections.
	CurrentSectionID string `json:"currentSectionId"`

	// History holds the sections left behind, most recent last. Previous pops it.
	History []string `json:"history,omitempty"`

	Responses ResponseMap      `json:"responses"`
	Source    SubmissionSource `json:"source"`
	StartedAt time.Time        `json:"startedAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Clone returns a copy that shares no slices or maps with s
func (s FormSessionState) Clone() FormSessionState {
	out := s
	out.History = append([]string(nil), s.History...)
	out.Responses = s.Responses.Clone()
	return out
}
