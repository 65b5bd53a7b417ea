package service

import (
	"errors"
	"fmt"
	"strings"

	"formflow/internal/model"
)

var (
	ErrFormNotFound     = errors.New("form not found")
	ErrFormNotPublished = errors.New("form is not accepting responses")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionSubmitted = errors.New("session already submitted")
	ErrBackNotAllowed   = errors.New("going back is not allowed from this section")
	ErrFieldNotFound    = errors.New("field not found on the current page")
)

// ValidationError is returned when a schema fails validation on save or a
// submission leaves required fields blank
type ValidationError struct {
	Issues  []model.SchemaIssue `json:"issues,omitempty"`
	Missing []string            `json:"missing,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("required fields missing: %s", strings.Join(e.Missing, ", "))
	}
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("invalid form schema: %s", strings.Join(msgs, "; "))
}
