package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"formflow/internal/cache"
	"formflow/internal/engine/navigation"
	"formflow/internal/engine/rules"
	"formflow/internal/model"
	"formflow/internal/repository"
)

// SubmitInput is a completed response set ready to be accepted
type SubmitInput struct {
	SessionID string
	Responses model.ResponseMap
	Source    model.SubmissionSource
	// Sections limits the required-field check to the pages the respondent
	// visited ("" is the start page). nil checks the whole form.
	Sections []string
}

// SubmissionService accepts, grades and stores submissions
type SubmissionService struct {
	submissionRepo repository.SubmissionRepo
	scoreBoard     cache.ScoreBoard
	grading        *GradingService
	analyticsSvc   *AnalyticsService
	broadcaster    Broadcaster
	now            func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	submissionRepo repository.SubmissionRepo,
	scoreBoard cache.ScoreBoard,
	grading *GradingService,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		scoreBoard:     scoreBoard,
		grading:        grading,
		now:            time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SubmissionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetAnalyticsService sets the analytics service refreshed after each submission
func (s *SubmissionService) SetAnalyticsService(svc *AnalyticsService) {
	s.analyticsSvc = svc
}

// Submit checks required fields, grades free-text answers and stores the
// submission. Owners watching the form are notified.
func (s *SubmissionService) Submit(ctx context.Context, form *model.Form, in SubmitInput) (*model.Submission, error) {
	if missing := MissingRequired(&form.Schema, in.Responses, in.Sections); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	scores, total := s.grading.GradeSubmission(&form.Schema, in.Responses)
	sub := &model.Submission{
		FormID:      form.ID,
		SessionID:   in.SessionID,
		Responses:   in.Responses.Clone(),
		TotalPoints: total,
		Source:      in.Source,
		SubmittedAt: s.now(),
	}
	if len(scores) > 0 {
		sub.Scores = scores
	}
	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	if len(scores) > 0 {
		if err := s.scoreBoard.Record(ctx, form.ID, sub.ID, total); err != nil {
			log.Printf("Failed to record score for submission %s: %v", sub.ID, err)
		}
	}
	s.notify(ctx, form, sub)
	return sub, nil
}

// List returns the newest submissions of a form
func (s *SubmissionService) List(ctx context.Context, formID string, limit int64) ([]*model.Submission, error) {
	return s.submissionRepo.ListByForm(ctx, formID, limit)
}

func (s *SubmissionService) notify(ctx context.Context, form *model.Form, sub *model.Submission) {
	if s.analyticsSvc != nil {
		s.analyticsSvc.Invalidate(ctx, form.ID)
	}
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToForm(form.ID, EventSubmissionReceived, map[string]interface{}{
		"submissionId": sub.ID,
		"totalPoints":  sub.TotalPoints,
		"submittedAt":  sub.SubmittedAt,
	})
	if s.analyticsSvc != nil {
		snap, err := s.analyticsSvc.Compute(ctx, form)
		if err != nil {
			log.Printf("Failed to refresh analytics for form %s: %v", form.ID, err)
			return
		}
		s.broadcaster.BroadcastToForm(form.ID, EventAnalyticsUpdate, snap)
	}
}

// MissingRequired lists required input fields that are visible but blank.
// With sections given, only fields on those pages are checked.
func MissingRequired(schema *model.FormSchema, responses model.ResponseMap, sections []string) []string {
	var pages map[string]bool
	if sections != nil && schema.HasSections() {
		pages = make(map[string]bool, len(sections))
		for _, id := range sections {
			pages[id] = true
		}
	}

	var missing []string
	for _, f := range rules.VisibleFields(schema, responses) {
		if !f.Required || !f.Type.IsInput() {
			continue
		}
		if pages != nil && !pages[navigation.EnclosingSection(schema, f.ID)] {
			continue
		}
		if model.IsBlank(responses[f.ID]) {
			missing = append(missing, f.ID)
		}
	}
	return missing
}
