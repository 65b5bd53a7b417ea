package service

import (
	"context"
	"fmt"
	"log"

	"formflow/internal/cache"
	"formflow/internal/model"
	"formflow/internal/repository"
)

// FormService handles form CRUD for owners. Schemas are validated on every
// save so the engine can trust rule order and jump targets.
type FormService struct {
	formRepo       repository.FormRepo
	submissionRepo repository.SubmissionRepo
	analyticsCache cache.AnalyticsCache
	scoreBoard     cache.ScoreBoard
	broadcaster    Broadcaster
}

// NewFormService creates a new form service
func NewFormService(
	formRepo repository.FormRepo,
	submissionRepo repository.SubmissionRepo,
	analyticsCache cache.AnalyticsCache,
	scoreBoard cache.ScoreBoard,
) *FormService {
	return &FormService{
		formRepo:       formRepo,
		submissionRepo: submissionRepo,
		analyticsCache: analyticsCache,
		scoreBoard:     scoreBoard,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *FormService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create validates and stores a new form for ownerID
func (s *FormService) Create(ctx context.Context, ownerID string, form *model.Form) (string, error) {
	if issues := form.Schema.Validate(); len(issues) > 0 {
		return "", &ValidationError{Issues: issues}
	}
	form.ID = ""
	form.OwnerID = ownerID
	return s.formRepo.Create(ctx, form)
}

// GetByID retrieves any form; used by the public fill flow
func (s *FormService) GetByID(ctx context.Context, id string) (*model.Form, error) {
	form, err := s.formRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load form: %w", err)
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// GetOwned retrieves a form only if ownerID owns it. Someone else's form is
// reported as not found.
func (s *FormService) GetOwned(ctx context.Context, ownerID, id string) (*model.Form, error) {
	form, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.OwnerID != ownerID {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// ListByOwner retrieves all forms of an owner, most recently updated first
func (s *FormService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Form, error) {
	return s.formRepo.GetByOwnerID(ctx, ownerID)
}

// Update replaces the editable parts of a form. Cached analytics are dropped
// because per-field stats follow the schema.
func (s *FormService) Update(ctx context.Context, ownerID, id string, in *model.Form) (*model.Form, error) {
	form, err := s.GetOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if issues := in.Schema.Validate(); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	form.Title = in.Title
	form.Description = in.Description
	form.Schema = in.Schema
	form.Published = in.Published
	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, err
	}
	if err := s.analyticsCache.Invalidate(ctx, id); err != nil {
		log.Printf("Failed to invalidate analytics for form %s: %v", id, err)
	}
	return form, nil
}

// Delete removes a form with its submissions and derived data, and
// disconnects any dashboard watching it
func (s *FormService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.GetOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.formRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.submissionRepo.DeleteByForm(ctx, id); err != nil {
		return fmt.Errorf("failed to delete submissions: %w", err)
	}
	if err := s.scoreBoard.Clear(ctx, id); err != nil {
		log.Printf("Failed to clear scoreboard for form %s: %v", id, err)
	}
	if err := s.analyticsCache.Invalidate(ctx, id); err != nil {
		log.Printf("Failed to invalidate analytics for form %s: %v", id, err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToForm(id, EventFormDeleted, map[string]string{"formId": id})
		s.broadcaster.DisconnectForm(id)
	}
	return nil
}

// ScoreBoard returns the top graded submissions of an owned form
func (s *FormService) ScoreBoard(ctx context.Context, ownerID, id string, limit int) ([]cache.ScoreEntry, error) {
	if _, err := s.GetOwned(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return s.scoreBoard.Top(ctx, id, limit)
}
