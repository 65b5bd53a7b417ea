package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"formflow/internal/cache"
	"formflow/internal/engine/analytics"
	"formflow/internal/model"
	"formflow/internal/repository"
)

// AnalyticsService serves analytics snapshots, memoized in Redis until the
// next submission or schema change
type AnalyticsService struct {
	submissionRepo repository.SubmissionRepo
	analyticsCache cache.AnalyticsCache
	maxSubmissions int64
	now            func() time.Time
}

// NewAnalyticsService creates a new analytics service. maxSubmissions caps
// how many of the newest submissions feed one computation (0 = no cap).
func NewAnalyticsService(submissionRepo repository.SubmissionRepo, analyticsCache cache.AnalyticsCache, maxSubmissions int64) *AnalyticsService {
	return &AnalyticsService{
		submissionRepo: submissionRepo,
		analyticsCache: analyticsCache,
		maxSubmissions: maxSubmissions,
		now:            time.Now,
	}
}

// Snapshot returns the cached snapshot for form or computes a fresh one
func (s *AnalyticsService) Snapshot(ctx context.Context, form *model.Form) (*model.AnalyticsSnapshot, error) {
	cached, err := s.analyticsCache.Get(ctx, form.ID)
	if err != nil {
		log.Printf("Analytics cache read failed for form %s: %v", form.ID, err)
	}
	if cached != nil {
		return cached, nil
	}
	return s.Compute(ctx, form)
}

// Compute recomputes the snapshot from stored submissions and caches it
func (s *AnalyticsService) Compute(ctx context.Context, form *model.Form) (*model.AnalyticsSnapshot, error) {
	stored, err := s.submissionRepo.ListByForm(ctx, form.ID, s.maxSubmissions)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}
	subs := make([]model.Submission, len(stored))
	for i, sub := range stored {
		subs[i] = *sub
	}

	snap := analytics.AggregateAt(&form.Schema, subs, s.now())
	snap.FormID = form.ID
	if err := s.analyticsCache.Set(ctx, &snap); err != nil {
		log.Printf("Analytics cache write failed for form %s: %v", form.ID, err)
	}
	return &snap, nil
}

// Invalidate drops the cached snapshot of a form
func (s *AnalyticsService) Invalidate(ctx context.Context, formID string) {
	if err := s.analyticsCache.Invalidate(ctx, formID); err != nil {
		log.Printf("Failed to invalidate analytics for form %s: %v", formID, err)
	}
}
