// Package servicetest provides in-memory repositories, caches and a
// recording broadcaster for tests of the service and transport layers.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"formflow/internal/cache"
	"formflow/internal/model"
)

type FormRepo struct {
	mu    sync.Mutex
	forms map[string]model.Form
}

func NewFormRepo() *FormRepo {
	return &FormRepo{forms: make(map[string]model.Form)}
}

func (r *FormRepo) Create(_ context.Context, form *model.Form) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	form.CreatedAt = time.Now()
	form.UpdatedAt = form.CreatedAt
	r.forms[form.ID] = *form
	return form.ID, nil
}

func (r *FormRepo) GetByID(_ context.Context, id string) (*model.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *FormRepo) GetByOwnerID(_ context.Context, ownerID string) ([]*model.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Form{}
	for _, f := range r.forms {
		if f.OwnerID == ownerID {
			f := f
			out = append(out, &f)
		}
	}
	return out, nil
}

func (r *FormRepo) Update(_ context.Context, form *model.Form) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	form.UpdatedAt = time.Now()
	r.forms[form.ID] = *form
	return nil
}

func (r *FormRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, id)
	return nil
}

type SubmissionRepo struct {
	mu   sync.Mutex
	subs []model.Submission
}

func (r *SubmissionRepo) Create(_ context.Context, sub *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	r.subs = append(r.subs, *sub)
	return nil
}

func (r *SubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (r *SubmissionRepo) ListByForm(_ context.Context, formID string, limit int64) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Submission{}
	for _, s := range r.subs {
		if s.FormID == formID {
			s := s
			out = append(out, &s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SubmissionRepo) CountByForm(ctx context.Context, formID string) (int64, error) {
	subs, _ := r.ListByForm(ctx, formID, 0)
	return int64(len(subs)), nil
}

func (r *SubmissionRepo) DeleteByForm(_ context.Context, formID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.subs[:0]
	for _, s := range r.subs {
		if s.FormID != formID {
			kept = append(kept, s)
		}
	}
	r.subs = kept
	return nil
}

type SessionCache struct {
	mu       sync.Mutex
	sessions map[string]model.FormSessionState
}

func NewSessionCache() *SessionCache {
	return &SessionCache{sessions: make(map[string]model.FormSessionState)}
}

func (c *SessionCache) Set(_ context.Context, state *model.FormSessionState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[state.ID] = state.Clone()
	return nil
}

func (c *SessionCache) Get(_ context.Context, id string) (*model.FormSessionState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[id]
	if !ok {
		return nil, nil
	}
	s = s.Clone()
	return &s, nil
}

func (c *SessionCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	return nil
}

type AnalyticsCache struct {
	mu          sync.Mutex
	snaps       map[string]model.AnalyticsSnapshot
	Invalidated int
}

func NewAnalyticsCache() *AnalyticsCache {
	return &AnalyticsCache{snaps: make(map[string]model.AnalyticsSnapshot)}
}

func (c *AnalyticsCache) Get(_ context.Context, formID string) (*model.AnalyticsSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.snaps[formID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *AnalyticsCache) Set(_ context.Context, snap *model.AnalyticsSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps[snap.FormID] = *snap
	return nil
}

func (c *AnalyticsCache) Invalidate(_ context.Context, formID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snaps, formID)
	c.Invalidated++
	return nil
}

type ScoreBoard struct {
	mu     sync.Mutex
	scores map[string]map[string]int
}

func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{scores: make(map[string]map[string]int)}
}

func (b *ScoreBoard) Record(_ context.Context, formID, submissionID string, points int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.scores[formID] == nil {
		b.scores[formID] = make(map[string]int)
	}
	b.scores[formID][submissionID] = points
	return nil
}

func (b *ScoreBoard) Top(_ context.Context, formID string, limit int) ([]cache.ScoreEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []cache.ScoreEntry
	for id, p := range b.scores[formID] {
		out = append(out, cache.ScoreEntry{SubmissionID: id, Points: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func (b *ScoreBoard) Rank(ctx context.Context, formID, submissionID string) (int64, error) {
	top, _ := b.Top(ctx, formID, 0)
	for _, e := range top {
		if e.SubmissionID == submissionID {
			return int64(e.Rank), nil
		}
	}
	return -1, nil
}

func (b *ScoreBoard) Clear(_ context.Context, formID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.scores, formID)
	return nil
}

// Event is one recorded broadcast
type Event struct {
	FormID  string
	MsgType string
	Payload interface{}
}

type Broadcaster struct {
	mu           sync.Mutex
	events       []Event
	disconnected []string
}

func (b *Broadcaster) BroadcastToForm(formID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, Event{FormID: formID, MsgType: msgType, Payload: payload})
}

func (b *Broadcaster) DisconnectForm(formID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconnected = append(b.disconnected, formID)
}

// Types lists the recorded message types in order
func (b *Broadcaster) Types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.MsgType
	}
	return out
}

// Disconnected lists the forms whose dashboards were disconnected
func (b *Broadcaster) Disconnected() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.disconnected...)
}

// NewSubmissionRepo creates an empty submission repository
func NewSubmissionRepo() *SubmissionRepo {
	return &SubmissionRepo{}
}
