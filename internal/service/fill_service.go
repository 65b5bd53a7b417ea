package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"formflow/internal/cache"
	"formflow/internal/engine/navigation"
	"formflow/internal/engine/rules"
	"formflow/internal/model"
	"formflow/internal/repository"
)

// Progress is the respondent's position among the form's sections
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// SessionView is what a respondent sees: the session, the visible fields of
// the current page and, after a transition, what was decided.
type SessionView struct {
	Session    model.FormSessionState  `json:"session"`
	Section    *model.FieldDefinition  `json:"section,omitempty"`
	Fields     []model.FieldDefinition `json:"fields"`
	Progress   Progress                `json:"progress"`
	CanGoBack  bool                    `json:"canGoBack"`
	Decision   *navigation.Decision    `json:"decision,omitempty"`
	Submission *model.Submission       `json:"submission,omitempty"`
	Settings   model.FormSettings      `json:"settings"`
}

// StartResponse is returned when a fill session opens
type StartResponse struct {
	Token string       `json:"token"`
	View  *SessionView `json:"view"`
}

// FillService runs fill sessions: answers, section moves and the final
// submit. Session state lives in Redis and is replaced on every step.
type FillService struct {
	formRepo    repository.FormRepo
	sessions    cache.SessionCache
	auth        *AuthService
	submissions *SubmissionService
	now         func() time.Time
}

// NewFillService creates a new fill service
func NewFillService(
	formRepo repository.FormRepo,
	sessions cache.SessionCache,
	auth *AuthService,
	submissions *SubmissionService,
) *FillService {
	return &FillService{
		formRepo:    formRepo,
		sessions:    sessions,
		auth:        auth,
		submissions: submissions,
		now:         time.Now,
	}
}

// Start opens a session on a published form and issues its respondent token
func (s *FillService) Start(ctx context.Context, formID string, source model.SubmissionSource) (*StartResponse, error) {
	form, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if !form.Published {
		return nil, ErrFormNotPublished
	}
	if source.ClientID == "" {
		source.ClientID = uuid.NewString()
	}

	state := navigation.Start(&form.Schema, uuid.NewString(), form.ID, s.now())
	state.Source = source
	if err := s.sessions.Set(ctx, &state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.auth.GenerateRespondentToken(form.ID, state.ID)
	if err != nil {
		return nil, err
	}
	return &StartResponse{Token: token, View: view(form, state)}, nil
}

// Get returns the current view of a session
func (s *FillService) Get(ctx context.Context, sessionID string) (*SessionView, error) {
	form, state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return view(form, *state), nil
}

// Answer records a value for a field on the current page. A jump rule that
// asks for submission submits right away.
func (s *FillService) Answer(ctx context.Context, sessionID, fieldID string, value any) (*SessionView, error) {
	form, state, err := s.loadFilling(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	field, _ := form.Schema.Field(fieldID)
	if field == nil || !field.Type.IsInput() || navigation.EnclosingSection(&form.Schema, fieldID) != state.CurrentSectionID {
		return nil, ErrFieldNotFound
	}

	next, decision := navigation.Answer(&form.Schema, *state, fieldID, value, s.now())
	if decision.SubmitNow() {
		return s.submit(ctx, form, next, decision)
	}
	if err := s.sessions.Set(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	v := view(form, next)
	v.Decision = &decision
	return v, nil
}

// Next leaves the current page. Leaving the last page submits.
func (s *FillService) Next(ctx context.Context, sessionID string) (*SessionView, error) {
	form, state, err := s.loadFilling(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if missing := MissingRequired(&form.Schema, state.Responses, []string{state.CurrentSectionID}); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	next, decision := navigation.Next(&form.Schema, *state, s.now())
	if decision.Terminal() {
		return s.submit(ctx, form, next, decision)
	}
	if err := s.sessions.Set(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	v := view(form, next)
	v.Decision = &decision
	return v, nil
}

// Previous returns to the page visited before, keeping every answer
func (s *FillService) Previous(ctx context.Context, sessionID string) (*SessionView, error) {
	form, state, err := s.loadFilling(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	next, ok := navigation.Previous(&form.Schema, *state, s.now())
	if !ok {
		return nil, ErrBackNotAllowed
	}
	if err := s.sessions.Set(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return view(form, next), nil
}

// Submit ends the session explicitly
func (s *FillService) Submit(ctx context.Context, sessionID string) (*SessionView, error) {
	form, state, err := s.loadFilling(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, form, *state, navigation.Decision{Outcome: navigation.OutcomeSubmit})
}

func (s *FillService) submit(ctx context.Context, form *model.Form, state model.FormSessionState, decision navigation.Decision) (*SessionView, error) {
	visited := append([]string{""}, state.History...)
	visited = append(visited, state.CurrentSectionID)

	sub, err := s.submissions.Submit(ctx, form, SubmitInput{
		SessionID: state.ID,
		Responses: state.Responses,
		Source:    state.Source,
		Sections:  visited,
	})
	if err != nil {
		return nil, err
	}

	state.Status = model.SessionSubmitted
	state.UpdatedAt = s.now()
	if err := s.sessions.Set(ctx, &state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	v := view(form, state)
	v.Decision = &decision
	v.Submission = sub
	return v, nil
}

func (s *FillService) loadForm(ctx context.Context, formID string) (*model.Form, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to load form: %w", err)
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	return form, nil
}

func (s *FillService) load(ctx context.Context, sessionID string) (*model.Form, *model.FormSessionState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}
	if state == nil {
		return nil, nil, ErrSessionNotFound
	}
	form, err := s.loadForm(ctx, state.FormID)
	if err != nil {
		return nil, nil, err
	}
	return form, state, nil
}

func (s *FillService) loadFilling(ctx context.Context, sessionID string) (*model.Form, *model.FormSessionState, error) {
	form, state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if state.Status == model.SessionSubmitted {
		return nil, nil, ErrSessionSubmitted
	}
	return form, state, nil
}

func view(form *model.Form, state model.FormSessionState) *SessionView {
	schema := &form.Schema
	page := schema.Fields
	v := &SessionView{Session: state, Settings: schema.Settings, Fields: []model.FieldDefinition{}}
	if schema.HasSections() {
		page = navigation.SectionFields(schema, state.CurrentSectionID)
		if section, _ := schema.Field(state.CurrentSectionID); section != nil {
			v.Section = section
			v.CanGoBack = len(state.History) > 0 && section.AllowsBack()
		}
	}
	for i := range page {
		if rules.ShouldShowField(&page[i], state.Responses) {
			v.Fields = append(v.Fields, page[i])
		}
	}
	v.Progress.Current, v.Progress.Total = navigation.Progress(schema, state.CurrentSectionID)
	return v
}
