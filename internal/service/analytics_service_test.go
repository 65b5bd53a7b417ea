package service

import (
	"context"
	"testing"
	"time"

	"formflow/internal/model"
	"formflow/internal/service/servicetest"
)

func TestAnalyticsService_CachesUntilNextSubmission(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	form := &model.Form{Published: true, Schema: model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "pick", Type: model.FieldChoice, Options: []string{"A", "B"}, Required: true},
	}}}
	formID, _ := f.formSvc.Create(ctx, "owner-1", form)
	form, _ = f.formSvc.GetByID(ctx, formID)

	for _, v := range []string{"A", "B"} {
		if _, err := f.submitSvc.Submit(ctx, form, SubmitInput{Responses: model.ResponseMap{"pick": v}}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	snap, err := f.analytics.Snapshot(ctx, form)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.FormID != formID || snap.Overview.TotalSubmissions != 2 {
		t.Errorf("snapshot = %+v", snap.Overview)
	}

	// a write that bypasses the service is not seen until invalidation
	_ = f.subs.Create(ctx, &model.Submission{FormID: formID, Responses: model.ResponseMap{"pick": "A"}})
	snap, _ = f.analytics.Snapshot(ctx, form)
	if snap.Overview.TotalSubmissions != 2 {
		t.Errorf("cached total = %d, want 2", snap.Overview.TotalSubmissions)
	}
	f.analytics.Invalidate(ctx, formID)
	snap, _ = f.analytics.Snapshot(ctx, form)
	if snap.Overview.TotalSubmissions != 3 {
		t.Errorf("fresh total = %d, want 3", snap.Overview.TotalSubmissions)
	}
	if got := snap.FieldAnalytics["pick"].Choice.MostPopular; got != "A" {
		t.Errorf("MostPopular = %q, want A", got)
	}
}

func TestAnalyticsService_CapsToNewestSubmissions(t *testing.T) {
	ctx := context.Background()
	subs := servicetest.NewSubmissionRepo()
	svc := NewAnalyticsService(subs, servicetest.NewAnalyticsCache(), 2)
	form := &model.Form{ID: "f1", Schema: model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "pick", Type: model.FieldChoice, Options: []string{"old", "new"}},
	}}}

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, v := range []string{"old", "new", "new"} {
		_ = subs.Create(ctx, &model.Submission{
			FormID:      "f1",
			Responses:   model.ResponseMap{"pick": v},
			SubmittedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	snap, err := svc.Compute(ctx, form)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if snap.Overview.TotalSubmissions != 2 {
		t.Errorf("total = %d, want 2", snap.Overview.TotalSubmissions)
	}
	if got := snap.FieldAnalytics["pick"].Choice.Distribution[0].Count; got != 0 {
		t.Errorf("oldest submission counted: old = %d", got)
	}
}

func TestSubmissionService_RequiredFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	form := catsForm()
	form.ID = "f1"

	_, err := f.submitSvc.Submit(ctx, form, SubmitInput{Responses: model.ResponseMap{"name": "Ada"}})
	verr, ok := err.(*ValidationError)
	if !ok || len(verr.Missing) != 2 || verr.Missing[0] != "cats" || verr.Missing[1] != "cat_name" {
		t.Fatalf("Submit without page limits: err = %v", err)
	}

	sub, err := f.submitSvc.Submit(ctx, form, SubmitInput{
		Responses: model.ResponseMap{"name": "Ada", "cats": "No"},
		Sections:  []string{"", "S1", "S3"},
	})
	if err != nil || sub.ID == "" {
		t.Fatalf("Submit skipping S2: %v", err)
	}
}

func TestMissingRequired_HiddenFieldsAreSkipped(t *testing.T) {
	schema := &model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "pet", Type: model.FieldChoice, Options: []string{"cat", "none"}},
		{ID: "pet_name", Type: model.FieldShortText, Required: true, Conditional: &model.ConditionalConfig{
			Enabled: true, Action: model.ActionHide, Combine: model.CombineAny,
			Rules: []model.ConditionalRule{{SourceFieldID: "pet", Operator: model.OpEquals, Value: []any{"none"}}},
		}},
		{ID: "intro", Type: model.FieldHeading, Required: true},
	}}
	if got := MissingRequired(schema, model.ResponseMap{"pet": "none"}, nil); len(got) != 0 {
		t.Errorf("hidden required field reported missing: %v", got)
	}
	if got := MissingRequired(schema, model.ResponseMap{"pet": "cat"}, nil); len(got) != 1 || got[0] != "pet_name" {
		t.Errorf("MissingRequired = %v, want [pet_name]", got)
	}
}
