package service

import (
	"time"

	"formflow/internal/config"
	"formflow/internal/model"
	"formflow/internal/service/servicetest"
)

// fixture wires every service over in-memory fakes
type fixture struct {
	forms       *servicetest.FormRepo
	subs        *servicetest.SubmissionRepo
	sessions    *servicetest.SessionCache
	snapshots   *servicetest.AnalyticsCache
	scores      *servicetest.ScoreBoard
	broadcaster *servicetest.Broadcaster

	auth       *AuthService
	formSvc    *FormService
	fillSvc    *FillService
	submitSvc  *SubmissionService
	gradingSvc *GradingService
	analytics  *AnalyticsService
}

func newFixture() *fixture {
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		OwnerUsername: "owner",
		OwnerPassword: "pw",
		SessionTTL:    time.Hour,
		Grading:       &config.GradingConfig{Mode: model.GradingCombined, PassingThreshold: 60, Points: 10},
	}
	f := &fixture{
		forms:       servicetest.NewFormRepo(),
		subs:        servicetest.NewSubmissionRepo(),
		sessions:    servicetest.NewSessionCache(),
		snapshots:   servicetest.NewAnalyticsCache(),
		scores:      servicetest.NewScoreBoard(),
		broadcaster: &servicetest.Broadcaster{},
	}
	f.auth = NewAuthService(cfg)
	f.gradingSvc = NewGradingService(cfg.Grading)
	f.analytics = NewAnalyticsService(f.subs, f.snapshots, 0)
	f.submitSvc = NewSubmissionService(f.subs, f.scores, f.gradingSvc)
	f.submitSvc.SetAnalyticsService(f.analytics)
	f.submitSvc.SetBroadcaster(f.broadcaster)
	f.formSvc = NewFormService(f.forms, f.subs, f.snapshots, f.scores)
	f.formSvc.SetBroadcaster(f.broadcaster)
	f.fillSvc = NewFillService(f.forms, f.sessions, f.auth, f.submitSvc)
	return f
}

// catsForm: name (required), S1 with a jump question, S2, S3 with a graded essay
func catsForm() *model.Form {
	return &model.Form{
		Title:     "Cats",
		Published: true,
		Schema: model.FormSchema{Fields: []model.FieldDefinition{
			{ID: "name", Type: model.FieldShortText, Required: true},
			{ID: "S1", Type: model.FieldSection, Section: &model.SectionConfig{AllowBack: true}},
			{ID: "cats", Type: model.FieldChoice, Required: true, Options: []string{"Yes", "No", "Skip"},
				Jumps: []model.JumpRule{
					{OptionValue: "No", Action: model.JumpTo, TargetSectionID: "S3"},
					{OptionValue: "Skip", Action: model.JumpSubmit},
				}},
			{ID: "S2", Type: model.FieldSection, Section: &model.SectionConfig{AllowBack: true}},
			{ID: "cat_name", Type: model.FieldShortText, Required: true},
			{ID: "S3", Type: model.FieldSection, Section: &model.SectionConfig{AllowBack: true}},
			{ID: "essay", Type: model.FieldLongText, Grading: &model.GradingConfig{
				Enabled:         true,
				ReferenceAnswer: "Cats sleep most of the day",
				Keywords:        []string{"sleep"},
				Mode:            model.GradingSimilarity,
				Points:          20,
			}},
		}},
	}
}
