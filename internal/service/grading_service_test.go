package service

import (
	"testing"

	"formflow/internal/model"
)

func TestGradingService_PreviewAppliesDefaults(t *testing.T) {
	f := newFixture()
	res := f.gradingSvc.Preview(GradeRequest{
		Answer:        "Water boils at one hundred degrees",
		GradingConfig: model.GradingConfig{ReferenceAnswer: "Water boils at one hundred degrees", Keywords: []string{"boils"}},
	})
	if res.Score != 100 || !res.Passed || res.PointsAwarded != 10 {
		t.Errorf("Preview = %+v", res)
	}
}

func TestGradingService_GradeSubmissionSkipsHiddenAndBlank(t *testing.T) {
	f := newFixture()
	graded := &model.GradingConfig{Enabled: true, ReferenceAnswer: "red apples", Mode: model.GradingSimilarity, Points: 5}
	schema := &model.FormSchema{Fields: []model.FieldDefinition{
		{ID: "mode", Type: model.FieldChoice, Options: []string{"quiz", "survey"}},
		{ID: "q1", Type: model.FieldShortText, Grading: graded, Conditional: &model.ConditionalConfig{
			Enabled: true, Action: model.ActionShow, Combine: model.CombineAll,
			Rules: []model.ConditionalRule{{SourceFieldID: "mode", Operator: model.OpEquals, Value: "quiz"}},
		}},
		{ID: "q2", Type: model.FieldShortText, Grading: graded},
		{ID: "q3", Type: model.FieldNumeric, Grading: graded},
	}}

	scores, total := f.gradingSvc.GradeSubmission(schema, model.ResponseMap{
		"mode": "survey",
		"q1":   "red apples",
		"q2":   "red apples",
		"q3":   "red apples",
	})
	if len(scores) != 1 || total != 5 {
		t.Errorf("scores = %v total = %d, want only q2 graded", scores, total)
	}
	if _, ok := scores["q2"]; !ok {
		t.Error("q2 was not graded")
	}

	scores, _ = f.gradingSvc.GradeSubmission(schema, model.ResponseMap{"mode": "quiz", "q2": "  "})
	if len(scores) != 0 {
		t.Errorf("blank answers were graded: %v", scores)
	}
}
