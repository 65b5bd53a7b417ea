package service

import (
	"formflow/internal/config"
	"formflow/internal/engine/rules"
	"formflow/internal/engine/scoring"
	"formflow/internal/model"
)

// GradeRequest is an ad-hoc grading call: an answer plus an answer key
type GradeRequest struct {
	Answer string `json:"answer"`
	model.GradingConfig
}

// GradingService scores free-text answers, filling unset settings from the
// configured defaults
type GradingService struct {
	defaults *config.GradingConfig
}

// NewGradingService creates a new grading service
func NewGradingService(defaults *config.GradingConfig) *GradingService {
	return &GradingService{
		defaults: defaults,
	}
}

// Preview grades one answer against the key in req
func (s *GradingService) Preview(req GradeRequest) model.ScoreResult {
	cfg := s.defaults.Apply(req.GradingConfig)
	return scoring.GradeField(&cfg, req.Answer)
}

// GradeField grades a text field's answer; ok is false when the field is not graded
func (s *GradingService) GradeField(field *model.FieldDefinition, answer string) (result model.ScoreResult, ok bool) {
	if field.Grading == nil || !field.Grading.Enabled || !field.Type.IsText() {
		return model.ScoreResult{}, false
	}
	cfg := s.defaults.Apply(*field.Grading)
	return scoring.GradeField(&cfg, answer), true
}

// GradeSubmission grades every visible, answered, graded field and returns
// the results by field id with the total points awarded
func (s *GradingService) GradeSubmission(schema *model.FormSchema, responses model.ResponseMap) (map[string]model.ScoreResult, int) {
	scores := make(map[string]model.ScoreResult)
	total := 0
	for _, f := range rules.VisibleFields(schema, responses) {
		v := responses[f.ID]
		if model.IsBlank(v) {
			continue
		}
		result, ok := s.GradeField(&f, model.Stringify(v))
		if !ok {
			continue
		}
		scores[f.ID] = result
		total += result.PointsAwarded
	}
	return scores, total
}
