package model

// GradingMode selects how the essay score is composed
type GradingMode string

const (
	GradingKeywords   GradingMode = "keywords"
	GradingSimilarity GradingMode = "similarity"
	GradingCombined   GradingMode = "ai-combined"
)

// Known reports whether m names a grading mode
func (m GradingMode) Known() bool {
	return m == GradingKeywords || m == GradingSimilarity || m == GradingCombined
}

// GradingConfig is the per-field answer key for free-text grading
type GradingConfig struct {
	Enabled          bool        `json:"enabled" bson:"enabled" yaml:"enabled"`
	ReferenceAnswer  string      `json:"referenceAnswer" bson:"referenceAnswer" yaml:"referenceAnswer"`
	Keywords         []string    `json:"keywords,omitempty" bson:"keywords,omitempty" yaml:"keywords,omitempty"`
	MinWords         int         `json:"minWords,omitempty" bson:"minWords,omitempty" yaml:"minWords,omitempty"` // 0 = unbounded
	MaxWords         int         `json:"maxWords,omitempty" bson:"maxWords,omitempty" yaml:"maxWords,omitempty"` // 0 = unbounded
	Mode             GradingMode `json:"mode" bson:"mode" yaml:"mode"`
	PassingThreshold int         `json:"passingThreshold" bson:"passingThreshold" yaml:"passingThreshold"` // 0-100
	Points           int         `json:"points" bson:"points" yaml:"points"`
}

// ScoreResult is the outcome of grading one free-text answer
type ScoreResult struct {
	Score           int      `json:"score" bson:"score"` // 0-100
	Percentage      int      `json:"percentage" bson:"percentage"`
	PointsAwarded   int      `json:"pointsAwarded" bson:"pointsAwarded"`
	KeywordsFound   []string `json:"keywordsFound" bson:"keywordsFound"`
	KeywordsMissing []string `json:"keywordsMissing" bson:"keywordsMissing"`
	SimilarityScore float64  `json:"similarityScore" bson:"similarityScore"` // 0-1
	Feedback        string   `json:"feedback" bson:"feedback"`
	WordCount       int      `json:"wordCount" bson:"wordCount"`
	Passed          bool     `json:"passed" bson:"passed"`
}
