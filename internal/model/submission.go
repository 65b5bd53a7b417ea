package model

import "time"

// SubmissionSource records where a submission came from
type SubmissionSource struct {
	IPAddress string `json:"ipAddress,omitempty" bson:"ipAddress,omitempty" yaml:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty" bson:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	ClientID  string `json:"clientId,omitempty" bson:"clientId,omitempty" yaml:"clientId,omitempty"`
}

// Submission is an immutable snapshot of a completed fill session
type Submission struct {
	ID          string                 `json:"id" bson:"_id,omitempty" yaml:"id"`
	FormID      string                 `json:"formId" bson:"formId" yaml:"formId"`
	SessionID   string                 `json:"sessionId,omitempty" bson:"sessionId,omitempty" yaml:"sessionId,omitempty"`
	Responses   ResponseMap            `json:"responses" bson:"responses" yaml:"responses"`
	Scores      map[string]ScoreResult `json:"scores,omitempty" bson:"scores,omitempty" yaml:"scores,omitempty"` // graded field id -> result
	TotalPoints int                    `json:"totalPoints" bson:"totalPoints" yaml:"totalPoints"`
	Source      SubmissionSource       `json:"source" bson:"source" yaml:"source"`
	SubmittedAt time.Time              `json:"submittedAt" bson:"submittedAt" yaml:"submittedAt"`
}
