package service

// Broadcaster pushes events to the owners watching a form (avoids import cycle)
type Broadcaster interface {
	BroadcastToForm(formID string, msgType string, payload interface{})
	DisconnectForm(formID string)
}

// Event types sent to form dashboards
const (
	EventSubmissionReceived = "submission_received"
	EventAnalyticsUpdate    = "analytics_update"
	EventFormDeleted        = "form_deleted"
)
