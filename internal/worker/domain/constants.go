package domain

// Event kinds recorded as activity
const (
	EventApplicationCreated       = "application.created"
	EventApplicationStatusChanged = "application.status_changed"
	EventResumeAnalyzed           = "resume.analyzed"
)

// KnownEventKinds lists the kinds the worker accepts
var KnownEventKinds = map[string]struct{}{
	EventApplicationCreated:       {},
	EventApplicationStatusChanged: {},
	EventResumeAnalyzed:           {},
}
