package domain

import "time"

// Event kinds published by the tracker and scorer
const (
	EventApplicationCreated       = "application.created"
	EventApplicationStatusChanged = "application.status_changed"
	EventResumeAnalyzed           = "resume.analyzed"
)

// Event is the message body exchanged between the API and the activity
// worker
type Event struct {
	ID         string    `json:"event_id"`
	Kind       string    `json:"kind"`
	OwnerID    string    `json:"owner_id"`
	SubjectID  string    `json:"subject_id"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}
