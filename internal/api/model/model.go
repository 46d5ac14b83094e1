package model

import (
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/lib/pq"
)

type Job struct {
	ID             string         `db:"id" json:"id"`
	Title          string         `db:"title" json:"title"`
	Company        string         `db:"company" json:"company"`
	Location       string         `db:"location" json:"location"`
	Type           domain.JobType `db:"type" json:"type"`
	Field          string         `db:"field" json:"field"`
	Stipend        string         `db:"stipend" json:"stipend"`
	Description    string         `db:"description" json:"description"`
	Requirements   pq.StringArray `db:"requirements" json:"requirements"`
	Skills         pq.StringArray `db:"skills" json:"skills"`
	ApplicantCount int            `db:"applicant_count" json:"applicantCount"`
	Status         string         `db:"status" json:"status"`
	PostedAt       time.Time      `db:"posted_at" json:"postedAt"`
}

type Application struct {
	ID              string                   `db:"id" json:"id"`
	OwnerID         string                   `db:"owner_id" json:"ownerId"`
	JobID           string                   `db:"job_id" json:"jobId"`
	Status          domain.ApplicationStatus `db:"status" json:"status"`
	IsGoalCompany   bool                     `db:"is_goal_company" json:"isGoalCompany"`
	AppliedAt       time.Time                `db:"applied_at" json:"appliedAt"`
	LastUpdated     time.Time                `db:"last_updated" json:"lastUpdated"`
	RejectionReason *string                  `db:"rejection_reason" json:"rejectionReason,omitempty"`
	Notes           *string                  `db:"notes" json:"notes,omitempty"`
	Counted         bool                     `db:"counted" json:"-"`
}

// ApplicationWithJob is an application with its posting resolved
type ApplicationWithJob struct {
	Application
	Job *Job `json:"job"`
}

type Resume struct {
	ID          string         `db:"id" json:"id"`
	OwnerID     string         `db:"owner_id" json:"ownerId"`
	FileName    string         `db:"file_name" json:"fileName"`
	ATSScore    int            `db:"ats_score" json:"atsScore"`
	Skills      pq.StringArray `db:"skills" json:"skills"`
	Keywords    pq.StringArray `db:"keywords" json:"keywords"`
	Suggestions pq.StringArray `db:"suggestions" json:"suggestions"`
	UploadedAt  time.Time      `db:"uploaded_at" json:"uploadedAt"`
}

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type Activity struct {
	EventID    string    `db:"event_id" json:"eventId"`
	OwnerID    string    `db:"owner_id" json:"ownerId"`
	Kind       string    `db:"kind" json:"kind"`
	SubjectID  string    `db:"subject_id" json:"subjectId"`
	Summary    string    `db:"summary" json:"summary"`
	OccurredAt time.Time `db:"occurred_at" json:"occurredAt"`
}
