package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/cuongbtq/interniq-be/internal/api/storage"
	"github.com/google/uuid"
)

// TrackerStore is the persistence used by the application tracker
type TrackerStore interface {
	CreateApplication(ctx context.Context, app *model.Application) error
	FindApplication(ctx context.Context, ownerID, jobID string) (*model.Application, error)
	GetApplication(ctx context.Context, applicationID, ownerID string) (*model.Application, error)
	ListApplicationsByOwner(ctx context.Context, ownerID string) ([]model.Application, error)
	DeleteUncountedApplication(ctx context.Context, applicationID string) error
	UpdateApplicationStatus(ctx context.Context, applicationID, ownerID string, upd storage.StatusUpdate) (*model.Application, error)
	GetJobsByIDs(ctx context.Context, ids []string) (map[string]*model.Job, error)
}

// JobCounter is the part of the catalog the tracker depends on
type JobCounter interface {
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
	IncrementApplicantCount(ctx context.Context, jobID, applicationID string) error
}

// TrackerConfig controls the applicant count retry policy
type TrackerConfig struct {
	IncrementRetries int
	IncrementBackoff time.Duration
}

// StatusChange is a requested status transition
type StatusChange struct {
	Status          string
	RejectionReason *string
	Notes           *string
}

// Summary aggregates an owner's application progress
type Summary struct {
	Total         int                              `json:"total"`
	ByStatus      map[domain.ApplicationStatus]int `json:"byStatus"`
	GoalCompanies int                              `json:"goalCompanies"`
	Interviews    int                              `json:"interviews"`
	SuccessRate   int                              `json:"successRate"`
}

// Tracker owns applications and their status lifecycle
type Tracker struct {
	store   TrackerStore
	jobs    JobCounter
	events  EventPublisher
	logger  *slog.Logger
	now     func() time.Time
	retries int
	backoff time.Duration
}

func NewTracker(store TrackerStore, jobs JobCounter, events EventPublisher, cfg TrackerConfig, logger *slog.Logger) *Tracker {
	if cfg.IncrementRetries < 0 {
		cfg.IncrementRetries = 0
	}
	if cfg.IncrementBackoff <= 0 {
		cfg.IncrementBackoff = 50 * time.Millisecond
	}
	if events == nil {
		events = NopPublisher{}
	}

	return &Tracker{
		store:   store,
		jobs:    jobs,
		events:  events,
		logger:  logger,
		now:     time.Now,
		retries: cfg.IncrementRetries,
		backoff: cfg.IncrementBackoff,
	}
}

// Apply records a new application of the caller for jobID and counts it on
// the posting. If the count cannot be applied the application is removed
// again, so the posting's applicant count always matches its live
// applications.
func (t *Tracker) Apply(ctx context.Context, caller domain.Identity, jobID string, isGoalCompany bool) (*model.Application, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, domain.NewError(domain.KindValidation, "jobId is required")
	}

	job, err := t.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if _, err := t.store.FindApplication(ctx, caller.UserID, jobID); err == nil {
		return nil, domain.NewError(domain.KindConflict, "already applied to this job")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := t.now().UTC()
	app := &model.Application{
		ID:            uuid.New().String(),
		OwnerID:       caller.UserID,
		JobID:         jobID,
		Status:        domain.StatusApplied,
		IsGoalCompany: isGoalCompany,
		AppliedAt:     now,
		LastUpdated:   now,
	}

	// The unique (owner, job) constraint catches a concurrent duplicate.
	if err := t.store.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	if err := t.countApplicant(ctx, app); err != nil {
		t.logger.Error("Failed to count applicant, rolling back application",
			slog.String("application_id", app.ID),
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)

		if delErr := t.store.DeleteUncountedApplication(context.WithoutCancel(ctx), app.ID); delErr != nil {
			if errors.Is(delErr, domain.ErrConflict) {
				// An attempt reported failure after it committed.
				app.Counted = true
				return t.created(ctx, app, job), nil
			}
			t.logger.Error("Failed to roll back application",
				slog.String("application_id", app.ID),
				slog.String("error", delErr.Error()),
			)
			return nil, fmt.Errorf("failed to roll back application %s: %w", app.ID, errors.Join(err, delErr))
		}

		return nil, fmt.Errorf("failed to count applicant: %w", err)
	}

	app.Counted = true
	return t.created(ctx, app, job), nil
}

func (t *Tracker) created(ctx context.Context, app *model.Application, job *model.Job) *model.Application {
	t.logger.Info("Application created",
		slog.String("application_id", app.ID),
		slog.String("owner_id", app.OwnerID),
		slog.String("job_id", app.JobID),
		slog.Bool("goal_company", app.IsGoalCompany),
	)

	publishEvent(ctx, t.events, t.logger, domain.EventApplicationCreated, app.OwnerID, app.ID,
		fmt.Sprintf("Applied to %s at %s", job.Title, job.Company), app.AppliedAt)

	return app
}

// countApplicant increments the job's applicant count with exponential
// backoff. Retrying is safe because the increment is keyed by application.
func (t *Tracker) countApplicant(ctx context.Context, app *model.Application) error {
	var err error
	for attempt := 0; attempt <= t.retries; attempt++ {
		err = t.jobs.IncrementApplicantCount(ctx, app.JobID, app.ID)
		if err == nil {
			if attempt > 0 {
				t.logger.Info("Applicant counted after retry",
					slog.String("application_id", app.ID),
					slog.Int("attempt", attempt+1),
				)
			}
			return nil
		}

		// A missing job or application will not appear on retry.
		if errors.Is(err, domain.ErrNotFound) || attempt == t.retries {
			break
		}

		delay := time.Duration(float64(t.backoff) * math.Pow(2, float64(attempt)))
		t.logger.Warn("Failed to count applicant, retrying...",
			slog.String("application_id", app.ID),
			slog.Int("attempt", attempt+1),
			slog.Int("max_retries", t.retries),
			slog.Duration("retry_after", delay),
			slog.String("error", err.Error()),
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		}
	}
	return err
}

// ListForOwner returns the caller's applications with their postings,
// most recently applied first
func (t *Tracker) ListForOwner(ctx context.Context, caller domain.Identity) ([]model.ApplicationWithJob, error) {
	apps, err := t.store.ListApplicationsByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(apps))
	seen := make(map[string]struct{}, len(apps))
	for _, app := range apps {
		if _, ok := seen[app.JobID]; !ok {
			seen[app.JobID] = struct{}{}
			ids = append(ids, app.JobID)
		}
	}

	jobs, err := t.store.GetJobsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]model.ApplicationWithJob, len(apps))
	for i, app := range apps {
		result[i] = model.ApplicationWithJob{
			Application: app,
			Job:         jobs[app.JobID],
		}
	}

	return result, nil
}

// SetStatus moves one of the caller's applications to a new status.
// Selected and Rejected are final.
func (t *Tracker) SetStatus(ctx context.Context, caller domain.Identity, applicationID string, change StatusChange) (*model.Application, error) {
	current, err := t.store.GetApplication(ctx, applicationID, caller.UserID)
	if err != nil {
		return nil, err
	}

	// A final application rejects every target, known or not.
	requested := strings.TrimSpace(change.Status)
	if err := current.Status.CanTransition(domain.ApplicationStatus(requested)); err != nil {
		return nil, err
	}

	next, err := domain.ParseApplicationStatus(requested)
	if err != nil {
		return nil, err
	}

	updated, err := t.store.UpdateApplicationStatus(ctx, applicationID, caller.UserID, storage.StatusUpdate{
		Status:          next,
		RejectionReason: change.RejectionReason,
		Notes:           change.Notes,
		UpdatedAt:       t.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("Application status changed",
		slog.String("application_id", applicationID),
		slog.String("from", string(current.Status)),
		slog.String("to", string(next)),
	)

	publishEvent(ctx, t.events, t.logger, domain.EventApplicationStatusChanged, caller.UserID, applicationID,
		fmt.Sprintf("Status changed from %s to %s", current.Status, next), updated.LastUpdated)

	return updated, nil
}

// Summary aggregates the caller's progress for the dashboard
func (t *Tracker) Summary(ctx context.Context, caller domain.Identity) (*Summary, error) {
	apps, err := t.store.ListApplicationsByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Total:    len(apps),
		ByStatus: make(map[domain.ApplicationStatus]int, len(domain.Statuses)),
	}
	for _, st := range domain.Statuses {
		s.ByStatus[st] = 0
	}

	for _, app := range apps {
		s.ByStatus[app.Status]++
		if app.IsGoalCompany {
			s.GoalCompanies++
		}
		if app.Status.IsInterview() {
			s.Interviews++
		}
	}

	if s.Total > 0 {
		s.SuccessRate = int(math.Round(float64(s.ByStatus[domain.StatusSelected]) / float64(s.Total) * 100))
	}

	return s, nil
}
