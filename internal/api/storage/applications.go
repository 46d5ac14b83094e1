package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/cuongbtq/interniq-be/shared/database"
)

const applicationColumns = `
	id, owner_id, job_id, status, is_goal_company, applied_at,
	last_updated, rejection_reason, notes, counted
`

// CreateApplication inserts a new application. A second application for the
// same (owner, job) pair fails with a Conflict error.
func (s *Storage) CreateApplication(ctx context.Context, app *model.Application) error {
	query := s.db.Rebind(`
		INSERT INTO applications (` + applicationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := s.db.ExecContext(
		ctx,
		query,
		app.ID,
		app.OwnerID,
		app.JobID,
		string(app.Status),
		app.IsGoalCompany,
		app.AppliedAt,
		app.LastUpdated,
		app.RejectionReason,
		app.Notes,
		app.Counted,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.WrapError(domain.KindConflict, "already applied to this job", err)
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// FindApplication looks up the application of ownerID for jobID
func (s *Storage) FindApplication(ctx context.Context, ownerID, jobID string) (*model.Application, error) {
	var app model.Application
	query := s.db.Rebind(`SELECT ` + applicationColumns + ` FROM applications WHERE owner_id = ? AND job_id = ?`)

	if err := s.db.GetContext(ctx, &app, query, ownerID, jobID); err != nil {
		return nil, notFound(err, "application")
	}

	return &app, nil
}

// GetApplication returns the application only when it belongs to ownerID
func (s *Storage) GetApplication(ctx context.Context, applicationID, ownerID string) (*model.Application, error) {
	var app model.Application
	query := s.db.Rebind(`SELECT ` + applicationColumns + ` FROM applications WHERE id = ? AND owner_id = ?`)

	if err := s.db.GetContext(ctx, &app, query, applicationID, ownerID); err != nil {
		return nil, notFound(err, "application")
	}

	return &app, nil
}

// ListApplicationsByOwner returns the owner's applications, most recent first
func (s *Storage) ListApplicationsByOwner(ctx context.Context, ownerID string) ([]model.Application, error) {
	query := s.db.Rebind(`
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE owner_id = ?
		ORDER BY applied_at DESC, id DESC
	`)

	apps := []model.Application{}
	if err := s.db.SelectContext(ctx, &apps, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}

// DeleteUncountedApplication removes an application whose applicant count
// increment never landed. Counted applications are left alone.
func (s *Storage) DeleteUncountedApplication(ctx context.Context, applicationID string) error {
	query := s.db.Rebind(`DELETE FROM applications WHERE id = ? AND counted = ?`)

	res, err := s.db.ExecContext(ctx, query, applicationID, false)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewError(domain.KindConflict, "application is already counted")
	}

	return nil
}

// StatusUpdate carries a status change for UpdateApplicationStatus
type StatusUpdate struct {
	Status          domain.ApplicationStatus
	RejectionReason *string
	Notes           *string
	UpdatedAt       time.Time
}

// UpdateApplicationStatus applies a status change unless the application is
// already in a terminal status. The terminal guard is part of the UPDATE so
// a concurrent terminal write is never overwritten.
func (s *Storage) UpdateApplicationStatus(ctx context.Context, applicationID, ownerID string, upd StatusUpdate) (*model.Application, error) {
	query := s.db.Rebind(`
		UPDATE applications
		SET status = ?,
		    last_updated = ?,
		    rejection_reason = COALESCE(CAST(? AS TEXT), rejection_reason),
		    notes = COALESCE(CAST(? AS TEXT), notes)
		WHERE id = ? AND owner_id = ? AND status NOT IN (?, ?)
	`)

	res, err := s.db.ExecContext(ctx, query,
		string(upd.Status),
		upd.UpdatedAt,
		upd.RejectionReason,
		upd.Notes,
		applicationID,
		ownerID,
		string(domain.StatusSelected),
		string(domain.StatusRejected),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	app, err := s.GetApplication(ctx, applicationID, ownerID)
	if err != nil {
		return nil, err
	}

	if rows == 0 {
		if err := app.Status.CanTransition(upd.Status); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update application status: no rows affected")
	}

	return app, nil
}

// CountApplicationsForJob returns the number of applications already
// reflected in the job's applicant count
func (s *Storage) CountApplicationsForJob(ctx context.Context, jobID string) (int, error) {
	var n int
	query := s.db.Rebind(`SELECT COUNT(*) FROM applications WHERE job_id = ? AND counted = ?`)
	if err := s.db.GetContext(ctx, &n, query, jobID, true); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return n, nil
}
