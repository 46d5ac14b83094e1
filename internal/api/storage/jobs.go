package storage

import (
	"context"
	"fmt"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/jmoiron/sqlx"
)

const jobColumns = `
	id, title, company, location, type, field, stipend, description,
	requirements, skills, applicant_count, status, posted_at
`

func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := s.db.Rebind(`
		INSERT INTO jobs (` + jobColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Company,
		job.Location,
		string(job.Type),
		job.Field,
		job.Stipend,
		job.Description,
		job.Requirements,
		job.Skills,
		job.ApplicantCount,
		job.Status,
		job.PostedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	query := s.db.Rebind(`SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`)

	if err := s.db.GetContext(ctx, &job, query, jobID); err != nil {
		return nil, notFound(err, "job")
	}

	return &job, nil
}

// ListJobs returns postings newest first. Expired postings are included only
// when asked for.
func (s *Storage) ListJobs(ctx context.Context, includeExpired bool) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	args := []interface{}{}

	if !includeExpired {
		query += ` WHERE status = ?`
		args = append(args, domain.JobStatusActive)
	}

	query += ` ORDER BY posted_at DESC, id DESC`

	jobs := []model.Job{}
	if err := s.db.SelectContext(ctx, &jobs, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// GetJobsByIDs loads the given postings keyed by id
func (s *Storage) GetJobsByIDs(ctx context.Context, ids []string) (map[string]*model.Job, error) {
	result := make(map[string]*model.Job, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT `+jobColumns+` FROM jobs WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build jobs query: %w", err)
	}

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get jobs: %w", err)
	}

	for i := range jobs {
		result[jobs[i].ID] = &jobs[i]
	}

	return result, nil
}

// IncrementApplicantCount adds one applicant to the job on behalf of the
// given application. The application's counted flag and the job counter are
// updated in one transaction, so calling this again for the same
// application is a no-op.
func (s *Storage) IncrementApplicantCount(ctx context.Context, jobID, applicationID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE applications SET counted = ? WHERE id = ? AND job_id = ? AND counted = ?`),
		true, applicationID, jobID, false,
	)
	if err != nil {
		return fmt.Errorf("failed to mark application counted: %w", err)
	}

	marked, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if marked == 0 {
		var exists int
		err := tx.GetContext(ctx, &exists,
			tx.Rebind(`SELECT COUNT(*) FROM applications WHERE id = ? AND job_id = ?`),
			applicationID, jobID,
		)
		if err != nil {
			return fmt.Errorf("failed to check application: %w", err)
		}
		if exists == 0 {
			return domain.NewError(domain.KindNotFound, "application not found")
		}
		// Already counted by an earlier attempt.
		return nil
	}

	res, err = tx.ExecContext(ctx,
		tx.Rebind(`UPDATE jobs SET applicant_count = applicant_count + 1 WHERE id = ?`),
		jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment applicant count: %w", err)
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if updated == 0 {
		return domain.NewError(domain.KindNotFound, "job not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit applicant count: %w", err)
	}

	return nil
}
