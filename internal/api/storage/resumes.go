package storage

import (
	"context"
	"fmt"

	"github.com/cuongbtq/interniq-be/internal/api/model"
)

const resumeColumns = `
	id, owner_id, file_name, ats_score, skills, keywords, suggestions, uploaded_at
`

func (s *Storage) CreateResume(ctx context.Context, r *model.Resume) error {
	query := s.db.Rebind(`
		INSERT INTO resumes (` + resumeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.OwnerID,
		r.FileName,
		r.ATSScore,
		r.Skills,
		r.Keywords,
		r.Suggestions,
		r.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	return nil
}

// GetLatestResume returns the most recently uploaded resume of the owner
func (s *Storage) GetLatestResume(ctx context.Context, ownerID string) (*model.Resume, error) {
	var r model.Resume
	query := s.db.Rebind(`
		SELECT ` + resumeColumns + `
		FROM resumes
		WHERE owner_id = ?
		ORDER BY uploaded_at DESC, id DESC
		LIMIT 1
	`)

	if err := s.db.GetContext(ctx, &r, query, ownerID); err != nil {
		return nil, notFound(err, "resume")
	}

	return &r, nil
}

// ListResumes returns every resume of the owner, newest first
func (s *Storage) ListResumes(ctx context.Context, ownerID string) ([]model.Resume, error) {
	query := s.db.Rebind(`
		SELECT ` + resumeColumns + `
		FROM resumes
		WHERE owner_id = ?
		ORDER BY uploaded_at DESC, id DESC
	`)

	resumes := []model.Resume{}
	if err := s.db.SelectContext(ctx, &resumes, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	return resumes, nil
}
