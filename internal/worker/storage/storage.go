package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/interniq-be/internal/worker/domain"
	"github.com/jmoiron/sqlx"
)

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// RecordActivity stores an event as an activity entry. It reports false when
// the event was already recorded, which makes redelivery harmless.
func (s *Storage) RecordActivity(ctx context.Context, event *domain.EventMessage) (bool, error) {
	query := s.db.Rebind(`
		INSERT INTO activities (event_id, owner_id, kind, subject_id, summary, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (event_id) DO NOTHING
	`)

	result, err := s.db.ExecContext(
		ctx,
		query,
		event.EventID,
		event.OwnerID,
		event.Kind,
		event.SubjectID,
		event.Summary,
		event.OccurredAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to record activity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Info("Activity already recorded",
			slog.String("event_id", event.EventID),
		)
		return false, nil
	}

	return true, nil
}
