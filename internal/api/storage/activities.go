package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/model"
)

type ActivityFilter struct {
	OwnerID  string
	PageSize int
	Cursor   *ActivityCursor
}

// ActivityCursor points at the last entry of the previous page
type ActivityCursor struct {
	OccurredAt time.Time
	EventID    string
}

// ListActivities returns up to PageSize+1 of the owner's entries, newest
// first, so callers can tell whether another page exists.
func (s *Storage) ListActivities(ctx context.Context, filter ActivityFilter) ([]model.Activity, error) {
	query := `
		SELECT event_id, owner_id, kind, subject_id, summary, occurred_at
		FROM activities
		WHERE owner_id = ?
	`
	args := []any{filter.OwnerID}

	if filter.Cursor != nil {
		query += " AND (occurred_at < ? OR (occurred_at = ? AND event_id < ?))"
		args = append(args, filter.Cursor.OccurredAt.UTC(), filter.Cursor.OccurredAt.UTC(), filter.Cursor.EventID)
	}

	// Order by occurred_at DESC, event_id DESC for consistent pagination
	query += " ORDER BY occurred_at DESC, event_id DESC LIMIT ?"
	args = append(args, filter.PageSize+1)

	activities := []model.Activity{}
	if err := s.db.SelectContext(ctx, &activities, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}
