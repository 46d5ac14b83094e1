package service

import (
	"context"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/cuongbtq/interniq-be/internal/api/model"
	"github.com/cuongbtq/interniq-be/internal/api/storage"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type ActivityStore interface {
	ListActivities(ctx context.Context, filter storage.ActivityFilter) ([]model.Activity, error)
}

// ActivityPage is one page of the feed. Next is nil on the last page.
type ActivityPage struct {
	Activities []model.Activity
	Next       *storage.ActivityCursor
}

// ActivityFeed reads the activity entries recorded by the worker
type ActivityFeed struct {
	store ActivityStore
}

func NewActivityFeed(store ActivityStore) *ActivityFeed {
	return &ActivityFeed{store: store}
}

func (f *ActivityFeed) Recent(ctx context.Context, caller domain.Identity, limit int, after *storage.ActivityCursor) (*ActivityPage, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	items, err := f.store.ListActivities(ctx, storage.ActivityFilter{
		OwnerID:  caller.UserID,
		PageSize: limit,
		Cursor:   after,
	})
	if err != nil {
		return nil, err
	}

	page := &ActivityPage{Activities: items}
	if len(items) > limit {
		page.Activities = items[:limit]
		last := page.Activities[limit-1]
		page.Next = &storage.ActivityCursor{OccurredAt: last.OccurredAt, EventID: last.EventID}
	}

	return page, nil
}
