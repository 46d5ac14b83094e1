package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/domain"
	"github.com/google/uuid"
)

// EventPublisher delivers tracker events to the activity worker
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// NopPublisher drops every event. It is used when messaging is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) error { return nil }

// publishEvent sends an event without failing the caller. Activity is
// derived data; losing an event never affects the tracked records.
func publishEvent(ctx context.Context, publisher EventPublisher, logger *slog.Logger, kind, ownerID, subjectID, summary string, at time.Time) {
	if publisher == nil {
		return
	}

	event := domain.Event{
		ID:         uuid.New().String(),
		Kind:       kind,
		OwnerID:    ownerID,
		SubjectID:  subjectID,
		Summary:    summary,
		OccurredAt: at,
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			slog.String("kind", kind),
			slog.String("subject_id", subjectID),
			slog.String("error", err.Error()),
		)
	}
}

// MessagePublisher is the broker side of RabbitPublisher
type MessagePublisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// RabbitPublisher encodes events as JSON and hands them to the broker
type RabbitPublisher struct {
	broker MessagePublisher
}

// NewRabbitPublisher creates a publisher backed by broker
func NewRabbitPublisher(broker MessagePublisher) *RabbitPublisher {
	return &RabbitPublisher{broker: broker}
}

func (p *RabbitPublisher) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.broker.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
	}
	return nil
}
