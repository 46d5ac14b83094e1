package worker

import (
	"context"
	"log/slog"

	"github.com/cuongbtq/interniq-be/internal/worker/domain"
)

// processMessage records one event with the configured timeout. Storage
// failures are retryable; redelivered events are recorded once.
func (w *Worker) processMessage(ctx context.Context, event *domain.EventMessage) error {
	ctx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	inserted, err := w.recorder.RecordActivity(ctx, event)
	if err != nil {
		return domain.NewRetryableError(err)
	}

	if !inserted {
		w.duplicates.Add(1)
		w.logger.Info("Duplicate event skipped",
			slog.String("event_id", event.EventID),
			slog.String("kind", event.Kind),
		)
		return nil
	}

	w.recorded.Add(1)
	w.logger.Info("Activity recorded",
		slog.String("event_id", event.EventID),
		slog.String("kind", event.Kind),
		slog.String("owner_id", event.OwnerID),
	)

	return nil
}
