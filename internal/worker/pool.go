package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/interniq-be/internal/worker/domain"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
}

// workerLoop processes dispatched events until jobsChan is closed
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Debug("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for msg := range w.jobsChan {
		err := w.processMessage(ctx, msg.event)

		if err != nil {
			w.failed.Add(1)
			requeue := shouldRequeue(err)

			w.logger.Error("Event processing failed",
				slog.String("worker_name", workerName),
				slog.String("event_id", msg.event.EventID),
				slog.Bool("requeue", requeue),
				slog.String("error", err.Error()),
			)

			if nackErr := msg.delivery.Nack(false, requeue); nackErr != nil {
				w.logger.Error("Failed to NACK message",
					slog.String("worker_name", workerName),
					slog.String("event_id", msg.event.EventID),
					slog.String("error", nackErr.Error()),
				)
			}
			continue
		}

		if ackErr := msg.delivery.Ack(false); ackErr != nil {
			w.logger.Error("Failed to ACK message",
				slog.String("worker_name", workerName),
				slog.String("event_id", msg.event.EventID),
				slog.String("error", ackErr.Error()),
			)
		}
	}

	w.logger.Debug("Worker goroutine stopping - jobsChan closed",
		slog.String("worker_name", workerName),
	)
}

// shouldRequeue determines if a message should be requeued based on the error type
func shouldRequeue(err error) bool {
	if errors.Is(err, domain.ErrInvalidPayload) || errors.Is(err, domain.ErrUnknownEventKind) {
		return false
	}

	// Requeue for transient/retryable errors
	var retryableErr *domain.RetryableError
	return errors.As(err, &retryableErr)
}
