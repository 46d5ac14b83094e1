package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/interniq-be/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// setupConsumer sets up RabbitMQ consumer with QoS and returns delivery channel
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	if w.source == nil {
		return nil, fmt.Errorf("message source is nil")
	}

	// prefetch_count: number of unacknowledged messages per consumer
	if err := w.source.SetPrefetch(w.prefetchCount); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	w.logger.Info("RabbitMQ QoS configured",
		slog.Int("prefetch_count", w.prefetchCount),
	)

	// Manual acknowledgment; the worker ID doubles as consumer tag
	deliveries, err := w.source.Consume(w.workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("RabbitMQ consumer started",
		slog.String("consumer_tag", w.workerID),
		slog.String("queue", w.queueName),
	)

	return deliveries, nil
}

// startMessageDispatcher decodes deliveries and hands them to the worker pool
func (w *Worker) startMessageDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) {
	w.logger.Info("Message dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Message dispatcher stopped - context canceled")
			return

		case <-w.stopChan:
			w.logger.Info("Message dispatcher stopped - stop requested")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			event, err := domain.ParseEventMessage(delivery.Body)
			if err != nil {
				w.logger.Error("Rejecting malformed event",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				w.failed.Add(1)
				// Malformed messages never succeed; drop them (or dead-letter)
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					w.logger.Error("Failed to NACK malformed message",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			select {
			case w.jobsChan <- &message{event: event, delivery: delivery}:
				w.logger.Debug("Event dispatched to worker pool",
					slog.String("event_id", event.EventID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				w.requeueOnShutdown(delivery)
				return
			case <-w.stopChan:
				w.requeueOnShutdown(delivery)
				return
			}
		}
	}
}

func (w *Worker) requeueOnShutdown(delivery amqp.Delivery) {
	w.logger.Info("Message dispatcher stopped while dispatching event")
	if nackErr := delivery.Nack(false, true); nackErr != nil {
		w.logger.Error("Failed to NACK message on shutdown",
			slog.String("error", nackErr.Error()),
		)
	}
}
