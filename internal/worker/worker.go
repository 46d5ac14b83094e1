package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cuongbtq/interniq-be/internal/worker/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageSource delivers queued events
type MessageSource interface {
	SetPrefetch(count int) error
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
}

// ActivityRecorder persists events as activity entries
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, event *domain.EventMessage) (bool, error)
}

// Config holds worker configuration
type Config struct {
	Logger            *slog.Logger
	Source            MessageSource
	Recorder          ActivityRecorder
	QueueName         string
	Concurrency       int
	MaxJobs           int // dispatch buffer
	PrefetchCount     int
	JobTimeout        time.Duration
	HeartbeatInterval time.Duration
}

// message is a decoded event together with the delivery it arrived on
type message struct {
	event    *domain.EventMessage
	delivery amqp.Delivery
}

// Worker consumes tracker events and records them as activity
type Worker struct {
	logger            *slog.Logger
	source            MessageSource
	recorder          ActivityRecorder
	queueName         string
	workerID          string
	concurrency       int
	prefetchCount     int
	jobTimeout        time.Duration
	heartbeatInterval time.Duration

	jobsChan chan *message
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	recorded   atomic.Int64
	duplicates atomic.Int64
	failed     atomic.Int64
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	prefetch := cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = concurrency
	}

	jobTimeout := cfg.JobTimeout
	if jobTimeout <= 0 {
		jobTimeout = 10 * time.Second
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "worker"
	}

	return &Worker{
		logger:            cfg.Logger,
		source:            cfg.Source,
		recorder:          cfg.Recorder,
		queueName:         cfg.QueueName,
		workerID:          fmt.Sprintf("%s-%s", hostname, uuid.New().String()[:8]),
		concurrency:       concurrency,
		prefetchCount:     prefetch,
		jobTimeout:        jobTimeout,
		heartbeatInterval: cfg.HeartbeatInterval,
		jobsChan:          make(chan *message, max(cfg.MaxJobs, 0)),
		stopChan:          make(chan struct{}),
		done:              make(chan struct{}),
	}
}

// Start consumes events until ctx is canceled, Stop is called or the
// delivery channel closes. It returns once every worker goroutine exited.
func (w *Worker) Start(ctx context.Context) error {
	defer close(w.done)

	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("job_timeout", w.jobTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return err
	}

	if w.heartbeatInterval > 0 {
		go w.reportStats(ctx)
	}

	w.spawnWorkerPool(ctx)
	w.startMessageDispatcher(ctx, deliveries)

	// Workers drain what was already dispatched, then exit.
	close(w.jobsChan)
	w.wg.Wait()

	w.logger.Info("Worker finished",
		slog.Int64("recorded", w.recorded.Load()),
		slog.Int64("duplicates", w.duplicates.Load()),
		slog.Int64("failed", w.failed.Load()),
	)

	return nil
}

// Stop gracefully stops the worker and waits for Start to return
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	<-w.done
	w.logger.Info("Worker stopped")
}

// reportStats logs processing counters every heartbeat interval
func (w *Worker) reportStats(ctx context.Context) {
	ticker := time.NewTicker(w.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-ticker.C:
			w.logger.Info("Worker heartbeat",
				slog.String("worker_id", w.workerID),
				slog.Int64("recorded", w.recorded.Load()),
				slog.Int64("duplicates", w.duplicates.Load()),
				slog.Int64("failed", w.failed.Load()),
			)
		}
	}
}
