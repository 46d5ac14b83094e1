package domain

import "errors"

var (
	// ErrInvalidPayload is returned when an event body is malformed or incomplete
	ErrInvalidPayload = errors.New("invalid event payload")

	// ErrUnknownEventKind is returned for event kinds the worker does not record
	ErrUnknownEventKind = errors.New("unknown event kind")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
