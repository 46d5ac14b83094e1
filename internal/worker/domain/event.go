package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventMessage is a tracker event as published by the API service
type EventMessage struct {
	EventID    string    `json:"event_id"`
	Kind       string    `json:"kind"`
	OwnerID    string    `json:"owner_id"`
	SubjectID  string    `json:"subject_id"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ParseEventMessage decodes and validates a message body. Every failure
// wraps ErrInvalidPayload or ErrUnknownEventKind.
func ParseEventMessage(body []byte) (*EventMessage, error) {
	var msg EventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if _, err := uuid.Parse(msg.EventID); err != nil {
		return nil, fmt.Errorf("%w: event_id is not a UUID", ErrInvalidPayload)
	}

	if _, ok := KnownEventKinds[msg.Kind]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventKind, msg.Kind)
	}

	var missing []string
	if strings.TrimSpace(msg.OwnerID) == "" {
		missing = append(missing, "owner_id")
	}
	if strings.TrimSpace(msg.SubjectID) == "" {
		missing = append(missing, "subject_id")
	}
	if msg.OccurredAt.IsZero() {
		missing = append(missing, "occurred_at")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidPayload, strings.Join(missing, ", "))
	}

	return &msg, nil
}
