package handler

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/cuongbtq/interniq-be/internal/api/storage"
)

func DecodeActivityCursor(cursorStr string) (*storage.ActivityCursor, error) {
	if cursorStr == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursorStr)
	if err != nil {
		return nil, err
	}

	decodedParts := strings.SplitN(string(decoded), "|", 2)
	if len(decodedParts) != 2 || decodedParts[1] == "" {
		return nil, fmt.Errorf("invalid cursor format")
	}

	var occurredAt int64
	_, err = fmt.Sscanf(decodedParts[0], "%d", &occurredAt)
	if err != nil {
		return nil, fmt.Errorf("invalid occurredAt in cursor: %w", err)
	}

	return &storage.ActivityCursor{
		OccurredAt: time.Unix(0, occurredAt).UTC(),
		EventID:    decodedParts[1],
	}, nil
}

func EncodeActivityCursor(cursor *storage.ActivityCursor) string {
	if cursor == nil {
		return ""
	}
	cs := fmt.Sprintf("%d|%s", cursor.OccurredAt.UnixNano(), cursor.EventID)
	return base64.URLEncoding.EncodeToString([]byte(cs))
}
