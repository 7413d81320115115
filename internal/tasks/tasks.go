package tasks

import (
	"time"

	"github.com/google/uuid"
)

// Task type constants used with asynq.
const (
	// TypeInteractionRecord persists one interaction event.
	TypeInteractionRecord = "interaction:record"
)

// InteractionRecordPayload is the JSON body of a TypeInteractionRecord task.
type InteractionRecordPayload struct {
	EventID    uuid.UUID `json:"event_id"`
	UserID     string    `json:"user_id"`
	ItemID     uuid.UUID `json:"item_id"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}
