package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"giftwise/internal/models"
	"giftwise/internal/store"
	"giftwise/internal/tasks"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// InteractionDeps holds the dependencies of the interaction ingestion handler.
type InteractionDeps struct {
	Interactions store.InteractionStore
}

// RegisterHandlers attaches all worker task handlers to the mux.
func RegisterHandlers(mux *asynq.ServeMux, deps InteractionDeps) {
	mux.HandleFunc(tasks.TypeInteractionRecord, HandleInteractionRecord(deps))
}

// HandleInteractionRecord persists one queued interaction event.
func HandleInteractionRecord(deps InteractionDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.InteractionRecordPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			// A malformed payload will never succeed on retry.
			return fmt.Errorf("unmarshal interaction payload: %v: %w", err, asynq.SkipRetry)
		}

		kind := models.InteractionKind(payload.Kind)
		if !kind.Valid() {
			return fmt.Errorf("unknown interaction kind %q: %w", payload.Kind, asynq.SkipRetry)
		}

		event := &models.InteractionEvent{
			ID:         payload.EventID,
			UserID:     payload.UserID,
			ItemID:     payload.ItemID,
			Kind:       kind,
			OccurredAt: payload.OccurredAt,
		}
		if err := deps.Interactions.RecordEvent(ctx, event); err != nil {
			return fmt.Errorf("record interaction event %s: %w", payload.EventID, err)
		}

		log.Debugf("Recorded interaction event: id=%s user=%s item=%s kind=%s",
			event.ID, event.UserID, event.ItemID, event.Kind)
		return nil
	}
}
