package services

import (
	"context"
	"fmt"
	"time"

	"giftwise/internal/models"
	"giftwise/internal/store"

	"github.com/google/uuid"
)

// InteractionService appends interaction events, either synchronously or
// through the job queue for burst ingestion.
type InteractionService struct {
	interactions store.InteractionStore
	jobs         store.JobClient
}

func NewInteractionService(interactions store.InteractionStore, jobs store.JobClient) *InteractionService {
	return &InteractionService{interactions: interactions, jobs: jobs}
}

// RecordParams describes one interaction to append.
type RecordParams struct {
	UserID string
	ItemID uuid.UUID
	Kind   models.InteractionKind

	// Async routes the write through the job queue instead of the store.
	Async bool
}

func (s *InteractionService) Record(ctx context.Context, params RecordParams) (*models.InteractionEvent, error) {
	if params.UserID == "" {
		return nil, fmt.Errorf("user id cannot be empty")
	}
	if params.ItemID == uuid.Nil {
		return nil, fmt.Errorf("item id cannot be empty")
	}
	if !params.Kind.Valid() {
		return nil, fmt.Errorf("unknown interaction kind %q", params.Kind)
	}

	event := &models.InteractionEvent{
		ID:         uuid.New(),
		UserID:     params.UserID,
		ItemID:     params.ItemID,
		Kind:       params.Kind,
		OccurredAt: time.Now(),
	}

	if params.Async {
		if s.jobs == nil {
			return nil, fmt.Errorf("job client is not configured for async recording")
		}
		if err := s.jobs.EnqueueInteractionEvent(ctx, event); err != nil {
			return nil, fmt.Errorf("enqueue interaction event: %w", err)
		}
		return event, nil
	}

	if err := s.interactions.RecordEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("record interaction event: %w", err)
	}
	return event, nil
}

// ListUserEvents returns the user's most recent events, newest first.
func (s *InteractionService) ListUserEvents(ctx context.Context, userID string, limit int) ([]*models.InteractionEvent, error) {
	return s.interactions.ListUserEvents(ctx, userID, limit)
}
