package primary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"giftwise/internal/models"
	"giftwise/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (s *StoreImpl) RecordEvent(ctx context.Context, event *models.InteractionEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	query := `
		INSERT INTO interaction_events (id, user_id, item_id, kind, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.Exec(ctx, query,
		event.ID, event.UserID, event.ItemID, event.Kind, event.OccurredAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return fmt.Errorf("interaction event %s already recorded: %w", event.ID, store.ErrDuplicate)
			case "23503": // foreign_key_violation
				return fmt.Errorf("interaction event references unknown item %s: %w", event.ItemID, store.ErrForeignKeyViolation)
			}
		}
		return fmt.Errorf("failed to insert interaction event: %w", err)
	}
	return nil
}

func (s *StoreImpl) ListUserEvents(ctx context.Context, userID string, limit int) ([]*models.InteractionEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, user_id, item_id, kind, occurred_at
		FROM interaction_events
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query interaction events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.InteractionEvent, 0, limit)
	for rows.Next() {
		event := &models.InteractionEvent{}
		err := rows.Scan(&event.ID, &event.UserID, &event.ItemID, &event.Kind, &event.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interaction event rows: %w", err)
	}
	return events, nil
}

// TopCategory resolves the user's most-interacted item category by joining
// events against the catalog. Returns store.ErrNotFound when the user has
// no interaction history.
func (s *StoreImpl) TopCategory(ctx context.Context, userID string) (*models.LearnedCategory, error) {
	query := `
		SELECT i.category, COUNT(*) AS interactions
		FROM interaction_events e
		JOIN items i ON i.id = e.item_id
		WHERE e.user_id = $1
		GROUP BY i.category
		ORDER BY interactions DESC, i.category ASC
		LIMIT 1`

	learned := &models.LearnedCategory{}
	err := s.db.QueryRow(ctx, query, userID).Scan(&learned.Category, &learned.Count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve top category for user %s: %w", userID, err)
	}
	return learned, nil
}
