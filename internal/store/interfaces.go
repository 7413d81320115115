package store

import (
	"context"

	"giftwise/internal/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// --- Job Client ---

// JobClient enqueues background tasks (currently interaction-event
// ingestion) onto the asynq queue.
type JobClient interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	EnqueueInteractionEvent(ctx context.Context, event *models.InteractionEvent) error
	Close() error
}

// --- Catalog Store ---

// CatalogStore is the catalog lookup collaborator: item persistence plus
// the bounded candidate retrieval the ranking pipeline depends on.
type CatalogStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Item, error)
	ListItems(ctx context.Context, limit, offset int) ([]*models.Item, error)

	// FetchCandidates returns at most limit items priced at or below
	// maxPrice. The returned order is not significant; scoring re-sorts.
	FetchCandidates(ctx context.Context, maxPrice float64, limit int) ([]*models.Item, error)

	Ping(ctx context.Context) error
}

// --- Interaction Store ---

// InteractionStore is the interaction-history collaborator. Events are
// append-only; there is no update or delete.
type InteractionStore interface {
	RecordEvent(ctx context.Context, event *models.InteractionEvent) error

	// ListUserEvents returns up to limit events for the user, most
	// recent first.
	ListUserEvents(ctx context.Context, userID string, limit int) ([]*models.InteractionEvent, error)

	// TopCategory returns the user's single most-interacted item
	// category with its count, or ErrNotFound when the user has no
	// interaction history.
	TopCategory(ctx context.Context, userID string) (*models.LearnedCategory, error)
}
