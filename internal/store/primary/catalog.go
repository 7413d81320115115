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

const itemColumns = `id, title, description, price, category, tags, retailer, brand, created_at, updated_at`

// scanItem scans a single row into a models.Item. Column order must match
// itemColumns.
func scanItem(row pgx.Row, dest *models.Item) error {
	return row.Scan(
		&dest.ID,
		&dest.Title,
		&dest.Description,
		&dest.Price,
		&dest.Category,
		&dest.Tags,
		&dest.Retailer,
		&dest.Brand,
		&dest.CreatedAt,
		&dest.UpdatedAt,
	)
}

func (s *StoreImpl) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	query := `
		INSERT INTO items (id, title, description, price, category, tags, retailer, brand, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	now := time.Now()
	err := s.db.QueryRow(ctx, query,
		item.ID, item.Title, item.Description, item.Price, item.Category,
		item.Tags, item.Retailer, item.Brand, now, now,
	).Scan(&item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("item %s already exists: %w", item.ID, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item := &models.Item{}
	err := scanItem(s.db.QueryRow(ctx, query, id), item)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return item, nil
}

func (s *StoreImpl) GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Item, error) {
	if len(ids) == 0 {
		return []*models.Item{}, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ANY($1)`
	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query items by ids: %w", err)
	}
	defer rows.Close()

	items := make([]*models.Item, 0, len(ids))
	for rows.Next() {
		item := &models.Item{}
		if err := scanItem(rows, item); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	return items, nil
}

func (s *StoreImpl) ListItems(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.Item, 0, limit)
	for rows.Next() {
		item := &models.Item{}
		if err := scanItem(rows, item); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	return items, nil
}

// FetchCandidates returns at most limit items priced at or below maxPrice.
// The boundary is inclusive; ordering is incidental and callers re-sort.
func (s *StoreImpl) FetchCandidates(ctx context.Context, maxPrice float64, limit int) ([]*models.Item, error) {
	if limit <= 0 {
		return []*models.Item{}, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE price <= $1 LIMIT $2`
	rows, err := s.db.Query(ctx, query, maxPrice, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.Item, 0, limit)
	for rows.Next() {
		item := &models.Item{}
		if err := scanItem(rows, item); err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate rows: %w", err)
	}
	return items, nil
}
