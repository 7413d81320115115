package services

import (
	"context"
	"fmt"
	"strings"

	"giftwise/internal/models"
	"giftwise/internal/store"
	"giftwise/internal/util"

	"github.com/google/uuid"
)

// CatalogService manages catalog items: ingestion (with description
// sanitation) and lookups.
type CatalogService struct {
	catalog store.CatalogStore
}

func NewCatalogService(catalog store.CatalogStore) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// AddItemParams carries a new catalog entry. Description may contain HTML
// from a retailer feed; it is sanitized before persisting.
type AddItemParams struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Tags        []string
	Retailer    string
	Brand       string
}

func (s *CatalogService) AddItem(ctx context.Context, params AddItemParams) (*models.Item, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, fmt.Errorf("item title cannot be empty")
	}
	if params.Price < 0 {
		return nil, fmt.Errorf("item price cannot be negative")
	}
	category := strings.TrimSpace(params.Category)
	if category == "" {
		return nil, fmt.Errorf("item category cannot be empty")
	}

	tags := make([]string, 0, len(params.Tags))
	for _, tag := range params.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	item := &models.Item{
		Title:       title,
		Description: util.CleanDescription(params.Description),
		Price:       params.Price,
		Category:    category,
		Tags:        tags,
		Retailer:    strings.TrimSpace(params.Retailer),
		Brand:       strings.TrimSpace(params.Brand),
	}
	if err := s.catalog.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.catalog.GetItem(ctx, id)
}

func (s *CatalogService) ListItems(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	return s.catalog.ListItems(ctx, limit, offset)
}
