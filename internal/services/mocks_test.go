package services_test

import (
	"context"
	"fmt"
	"sync"

	"giftwise/internal/models"
	"giftwise/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Store mocks ---

type mockCatalogStore struct {
	mock.Mock
}

func (m *mockCatalogStore) CreateItem(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockCatalogStore) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *mockCatalogStore) GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *mockCatalogStore) ListItems(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *mockCatalogStore) FetchCandidates(ctx context.Context, maxPrice float64, limit int) ([]*models.Item, error) {
	args := m.Called(ctx, maxPrice, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *mockCatalogStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockInteractionStore struct {
	mock.Mock
}

func (m *mockInteractionStore) RecordEvent(ctx context.Context, event *models.InteractionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockInteractionStore) ListUserEvents(ctx context.Context, userID string, limit int) ([]*models.InteractionEvent, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InteractionEvent), args.Error(1)
}

func (m *mockInteractionStore) TopCategory(ctx context.Context, userID string) (*models.LearnedCategory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnedCategory), args.Error(1)
}

// --- Enricher stub ---

// stubEnricher is a configurable Enricher: per-item canned responses or
// errors, and a call counter for concurrency assertions.
type stubEnricher struct {
	enabled   bool
	responses map[uuid.UUID]string
	failures  map[uuid.UUID]error

	mu    sync.Mutex
	calls int
}

var _ services.Enricher = (*stubEnricher)(nil)

func (s *stubEnricher) Name() string { return "stub" }

func (s *stubEnricher) Enabled() bool { return s.enabled }

func (s *stubEnricher) GenerateExplanation(ctx context.Context, item *models.Item, req *models.RecommendationRequest, breakdown models.ScoreBreakdown) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if err, ok := s.failures[item.ID]; ok {
		return "", err
	}
	if text, ok := s.responses[item.ID]; ok {
		return text, nil
	}
	return "", fmt.Errorf("no stubbed response for item %s", item.ID)
}

func (s *stubEnricher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
