package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"giftwise/internal/models"
	"giftwise/internal/services"
	"giftwise/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// itemID returns a stable UUID whose string ordering follows n.
func itemID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func makeItem(n int, price float64, tags ...string) *models.Item {
	return &models.Item{
		ID:       itemID(n),
		Title:    fmt.Sprintf("Item %d", n),
		Price:    price,
		Category: "Electronics",
		Tags:     tags,
	}
}

func noHistory(interactions *mockInteractionStore, userID string) {
	interactions.On("TopCategory", mock.Anything, userID).Return(nil, store.ErrNotFound)
}

func TestRecommend_PassesPriceCeilingAndCandidateCap(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)
	budget := 100.0
	req := &models.RecommendationRequest{UserID: "u1", Budget: budget, Interests: []string{"gaming"}}

	catalog.On("FetchCandidates", mock.Anything, budget*1.15, 100).
		Return([]*models.Item{makeItem(1, 50, "gaming")}, nil)
	noHistory(interactions, "u1")

	svc := services.NewRecommendationService(catalog, interactions, nil)
	results, err := svc.Recommend(context.Background(), req, 10)

	require.NoError(t, err)
	require.Len(t, results, 1)
	catalog.AssertExpectations(t)
}

func TestRecommend_EmptyCandidateSetIsNotAnError(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)
	req := &models.RecommendationRequest{UserID: "u1", Budget: 5}

	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Item{}, nil)

	svc := services.NewRecommendationService(catalog, interactions, nil)
	results, err := svc.Recommend(context.Background(), req, 10)

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	interactions.AssertNotCalled(t, "TopCategory", mock.Anything, mock.Anything)
}

func TestRecommend_CatalogErrorPropagates(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)
	boom := errors.New("connection refused")

	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, boom)

	svc := services.NewRecommendationService(catalog, interactions, nil)
	_, err := svc.Recommend(context.Background(), &models.RecommendationRequest{UserID: "u1", Budget: 100}, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRecommend_InteractionStoreErrorPropagates(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)
	boom := errors.New("timeout")

	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Item{makeItem(1, 50)}, nil)
	interactions.On("TopCategory", mock.Anything, "u1").Return(nil, boom)

	svc := services.NewRecommendationService(catalog, interactions, nil)
	_, err := svc.Recommend(context.Background(), &models.RecommendationRequest{UserID: "u1", Budget: 100}, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRecommend_NoHistoryDisablesLearningBoost(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)

	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Item{makeItem(1, 50, "gaming")}, nil)
	noHistory(interactions, "u1")

	svc := services.NewRecommendationService(catalog, interactions, nil)
	results, err := svc.Recommend(context.Background(), &models.RecommendationRequest{
		UserID: "u1", Budget: 100, Interests: []string{"gaming"},
	}, 10)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Breakdown.LearningBoost)
}

func TestRecommend_LearnedCategoryBoostsMatchingItems(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)

	electronics := makeItem(1, 50)
	books := makeItem(2, 50)
	books.Category = "Books"

	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Item{books, electronics}, nil)
	interactions.On("TopCategory", mock.Anything, "u1").
		Return(&models.LearnedCategory{Category: "Electronics", Count: 7}, nil)

	svc := services.NewRecommendationService(catalog, interactions, nil)
	results, err := svc.Recommend(context.Background(), &models.RecommendationRequest{UserID: "u1", Budget: 100}, 10)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, electronics.ID, results[0].Item.ID)
	assert.Equal(t, 15, results[0].Breakdown.LearningBoost)
	assert.Zero(t, results[1].Breakdown.LearningBoost)
}

func TestRecommend_SortsByScoreThenIDAndTruncates(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)

	// Item 3 matches two interests, items 1 and 2 one each (tied), item 4 none.
	candidates := []*models.Item{
		makeItem(4, 10),
		makeItem(2, 10, "gaming"),
		makeItem(3, 10, "gaming", "books"),
		makeItem(1, 10, "books"),
	}
	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return(candidates, nil)
	noHistory(interactions, "u1")

	svc := services.NewRecommendationService(catalog, interactions, nil)
	results, err := svc.Recommend(context.Background(), &models.RecommendationRequest{
		UserID: "u1", Budget: 100, Interests: []string{"gaming", "books"},
	}, 3)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, itemID(3), results[0].Item.ID)
	// Tied pair orders by ID string.
	assert.Equal(t, itemID(1), results[1].Item.ID)
	assert.Equal(t, itemID(2), results[2].Item.ID)
}

func TestRecommend_DefaultsToTenResults(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)

	candidates := make([]*models.Item, 0, 15)
	for i := 1; i <= 15; i++ {
		candidates = append(candidates, makeItem(i, 10))
	}
	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return(candidates, nil)
	noHistory(interactions, "u1")

	svc := services.NewRecommendationService(catalog, interactions, nil)
	results, err := svc.Recommend(context.Background(), &models.RecommendationRequest{UserID: "u1", Budget: 100}, 0)

	require.NoError(t, err)
	assert.Len(t, results, 10)
}

func TestRecommend_EnrichesOnlyTopFive(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)

	candidates := make([]*models.Item, 0, 8)
	responses := make(map[uuid.UUID]string)
	for i := 1; i <= 8; i++ {
		candidates = append(candidates, makeItem(i, 10))
		responses[itemID(i)] = fmt.Sprintf("Explanation %d.", i)
	}
	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return(candidates, nil)
	noHistory(interactions, "u1")

	enricher := &stubEnricher{enabled: true, responses: responses}
	fanout := services.NewEnrichmentFanout(enricher, time.Second)

	svc := services.NewRecommendationService(catalog, interactions, fanout)
	results, err := svc.Recommend(context.Background(), &models.RecommendationRequest{UserID: "u1", Budget: 100}, 8)

	require.NoError(t, err)
	require.Len(t, results, 8)
	assert.Equal(t, 5, enricher.callCount())
	for i, scored := range results {
		if i < 5 {
			require.NotNil(t, scored.Enrichment, "position %d should be enriched", i)
			assert.Equal(t, responses[scored.Item.ID], *scored.Enrichment)
		} else {
			assert.Nil(t, scored.Enrichment, "position %d should not be enriched", i)
		}
	}
}

func TestRecommend_EnrichmentFailuresDoNotAffectResults(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)

	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Item{makeItem(1, 10), makeItem(2, 10)}, nil)
	noHistory(interactions, "u1")

	enricher := &stubEnricher{
		enabled:   true,
		responses: map[uuid.UUID]string{itemID(2): "Still fine."},
		failures:  map[uuid.UUID]error{itemID(1): errors.New("model unavailable")},
	}
	fanout := services.NewEnrichmentFanout(enricher, time.Second)

	svc := services.NewRecommendationService(catalog, interactions, fanout)
	results, err := svc.Recommend(context.Background(), &models.RecommendationRequest{UserID: "u1", Budget: 100}, 10)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Nil(t, results[0].Enrichment)
	require.NotNil(t, results[1].Enrichment)
	assert.Equal(t, "Still fine.", *results[1].Enrichment)
}

func TestRecommend_DisabledEnricherSkipsGeneration(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)

	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Item{makeItem(1, 10)}, nil)
	noHistory(interactions, "u1")

	enricher := &stubEnricher{enabled: false}
	fanout := services.NewEnrichmentFanout(enricher, time.Second)

	svc := services.NewRecommendationService(catalog, interactions, fanout)
	results, err := svc.Recommend(context.Background(), &models.RecommendationRequest{UserID: "u1", Budget: 100}, 10)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].Enrichment)
	assert.Zero(t, enricher.callCount())
}

func TestRecommend_EveryResultCarriesJustification(t *testing.T) {
	catalog := new(mockCatalogStore)
	interactions := new(mockInteractionStore)

	catalog.On("FetchCandidates", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Item{makeItem(1, 10, "gaming"), makeItem(2, 10)}, nil)
	noHistory(interactions, "u1")

	svc := services.NewRecommendationService(catalog, interactions, nil)
	results, err := svc.Recommend(context.Background(), &models.RecommendationRequest{
		UserID: "u1", Budget: 100, Interests: []string{"gaming"},
	}, 10)

	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, scored := range results {
		assert.NotEmpty(t, scored.Justification)
		assert.Equal(t, scored.Breakdown.Total(), scored.TotalScore)
	}
}
