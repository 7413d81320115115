package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"giftwise/internal/models"
	"giftwise/internal/store"

	log "github.com/sirupsen/logrus"
)

const (
	// budgetFlexibility widens the hard price filter past the stated
	// budget. Items above budget*budgetFlexibility are never scored.
	budgetFlexibility = 1.15

	// candidateLimit caps the candidate set regardless of catalog size
	// or requested result count, keeping scoring cost bounded.
	candidateLimit = 100

	// enrichmentLimit caps how many top-ranked items get a generated
	// explanation, independent of the requested result count.
	enrichmentLimit = 5

	defaultResultCount = 10
)

// RecommendationService orchestrates the ranking pipeline: hard filter,
// candidate retrieval, scoring, justification, sorting, truncation and the
// enrichment fan-out.
type RecommendationService struct {
	catalog      store.CatalogStore
	interactions store.InteractionStore
	fanout       *EnrichmentFanout
}

func NewRecommendationService(catalog store.CatalogStore, interactions store.InteractionStore, fanout *EnrichmentFanout) *RecommendationService {
	return &RecommendationService{
		catalog:      catalog,
		interactions: interactions,
		fanout:       fanout,
	}
}

// Recommend ranks the catalog against the request and returns up to
// desiredCount scored items, best first. An empty candidate set (including
// a zero budget) yields an empty slice, not an error. Catalog or
// interaction store failures propagate to the caller.
func (s *RecommendationService) Recommend(ctx context.Context, req *models.RecommendationRequest, desiredCount int) ([]models.ScoredItem, error) {
	if desiredCount <= 0 {
		desiredCount = defaultResultCount
	}

	ceiling := req.Budget * budgetFlexibility
	candidates, err := s.catalog.FetchCandidates(ctx, ceiling, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	if len(candidates) == 0 {
		return []models.ScoredItem{}, nil
	}

	learned, err := s.resolveLearnedCategory(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	scored := make([]models.ScoredItem, 0, len(candidates))
	for _, item := range candidates {
		breakdown := ScoreItem(item, req, learned)
		scored = append(scored, models.ScoredItem{
			Item:          *item,
			Breakdown:     breakdown,
			TotalScore:    breakdown.Total(),
			Justification: BuildJustification(item, req, breakdown),
		})
	}

	// Equal totals tie-break on item ID so the ordering is deterministic
	// regardless of candidate retrieval order.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].TotalScore != scored[j].TotalScore {
			return scored[i].TotalScore > scored[j].TotalScore
		}
		return scored[i].Item.ID.String() < scored[j].Item.ID.String()
	})

	if len(scored) > desiredCount {
		scored = scored[:desiredCount]
	}

	s.attachEnrichments(ctx, scored, req)
	return scored, nil
}

// resolveLearnedCategory fetches the user's most-interacted category. A
// user with no history is valid: the learning boost is simply disabled.
func (s *RecommendationService) resolveLearnedCategory(ctx context.Context, userID string) (*models.LearnedCategory, error) {
	learned, err := s.interactions.TopCategory(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve learned category: %w", err)
	}
	log.Debugf("Learned category for user %s: %s (%d interactions)", userID, learned.Category, learned.Count)
	return learned, nil
}

// attachEnrichments runs the fan-out over the head of the ranked list and
// wires successful generations back onto the items. Enrichment is
// best-effort; nothing here can fail the request.
func (s *RecommendationService) attachEnrichments(ctx context.Context, scored []models.ScoredItem, req *models.RecommendationRequest) {
	if s.fanout == nil || len(scored) == 0 {
		return
	}
	head := len(scored)
	if head > enrichmentLimit {
		head = enrichmentLimit
	}
	enrichments := s.fanout.EnrichItems(ctx, scored[:head], req)
	for i := range scored[:head] {
		if text, ok := enrichments[scored[i].Item.ID]; ok {
			scored[i].Enrichment = &text
		}
	}
}
