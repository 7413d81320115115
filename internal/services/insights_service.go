package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"giftwise/internal/models"
	"giftwise/internal/store"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	insightsEventLimit   = 100
	topCategoryLimit     = 5
	topTagLimit          = 10
	explanationTagSample = 3
)

// InsightsService summarizes a user's interaction history into the top
// categories and tags driving the learning boost, plus a human-readable
// explanation of how that history biases ranking.
type InsightsService struct {
	interactions store.InteractionStore
	catalog      store.CatalogStore
}

func NewInsightsService(interactions store.InteractionStore, catalog store.CatalogStore) *InsightsService {
	return &InsightsService{interactions: interactions, catalog: catalog}
}

// Summarize aggregates up to the 100 most recent events for the user. A
// user with no history gets a zeroed summary with a generic explanation,
// not an error. Store failures propagate.
func (s *InsightsService) Summarize(ctx context.Context, userID string) (*models.InsightsSummary, error) {
	events, err := s.interactions.ListUserEvents(ctx, userID, insightsEventLimit)
	if err != nil {
		return nil, fmt.Errorf("list interaction events: %w", err)
	}

	summary := &models.InsightsSummary{
		UserID:        userID,
		TopCategories: []models.CategoryCount{},
		TopTags:       []models.TagCount{},
		TotalEvents:   len(events),
	}
	if len(events) == 0 {
		summary.Explanation = "No interaction history yet. Recommendations are ranked on your stated preferences alone."
		return summary, nil
	}

	items, err := s.resolveItems(ctx, events)
	if err != nil {
		return nil, err
	}

	// Tally per event occurrence, not per distinct item: interacting with
	// the same item twice counts its category and tags twice.
	categoryCounts := make(map[string]int)
	tagCounts := make(map[string]int)
	for _, event := range events {
		item, ok := items[event.ItemID]
		if !ok {
			log.Warnf("Interaction event %s references item %s missing from catalog", event.ID, event.ItemID)
			continue
		}
		categoryCounts[item.Category]++
		for _, tag := range item.Tags {
			tagCounts[tag]++
		}
	}

	summary.TopCategories = topCategories(categoryCounts, topCategoryLimit)
	summary.TopTags = topTags(tagCounts, topTagLimit)
	if len(summary.TopCategories) == 0 {
		// Every event pointed at an item no longer in the catalog.
		summary.Explanation = "No interaction history yet. Recommendations are ranked on your stated preferences alone."
		return summary, nil
	}
	summary.Explanation = buildInsightsExplanation(summary, len(categoryCounts))
	return summary, nil
}

// resolveItems fetches the distinct items referenced by the events, keyed
// by item ID.
func (s *InsightsService) resolveItems(ctx context.Context, events []*models.InteractionEvent) (map[uuid.UUID]*models.Item, error) {
	distinct := make(map[uuid.UUID]struct{}, len(events))
	ids := make([]uuid.UUID, 0, len(events))
	for _, event := range events {
		if _, seen := distinct[event.ItemID]; seen {
			continue
		}
		distinct[event.ItemID] = struct{}{}
		ids = append(ids, event.ItemID)
	}

	items, err := s.catalog.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch interacted items: %w", err)
	}

	byID := make(map[uuid.UUID]*models.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID, nil
}

func topCategories(counts map[string]int, limit int) []models.CategoryCount {
	ranked := make([]models.CategoryCount, 0, len(counts))
	for category, count := range counts {
		ranked = append(ranked, models.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func topTags(counts map[string]int, limit int) []models.TagCount {
	ranked := make([]models.TagCount, 0, len(counts))
	for tag, count := range counts {
		ranked = append(ranked, models.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Tag < ranked[j].Tag
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// buildInsightsExplanation renders the templated description of how the
// learning signal currently biases ranking.
func buildInsightsExplanation(summary *models.InsightsSummary, distinctCategories int) string {
	top := summary.TopCategories[0]

	sample := make([]string, 0, explanationTagSample)
	for _, tc := range summary.TopTags {
		if len(sample) == explanationTagSample {
			break
		}
		sample = append(sample, tc.Tag)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Items in the %s category currently receive a +%d learning boost based on %d interactions.",
		top.Category, learningBoostPoints, top.Count)
	fmt.Fprintf(&sb, " Your history spans %d categories", distinctCategories)
	if len(sample) > 0 {
		fmt.Fprintf(&sb, " and leans toward %s", strings.Join(sample, ", "))
	}
	fmt.Fprintf(&sb, ", across %d recorded interactions.", summary.TotalEvents)
	return sb.String()
}
