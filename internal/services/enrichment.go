package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"giftwise/internal/models"

	"github.com/google/uuid"
	"github.com/neurosnap/sentences"
	log "github.com/sirupsen/logrus"
)

// Enricher is the text-generation capability. Enabled reports whether the
// capability is configured; when it is not, no generation is ever attempted.
type Enricher interface {
	Enabled() bool
	GenerateExplanation(ctx context.Context, item *models.Item, req *models.RecommendationRequest, breakdown models.ScoreBreakdown) (string, error)
	Name() string
}

// EnrichmentFanout issues concurrent, fail-soft generation calls for the
// head of a ranked list.
type EnrichmentFanout struct {
	enricher Enricher
	timeout  time.Duration
}

func NewEnrichmentFanout(enricher Enricher, timeout time.Duration) *EnrichmentFanout {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &EnrichmentFanout{enricher: enricher, timeout: timeout}
}

// EnrichItems requests one free-text explanation per scored item, all
// concurrently, and returns whatever succeeded keyed by item ID. A disabled
// enricher yields an empty map without any call being attempted. Individual
// failures are logged and dropped; they never affect sibling calls or the
// caller. Total latency is bounded by a single call's timeout, not the sum.
func (f *EnrichmentFanout) EnrichItems(ctx context.Context, items []models.ScoredItem, req *models.RecommendationRequest) map[uuid.UUID]string {
	results := make(map[uuid.UUID]string, len(items))
	if f.enricher == nil || !f.enricher.Enabled() || len(items) == 0 {
		return results
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i := range items {
		wg.Add(1)
		go func(scored models.ScoredItem) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()

			text, err := f.enricher.GenerateExplanation(callCtx, &scored.Item, req, scored.Breakdown)
			if err != nil {
				log.Warnf("Enrichment failed for item %s (provider %s): %v", scored.Item.ID, f.enricher.Name(), err)
				return
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return
			}
			mu.Lock()
			results[scored.Item.ID] = text
			mu.Unlock()
		}(items[i])
	}
	wg.Wait()

	return results
}

// buildEnrichmentPrompt renders the generation request payload: the item,
// the budget context, a plain-language restatement of which score components
// fired, and the contextual request fields.
func buildEnrichmentPrompt(item *models.Item, req *models.RecommendationRequest, breakdown models.ScoreBreakdown) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Gift: %s\n", item.Title)
	if item.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", item.Description)
	}
	fmt.Fprintf(&sb, "Price: $%.2f (budget $%.2f)\n", item.Price, req.Budget)

	var reasons []string
	if breakdown.InterestMatch > 0 {
		if matched := matchedInterests(item, req.Interests); len(matched) > 0 {
			reasons = append(reasons, fmt.Sprintf("it matches the interests %s", strings.Join(matched, ", ")))
		}
	}
	if breakdown.BudgetOptimization > 0 {
		reasons = append(reasons, "its price sits in the sweet spot of the budget")
	}
	if breakdown.OccasionMatch > 0 && req.Occasion != nil {
		reasons = append(reasons, fmt.Sprintf("it suits the occasion %s", *req.Occasion))
	}
	if breakdown.RelationshipMatch > 0 && req.Relationship != nil {
		reasons = append(reasons, fmt.Sprintf("its category fits a gift for a %s", *req.Relationship))
	}
	if breakdown.LearningBoost > 0 {
		reasons = append(reasons, "the recipient's interaction history favors this category")
	}
	if len(reasons) > 0 {
		fmt.Fprintf(&sb, "Why it ranked highly: %s.\n", strings.Join(reasons, "; "))
	}

	if req.RecipientAge != nil {
		fmt.Fprintf(&sb, "Recipient age: %d\n", *req.RecipientAge)
	}
	if req.Occasion != nil {
		fmt.Fprintf(&sb, "Occasion: %s\n", *req.Occasion)
	}
	if len(req.Interests) > 0 {
		fmt.Fprintf(&sb, "Stated interests: %s\n", strings.Join(req.Interests, ", "))
	}

	sb.WriteString("Write a warm 2-3 sentence explanation of why this gift would delight the recipient.")
	return sb.String()
}

// enrichmentSystemPrompt is the fixed instruction sent with every
// generation request.
const enrichmentSystemPrompt = "You are a thoughtful gift advisor. Explain briefly and concretely why a specific gift suits a specific recipient. Never invent product features."

// truncateSentences caps text to at most maxSentences sentences.
func truncateSentences(text string, maxSentences int) string {
	if maxSentences <= 0 {
		return text
	}
	tokenizer := sentences.NewSentenceTokenizer(nil)
	sents := tokenizer.Tokenize(text)
	if len(sents) <= maxSentences {
		return strings.TrimSpace(text)
	}
	kept := make([]string, 0, maxSentences)
	for _, s := range sents[:maxSentences] {
		kept = append(kept, strings.TrimSpace(s.Text))
	}
	return strings.Join(kept, " ")
}
