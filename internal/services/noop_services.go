package services

import (
	"context"

	"giftwise/internal/models"
)

// NoopEnricher is the null-object Enricher used when text generation is not
// configured. The fan-out sees Enabled() == false and never calls it.
type NoopEnricher struct{}

func NewNoopEnricher() Enricher {
	return &NoopEnricher{}
}

func (e *NoopEnricher) Name() string { return "noop" }

func (e *NoopEnricher) Enabled() bool { return false }

func (e *NoopEnricher) GenerateExplanation(ctx context.Context, item *models.Item, req *models.RecommendationRequest, breakdown models.ScoreBreakdown) (string, error) {
	return "", nil
}
