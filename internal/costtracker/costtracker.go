package costtracker

import (
	"context"
	"sync"
)

// CostEvent is one billable model call and its computed cost.
type CostEvent struct {
	Operation string // "enrichment" or "categorization"
	Model     string
	AmountUSD float64
	Details   map[string]interface{}
}

// Pricing is the per-token price of a model.
type Pricing struct {
	InputPerToken  float64
	OutputPerToken float64
}

// CostTracker records per-call model spend so operators can see what the
// enrichment and categorization features cost.
type CostTracker interface {
	RecordCost(ctx context.Context, event CostEvent) error
	TotalCost(ctx context.Context) (float64, error)
}

// New returns an in-process tracker. Spend is not persisted across restarts.
func New() CostTracker {
	return &memoryCostTracker{}
}

type memoryCostTracker struct {
	mu     sync.Mutex
	total  float64
	events []CostEvent
}

func (m *memoryCostTracker) RecordCost(ctx context.Context, event CostEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total += event.AmountUSD
	m.events = append(m.events, event)
	return nil
}

func (m *memoryCostTracker) TotalCost(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total, nil
}
