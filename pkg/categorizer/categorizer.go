package categorizer

import "context"

// CategorizationRequest holds one catalog item's text plus any tags the
// feed already carried.
type CategorizationRequest struct {
	Title        string
	Description  string
	ExistingTags []string
}

// CategorizationResult holds the suggested catalog placement.
type CategorizationResult struct {
	SuggestedCategory string
	SuggestedTags     []string
	Confidence        float64
}

// ItemCategorizer assigns a category and tags to items whose feed entry
// lacks them.
type ItemCategorizer interface {
	Categorize(ctx context.Context, req CategorizationRequest) (CategorizationResult, error)
}
