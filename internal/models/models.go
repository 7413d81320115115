package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a single catalog entry. Retailer and Brand are display metadata
// and are never consulted by scoring.
type Item struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Category    string    `db:"category" json:"category"`
	Tags        []string  `db:"tags" json:"tags"`
	Retailer    string    `db:"retailer" json:"retailer,omitempty"`
	Brand       string    `db:"brand" json:"brand,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Relationship enumerates the recipient relationships a request may carry.
type Relationship string

const (
	RelationshipFriend    Relationship = "friend"
	RelationshipPartner   Relationship = "partner"
	RelationshipParent    Relationship = "parent"
	RelationshipSibling   Relationship = "sibling"
	RelationshipColleague Relationship = "colleague"
	RelationshipChild     Relationship = "child"
	RelationshipOther     Relationship = "other"
)

// Valid reports whether r is one of the known relationship labels.
func (r Relationship) Valid() bool {
	switch r {
	case RelationshipFriend, RelationshipPartner, RelationshipParent,
		RelationshipSibling, RelationshipColleague, RelationshipChild,
		RelationshipOther:
		return true
	}
	return false
}

// RecommendationRequest carries one caller's preferences. It is built at the
// transport boundary (already validated) and never persisted.
type RecommendationRequest struct {
	UserID       string
	Budget       float64
	Interests    []string
	RecipientAge *int
	Occasion     *string
	Relationship *Relationship
}

// ScoreBreakdown holds the five independent scoring components. Each is
// non-negative and the total is always their sum.
type ScoreBreakdown struct {
	InterestMatch      int `json:"interest_match"`
	BudgetOptimization int `json:"budget_optimization"`
	OccasionMatch      int `json:"occasion_match"`
	RelationshipMatch  int `json:"relationship_match"`
	LearningBoost      int `json:"learning_boost"`
}

// Total returns the sum of all components.
func (b ScoreBreakdown) Total() int {
	return b.InterestMatch + b.BudgetOptimization + b.OccasionMatch +
		b.RelationshipMatch + b.LearningBoost
}

// ScoredItem is an Item ranked against a request. Enrichment is nil unless
// the item was in the enriched head of the list and generation succeeded.
type ScoredItem struct {
	Item          Item           `json:"item"`
	Breakdown     ScoreBreakdown `json:"breakdown"`
	TotalScore    int            `json:"total_score"`
	Justification string         `json:"justification"`
	Enrichment    *string        `json:"enrichment,omitempty"`
}

// InteractionKind enumerates the recorded interaction types.
type InteractionKind string

const (
	InteractionViewed  InteractionKind = "viewed"
	InteractionClicked InteractionKind = "clicked"
	InteractionSaved   InteractionKind = "saved"
)

// Valid reports whether k is one of the known interaction kinds.
func (k InteractionKind) Valid() bool {
	switch k {
	case InteractionViewed, InteractionClicked, InteractionSaved:
		return true
	}
	return false
}

// InteractionEvent records that a user interacted with an item. Events are
// append-only: they are never mutated or deleted.
type InteractionEvent struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"user_id"`
	ItemID     uuid.UUID       `db:"item_id" json:"item_id"`
	Kind       InteractionKind `db:"kind" json:"kind"`
	OccurredAt time.Time       `db:"occurred_at" json:"occurred_at"`
}

// LearnedCategory is a user's single most-interacted item category. It is
// derived from interaction events per request, never stored.
type LearnedCategory struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryCount pairs a category with its interaction count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TagCount pairs a tag with its interaction count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// InsightsSummary describes how a user's interaction history currently
// biases ranking.
type InsightsSummary struct {
	UserID        string          `json:"user_id"`
	TopCategories []CategoryCount `json:"top_categories"`
	TopTags       []TagCount      `json:"top_tags"`
	Explanation   string          `json:"explanation"`
	TotalEvents   int             `json:"total_events"`
}
