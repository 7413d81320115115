package apihandlers

import (
	"fmt"
	"strings"

	"giftwise/internal/models"
)

// RecommendationRequestBody is the wire form of a ranking request. Age is
// the legacy field name; RecipientAge wins when both are present. The
// precedence is applied here, once, before the core ever sees the request.
type RecommendationRequestBody struct {
	UserID       string   `json:"user_id" binding:"required"`
	Budget       float64  `json:"budget"`
	Interests    []string `json:"interests" binding:"required"`
	RecipientAge *int     `json:"recipient_age"`
	Age          *int     `json:"age"`
	Occasion     *string  `json:"occasion"`
	Relationship *string  `json:"relationship"`
	Count        int      `json:"count"`
}

// ToRequest validates the body and collapses it into the canonical core
// request.
func (b *RecommendationRequestBody) ToRequest() (*models.RecommendationRequest, error) {
	if strings.TrimSpace(b.UserID) == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if b.Budget < 0 {
		return nil, fmt.Errorf("budget cannot be negative")
	}

	interests := make([]string, 0, len(b.Interests))
	for _, interest := range b.Interests {
		if trimmed := strings.TrimSpace(interest); trimmed != "" {
			interests = append(interests, trimmed)
		}
	}
	if len(interests) == 0 {
		return nil, fmt.Errorf("at least one non-empty interest is required")
	}

	age := b.RecipientAge
	if age == nil {
		age = b.Age
	}
	if age != nil && (*age < 0 || *age > 150) {
		return nil, fmt.Errorf("recipient_age is out of range")
	}

	var occasion *string
	if b.Occasion != nil {
		if trimmed := strings.TrimSpace(*b.Occasion); trimmed != "" {
			occasion = &trimmed
		}
	}

	var relationship *models.Relationship
	if b.Relationship != nil && strings.TrimSpace(*b.Relationship) != "" {
		rel := models.Relationship(strings.ToLower(strings.TrimSpace(*b.Relationship)))
		if !rel.Valid() {
			return nil, fmt.Errorf("unknown relationship %q", *b.Relationship)
		}
		relationship = &rel
	}

	return &models.RecommendationRequest{
		UserID:       strings.TrimSpace(b.UserID),
		Budget:       b.Budget,
		Interests:    interests,
		RecipientAge: age,
		Occasion:     occasion,
		Relationship: relationship,
	}, nil
}

// AddItemRequestBody is the wire form of a catalog item submission.
type AddItemRequestBody struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category" binding:"required"`
	Tags        []string `json:"tags"`
	Retailer    string   `json:"retailer"`
	Brand       string   `json:"brand"`
}

// RecordEventRequestBody is the wire form of an interaction event.
type RecordEventRequestBody struct {
	UserID string `json:"user_id" binding:"required"`
	ItemID string `json:"item_id" binding:"required"`
	Kind   string `json:"kind" binding:"required"`
	Async  bool   `json:"async"`
}
