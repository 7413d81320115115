package services

import (
	"fmt"
	"strings"

	"giftwise/internal/models"
)

// BuildJustification assembles the deterministic reason string for a scored
// item. This is pure text assembly; no model is involved.
func BuildJustification(item *models.Item, req *models.RecommendationRequest, breakdown models.ScoreBreakdown) string {
	clauses := justificationClauses(item, req, breakdown)
	if len(clauses) == 0 {
		return fmt.Sprintf("%s is a popular choice in the %s category.", item.Title, item.Category)
	}
	return fmt.Sprintf("%s is recommended because it %s.", item.Title, strings.Join(clauses, ", "))
}

// justificationClauses returns one clause per fired score component, in a
// fixed order.
func justificationClauses(item *models.Item, req *models.RecommendationRequest, breakdown models.ScoreBreakdown) []string {
	var clauses []string

	if breakdown.InterestMatch > 0 {
		if matched := matchedInterests(item, req.Interests); len(matched) > 0 {
			clauses = append(clauses, fmt.Sprintf("matches your interest in %s", strings.Join(matched, ", ")))
		}
	}
	if breakdown.BudgetOptimization > 0 {
		clauses = append(clauses, "is great value within budget")
	}
	if breakdown.OccasionMatch > 0 && req.Occasion != nil {
		clauses = append(clauses, fmt.Sprintf("is perfect for %s", *req.Occasion))
	}
	if breakdown.RelationshipMatch > 0 && req.Relationship != nil {
		clauses = append(clauses, fmt.Sprintf("is an ideal gift for a %s", *req.Relationship))
	}
	if breakdown.LearningBoost > 0 {
		clauses = append(clauses, "is based on your previous preferences")
	}

	return clauses
}
