package services

import (
	"strings"

	"giftwise/internal/models"
)

// Point values for the five scoring components.
const (
	interestMatchPoints     = 10
	budgetMatchPoints       = 5
	occasionMatchPoints     = 5
	relationshipMatchPoints = 5
	learningBoostPoints     = 15
)

// budgetSweetSpotLow/High bound the price-to-budget ratio that earns the
// budget-optimization points. Both ends are inclusive.
const (
	budgetSweetSpotLow  = 80.0
	budgetSweetSpotHigh = 100.0
)

// occasionKeywords maps a known occasion label to the keywords searched for
// in an item's title and description. An unrecognized occasion falls back to
// the occasion string itself as its sole keyword.
var occasionKeywords = map[string][]string{
	"birthday":     {"birthday", "celebration", "party"},
	"anniversary":  {"anniversary", "romantic", "couple"},
	"wedding":      {"wedding", "marriage", "couple"},
	"graduation":   {"graduation", "achievement", "career"},
	"christmas":    {"christmas", "holiday", "festive"},
	"valentines":   {"valentine", "romantic", "love"},
	"mothers-day":  {"mother", "mom", "mum"},
	"fathers-day":  {"father", "dad"},
	"housewarming": {"home", "house", "kitchen"},
	"baby":         {"baby", "newborn", "infant"},
}

// relationshipCategories maps a recipient relationship to the item
// categories considered a fit. Category membership is case-sensitive
// against the labels as stored.
var relationshipCategories = map[models.Relationship][]string{
	models.RelationshipFriend:    {"Electronics", "Toys", "Books", "Food", "Sports"},
	models.RelationshipPartner:   {"Jewelry", "Beauty", "Home", "Fashion", "Food"},
	models.RelationshipParent:    {"Home", "Garden", "Books", "Food", "Beauty"},
	models.RelationshipSibling:   {"Electronics", "Toys", "Fashion", "Books", "Sports"},
	models.RelationshipColleague: {"Office", "Food", "Books", "Home"},
	models.RelationshipChild:     {"Toys", "Books", "Electronics", "Art", "Sports"},
	models.RelationshipOther:     {},
}

// ScoreItem computes the score breakdown for one item against one request
// and the resolved learned category (nil when the user has no history).
// It is a pure function: deterministic, no side effects.
func ScoreItem(item *models.Item, req *models.RecommendationRequest, learned *models.LearnedCategory) models.ScoreBreakdown {
	breakdown := models.ScoreBreakdown{}

	// Interest match: each tag that substring-matches any interest (in
	// either direction, case-insensitive) earns points once, no matter
	// how many interests it matches.
	for _, tag := range item.Tags {
		if tagMatchesAnyInterest(tag, req.Interests) {
			breakdown.InterestMatch += interestMatchPoints
		}
	}

	// Budget optimization: reward items landing in the 80-100% band of
	// the budget. A zero budget never awards; the division is guarded.
	if req.Budget > 0 {
		pct := item.Price / req.Budget * 100
		if pct >= budgetSweetSpotLow && pct <= budgetSweetSpotHigh {
			breakdown.BudgetOptimization = budgetMatchPoints
		}
	}

	if req.Occasion != nil && occasionMatches(item, *req.Occasion) {
		breakdown.OccasionMatch = occasionMatchPoints
	}

	if req.Relationship != nil {
		for _, category := range relationshipCategories[*req.Relationship] {
			if item.Category == category {
				breakdown.RelationshipMatch = relationshipMatchPoints
				break
			}
		}
	}

	if learned != nil && learned.Category == item.Category {
		breakdown.LearningBoost = learningBoostPoints
	}

	return breakdown
}

// tagMatchesAnyInterest reports whether the tag and any interest contain
// each other case-insensitively, in either direction.
func tagMatchesAnyInterest(tag string, interests []string) bool {
	loweredTag := strings.ToLower(tag)
	for _, interest := range interests {
		loweredInterest := strings.ToLower(interest)
		if loweredInterest == "" {
			continue
		}
		if strings.Contains(loweredTag, loweredInterest) || strings.Contains(loweredInterest, loweredTag) {
			return true
		}
	}
	return false
}

// matchedInterests returns the interests that substring-match at least one
// of the item's tags, in request order. Used by the justification and
// enrichment text paths.
func matchedInterests(item *models.Item, interests []string) []string {
	matched := make([]string, 0, len(interests))
	for _, interest := range interests {
		loweredInterest := strings.ToLower(interest)
		if loweredInterest == "" {
			continue
		}
		for _, tag := range item.Tags {
			loweredTag := strings.ToLower(tag)
			if strings.Contains(loweredTag, loweredInterest) || strings.Contains(loweredInterest, loweredTag) {
				matched = append(matched, interest)
				break
			}
		}
	}
	return matched
}

// occasionMatches reports whether any keyword for the occasion appears in
// the item's title or description, case-insensitively.
func occasionMatches(item *models.Item, occasion string) bool {
	keywords, ok := occasionKeywords[strings.ToLower(occasion)]
	if !ok {
		keywords = []string{occasion}
	}
	haystack := strings.ToLower(item.Title + " " + item.Description)
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
