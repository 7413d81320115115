package apihandlers

import (
	"testing"

	"giftwise/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func validBody() *RecommendationRequestBody {
	return &RecommendationRequestBody{
		UserID:    "u1",
		Budget:    100,
		Interests: []string{"gaming"},
	}
}

func TestToRequest_RecipientAgeWinsOverLegacyAge(t *testing.T) {
	body := validBody()
	body.RecipientAge = intPtr(30)
	body.Age = intPtr(8)

	req, err := body.ToRequest()

	require.NoError(t, err)
	require.NotNil(t, req.RecipientAge)
	assert.Equal(t, 30, *req.RecipientAge)
}

func TestToRequest_LegacyAgeUsedWhenRecipientAgeAbsent(t *testing.T) {
	body := validBody()
	body.Age = intPtr(8)

	req, err := body.ToRequest()

	require.NoError(t, err)
	require.NotNil(t, req.RecipientAge)
	assert.Equal(t, 8, *req.RecipientAge)
}

func TestToRequest_AgeOutOfRange(t *testing.T) {
	for _, age := range []int{-1, 151} {
		body := validBody()
		body.RecipientAge = intPtr(age)
		_, err := body.ToRequest()
		assert.Error(t, err, "age %d should be rejected", age)
	}
}

func TestToRequest_RejectsMissingUserID(t *testing.T) {
	body := validBody()
	body.UserID = "   "

	_, err := body.ToRequest()
	assert.Error(t, err)
}

func TestToRequest_RejectsNegativeBudget(t *testing.T) {
	body := validBody()
	body.Budget = -1

	_, err := body.ToRequest()
	assert.Error(t, err)
}

func TestToRequest_TrimsInterestsAndDropsBlanks(t *testing.T) {
	body := validBody()
	body.Interests = []string{" gaming ", "", "  ", "books"}

	req, err := body.ToRequest()

	require.NoError(t, err)
	assert.Equal(t, []string{"gaming", "books"}, req.Interests)
}

func TestToRequest_RejectsAllBlankInterests(t *testing.T) {
	body := validBody()
	body.Interests = []string{"", "   "}

	_, err := body.ToRequest()
	assert.Error(t, err)
}

func TestToRequest_NormalizesRelationship(t *testing.T) {
	body := validBody()
	body.Relationship = strPtr(" Friend ")

	req, err := body.ToRequest()

	require.NoError(t, err)
	require.NotNil(t, req.Relationship)
	assert.Equal(t, models.RelationshipFriend, *req.Relationship)
}

func TestToRequest_RejectsUnknownRelationship(t *testing.T) {
	body := validBody()
	body.Relationship = strPtr("acquaintance")

	_, err := body.ToRequest()
	assert.Error(t, err)
}

func TestToRequest_BlankOccasionDropped(t *testing.T) {
	body := validBody()
	body.Occasion = strPtr("   ")

	req, err := body.ToRequest()

	require.NoError(t, err)
	assert.Nil(t, req.Occasion)
}
