package services

import (
	"context"
	"fmt"

	"giftwise/internal/models"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// OpenAIEnricher generates gift explanations through the OpenAI chat
// completion API. Constructed without an API key it is a disabled provider:
// Enabled() returns false and no call is ever made.
type OpenAIEnricher struct {
	client       *openai.Client
	model        string
	maxTokens    int
	maxSentences int
}

func NewOpenAIEnricher(apiKey, model string, maxTokens, maxSentences int) *OpenAIEnricher {
	if apiKey == "" {
		log.Warn("OpenAI API key not provided for enrichment. Provider will be disabled.")
		return &OpenAIEnricher{}
	}
	return &OpenAIEnricher{
		client:       openai.NewClient(apiKey),
		model:        model,
		maxTokens:    maxTokens,
		maxSentences: maxSentences,
	}
}

func (e *OpenAIEnricher) Name() string { return "openai" }

func (e *OpenAIEnricher) Enabled() bool { return e.client != nil }

func (e *OpenAIEnricher) GenerateExplanation(ctx context.Context, item *models.Item, req *models.RecommendationRequest, breakdown models.ScoreBreakdown) (string, error) {
	if e.client == nil {
		return "", fmt.Errorf("openai enricher is not initialized (missing API key)")
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: enrichmentSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildEnrichmentPrompt(item, req, breakdown),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return truncateSentences(resp.Choices[0].Message.Content, e.maxSentences), nil
}
