package services

import (
	"context"
	"fmt"
	"strings"

	"giftwise/internal/models"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// GeminiEnricher generates gift explanations through the Google Gemini API.
type GeminiEnricher struct {
	client       *genai.Client
	model        string
	maxTokens    int
	maxSentences int
}

// NewGeminiEnricher creates a Gemini-backed enricher. A missing API key
// yields a disabled provider rather than an error.
func NewGeminiEnricher(apiKey, model string, maxTokens, maxSentences int) (*GeminiEnricher, error) {
	if apiKey == "" {
		log.Warn("Gemini API key not provided for enrichment. Provider will be disabled.")
		return &GeminiEnricher{}, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	log.Infof("Gemini enrichment provider initialized (model %s)", model)

	return &GeminiEnricher{
		client:       client,
		model:        model,
		maxTokens:    maxTokens,
		maxSentences: maxSentences,
	}, nil
}

func (e *GeminiEnricher) Name() string { return "gemini" }

func (e *GeminiEnricher) Enabled() bool { return e.client != nil }

func (e *GeminiEnricher) GenerateExplanation(ctx context.Context, item *models.Item, req *models.RecommendationRequest, breakdown models.ScoreBreakdown) (string, error) {
	if e.client == nil {
		return "", fmt.Errorf("gemini enricher is not initialized (missing API key)")
	}

	model := e.client.GenerativeModel(e.model)
	model.SetMaxOutputTokens(int32(e.maxTokens))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(enrichmentSystemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(buildEnrichmentPrompt(item, req, breakdown)))
	if err != nil {
		return "", fmt.Errorf("gemini generation: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini response contained no text parts")
	}

	return truncateSentences(sb.String(), e.maxSentences), nil
}

// Close cleans up the Gemini client resources.
func (e *GeminiEnricher) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

var _ Enricher = (*GeminiEnricher)(nil)
