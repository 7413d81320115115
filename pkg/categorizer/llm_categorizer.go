package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"giftwise/internal/costtracker"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// DefaultPrompt asks for a strict JSON object so the response can be
// unmarshalled without scraping.
const DefaultPrompt = `You classify gift catalog items. Given the item below, respond with ONLY a JSON object of the form {"category": string, "tags": [string], "confidence": number}. Category is a single broad retail category such as Electronics, Books, Home, Fashion, Toys, Sports or Beauty. Tags are 3-6 short lowercase keywords a shopper might search for. Confidence is between 0 and 1.

Title: {{TITLE}}
Description: {{DESCRIPTION}}
Existing tags: {{EXISTING_TAGS}}`

type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMCategorizer implements ItemCategorizer on an OpenAI-compatible chat
// completion API.
type LLMCategorizer struct {
	client         completionClient
	model          string
	promptTemplate string

	costTracker costtracker.CostTracker
	pricing     map[string]costtracker.Pricing
}

// NewLLMCategorizer builds a categorizer. costTracker and pricing are
// optional; without them calls are not metered.
func NewLLMCategorizer(client completionClient, model, prompt string, costTracker costtracker.CostTracker, pricing map[string]costtracker.Pricing) *LLMCategorizer {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &LLMCategorizer{
		client:         client,
		model:          model,
		promptTemplate: prompt,
		costTracker:    costTracker,
		pricing:        pricing,
	}
}

func (c *LLMCategorizer) Categorize(ctx context.Context, req CategorizationRequest) (CategorizationResult, error) {
	if c.client == nil {
		return CategorizationResult{}, fmt.Errorf("categorizer has no completion client")
	}

	prompt := c.promptTemplate
	prompt = strings.ReplaceAll(prompt, "{{TITLE}}", req.Title)
	prompt = strings.ReplaceAll(prompt, "{{DESCRIPTION}}", req.Description)
	prompt = strings.ReplaceAll(prompt, "{{EXISTING_TAGS}}", strings.Join(req.ExistingTags, ", "))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return CategorizationResult{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return CategorizationResult{}, fmt.Errorf("no choices returned from completion API")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	var parsed struct {
		Category   string   `json:"category"`
		Tags       []string `json:"tags"`
		Confidence float64  `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return CategorizationResult{}, fmt.Errorf("parse categorization response: %w (content: %s)", err, content)
	}
	if parsed.Category == "" {
		return CategorizationResult{}, fmt.Errorf("categorization response has no category (content: %s)", content)
	}
	if parsed.Confidence == 0 {
		parsed.Confidence = 1.0
	}

	c.recordCost(ctx, req.Title, resp.Usage)

	return CategorizationResult{
		SuggestedCategory: parsed.Category,
		SuggestedTags:     parsed.Tags,
		Confidence:        parsed.Confidence,
	}, nil
}

func (c *LLMCategorizer) recordCost(ctx context.Context, title string, usage openai.Usage) {
	if c.costTracker == nil || usage.TotalTokens == 0 {
		return
	}
	price, ok := c.pricing[c.model]
	if !ok {
		log.Warnf("No pricing configured for model %q; categorization cost not recorded.", c.model)
		return
	}

	cost := float64(usage.PromptTokens)*price.InputPerToken +
		float64(usage.CompletionTokens)*price.OutputPerToken
	event := costtracker.CostEvent{
		Operation: "categorization",
		Model:     c.model,
		AmountUSD: cost,
		Details: map[string]interface{}{
			"input_tokens":  usage.PromptTokens,
			"output_tokens": usage.CompletionTokens,
			"title":         title,
		},
	}
	if err := c.costTracker.RecordCost(ctx, event); err != nil {
		log.Errorf("Failed to record categorization cost: %v", err)
	}
}

var _ ItemCategorizer = (*LLMCategorizer)(nil)
