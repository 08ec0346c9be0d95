package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
)

// assistVote is the structured answer we ask the model for.
type assistVote struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// AssistClassifier runs the rule classifier first and only consults OpenAI
// when the rules come back unknown. The model may vote for one of the known
// intents but its confidence is clamped below every rule weight, and any
// API or parse failure falls back to the rule result. With no client
// configured it behaves exactly like the rules alone.
type AssistClassifier struct {
	rules       *RuleClassifier
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

const (
	assistMinConfidence = 0.30
	assistMaxConfidence = 0.70
)

func NewAssistClassifier(rules *RuleClassifier, apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *AssistClassifier {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &AssistClassifier{
		rules:       rules,
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (c *AssistClassifier) Classify(text string) (models.Intent, float64) {
	intent, confidence := c.rules.Classify(text)
	if intent != models.IntentUnknown || c.client == nil || strings.TrimSpace(text) == "" {
		return intent, confidence
	}

	ctx := context.Background()

	prompt := fmt.Sprintf(`You route customer messages for a coffee chain's support bot.
Pick the single best intent for the message from this list:
greeting, product_query, price_query, outlet_query, calculation, thanks, farewell, off_topic

Return a JSON object with this structure:
{"intent": "one_of_the_list", "confidence": 0.0}

Message: %s`, text)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)
	if err != nil {
		c.logger.Warn("assist classification failed, keeping rule result", zap.Error(err))
		return intent, confidence
	}
	if len(resp.Choices) == 0 {
		return intent, confidence
	}

	var vote assistVote
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(answer), &vote); err != nil {
		c.logger.Warn("assist vote is not valid JSON, keeping rule result",
			zap.Error(err),
			zap.String("response", answer))
		return intent, confidence
	}

	voted := models.Intent(strings.ToLower(strings.TrimSpace(vote.Intent)))
	if !voted.Valid() || voted == models.IntentUnknown {
		return intent, confidence
	}

	clamped := vote.Confidence
	if clamped < assistMinConfidence {
		clamped = assistMinConfidence
	}
	if clamped > assistMaxConfidence {
		clamped = assistMaxConfidence
	}
	return voted, clamped
}
