package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to an OpenAI-compatible chat completions endpoint,
// by default Gemini's compatibility layer. TopK and safety settings have no
// equivalent in that API and are not sent.
type OpenAIClient struct {
	client *openai.Client
}

var _ Generator = (*OpenAIClient)(nil)

func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai: api key required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}, nil
}

func (c *OpenAIClient) Generate(
	ctx context.Context,
	variant Variant,
	prompt string,
	gen GenerationConfig,
	_ []SafetySetting,
) ([]Candidate, error) {

	// go-openai drops a zero temperature from the payload (omitempty).
	temperature := gen.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: string(variant),
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		Temperature: temperature,
		TopP:        gen.TopP,
		MaxTokens:   int(gen.MaxOutputTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	out := make([]Candidate, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		out = append(out, Candidate{
			Text:         choice.Message.Content,
			FinishReason: parseOpenAIFinishReason(choice.FinishReason),
		})
	}
	return out, nil
}

func parseOpenAIFinishReason(r openai.FinishReason) FinishReason {
	switch r {
	case "", openai.FinishReasonNull:
		return FinishReasonUnspecified
	case openai.FinishReasonStop:
		return FinishReasonStop
	case openai.FinishReasonLength:
		return FinishReasonMaxTokens
	case openai.FinishReasonContentFilter:
		return FinishReasonSafety
	default:
		return FinishReasonOther
	}
}
