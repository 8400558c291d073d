package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls generateContent on the Generative Language REST API.
type GeminiClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Generator = (*GeminiClient)(nil)

type GeminiOptions struct {
	BaseURL string
	// APIKey is sent as x-goog-api-key. Leave empty when HTTPClient
	// already carries OAuth2 credentials.
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func NewGeminiClient(opts GeminiOptions) (*GeminiClient, error) {
	if opts.APIKey == "" && opts.HTTPClient == nil {
		return nil, errors.New("gemini: api key or authenticated http client required")
	}

	base := strings.TrimSuffix(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = defaultGeminiBaseURL
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &GeminiClient{
		baseURL: base,
		apiKey:  opts.APIKey,
		client:  client,
	}, nil
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

func (c geminiContent) Text() string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"topP"`
	TopK            int32   `json:"topK"`
	MaxOutputTokens int32   `json:"maxOutputTokens"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiGenerateRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting  `json:"safetySettings,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiGenerateResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *GeminiClient) Generate(
	ctx context.Context,
	variant Variant,
	prompt string,
	gen GenerationConfig,
	safety []SafetySetting,
) ([]Candidate, error) {

	payload := geminiGenerateRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     gen.Temperature,
			TopP:            gen.TopP,
			TopK:            gen.TopK,
			MaxOutputTokens: gen.MaxOutputTokens,
		},
	}
	for _, s := range safety {
		payload.SafetySettings = append(payload.SafetySettings, geminiSafetySetting{
			Category:  s.Category,
			Threshold: s.Threshold,
		})
	}

	var resp geminiGenerateResponse
	if err := c.send(ctx, c.baseURL+"/v1beta/"+modelPath(variant)+":generateContent", payload, &resp); err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		out = append(out, Candidate{
			Text:         cand.Content.Text(),
			FinishReason: parseGeminiFinishReason(cand.FinishReason),
		})
	}
	return out, nil
}

func (c *GeminiClient) send(ctx context.Context, url string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("gemini: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeGeminiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gemini: decode response: %w", err)
	}
	return nil
}

func decodeGeminiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr geminiAPIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("gemini api error %d (%s): %s", apiErr.Error.Code, apiErr.Error.Status, apiErr.Error.Message)
	}
	return fmt.Errorf("gemini api error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// modelPath accepts bare model ids as well as "models/..." and "tunedModels/..." names.
func modelPath(v Variant) string {
	name := strings.TrimPrefix(string(v), "/")
	if strings.Contains(name, "/") {
		return name
	}
	return "models/" + name
}

func parseGeminiFinishReason(s string) FinishReason {
	switch strings.ToUpper(s) {
	case "", "FINISH_REASON_UNSPECIFIED":
		return FinishReasonUnspecified
	case "STOP":
		return FinishReasonStop
	case "MAX_TOKENS":
		return FinishReasonMaxTokens
	case "SAFETY":
		return FinishReasonSafety
	case "RECITATION":
		return FinishReasonRecitation
	default:
		return FinishReasonOther
	}
}
