package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/securesense-bridge/internal/logging"
	"github.com/Vovarama1992/securesense-bridge/internal/metrics"
)

const BlockedReply = "Please refrain from asking irrelevant questions"

const logClip = 180

var (
	ErrNoCandidates = errors.New("ai: completion returned no candidates")
	ErrEmptyText    = errors.New("ai: candidate has no text")
)

// DefaultGenerationConfig is applied to every variant.
var DefaultGenerationConfig = GenerationConfig{
	Temperature:     0,
	TopP:            0.95,
	TopK:            64,
	MaxOutputTokens: 8192,
}

var DefaultSafetySettings = []SafetySetting{
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

// Invoker normalizes prompts and interprets the block sentinel on top of a Generator.
type Invoker struct {
	gen     Generator
	metrics *metrics.Metrics
}

var _ Completer = (*Invoker)(nil)

func NewInvoker(gen Generator, m *metrics.Metrics) *Invoker {
	return &Invoker{gen: gen, metrics: m}
}

func (i *Invoker) Invoke(ctx context.Context, prompt string, variant Variant) (Result, error) {
	log := zerolog.Ctx(ctx)

	// Every prompt goes upstream lower-cased.
	prompt = strings.TrimSpace(strings.ToLower(prompt))

	log.Debug().Str("model", string(variant)).Str("prompt", prompt).Msg("[ai] invoke")

	candidates, err := i.gen.Generate(ctx, variant, prompt, DefaultGenerationConfig, DefaultSafetySettings)
	if err != nil {
		i.metrics.Completion(string(variant), "error")
		return Result{}, fmt.Errorf("invoke %s: %w", variant, err)
	}
	if len(candidates) == 0 {
		i.metrics.Completion(string(variant), "error")
		return Result{}, fmt.Errorf("invoke %s: %w", variant, ErrNoCandidates)
	}

	first := candidates[0]
	if first.FinishReason == FinishReasonSafety {
		i.metrics.Completion(string(variant), "blocked")
		i.metrics.CompletionBlocked(string(variant))
		log.Info().Str("model", string(variant)).Msg("[ai] completion blocked")
		return Result{Text: BlockedReply, Blocked: true}, nil
	}

	if first.Text == "" {
		i.metrics.Completion(string(variant), "error")
		return Result{}, fmt.Errorf("invoke %s: %w (finish reason %d)", variant, ErrEmptyText, first.FinishReason)
	}

	i.metrics.Completion(string(variant), "ok")
	log.Debug().Str("model", string(variant)).Str("text", logging.Clip(first.Text, logClip)).Msg("[ai] completion")
	return Result{Text: first.Text}, nil
}
