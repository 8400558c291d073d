package ai

import "context"

// Variant names a model configuration of the completion service,
// e.g. "gemini-1.5-flash" or "tunedModels/emails-tsko9gc7g2qk".
type Variant string

// FinishReason mirrors the upstream finish-reason codes.
type FinishReason int

const (
	FinishReasonUnspecified FinishReason = 0
	FinishReasonStop        FinishReason = 1
	FinishReasonMaxTokens   FinishReason = 2
	// FinishReasonSafety is the block sentinel: the candidate was withheld.
	FinishReasonSafety     FinishReason = 3
	FinishReasonRecitation FinishReason = 4
	FinishReasonOther      FinishReason = 5
)

type Candidate struct {
	Text         string
	FinishReason FinishReason
}

type GenerationConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

type SafetySetting struct {
	Category  string
	Threshold string
}

// Generator is the external completion capability, one attempt per call.
type Generator interface {
	Generate(
		ctx context.Context,
		variant Variant,
		prompt string,
		gen GenerationConfig,
		safety []SafetySetting,
	) ([]Candidate, error)
}

// Result of a single completion. Blocked results carry BlockedReply as Text.
type Result struct {
	Text    string
	Blocked bool
}

// Completer is what the chat pipeline depends on.
type Completer interface {
	Invoke(ctx context.Context, prompt string, variant Variant) (Result, error)
}
