package chat

import (
	"context"
	"errors"
)

var ErrNoMessage = errors.New("no message provided")

// Request is one stateless chat turn.
type Request struct {
	Message string
	// TopicLabel is the trimmed label as sent by the client; it is echoed
	// into prompts even when it does not name a known topic.
	TopicLabel string
}

// Response is the payload of POST /api/chat.
type Response struct {
	TunedResponse  string  `json:"tuned_response"`
	FlashReasoning *string `json:"flash_reasoning"`
}

// Classification is the outcome of the two-stage pipeline.
type Classification struct {
	// Verdict is the classifier text exactly as returned.
	Verdict string
	// Assessment is Verdict wrapped in the topic's sentence template.
	Assessment string
	// Reasoning is the explainer text with markup stripped.
	Reasoning string
	Blocked   bool
}

// Service — topic dispatch.
type Service interface {
	Respond(ctx context.Context, req Request) (Response, error)
}
