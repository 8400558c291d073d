package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/securesense-bridge/internal/ai"
	"github.com/Vovarama1992/securesense-bridge/internal/audit"
	"github.com/Vovarama1992/securesense-bridge/internal/logging"
	"github.com/Vovarama1992/securesense-bridge/internal/metrics"
	"github.com/Vovarama1992/securesense-bridge/internal/middleware"
)

const logClip = 180

// Models names the variant used by each strategy.
type Models struct {
	EmailClassifier ai.Variant
	CallClassifier  ai.Variant
	// General answers advice requests and explains verdicts.
	General ai.Variant
	// Default serves unrecognized topics.
	Default ai.Variant
}

type service struct {
	ai       ai.Completer
	pipeline *Pipeline
	models   Models
	recorder audit.Recorder
	metrics  *metrics.Metrics
}

func NewService(aiClient ai.Completer, models Models, recorder audit.Recorder, m *metrics.Metrics) Service {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	if models.Default == "" {
		models.Default = models.General
	}
	return &service{
		ai:       aiClient,
		pipeline: NewPipeline(aiClient),
		models:   models,
		recorder: recorder,
		metrics:  m,
	}
}

func (s *service) Respond(ctx context.Context, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	label := strings.TrimSpace(req.TopicLabel)
	topic := ParseTopic(label)

	if message == "" {
		s.metrics.ChatRequest(topic.String(), "rejected")
		return Response{}, ErrNoMessage
	}

	log := zerolog.Ctx(ctx)
	log.Debug().Str("topic", label).Str("message", logging.Clip(message, logClip)).Msg("[chat] request")

	resp, err := s.dispatch(ctx, topic, label, message)
	if err != nil {
		s.metrics.ChatRequest(topic.String(), "error")
		return Response{}, err
	}

	s.metrics.ChatRequest(topic.String(), "ok")
	return resp, nil
}

func (s *service) dispatch(ctx context.Context, topic Topic, label, message string) (Response, error) {
	switch topic {
	case TopicPhishingEmail:
		return s.classify(ctx, topic, label, message, EmailProfile(s.models.EmailClassifier, s.models.General))

	case TopicSpamCalls:
		return s.classify(ctx, topic, label, message, CallProfile(s.models.CallClassifier, s.models.General))

	case TopicGeneralAdvice:
		prompt := fmt.Sprintf(generalAdvicePrompt, combinedMessage(label, message))
		res, err := s.ai.Invoke(ctx, prompt, s.models.General)
		if err != nil {
			return Response{}, fmt.Errorf("general advice: %w", err)
		}
		return Response{TunedResponse: Sanitize(res.Text)}, nil

	default:
		res, err := s.ai.Invoke(ctx, combinedMessage(label, message), s.models.Default)
		if err != nil {
			return Response{}, fmt.Errorf("default reply: %w", err)
		}
		return Response{TunedResponse: res.Text}, nil
	}
}

func (s *service) classify(ctx context.Context, topic Topic, label, message string, prof Profile) (Response, error) {
	c, err := s.pipeline.ClassifyAndExplain(ctx, message, label, prof)
	if err != nil {
		return Response{}, fmt.Errorf("%s: %w", topic, err)
	}

	if err := s.recorder.Record(ctx, &audit.Verdict{
		RequestID: middleware.RequestIDFrom(ctx),
		Topic:     topic.Label(),
		Model:     string(prof.Classifier),
		Verdict:   c.Verdict,
		Blocked:   c.Blocked,
	}); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("topic", topic.Label()).Msg("[chat] verdict not recorded")
	}

	reasoning := c.Reasoning
	return Response{
		TunedResponse:  c.Assessment,
		FlashReasoning: &reasoning,
	}, nil
}
