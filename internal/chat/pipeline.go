package chat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/securesense-bridge/internal/ai"
)

// Profile configures one classification topic.
type Profile struct {
	Classifier ai.Variant
	Explainer  ai.Variant
	// AssessmentTemplate wraps the verdict (one %s).
	AssessmentTemplate string
	// ReasoningTemplate takes message, assessment, verdict (%[1]s..%[3]s).
	ReasoningTemplate string
}

func EmailProfile(classifier, explainer ai.Variant) Profile {
	return Profile{
		Classifier:         classifier,
		Explainer:          explainer,
		AssessmentTemplate: emailAssessmentTemplate,
		ReasoningTemplate:  emailReasoningPrompt,
	}
}

func CallProfile(classifier, explainer ai.Variant) Profile {
	return Profile{
		Classifier:         classifier,
		Explainer:          explainer,
		AssessmentTemplate: callAssessmentTemplate,
		ReasoningTemplate:  callReasoningPrompt,
	}
}

// Pipeline classifies a message with a tuned variant and asks a general
// variant to justify that verdict.
type Pipeline struct {
	ai ai.Completer
}

func NewPipeline(c ai.Completer) *Pipeline {
	return &Pipeline{ai: c}
}

func (p *Pipeline) ClassifyAndExplain(
	ctx context.Context,
	message string,
	topicLabel string,
	prof Profile,
) (Classification, error) {

	log := zerolog.Ctx(ctx)

	// --------------------------------------------------
	// STEP 1 — CLASSIFY
	// --------------------------------------------------

	verdict, err := p.ai.Invoke(ctx, combinedMessage(topicLabel, message), prof.Classifier)
	if err != nil {
		return Classification{}, fmt.Errorf("classify: %w", err)
	}

	// A blocked verdict is embedded as-is; reasoning still runs against it.
	assessment := fmt.Sprintf(prof.AssessmentTemplate, verdict.Text)

	log.Debug().
		Str("model", string(prof.Classifier)).
		Bool("blocked", verdict.Blocked).
		Str("verdict", verdict.Text).
		Msg("[pipeline] classified")

	// --------------------------------------------------
	// STEP 2 — EXPLAIN (never alters the verdict)
	// --------------------------------------------------

	reasoningPrompt := fmt.Sprintf(prof.ReasoningTemplate, message, assessment, verdict.Text)

	reasoning, err := p.ai.Invoke(ctx, reasoningPrompt, prof.Explainer)
	if err != nil {
		return Classification{}, fmt.Errorf("explain: %w", err)
	}

	return Classification{
		Verdict:    verdict.Text,
		Assessment: assessment,
		Reasoning:  Sanitize(reasoning.Text),
		Blocked:    verdict.Blocked,
	}, nil
}
