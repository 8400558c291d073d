package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/securesense-bridge/internal/metrics"
)

type service struct {
	scratch *Scratch
	t       Transcriber
	profile AudioProfile
	metrics *metrics.Metrics
}

func NewService(scratch *Scratch, t Transcriber, m *metrics.Metrics) Service {
	return &service{scratch: scratch, t: t, profile: DefaultProfile, metrics: m}
}

// Transcribe stores the upload, transcribes it and always removes the
// stored copy before returning. Only storage failures are returned as
// errors; transcription failures yield ErrorTranscript.
func (s *service) Transcribe(ctx context.Context, up Upload) (Result, error) {
	if up.Filename == "" {
		return Result{}, ErrNoSelectedFile
	}

	log := zerolog.Ctx(ctx)

	path, err := s.scratch.Save(up.Filename, up.Body)
	if err != nil {
		s.metrics.Transcription("storage_error")
		return Result{}, fmt.Errorf("store upload: %w", err)
	}
	defer func() {
		if err := s.scratch.Remove(path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("[transcribe] scratch cleanup failed")
		}
	}()

	log.Debug().Str("path", path).Msg("[transcribe] upload stored")

	text, err := s.transcribeFile(ctx, path)
	if err != nil {
		s.metrics.Transcription("failed")
		log.Error().Err(err).Msg("[transcribe] transcription failed")
		return Result{Text: ErrorTranscript}, nil
	}

	s.metrics.Transcription("ok")
	return Result{Text: text}, nil
}

func (s *service) transcribeFile(ctx context.Context, path string) (string, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read scratch file: %w", err)
	}

	segments, err := s.t.Recognize(ctx, audio, s.profile)
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return JoinSegments(segments), nil
}

// JoinSegments concatenates the top alternative of each segment.
// Segments without alternatives contribute nothing.
func JoinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if len(seg.Alternatives) == 0 {
			continue
		}
		parts = append(parts, seg.Alternatives[0].Transcript)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
