package transcribe

import (
	"context"
	"errors"
	"io"
)

// ErrorTranscript is returned in place of a transcript when the
// transcription service fails; the endpoint still answers 200.
const ErrorTranscript = "Error transcribing audio"

var (
	ErrNoFilePart     = errors.New("no file part")
	ErrNoSelectedFile = errors.New("no selected file")
)

type (
	// AudioProfile describes how the uploaded bytes are encoded.
	AudioProfile struct {
		Encoding        string
		SampleRateHertz int
		LanguageCode    string
		ChannelCount    int
	}

	Alternative struct {
		Transcript string
		Confidence float32
	}

	// Segment is one recognized result with ranked alternatives.
	Segment struct {
		Alternatives []Alternative
	}

	// Transcriber is the external transcription capability.
	Transcriber interface {
		Recognize(ctx context.Context, audio []byte, profile AudioProfile) ([]Segment, error)
	}

	Upload struct {
		Filename string
		Body     io.Reader
	}

	Result struct {
		Text string `json:"transcription"`
	}

	Service interface {
		Transcribe(ctx context.Context, up Upload) (Result, error)
	}
)

var DefaultProfile = AudioProfile{
	Encoding:        "MP3",
	SampleRateHertz: 16000,
	LanguageCode:    "en-US",
	ChannelCount:    1,
}
