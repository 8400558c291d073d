package transcribe

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// SpeechClient calls Google Cloud Speech-to-Text synchronous recognition.
type SpeechClient struct {
	client *speech.Client
}

var _ Transcriber = (*SpeechClient)(nil)

// NewSpeechClient dials Speech-to-Text. Without options it uses application
// default credentials and the public endpoint.
func NewSpeechClient(ctx context.Context, opts ...option.ClientOption) (*SpeechClient, error) {
	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech: new client: %w", err)
	}
	return &SpeechClient{client: c}, nil
}

// SpeechOptions builds client options from a service-account key file and
// an endpoint override; empty values keep the library defaults.
func SpeechOptions(credentialsFile, endpoint string) []option.ClientOption {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}

func (c *SpeechClient) Close() error {
	return c.client.Close()
}

func (c *SpeechClient) Recognize(ctx context.Context, audio []byte, profile AudioProfile) ([]Segment, error) {
	encoding, ok := speechpb.RecognitionConfig_AudioEncoding_value[profile.Encoding]
	if !ok {
		return nil, fmt.Errorf("speech: unknown encoding %q", profile.Encoding)
	}

	resp, err := c.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_AudioEncoding(encoding),
			SampleRateHertz:   int32(profile.SampleRateHertz),
			LanguageCode:      profile.LanguageCode,
			AudioChannelCount: int32(profile.ChannelCount),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech: recognize: %w", err)
	}

	results := resp.GetResults()
	segments := make([]Segment, len(results))
	for n, r := range results {
		alts := make([]Alternative, len(r.GetAlternatives()))
		for i, a := range r.GetAlternatives() {
			alts[i] = Alternative{Transcript: a.GetTranscript(), Confidence: a.GetConfidence()}
		}
		segments[n] = Segment{Alternatives: alts}
	}
	return segments, nil
}

// Unavailable stands in for the speech backend when no credentials could
// be loaded at startup. Every upload then yields ErrorTranscript.
type Unavailable struct {
	Err error
}

func (u Unavailable) Recognize(context.Context, []byte, AudioProfile) ([]Segment, error) {
	return nil, fmt.Errorf("speech unavailable: %w", u.Err)
}
