package transcribe

import (
	"context"
	"sync"
)

type fakeTranscriber struct {
	mu       sync.Mutex
	segments []Segment
	err      error

	calls   int
	audio   []byte
	profile AudioProfile
	// runs inside Recognize, while the scratch file still exists
	onCall func()
}

func (f *fakeTranscriber) Recognize(_ context.Context, audio []byte, profile AudioProfile) ([]Segment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.audio = append([]byte(nil), audio...)
	f.profile = profile
	if f.onCall != nil {
		f.onCall()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.segments, nil
}

func segments(texts ...string) []Segment {
	out := make([]Segment, len(texts))
	for i, t := range texts {
		out[i] = Segment{Alternatives: []Alternative{{Transcript: t, Confidence: 0.9}}}
	}
	return out
}
