package audit

import "context"

// Verdict is one classification outcome. The user's message is never stored.
type Verdict struct {
	RequestID string
	Topic     string
	Model     string
	Verdict   string
	Blocked   bool
}

// Recorder persists classification outcomes.
type Recorder interface {
	Record(ctx context.Context, v *Verdict) error
}

// Nop discards verdicts; used when no database is configured.
type Nop struct{}

func (Nop) Record(context.Context, *Verdict) error { return nil }
