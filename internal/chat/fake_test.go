package chat

import (
	"context"
	"sync"

	"github.com/Vovarama1992/securesense-bridge/internal/ai"
	"github.com/Vovarama1992/securesense-bridge/internal/audit"
)

type invocation struct {
	Prompt  string
	Variant ai.Variant
}

// fakeCompleter answers by variant and records every call in order.
type fakeCompleter struct {
	mu      sync.Mutex
	replies map[ai.Variant]ai.Result
	errs    map[ai.Variant]error
	calls   []invocation
}

func newFakeCompleter() *fakeCompleter {
	return &fakeCompleter{
		replies: map[ai.Variant]ai.Result{},
		errs:    map[ai.Variant]error{},
	}
}

func (f *fakeCompleter) Invoke(_ context.Context, prompt string, v ai.Variant) (ai.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, invocation{Prompt: prompt, Variant: v})
	if err := f.errs[v]; err != nil {
		return ai.Result{}, err
	}
	return f.replies[v], nil
}

type fakeRecorder struct {
	got []audit.Verdict
	err error
}

func (r *fakeRecorder) Record(_ context.Context, v *audit.Verdict) error {
	r.got = append(r.got, *v)
	return r.err
}

var testModels = Models{
	EmailClassifier: "tunedModels/emails",
	CallClassifier:  "tunedModels/calls",
	General:         "gemini-1.5-flash",
	Default:         "gemini-1.5-flash-default",
}
