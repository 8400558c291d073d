package chat

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/securesense-bridge/internal/ai"
)

func newTestRouter(fake *fakeCompleter) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(NewService(fake, testModels, nil, nil)))
	return r
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleChatPhishing(t *testing.T) {
	fake := newFakeCompleter()
	fake.replies["tunedModels/emails"] = ai.Result{Text: "Phishing"}
	fake.replies["gemini-1.5-flash"] = ai.Result{Text: "The sender domain is spoofed."}

	rec := postChat(t, newTestRouter(fake), `{"message":"click here now","topic":"phishing email"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{
		"tuned_response": "The email you pasted in chat is Phishing.",
		"flash_reasoning": "The sender domain is spoofed."
	}`, rec.Body.String())
}

func TestHandleChatNullReasoning(t *testing.T) {
	fake := newFakeCompleter()
	fake.replies["gemini-1.5-flash-default"] = ai.Result{Text: "hi"}

	rec := postChat(t, newTestRouter(fake), `{"message":"hello","topic":null}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"tuned_response":"hi","flash_reasoning":null}`, rec.Body.String())
}

func TestHandleChatClientErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing message", body: `{"topic":"spam calls"}`, want: `{"error":"No message provided"}`},
		{name: "blank message", body: `{"message":"   ","topic":"spam calls"}`, want: `{"error":"No message provided"}`},
		{name: "null message", body: `{"message":null}`, want: `{"error":"No message provided"}`},
		{name: "malformed json", body: `{"message":`, want: `{"error":"invalid json"}`},
		{name: "empty body", body: ``, want: `{"error":"invalid json"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeCompleter()
			rec := postChat(t, newTestRouter(fake), tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.JSONEq(t, tt.want, rec.Body.String())
			require.Empty(t, fake.calls)
		})
	}
}

func TestHandleChatInternalError(t *testing.T) {
	fake := newFakeCompleter()
	fake.replies["tunedModels/calls"] = ai.Result{Text: "Spam"}
	fake.errs["gemini-1.5-flash"] = errors.New("upstream 503")

	rec := postChat(t, newTestRouter(fake), `{"message":"robocall","topic":"spam calls"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"An error occurred while processing the request"}`, rec.Body.String())
	require.NotContains(t, rec.Body.String(), "upstream 503")
}
