package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClientGenerate(t *testing.T) {
	var got openai.ChatCompletionRequest
	var gotAuth, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gemini-1.5-flash",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Spam"}, "finish_reason": "stop"}]
		}`)
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("sk-test", srv.URL+"/v1beta/openai/", nil)
	require.NoError(t, err)

	cands, err := client.Generate(context.Background(), "gemini-1.5-flash", "is this spam", DefaultGenerationConfig, DefaultSafetySettings)
	require.NoError(t, err)

	require.Equal(t, "/v1beta/openai/chat/completions", gotPath)
	require.Equal(t, "Bearer sk-test", gotAuth)
	require.Equal(t, "gemini-1.5-flash", got.Model)
	require.Len(t, got.Messages, 1)
	require.Equal(t, openai.ChatMessageRoleUser, got.Messages[0].Role)
	require.Equal(t, "is this spam", got.Messages[0].Content)
	require.Equal(t, 8192, got.MaxTokens)
	require.InDelta(t, 0.95, got.TopP, 0.0001)
	require.InDelta(t, 0, got.Temperature, 0.0001)

	require.Equal(t, []Candidate{{Text: "Spam", FinishReason: FinishReasonStop}}, cands)
}

func TestOpenAIContentFilterIsBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":""},"finish_reason":"content_filter"}]}`)
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("sk-test", srv.URL, nil)
	require.NoError(t, err)

	inv := NewInvoker(client, nil)
	res, err := inv.Invoke(context.Background(), "x", "gemini-1.5-flash")
	require.NoError(t, err)
	require.True(t, res.Blocked)
	require.Equal(t, BlockedReply, res.Text)
}

func TestOpenAIClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("sk-test", srv.URL, nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "m", "x", DefaultGenerationConfig, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad key")
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(" ", "", nil)
	require.Error(t, err)
}

func TestParseOpenAIFinishReason(t *testing.T) {
	require.Equal(t, FinishReasonSafety, parseOpenAIFinishReason(openai.FinishReasonContentFilter))
	require.Equal(t, FinishReasonMaxTokens, parseOpenAIFinishReason(openai.FinishReasonLength))
	require.Equal(t, FinishReasonStop, parseOpenAIFinishReason(openai.FinishReasonStop))
	require.Equal(t, FinishReasonOther, parseOpenAIFinishReason(openai.FinishReasonToolCalls))
}
