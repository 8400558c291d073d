package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ChatRequest("phishing_email", "ok")
	m.ChatRequest("phishing_email", "ok")
	m.Completion("gemini-1.5-flash", "ok")
	m.CompletionBlocked("tunedModels/emails")
	m.Transcription("failed")

	require.Equal(t, 2.0, testutil.ToFloat64(m.chatRequests.WithLabelValues("phishing_email", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.completions.WithLabelValues("gemini-1.5-flash", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.blockedCompletion.WithLabelValues("tunedModels/emails")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.transcriptions.WithLabelValues("failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ChatRequest("x", "ok")
		m.Completion("x", "ok")
		m.CompletionBlocked("x")
		m.Transcription("ok")
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Transcription("ok")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Contains(t, string(body), `securesense_transcriptions_total{outcome="ok"} 1`)
}
