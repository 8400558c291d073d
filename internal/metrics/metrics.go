package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "securesense"

// Metrics holds the service counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	chatRequests      *prometheus.CounterVec
	completions       *prometheus.CounterVec
	blockedCompletion *prometheus.CounterVec
	transcriptions    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		chatRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_requests_total",
				Help:      "Chat requests by topic strategy and outcome.",
			},
			[]string{"topic", "outcome"},
		),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "completions_total",
				Help:      "Completion calls by model variant and outcome.",
			},
			[]string{"model", "outcome"},
		),
		blockedCompletion: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "completions_blocked_total",
				Help:      "Completions stopped by the safety/relevance block.",
			},
			[]string{"model"},
		),
		transcriptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transcriptions_total",
				Help:      "Audio transcriptions by outcome.",
			},
			[]string{"outcome"},
		),
	}
	registry.MustRegister(m.chatRequests, m.completions, m.blockedCompletion, m.transcriptions)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) ChatRequest(topic, outcome string) {
	if m == nil {
		return
	}
	m.chatRequests.WithLabelValues(topic, outcome).Inc()
}

func (m *Metrics) Completion(model, outcome string) {
	if m == nil {
		return
	}
	m.completions.WithLabelValues(model, outcome).Inc()
}

func (m *Metrics) CompletionBlocked(model string) {
	if m == nil {
		return
	}
	m.blockedCompletion.WithLabelValues(model).Inc()
}

func (m *Metrics) Transcription(outcome string) {
	if m == nil {
		return
	}
	m.transcriptions.WithLabelValues(outcome).Inc()
}
