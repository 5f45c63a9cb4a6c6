// Package metrics holds the Prometheus collectors of the answering cascade.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "medqa"

type Metrics struct {
	answers        *prometheus.CounterVec
	answerDuration *prometheus.HistogramVec
	stageDuration  *prometheus.HistogramVec
	graphRetries   *prometheus.CounterVec
	graphFailures  *prometheus.CounterVec
	llmCalls       *prometheus.CounterVec
	llmRetries     *prometheus.CounterVec
	llmCostUSD     *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "answer",
			Name:      "total",
			Help:      "Answered questions by answer source and fallback stage",
		}, []string{"source", "stage"}),

		answerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "answer",
			Name:      "duration_seconds",
			Help:      "End to end answering time",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"source"}),

		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "stage",
			Name:      "duration_seconds",
			Help:      "Time spent in each cascade stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),

		graphRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "retries_total",
			Help:      "Graph store retries by operation",
		}, []string{"op"}),

		graphFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "failures_total",
			Help:      "Graph store calls that failed after retries, by error kind",
		}, []string{"op", "kind"}),

		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Generative completions by backend and outcome",
		}, []string{"backend", "outcome"}),

		llmRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "retries_total",
			Help:      "Generative call retries by backend",
		}, []string{"backend"}),

		llmCostUSD: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "cost_usd_total",
			Help:      "Estimated generative spend in USD",
		}, []string{"backend", "model"}),

		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Fallback answer cache lookups by result",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.answers, m.answerDuration, m.stageDuration,
		m.graphRetries, m.graphFailures,
		m.llmCalls, m.llmRetries, m.llmCostUSD,
		m.cacheLookups,
	)
	return m
}

func (m *Metrics) ObserveAnswer(source, stage string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(source, stage).Inc()
	m.answerDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveStage(stage string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

func (m *Metrics) GraphRetry(op string) {
	if m == nil {
		return
	}
	m.graphRetries.WithLabelValues(op).Inc()
}

func (m *Metrics) GraphFailure(op, kind string) {
	if m == nil {
		return
	}
	m.graphFailures.WithLabelValues(op, kind).Inc()
}

// LLMCall records one logical completion. outcome is ok, degraded or cached.
func (m *Metrics) LLMCall(backend, outcome string) {
	if m == nil {
		return
	}
	m.llmCalls.WithLabelValues(backend, outcome).Inc()
}

func (m *Metrics) LLMRetry(backend string) {
	if m == nil {
		return
	}
	m.llmRetries.WithLabelValues(backend).Inc()
}

func (m *Metrics) LLMCost(backend, model string, usd float64) {
	if m == nil || usd <= 0 {
		return
	}
	m.llmCostUSD.WithLabelValues(backend, model).Add(usd)
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
