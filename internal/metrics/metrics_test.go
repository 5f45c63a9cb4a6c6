package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAnswer("kg", "", 20*time.Millisecond)
	m.ObserveAnswer("llm", "retrieve", time.Second)
	m.ObserveAnswer("llm", "retrieve", time.Second)
	m.GraphRetry("run_batch")
	m.GraphFailure("run_batch", "transient")
	m.LLMCall("deepseek", "ok")
	m.LLMRetry("deepseek")
	m.LLMCost("deepseek", "deepseek-chat", 0.5)
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.answers.WithLabelValues("kg", "")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.answers.WithLabelValues("llm", "retrieve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.graphRetries.WithLabelValues("run_batch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.graphFailures.WithLabelValues("run_batch", "transient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.llmCalls.WithLabelValues("deepseek", "ok")))
	assert.Equal(t, 0.5, testutil.ToFloat64(m.llmCostUSD.WithLabelValues("deepseek", "deepseek-chat")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.answerDuration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnswer("kg", "", time.Second)
		m.ObserveStage("match", time.Second)
		m.GraphRetry("run")
		m.GraphFailure("run", "permanent")
		m.LLMCall("canned", "ok")
		m.LLMRetry("gemini")
		m.LLMCost("gemini", "gemini-2.5-flash", 1)
		m.CacheLookup(true)
	})
}
