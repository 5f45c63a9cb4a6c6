package graphstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
	"github.com/redspider/medqa/internal/metrics"
	"github.com/redspider/medqa/pkg/retry"
)

func fastPolicy(attempts int) retry.Policy {
	return retry.Policy{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}
}

func unavailable() error {
	return errx.Transient(errx.ErrUnavailable, errx.GraphErrorMessage)
}

func TestRetryingRecoversWithinBound(t *testing.T) {
	rows := [][]model.Record{{{"disease": "感冒", "relation": "症状", "target": "发热"}}}
	fake := &fakeStore{failures: []error{unavailable(), unavailable()}, rows: rows}
	store := NewRetrying(fake, fastPolicy(3), nil)

	got, err := store.RunBatch(context.Background(), []model.Statement{{Cypher: "RETURN 1"}})
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Equal(t, 3, fake.calls)
}

func TestRetryingGivesUpAfterBound(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	fake := &fakeStore{failures: []error{unavailable(), unavailable(), unavailable(), unavailable()}}
	store := NewRetrying(fake, fastPolicy(3), m)

	_, err := store.RunBatch(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errx.IsTransient(err))
	assert.Equal(t, 3, fake.calls)

	n, err := testutil.GatherAndCount(reg, "medqa_graph_retries_total", "medqa_graph_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRetryingDoesNotRetryPermanent(t *testing.T) {
	fake := &fakeStore{failures: []error{errx.Permanent(errors.New("syntax error"), errx.GraphErrorMessage)}}
	store := NewRetrying(fake, fastPolicy(3), nil)

	err := store.Ping(context.Background())
	require.Error(t, err)
	assert.Equal(t, errx.KindPermanent, errx.KindOf(err))
	assert.Equal(t, 1, fake.calls)
}

func TestPolicyFrom(t *testing.T) {
	p := PolicyFrom(model.GraphConfig{MaxAttempts: 2, InitialBackoff: time.Second, Timeout: 5 * time.Second})
	assert.Equal(t, 2, p.MaxAttempts)
	assert.Equal(t, time.Second, p.InitialDelay)
	assert.Equal(t, 2*time.Second, p.MaxDelay)
	assert.Equal(t, 5*time.Second, p.AttemptTimeout)
}
