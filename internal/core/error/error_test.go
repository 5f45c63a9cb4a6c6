package errx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, KindTransient, KindOf(Transient(base, "x")))
	assert.Equal(t, KindPermanent, KindOf(Permanent(base, "x")))
	assert.Equal(t, KindInternal, KindOf(base))
	assert.Equal(t, KindTransient, KindOf(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.Equal(t, KindConfig, KindOf(Config("missing %s", "NEO4J_URI")))
}

func TestAppErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := fmt.Errorf("outer: %w", Transient(base, "graph"))

	assert.ErrorIs(t, err, base)

	var ae *AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "graph: boom", ae.Error())
}

func TestWrapLLMStatus(t *testing.T) {
	base := errors.New("upstream")

	tests := []struct {
		name      string
		status    int
		transient bool
		reason    error
		apology   string
	}{
		{"rate limited", http.StatusTooManyRequests, true, ErrRateLimited, ApologyRateLimited},
		{"server error", http.StatusInternalServerError, true, ErrUnavailable, ApologyLLMUnavailable},
		{"bad gateway", http.StatusBadGateway, true, ErrUnavailable, ApologyLLMUnavailable},
		{"gateway timeout", http.StatusGatewayTimeout, true, ErrTimeout, ApologyTimeout},
		{"network", 0, true, ErrUnavailable, ApologyLLMUnavailable},
		{"unauthorized", http.StatusUnauthorized, false, nil, ApologyLLMUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapLLMStatus(base, tt.status)
			assert.Equal(t, tt.transient, IsTransient(err))
			if tt.reason != nil {
				assert.ErrorIs(t, err, tt.reason)
			}
			assert.Equal(t, tt.apology, Apology(err))
		})
	}
}

func TestWrapLLMStatusKeepsCancellation(t *testing.T) {
	err := WrapLLMStatus(context.Canceled, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsTransient(err))
}

func TestWrapRedis(t *testing.T) {
	assert.NoError(t, WrapRedis(nil))
	assert.NoError(t, WrapRedis(redis.Nil))
	assert.True(t, IsTransient(WrapRedis(errors.New("conn refused"))))
}

func TestWrapNeo4jDeadline(t *testing.T) {
	err := WrapNeo4j(context.DeadlineExceeded)
	assert.True(t, IsTransient(err))
	assert.ErrorIs(t, err, ErrTimeout)
}
