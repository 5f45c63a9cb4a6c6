package graphstore

import (
	"context"
	"time"

	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
	"github.com/redspider/medqa/internal/metrics"
	logx "github.com/redspider/medqa/pkg/logger"
	"github.com/redspider/medqa/pkg/retry"
)

// Retrying decorates a Store with bounded retries of transient failures.
type Retrying struct {
	next    Store
	policy  retry.Policy
	metrics *metrics.Metrics
}

// PolicyFrom builds the graph retry policy from configuration.
func PolicyFrom(cfg model.GraphConfig) retry.Policy {
	p := retry.DefaultPolicy()
	if cfg.MaxAttempts > 0 {
		p.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.InitialBackoff > 0 {
		p.InitialDelay = cfg.InitialBackoff
	}
	if cfg.MaxBackoff > 0 {
		p.MaxDelay = cfg.MaxBackoff
	}
	p.AttemptTimeout = cfg.Timeout
	return p
}

func NewRetrying(next Store, policy retry.Policy, m *metrics.Metrics) *Retrying {
	return &Retrying{next: next, policy: policy, metrics: m}
}

func (r *Retrying) Run(ctx context.Context, cypher string, params map[string]any) ([]model.Record, error) {
	return do(ctx, r, "run", func(ctx context.Context) ([]model.Record, error) {
		return r.next.Run(ctx, cypher, params)
	})
}

func (r *Retrying) RunBatch(ctx context.Context, statements []model.Statement) ([][]model.Record, error) {
	return do(ctx, r, "run_batch", func(ctx context.Context) ([][]model.Record, error) {
		return r.next.RunBatch(ctx, statements)
	})
}

func (r *Retrying) Ping(ctx context.Context) error {
	_, err := do(ctx, r, "ping", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.next.Ping(ctx)
	})
	return err
}

func do[T any](ctx context.Context, r *Retrying, op string, fn func(context.Context) (T, error)) (T, error) {
	out, attempts, err := retry.Do(ctx, r.policy, errx.IsTransient, func(attempt int, err error, wait time.Duration) {
		r.metrics.GraphRetry(op)
		logx.Warn().Err(err).Str("op", op).Int("attempt", attempt).Dur("wait", wait).Msg("graph store call failed, retrying")
	}, fn)
	if err != nil {
		r.metrics.GraphFailure(op, errx.KindOf(err).String())
		logx.Error().Err(err).Str("op", op).Int("attempts", attempts).Msg("graph store call failed")
	}
	return out, err
}
