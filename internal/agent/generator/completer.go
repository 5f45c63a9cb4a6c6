package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/redspider/medqa/internal/agent/graph/prompts"
	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
	"github.com/redspider/medqa/internal/metrics"
	logx "github.com/redspider/medqa/pkg/logger"
	"github.com/redspider/medqa/pkg/retry"
)

// Completion is the outcome of one fallback call. Degraded marks an apology
// produced after the provider failed.
type Completion struct {
	Text     string
	Degraded bool
	Backend  string
	Cached   bool
	Err      error
}

// Completer turns a question into text. Complete never fails: provider errors
// are absorbed into a user-facing apology.
type Completer interface {
	Complete(ctx context.Context, prompt string, entities ...string) Completion
}

// Resilient wraps a Backend with rate limiting and bounded retries.
type Resilient struct {
	backend Backend
	prompt  *prompts.Fallback
	policy  retry.Policy
	limiter *rate.Limiter
	metrics *metrics.Metrics
}

// PolicyFrom builds the generative retry policy from configuration.
func PolicyFrom(cfg model.GeneratorConfig) retry.Policy {
	p := retry.Policy{
		MaxAttempts:    3,
		InitialDelay:   time.Second,
		MaxDelay:       8 * time.Second,
		Multiplier:     2,
		AttemptTimeout: cfg.Timeout,
	}
	if cfg.MaxAttempts > 0 {
		p.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.InitialBackoff > 0 {
		p.InitialDelay = cfg.InitialBackoff
	}
	if cfg.MaxBackoff > 0 {
		p.MaxDelay = cfg.MaxBackoff
	}
	return p
}

// LimiterFrom returns nil when rate limiting is disabled.
func LimiterFrom(cfg model.GeneratorConfig) *rate.Limiter {
	if cfg.RatePerSecond <= 0 {
		return nil
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
}

func NewResilient(backend Backend, prompt *prompts.Fallback, policy retry.Policy, limiter *rate.Limiter, m *metrics.Metrics) *Resilient {
	return &Resilient{backend: backend, prompt: prompt, policy: policy, limiter: limiter, metrics: m}
}

func (r *Resilient) Complete(ctx context.Context, question string, entities ...string) Completion {
	name := r.backend.Name()
	if strings.TrimSpace(question) == "" {
		return Completion{Backend: name}
	}

	msgs, err := r.prompt.Render(ctx, question, entities...)
	if err != nil {
		return r.degrade(errx.Internal(err))
	}

	start := time.Now()
	out, attempts, err := retry.Do(ctx, r.policy, errx.IsTransient, func(attempt int, err error, wait time.Duration) {
		r.metrics.LLMRetry(name)
		logx.Warn().Err(err).Str("backend", name).Int("attempt", attempt).Dur("wait", wait).Msg("generative call failed, retrying")
	}, func(ctx context.Context) (*schema.Message, error) {
		if err := r.wait(ctx); err != nil {
			return nil, err
		}
		return r.backend.Generate(ctx, msgs)
	})
	if err != nil {
		logx.Error().Err(err).Str("backend", name).Int("attempts", attempts).Msg("generative call failed")
		return r.degrade(err)
	}

	text := strings.TrimSpace(out.Content)
	if text == "" {
		return r.degrade(errx.Transient(errors.New("empty completion"), errx.LLMErrorMessage))
	}

	r.account(out, attempts, time.Since(start))
	r.metrics.LLMCall(name, "ok")
	return Completion{Text: text, Backend: name}
}

func (r *Resilient) wait(ctx context.Context) error {
	if r.limiter == nil {
		return nil
	}
	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errx.Transient(errx.ErrRateLimited, errx.LLMErrorMessage)
	}
	return nil
}

func (r *Resilient) degrade(err error) Completion {
	r.metrics.LLMCall(r.backend.Name(), "degraded")
	return Completion{Text: errx.Apology(err), Degraded: true, Backend: r.backend.Name(), Err: err}
}

func (r *Resilient) account(out *schema.Message, attempts int, elapsed time.Duration) {
	ev := logx.Info().Str("backend", r.backend.Name()).Str("model", r.backend.Model()).
		Int("attempts", attempts).Dur("elapsed", elapsed)
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		usage := out.ResponseMeta.Usage
		in, outCost, total := model.ComputeCost(usage, model.ResolvePricing(r.backend.Model()))
		r.metrics.LLMCost(r.backend.Name(), r.backend.Model(), total)
		ev = ev.Int("prompt_tokens", usage.PromptTokens).Int("completion_tokens", usage.CompletionTokens).
			Float64("input_cost_usd", in).Float64("output_cost_usd", outCost).Float64("total_cost_usd", total)
	}
	ev.Msg("generative call succeeded")
}
