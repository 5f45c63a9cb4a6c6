// Package generator is the generative fallback: a backend strategy chosen at
// startup behind a completer that never fails.
package generator

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
)

// Backend names accepted by GENERATOR_BACKEND.
const (
	BackendGemini   = "gemini"
	BackendDeepSeek = "deepseek"
	BackendCanned   = "canned"
)

// Backend is one generative provider. Generate returns errx classified errors
// and must be safe for concurrent use.
type Backend interface {
	Name() string
	Model() string
	Generate(ctx context.Context, msgs []*schema.Message) (*schema.Message, error)
}

// NewBackend builds the backend selected by cfg.Backend. Missing credentials
// for the selected provider are a configuration error.
func NewBackend(ctx context.Context, cfg model.GeneratorConfig) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendGemini:
		if cfg.Gemini.APIKey == "" {
			return nil, errx.Config("GEMINI_API_KEY is required for the %s backend", BackendGemini)
		}
		return NewGemini(ctx, cfg)
	case BackendDeepSeek:
		if cfg.DeepSeek.APIKey == "" {
			return nil, errx.Config("DEEPSEEK_API_KEY is required for the %s backend", BackendDeepSeek)
		}
		return NewDeepSeek(cfg), nil
	case BackendCanned:
		return NewCanned(""), nil
	default:
		return nil, errx.Config("unknown generator backend %q", cfg.Backend)
	}
}
