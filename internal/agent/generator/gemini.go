package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
	logx "github.com/redspider/medqa/pkg/logger"
)

const geminiThinkingBudget = 1024

// Gemini wraps an eino chat model. The eino-ext gemini component reports its
// own model callbacks.
type Gemini struct {
	chat  einomodel.BaseChatModel
	model string
}

func NewGemini(ctx context.Context, cfg model.GeneratorConfig) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Gemini.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.Gemini.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, errx.Config("create gemini client: %v", err)
	}

	temperature := cfg.Temperature
	maxTokens := cfg.MaxTokens
	chat, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Gemini.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(geminiThinkingBudget)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini chat model")
		return nil, fmt.Errorf("create gemini chat model: %w", err)
	}
	return NewGeminiWithModel(chat, cfg.Gemini.Model), nil
}

// NewGeminiWithModel wraps an existing chat model.
func NewGeminiWithModel(chat einomodel.BaseChatModel, modelName string) *Gemini {
	return &Gemini{chat: chat, model: modelName}
}

func (g *Gemini) Name() string  { return BackendGemini }
func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Generate(ctx context.Context, msgs []*schema.Message) (*schema.Message, error) {
	out, err := g.chat.Generate(ctx, msgs)
	if err != nil {
		return nil, errx.WrapLLMStatus(err, geminiStatus(err))
	}
	return out, nil
}

// geminiStatus extracts the HTTP status of a genai API error, 0 when absent.
func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}
