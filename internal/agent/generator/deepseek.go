package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
)

// DeepSeek calls the OpenAI compatible chat completions endpoint of DeepSeek.
// Client side retries are disabled; the completer owns the retry budget.
type DeepSeek struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

func NewDeepSeek(cfg model.GeneratorConfig, opts ...option.RequestOption) *DeepSeek {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.DeepSeek.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.DeepSeek.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.DeepSeek.BaseURL))
	}
	return &DeepSeek{
		client:      openai.NewClient(append(base, opts...)...),
		model:       cfg.DeepSeek.Model,
		temperature: float64(cfg.Temperature),
		maxTokens:   int64(cfg.MaxTokens),
	}
}

func (d *DeepSeek) Name() string  { return BackendDeepSeek }
func (d *DeepSeek) Model() string { return d.model }

func (d *DeepSeek) Generate(ctx context.Context, msgs []*schema.Message) (out *schema.Message, err error) {
	ctx = callbacks.EnsureRunInfo(ctx, "DeepSeek", components.ComponentOfChatModel)
	ctx = callbacks.OnStart(ctx, &einomodel.CallbackInput{
		Messages: msgs,
		Config:   &einomodel.Config{Model: d.model, MaxTokens: int(d.maxTokens), Temperature: float32(d.temperature)},
	})
	defer func() {
		if err != nil {
			callbacks.OnError(ctx, err)
		}
	}()

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(d.model),
		Messages:    toOpenAI(msgs),
		Temperature: openai.Float(d.temperature),
	}
	if d.maxTokens > 0 {
		params.MaxTokens = openai.Int(d.maxTokens)
	}

	resp, err := d.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, errx.WrapLLMStatus(err, openAIStatus(err))
	}
	if len(resp.Choices) == 0 {
		return nil, errx.WrapLLMStatus(fmt.Errorf("deepseek returned no choices"), 0)
	}

	choice := resp.Choices[0]
	usage := &schema.TokenUsage{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
	}
	out = schema.AssistantMessage(choice.Message.Content, nil)
	out.ResponseMeta = &schema.ResponseMeta{FinishReason: string(choice.FinishReason), Usage: usage}

	callbacks.OnEnd(ctx, &einomodel.CallbackOutput{
		Message: out,
		TokenUsage: &einomodel.TokenUsage{
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			TotalTokens:      usage.TotalTokens,
		},
	})
	return out, nil
}

func toOpenAI(msgs []*schema.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		if m == nil {
			continue
		}
		switch m.Role {
		case schema.System:
			out = append(out, openai.SystemMessage(m.Content))
		case schema.Assistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func openAIStatus(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
