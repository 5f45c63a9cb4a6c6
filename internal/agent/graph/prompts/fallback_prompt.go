package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/redspider/medqa/internal/agent/model"
)

//go:embed template/fallback_system.txt
var fallbackSystemPrompt string

// DefaultAssistantName is used when the configuration leaves the name empty.
const DefaultAssistantName = "红蜘蛛"

// Fallback renders the system and user messages sent to the generative backend.
type Fallback struct {
	tpl  prompt.ChatTemplate
	name string
}

func NewFallback(cfg model.PromptConfig) *Fallback {
	name := strings.TrimSpace(cfg.AssistantName)
	if name == "" {
		name = DefaultAssistantName
	}
	return &Fallback{
		tpl: prompt.FromMessages(
			schema.GoTemplate,
			schema.SystemMessage(fallbackSystemPrompt),
			schema.UserMessage("{{.Question}}"),
		),
		name: name,
	}
}

// Render formats the prompt for question. Entity terms, when known, are listed in
// the system message so the model stays on topic.
func (f *Fallback) Render(ctx context.Context, question string, entities ...string) ([]*schema.Message, error) {
	msgs, err := f.tpl.Format(ctx, map[string]any{
		"AssistantName": f.name,
		"Entities":      strings.Join(entities, "、"),
		"Question":      question,
	})
	if err != nil {
		return nil, fmt.Errorf("fallback prompt render: %w", err)
	}
	if len(msgs) != 2 || msgs[0] == nil || msgs[1] == nil {
		return nil, fmt.Errorf("fallback prompt render: unexpected result")
	}
	return msgs, nil
}
