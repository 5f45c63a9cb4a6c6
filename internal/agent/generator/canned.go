package generator

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Greeting is the rule-only mode reply.
const Greeting = "您好，我是红蜘蛛 AI 助理，希望可以帮到您，祝您身体安康，快乐常伴~"

// Canned answers every fallback with a fixed text. It serves deployments that
// run the graph path without any generative provider.
type Canned struct {
	text string
}

func NewCanned(text string) *Canned {
	if text == "" {
		text = Greeting
	}
	return &Canned{text: text}
}

func (c *Canned) Name() string  { return BackendCanned }
func (c *Canned) Model() string { return BackendCanned }

func (c *Canned) Generate(ctx context.Context, _ []*schema.Message) (*schema.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return schema.AssistantMessage(c.text, nil), nil
}
