package generator

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"
)

// scriptedBackend fails with the queued errors, then answers with text.
type scriptedBackend struct {
	mu    sync.Mutex
	errs  []error
	text  string
	usage *schema.TokenUsage
	calls int
	last  []*schema.Message
}

func (b *scriptedBackend) Name() string  { return "scripted" }
func (b *scriptedBackend) Model() string { return "deepseek-chat" }

func (b *scriptedBackend) Generate(ctx context.Context, msgs []*schema.Message) (*schema.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	b.last = msgs
	if len(b.errs) > 0 {
		err := b.errs[0]
		b.errs = b.errs[1:]
		return nil, err
	}
	out := schema.AssistantMessage(b.text, nil)
	if b.usage != nil {
		out.ResponseMeta = &schema.ResponseMeta{Usage: b.usage}
	}
	return out, nil
}
