package observers

import (
	einocb "github.com/cloudwego/eino/callbacks"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	"github.com/redspider/medqa/internal/metrics"
)

// NewAllCallbacks aggregates the stage, prompt and chat model observers into one
// callbacks.Handler. m may be nil.
func NewAllCallbacks(m *metrics.Metrics) einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Lambda(newStageHandler(m)).
		Prompt(newPromptHandler()).
		ChatModel(newModelHandler()).
		Handler()
}
