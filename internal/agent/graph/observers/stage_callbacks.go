package observers

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"

	"github.com/redspider/medqa/internal/agent/model"
	"github.com/redspider/medqa/internal/metrics"
	logx "github.com/redspider/medqa/pkg/logger"
)

type stageStartKey struct{}

// newStageHandler times every cascade stage and logs what it produced.
func newStageHandler(m *metrics.Metrics) einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			return context.WithValue(ctx, stageStartKey{}, time.Now())
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, output einocb.CallbackOutput) context.Context {
			elapsed := since(ctx)
			m.ObserveStage(info.Name, elapsed)

			ev := logx.Ctx(ctx).Debug().Str("stage", info.Name).Dur("elapsed", elapsed)
			if turn, ok := output.(*model.Turn); ok && turn != nil {
				ev = ev.Int("entities", len(turn.Entities)).
					Int("plan_items", len(turn.Plan)).
					Int("answer_lines", len(turn.Answer.Lines)).
					Str("exit_stage", string(turn.ExitStage))
			}
			ev.Msg("stage finished")
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			m.ObserveStage(info.Name, since(ctx))
			logx.Ctx(ctx).Error().Err(err).Str("stage", info.Name).Msg("stage failed")
			return ctx
		}).
		Build()
}

func since(ctx context.Context) time.Duration {
	if start, ok := ctx.Value(stageStartKey{}).(time.Time); ok {
		return time.Since(start)
	}
	return 0
}
