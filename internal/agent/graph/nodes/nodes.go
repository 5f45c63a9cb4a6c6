package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/redspider/medqa/internal/agent/generator"
	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
	logx "github.com/redspider/medqa/pkg/logger"
)

// Node keys of the cascade graph. They double as stage names in logs and metrics.
const (
	NodeMatch    = string(model.StageMatch)
	NodeClassify = string(model.StageClassify)
	NodePlan     = string(model.StagePlan)
	NodeRetrieve = string(model.StageRetrieve)
	NodeFallback = string(model.StageFallback)
)

// ===== Stage collaborators =====

type Matcher interface {
	Match(text string) model.Entities
}

type Classifier interface {
	Classify(text string, entities model.Entities) (model.Classification, bool)
}

type Planner interface {
	Build(c model.Classification) model.QueryPlan
}

type Retriever interface {
	Retrieve(ctx context.Context, plan model.QueryPlan) (model.Answer, error)
}

// ===== Nodes =====

// NewMatchNode finds dictionary entities in the question.
func NewMatchNode(m Matcher) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
		turn.Entities = m.Match(turn.Question)
		if turn.Entities.Empty() {
			turn.ExitStage = model.StageMatch
		}
		return turn, nil
	})
}

// NewClassifyNode decides the intents of the question.
func NewClassifyNode(c Classifier) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
		cls, ok := c.Classify(turn.Question, turn.Entities)
		if !ok {
			turn.ExitStage = model.StageClassify
			return turn, nil
		}
		turn.Classification = &cls
		logx.Ctx(ctx).Debug().Interface("entities", cls.Entities.AsMap()).Interface("intents", cls.Intents).Msg("question classified")
		return turn, nil
	})
}

// NewPlanNode builds the graph queries for the classification.
func NewPlanNode(p Planner) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
		turn.Plan = p.Build(*turn.Classification)
		if turn.Plan.Empty() {
			turn.ExitStage = model.StagePlan
		}
		return turn, nil
	})
}

// NewRetrieveNode runs the plan. A graph failure is recorded on the turn and
// sends it to the fallback; it never fails the question.
func NewRetrieveNode(r Retriever) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
		answer, err := r.Retrieve(ctx, turn.Plan)
		if err != nil {
			turn.GraphErr = err
			logx.Ctx(ctx).Warn().Err(err).Str("kind", errx.KindOf(err).String()).Msg("graph retrieval failed, falling back")
		}
		turn.Answer = answer
		if turn.Answer.Empty() {
			turn.ExitStage = model.StageRetrieve
			return turn, nil
		}
		turn.Final = turn.Answer.Text()
		turn.Source = model.SourceKG
		return turn, nil
	})
}

// NewFallbackNode asks the generative backend with the raw question.
func NewFallbackNode(c generator.Completer) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
		out := c.Complete(ctx, turn.Question, entityTerms(turn.Entities)...)
		turn.Degraded = out.Degraded
		turn.Source = model.SourceLLM
		turn.Final = out.Text

		if out.Degraded {
			turn.Source = model.SourceNone
			if turn.GraphErr != nil {
				turn.Final = errx.ApologyGraphUnavailable
			}
		}
		return turn, nil
	})
}

// ===== Branch conditions =====

// NewMatchCondition routes a turn without entities to the fallback.
func NewMatchCondition() func(context.Context, *model.Turn) (string, error) {
	return routeUnless(NodeClassify, func(t *model.Turn) bool { return !t.Entities.Empty() })
}

// NewClassifyCondition routes an unclassified turn to the fallback.
func NewClassifyCondition() func(context.Context, *model.Turn) (string, error) {
	return routeUnless(NodePlan, func(t *model.Turn) bool { return t.Classification != nil })
}

// NewPlanCondition routes a turn with an empty plan to the fallback.
func NewPlanCondition() func(context.Context, *model.Turn) (string, error) {
	return routeUnless(NodeRetrieve, func(t *model.Turn) bool { return !t.Plan.Empty() })
}

// NewRetrieveCondition ends the run when the graph produced an answer.
func NewRetrieveCondition() func(context.Context, *model.Turn) (string, error) {
	return routeUnless(compose.END, func(t *model.Turn) bool { return !t.Answer.Empty() })
}

func routeUnless(next string, ok func(*model.Turn) bool) func(context.Context, *model.Turn) (string, error) {
	return func(ctx context.Context, turn *model.Turn) (string, error) {
		if ok(turn) {
			return next, nil
		}
		logx.Ctx(ctx).Debug().Str("exit_stage", string(turn.ExitStage)).Msg("Routing to fallback")
		return NodeFallback, nil
	}
}

func entityTerms(es model.Entities) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Term)
	}
	return out
}
