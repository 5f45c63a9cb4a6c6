package nodes

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/compose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redspider/medqa/internal/agent/generator"
	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
)

type stubRetriever struct {
	answer model.Answer
	err    error
}

func (s stubRetriever) Retrieve(context.Context, model.QueryPlan) (model.Answer, error) {
	return s.answer, s.err
}

type stubCompleter struct{ out generator.Completion }

func (s stubCompleter) Complete(context.Context, string, ...string) generator.Completion { return s.out }

func invoke(t *testing.T, node *compose.Lambda, turn *model.Turn) *model.Turn {
	t.Helper()
	g := compose.NewGraph[*model.Turn, *model.Turn]()
	require.NoError(t, g.AddLambdaNode("n", node))
	require.NoError(t, g.AddEdge(compose.START, "n"))
	require.NoError(t, g.AddEdge("n", compose.END))
	r, err := g.Compile(context.Background())
	require.NoError(t, err)
	out, err := r.Invoke(context.Background(), turn)
	require.NoError(t, err)
	return out
}

func TestConditions(t *testing.T) {
	ctx := context.Background()
	disease := model.Entities{{Term: "感冒", Types: []model.EntityType{model.Disease}}}

	next, _ := NewMatchCondition()(ctx, &model.Turn{})
	assert.Equal(t, NodeFallback, next)
	next, _ = NewMatchCondition()(ctx, &model.Turn{Entities: disease})
	assert.Equal(t, NodeClassify, next)

	next, _ = NewClassifyCondition()(ctx, &model.Turn{Entities: disease})
	assert.Equal(t, NodeFallback, next)
	next, _ = NewClassifyCondition()(ctx, &model.Turn{Classification: &model.Classification{Entities: disease}})
	assert.Equal(t, NodePlan, next)

	next, _ = NewPlanCondition()(ctx, &model.Turn{Plan: model.QueryPlan{{Intent: model.IntentFood}}})
	assert.Equal(t, NodeFallback, next)
	next, _ = NewPlanCondition()(ctx, &model.Turn{Plan: model.QueryPlan{{Intent: model.IntentFood, Statements: []model.Statement{{}}}}})
	assert.Equal(t, NodeRetrieve, next)

	next, _ = NewRetrieveCondition()(ctx, &model.Turn{})
	assert.Equal(t, NodeFallback, next)
	next, _ = NewRetrieveCondition()(ctx, &model.Turn{Answer: model.Answer{Lines: []string{"x"}}})
	assert.Equal(t, compose.END, next)
}

func TestRetrieveNode(t *testing.T) {
	out := invoke(t, NewRetrieveNode(stubRetriever{answer: model.Answer{Lines: []string{"a", "b"}}}), &model.Turn{})
	assert.Equal(t, "a\nb", out.Final)
	assert.Equal(t, model.SourceKG, out.Source)
	assert.Empty(t, out.ExitStage)

	graphErr := errx.Transient(errors.New("down"), errx.GraphErrorMessage)
	out = invoke(t, NewRetrieveNode(stubRetriever{err: graphErr}), &model.Turn{})
	assert.Equal(t, model.StageRetrieve, out.ExitStage)
	assert.ErrorIs(t, out.GraphErr, graphErr)
	assert.Empty(t, out.Final)
}

func TestFallbackNode(t *testing.T) {
	ok := stubCompleter{out: generator.Completion{Text: "多喝水"}}
	out := invoke(t, NewFallbackNode(ok), &model.Turn{Question: "q"})
	assert.Equal(t, "多喝水", out.Final)
	assert.Equal(t, model.SourceLLM, out.Source)

	down := stubCompleter{out: generator.Completion{Text: errx.ApologyRateLimited, Degraded: true}}
	out = invoke(t, NewFallbackNode(down), &model.Turn{Question: "q"})
	assert.Equal(t, errx.ApologyRateLimited, out.Final)
	assert.Equal(t, model.SourceNone, out.Source)

	out = invoke(t, NewFallbackNode(down), &model.Turn{Question: "q", GraphErr: errors.New("graph down")})
	assert.Equal(t, errx.ApologyGraphUnavailable, out.Final)
	assert.True(t, out.Degraded)
}
