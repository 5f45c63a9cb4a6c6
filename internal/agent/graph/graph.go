// Package graph wires the answering cascade as an eino graph:
// match -> classify -> plan -> retrieve, each stage branching to the generative
// fallback when it produces nothing.
package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"

	"github.com/redspider/medqa/internal/agent/generator"
	"github.com/redspider/medqa/internal/agent/graph/nodes"
	"github.com/redspider/medqa/internal/agent/graph/observers"
	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
	"github.com/redspider/medqa/internal/metrics"
	logx "github.com/redspider/medqa/pkg/logger"
)

// EmptyQuestionPrompt is returned for a blank question without running the cascade.
const EmptyQuestionPrompt = "请先描述您的症状，例如：『发烧两天，体温38.5度』"

// maxRunSteps covers the longest path: four stages, the fallback and END.
const maxRunSteps = 10

// Config holds the stage collaborators. All of them must be safe for concurrent use.
type Config struct {
	Matcher    nodes.Matcher
	Classifier nodes.Classifier
	Planner    nodes.Planner
	Retriever  nodes.Retriever
	Completer  generator.Completer
	Metrics    *metrics.Metrics
}

// GraphBuilder handles the construction of the cascade graph.
type GraphBuilder struct {
	config *Config
	graph  *compose.Graph[*model.Turn, *model.Turn]
}

// Runner answers questions with the compiled cascade. It keeps no state between
// questions and is safe for concurrent use.
type Runner struct {
	runnable  compose.Runnable[*model.Turn, *model.Turn]
	callbacks einocb.Handler
	metrics   *metrics.Metrics
}

// Build validates cfg and compiles the cascade.
func Build(ctx context.Context, cfg Config) (*Runner, error) {
	if cfg.Matcher == nil || cfg.Classifier == nil || cfg.Planner == nil || cfg.Retriever == nil || cfg.Completer == nil {
		return nil, fmt.Errorf("cascade stages are not properly initialized")
	}

	builder := &GraphBuilder{
		config: &cfg,
		graph:  compose.NewGraph[*model.Turn, *model.Turn](),
	}
	builder.addNodes()
	builder.addEdges()
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	runnable, err := builder.compile(ctx)
	if err != nil {
		return nil, err
	}
	return &Runner{
		runnable:  runnable,
		callbacks: observers.NewAllCallbacks(cfg.Metrics),
		metrics:   cfg.Metrics,
	}, nil
}

func (b *GraphBuilder) addNodes() {
	add := func(key string, node *compose.Lambda) {
		// AddLambdaNode only fails on duplicate keys, which the constants rule out
		_ = b.graph.AddLambdaNode(key, node, compose.WithNodeName(key))
	}
	add(nodes.NodeMatch, nodes.NewMatchNode(b.config.Matcher))
	add(nodes.NodeClassify, nodes.NewClassifyNode(b.config.Classifier))
	add(nodes.NodePlan, nodes.NewPlanNode(b.config.Planner))
	add(nodes.NodeRetrieve, nodes.NewRetrieveNode(b.config.Retriever))
	add(nodes.NodeFallback, nodes.NewFallbackNode(b.config.Completer))
}

func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeMatch},
		{nodes.NodeFallback, compose.END},
	}
	for _, edge := range edges {
		_ = b.graph.AddEdge(edge[0], edge[1])
	}
}

func (b *GraphBuilder) addBranches() error {
	branches := []struct {
		from string
		cond func(context.Context, *model.Turn) (string, error)
		next string
	}{
		{nodes.NodeMatch, nodes.NewMatchCondition(), nodes.NodeClassify},
		{nodes.NodeClassify, nodes.NewClassifyCondition(), nodes.NodePlan},
		{nodes.NodePlan, nodes.NewPlanCondition(), nodes.NodeRetrieve},
		{nodes.NodeRetrieve, nodes.NewRetrieveCondition(), compose.END},
	}

	for _, br := range branches {
		branch := compose.NewGraphBranch(br.cond, map[string]bool{
			br.next:            true,
			nodes.NodeFallback: true,
		})
		if err := b.graph.AddBranch(br.from, branch); err != nil {
			logx.Error().Err(err).Str("from", br.from).Msg("Error adding fallback branch")
			return fmt.Errorf("error adding %s branch: %w", br.from, err)
		}
	}
	return nil
}

func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[*model.Turn, *model.Turn], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxRunSteps), compose.WithGraphName("medqa_cascade"))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}
	logx.Debug().Msg("Cascade graph compiled successfully")
	return runnable, nil
}

// Answer runs one question through the cascade. Only unexpected defects are
// returned as an error; empty results and external failures end in the fallback.
func (r *Runner) Answer(ctx context.Context, question string) (resp model.Response, err error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = logx.WithRunID(ctx, runID)

	question = strings.TrimSpace(question)
	if question == "" {
		return model.Response{RunID: runID, Answer: EmptyQuestionPrompt, Source: model.SourceNone}, nil
	}

	defer func() {
		if p := recover(); p != nil {
			logx.Ctx(ctx).Error().Interface("panic", p).Msg("cascade panicked")
			resp, err = model.Response{}, errx.Internal(fmt.Errorf("cascade panic: %v", p))
		}
	}()

	turn, err := r.runnable.Invoke(ctx, &model.Turn{RunID: runID, Question: question}, compose.WithCallbacks(r.callbacks))
	if err != nil {
		logx.Ctx(ctx).Error().Err(err).Msg("cascade failed")
		return model.Response{}, errx.Internal(err)
	}
	if turn == nil {
		return model.Response{}, errx.Internal(fmt.Errorf("cascade returned no result"))
	}

	resp = model.Response{
		RunID:    runID,
		Answer:   turn.Final,
		Source:   turn.Source,
		Stage:    turn.ExitStage,
		Degraded: turn.Degraded,
		Elapsed:  time.Since(start),
	}
	r.metrics.ObserveAnswer(string(resp.Source), string(resp.Stage), resp.Elapsed)
	logx.Ctx(ctx).Info().
		Str("source", string(resp.Source)).
		Str("exit_stage", string(resp.Stage)).
		Bool("degraded", resp.Degraded).
		Dur("elapsed", resp.Elapsed).
		Msg("question answered")
	return resp, nil
}
