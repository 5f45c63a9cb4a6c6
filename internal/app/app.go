// Package app assembles the answering cascade from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	goredis "github.com/redis/go-redis/v9"

	"github.com/redspider/medqa/internal/agent/classifier"
	"github.com/redspider/medqa/internal/agent/dict"
	"github.com/redspider/medqa/internal/agent/generator"
	"github.com/redspider/medqa/internal/agent/graph"
	"github.com/redspider/medqa/internal/agent/graph/prompts"
	"github.com/redspider/medqa/internal/agent/graphstore"
	"github.com/redspider/medqa/internal/agent/matcher"
	"github.com/redspider/medqa/internal/agent/model"
	"github.com/redspider/medqa/internal/agent/planner"
	"github.com/redspider/medqa/internal/agent/retriever"
	"github.com/redspider/medqa/internal/metrics"
	logx "github.com/redspider/medqa/pkg/logger"
)

// App owns the process-wide handles: the graph driver, the optional Redis
// client and the compiled cascade.
type App struct {
	Runner *graph.Runner

	dictionary *dict.Dictionary
	store      graphstore.Store
	backend    generator.Backend
	driver     neo4j.DriverWithContext
	rdb        *goredis.Client
}

// New loads the dictionaries, connects to the graph store and the optional
// cache, and compiles the cascade. Configuration problems abort construction.
func New(ctx context.Context, cfg Config, m *metrics.Metrics) (*App, error) {
	d, err := dict.Load(cfg.Dictionary.Dir)
	if err != nil {
		return nil, err
	}
	logx.Info().Int("terms", d.Len()).Str("dir", cfg.Dictionary.Dir).Msg("dictionaries loaded")

	plan, err := planner.New(cfg.Graph)
	if err != nil {
		return nil, err
	}

	backend, err := generator.NewBackend(ctx, cfg.Generator)
	if err != nil {
		return nil, err
	}

	driver, err := cfg.Neo4j.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect neo4j: %w", err)
	}
	a := &App{dictionary: d, backend: backend, driver: driver}

	a.store = graphstore.NewRetrying(
		graphstore.NewNeo4jStore(driver, cfg.Neo4j.Database),
		graphstore.PolicyFrom(cfg.Graph),
		m,
	)

	var completer generator.Completer = generator.NewResilient(
		backend,
		prompts.NewFallback(cfg.Prompt),
		generator.PolicyFrom(cfg.Generator),
		generator.LimiterFrom(cfg.Generator),
		m,
	)
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.rdb = rdb
		completer = generator.NewCached(completer, rdb, cfg.Cache.TTL, m)
		logx.Info().Dur("ttl", cfg.Cache.TTL).Msg("fallback answer cache enabled")
	}

	a.Runner, err = graph.Build(ctx, graph.Config{
		Matcher:    matcher.New(d),
		Classifier: classifier.New(),
		Planner:    plan,
		Retriever:  retriever.New(a.store, cfg.Graph.AnswerLimit),
		Completer:  completer,
		Metrics:    m,
	})
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	logx.Info().
		Str("backend", backend.Name()).
		Str("model", backend.Model()).
		Msg("medqa cascade ready")
	return a, nil
}

// Answer runs question through the cascade.
func (a *App) Answer(ctx context.Context, question string) (model.Response, error) {
	return a.Runner.Answer(ctx, question)
}

// CheckResult is one line of the readiness report.
type CheckResult struct {
	Name   string
	Detail string
	Err    error
}

// Check verifies graph connectivity, the dictionaries and the generator
// selection. The returned error joins every failed check.
func (a *App) Check(ctx context.Context) ([]CheckResult, error) {
	results := []CheckResult{
		{Name: "dictionaries", Detail: fmt.Sprintf("%d terms", a.dictionary.Len())},
		{Name: "generator", Detail: fmt.Sprintf("%s (%s)", a.backend.Name(), a.backend.Model())},
	}

	graphCheck := CheckResult{Name: "graph", Detail: "RETURN 1"}
	graphCheck.Err = a.store.Ping(ctx)
	results = append(results, graphCheck)

	if a.rdb != nil {
		cacheCheck := CheckResult{Name: "cache", Detail: "PING"}
		cacheCheck.Err = a.rdb.Ping(ctx).Err()
		results = append(results, cacheCheck)
	}

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

// Close releases the driver and the cache client.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.driver != nil {
		errs = append(errs, a.driver.Close(ctx))
	}
	return errors.Join(errs...)
}
