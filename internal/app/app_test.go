package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redspider/medqa/internal/agent/dict"
	"github.com/redspider/medqa/internal/agent/generator"
	"github.com/redspider/medqa/internal/agent/model"
	"github.com/redspider/medqa/internal/core"
	errx "github.com/redspider/medqa/internal/core/error"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("NEO4J_URI", "bolt://localhost:7687")
	t.Setenv("NEO4J_USER", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "secret")
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("REDIS_URL", "")

	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, core.Production, cfg.Env())
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, 50, cfg.Neo4j.MaxPoolSize)
	assert.Equal(t, "has_symptom", cfg.Graph.RelSymptom)
	assert.Equal(t, "recommand_eat", cfg.Graph.RelFood)
	assert.Equal(t, "recommand_drug", cfg.Graph.RelDrug)
	assert.Equal(t, 3, cfg.Graph.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Graph.InitialBackoff)
	assert.Equal(t, "deepseek", cfg.Generator.Backend)
	assert.Equal(t, "deepseek-chat", cfg.Generator.DeepSeek.Model)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	t.Setenv("NEO4J_URI", "bolt://localhost:7687")
	t.Setenv("NEO4J_USER", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "secret")
	// Registered so the value loaded from the file is cleaned up.
	t.Setenv("GENERATOR_BACKEND", "")
	require.NoError(t, os.Unsetenv("GENERATOR_BACKEND"))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GENERATOR_BACKEND=canned\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "canned", cfg.Generator.Backend)
}

func TestLoadConfigMissingGraphCredentials(t *testing.T) {
	t.Setenv("NEO4J_URI", "")
	require.NoError(t, os.Unsetenv("NEO4J_URI"))
	t.Setenv("NEO4J_USER", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "secret")

	_, err := LoadConfig(noEnvFile(t))
	require.Error(t, err)
	assert.Equal(t, errx.KindConfig, errx.KindOf(err))
}

type pingStore struct {
	err error
}

func (s pingStore) Run(context.Context, string, map[string]any) ([]model.Record, error) {
	return nil, s.err
}

func (s pingStore) RunBatch(context.Context, []model.Statement) ([][]model.Record, error) {
	return nil, s.err
}

func (s pingStore) Ping(context.Context) error { return s.err }

func newCheckApp(storeErr error) *App {
	return &App{
		dictionary: dict.New(map[model.EntityType][]string{
			model.Disease: {"感冒"},
			model.Symptom: {"发热", "咳嗽"},
		}),
		store:   pingStore{err: storeErr},
		backend: generator.NewCanned(""),
	}
}

func TestCheckHealthy(t *testing.T) {
	results, err := newCheckApp(nil).Check(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "dictionaries", results[0].Name)
	assert.Equal(t, "3 terms", results[0].Detail)
	assert.Equal(t, "canned (canned)", results[1].Detail)
	assert.Equal(t, "graph", results[2].Name)
}

func TestCheckReportsGraphFailure(t *testing.T) {
	down := errors.New("connection refused")
	results, err := newCheckApp(down).Check(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "graph")
	assert.ErrorIs(t, results[2].Err, down)
}

func TestCloseWithoutHandles(t *testing.T) {
	assert.NoError(t, (&App{}).Close(context.Background()))
}
