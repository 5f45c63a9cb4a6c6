package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redspider/medqa/internal/core"
)

func TestInitProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Production, Output: &buf})
	t.Cleanup(func() { Init() })

	Debug().Msg("hidden")
	Info().Str("k", "v").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "v", line["k"])
}

func TestLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Production, Level: "WARN", Output: &buf})
	t.Cleanup(func() { Init() })

	Info().Msg("hidden")
	assert.Empty(t, buf.String())
	Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Production, Output: &buf})
	t.Cleanup(func() { Init() })

	ctx := WithRunID(context.Background(), "run-1")
	Ctx(ctx).Info().Msg("tagged")
	assert.Contains(t, buf.String(), `"run_id":"run-1"`)

	assert.NotNil(t, Ctx(context.Background()))
}
