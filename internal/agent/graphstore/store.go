// Package graphstore is the narrow access layer to the medical knowledge graph.
package graphstore

import (
	"context"

	"github.com/redspider/medqa/internal/agent/model"
)

// Store runs read-only Cypher statements. Errors are errx classified so callers
// can tell transient failures from permanent ones. Implementations must be safe
// for concurrent use.
type Store interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]model.Record, error)
	// RunBatch runs all statements in one session and returns their rows in order.
	RunBatch(ctx context.Context, statements []model.Statement) ([][]model.Record, error)
	// Ping checks connectivity with a trivial query.
	Ping(ctx context.Context) error
}
