// Package retriever runs a query plan against the graph and formats the rows.
package retriever

import (
	"context"

	"github.com/redspider/medqa/internal/agent/graphstore"
	"github.com/redspider/medqa/internal/agent/model"
	logx "github.com/redspider/medqa/pkg/logger"
)

type Retriever struct {
	store graphstore.Store
	limit int
}

func New(store graphstore.Store, limit int) *Retriever {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Retriever{store: store, limit: limit}
}

// Retrieve runs each plan item in one graph session and formats it into one line.
// On a graph failure it returns an empty answer together with the error; the
// caller falls back instead of failing the question.
func (r *Retriever) Retrieve(ctx context.Context, plan model.QueryPlan) (model.Answer, error) {
	var answer model.Answer
	for _, item := range plan {
		if len(item.Statements) == 0 {
			continue
		}
		batches, err := r.store.RunBatch(ctx, item.Statements)
		if err != nil {
			return model.Answer{}, err
		}

		var rows []model.Record
		for _, b := range batches {
			rows = append(rows, b...)
		}
		line := Format(item.Intent, rows, r.limit)
		logx.Debug().Str("intent", string(item.Intent)).Int("rows", len(rows)).Bool("answered", line != "").Msg("plan item retrieved")
		if line != "" {
			answer.Lines = append(answer.Lines, line)
		}
	}
	return answer, nil
}
