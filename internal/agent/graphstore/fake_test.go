package graphstore

import (
	"context"
	"sync"

	"github.com/redspider/medqa/internal/agent/model"
)

type fakeStore struct {
	mu       sync.Mutex
	failures []error
	rows     [][]model.Record
	calls    int
}

func (f *fakeStore) next() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.failures) == 0 {
		return nil
	}
	err := f.failures[0]
	f.failures = f.failures[1:]
	return err
}

func (f *fakeStore) Run(ctx context.Context, cypher string, params map[string]any) ([]model.Record, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	return f.rows[0], nil
}

func (f *fakeStore) RunBatch(ctx context.Context, statements []model.Statement) ([][]model.Record, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	return f.rows, nil
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.next()
}
