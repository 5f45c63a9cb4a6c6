package graphstore

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
)

const pingQuery = "RETURN 1 AS ok"

// Neo4jStore runs statements on a shared pooled driver, one read session per call.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewNeo4jStore(driver neo4j.DriverWithContext, database string) *Neo4jStore {
	return &Neo4jStore{driver: driver, database: database}
}

func (s *Neo4jStore) session(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
}

func (s *Neo4jStore) Run(ctx context.Context, cypher string, params map[string]any) ([]model.Record, error) {
	rows, err := s.RunBatch(ctx, []model.Statement{{Cypher: cypher, Params: params}})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (s *Neo4jStore) RunBatch(ctx context.Context, statements []model.Statement) ([][]model.Record, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	out := make([][]model.Record, 0, len(statements))
	for _, st := range statements {
		rows, err := collect(ctx, session, st)
		if err != nil {
			return nil, errx.WrapNeo4j(err)
		}
		out = append(out, rows)
	}
	return out, nil
}

func (s *Neo4jStore) Ping(ctx context.Context) error {
	session := s.session(ctx)
	defer session.Close(ctx)

	_, err := collect(ctx, session, model.Statement{Cypher: pingQuery})
	return errx.WrapNeo4j(err)
}

func collect(ctx context.Context, session neo4j.SessionWithContext, st model.Statement) ([]model.Record, error) {
	result, err := session.Run(ctx, st.Cypher, st.Params)
	if err != nil {
		return nil, err
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]model.Record, 0, len(records))
	for _, rec := range records {
		rows = append(rows, model.Record(rec.AsMap()))
	}
	return rows, nil
}
