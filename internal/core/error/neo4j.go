package errx

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// WrapNeo4j classifies a driver error. Connectivity problems and errors the driver
// itself marks retryable are transient; syntax, security and usage errors are permanent.
func WrapNeo4j(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return New(fmt.Errorf("%w: %w", ErrTimeout, err), KindTransient, GraphErrorMessage)
	}
	if neo4j.IsRetryable(err) || neo4j.IsConnectivityError(err) {
		return New(fmt.Errorf("%w: %w", ErrUnavailable, err), KindTransient, GraphErrorMessage)
	}
	return New(err, KindPermanent, GraphErrorMessage)
}
