package errx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// WrapLLMStatus classifies a generative endpoint failure by its HTTP status.
// A zero status means the request never got a response (network error).
func WrapLLMStatus(err error, status int) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout {
		return New(fmt.Errorf("%w: %w", ErrTimeout, err), KindTransient, LLMErrorMessage)
	}
	switch {
	case status == http.StatusTooManyRequests:
		return New(fmt.Errorf("%w: %w", ErrRateLimited, err), KindTransient, LLMErrorMessage)
	case status == 0 || status >= http.StatusInternalServerError:
		return New(fmt.Errorf("%w: %w", ErrUnavailable, err), KindTransient, LLMErrorMessage)
	default:
		return New(err, KindPermanent, LLMErrorMessage)
	}
}
