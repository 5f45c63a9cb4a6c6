package errx

import (
	"context"
	"errors"
	"fmt"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "服务器内部错误，请稍后重试。"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// GraphErrorMessage describes knowledge graph failures.
	GraphErrorMessage = "graph store operation failed"
	// LLMErrorMessage describes generative endpoint failures.
	LLMErrorMessage = "generative endpoint call failed"
)

// User-facing apology strings. Callers never see raw provider errors.
const (
	ApologyTimeout          = "抱歉，医疗助手服务响应超时，请稍后重试。"
	ApologyRateLimited      = "抱歉，医疗助手服务当前请求过于频繁，请稍后再试。"
	ApologyLLMUnavailable   = "抱歉，医疗助手服务暂时不可用，请稍后重试。"
	ApologyGraphUnavailable = "抱歉，医疗知识库暂时不可用，请稍后重试。"
)

// Kind classifies an error for retry and surfacing decisions.
type Kind int

const (
	// KindInternal is a programming defect or malformed data. Never retried.
	KindInternal Kind = iota
	// KindTransient may succeed on retry (timeouts, rate limits, 5xx, unavailable).
	KindTransient
	// KindPermanent will fail the same way again (bad credentials, malformed query).
	KindPermanent
	// KindConfig is a startup configuration problem.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindPermanent:
		return "permanent"
	case KindConfig:
		return "config"
	default:
		return "internal"
	}
}

// Reasons refine transient failures so callers can pick the right apology.
var (
	ErrTimeout     = errors.New("timeout")
	ErrRateLimited = errors.New("rate limited")
	ErrUnavailable = errors.New("service unavailable")
)

// AppError wraps an underlying error with a kind and safe message.
type AppError struct {
	Err     error
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, kind Kind, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    kind,
		Message: message,
	}
}

// Transient marks err as retryable.
func Transient(err error, message string) error {
	if err == nil {
		return nil
	}
	return New(err, KindTransient, message)
}

// Permanent marks err as not retryable.
func Permanent(err error, message string) error {
	if err == nil {
		return nil
	}
	return New(err, KindPermanent, message)
}

// Config reports a startup configuration problem.
func Config(format string, args ...any) error {
	return New(fmt.Errorf(format, args...), KindConfig, "invalid configuration")
}

// Internal wraps a defect that must surface to the caller as a generic error.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return New(err, KindInternal, SystemErrorMessage)
}

// KindOf returns the kind of the outermost AppError in the chain.
// Unclassified errors count as internal, except context deadlines which are transient.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}
	return KindInternal
}

// IsTransient reports whether err may succeed on retry.
func IsTransient(err error) bool {
	return err != nil && KindOf(err) == KindTransient
}

// Apology maps a failed generative call to the matching user-facing string.
func Apology(err error) string {
	switch {
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ApologyTimeout
	case errors.Is(err, ErrRateLimited):
		return ApologyRateLimited
	default:
		return ApologyLLMUnavailable
	}
}
