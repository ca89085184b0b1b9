package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit: the provider refused the call with a 429. Question batches
// are generated on demand while the user watches a spinner, so the retry
// layer honors RetryAfter when the provider sends one instead of guessing.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse: the model produced output that is not a usable
// question batch — not JSON, or JSON that fails the batch schema. Content
// keeps the raw payload so the request log can show what came back.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("unusable model response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable: the provider could not serve the call at all
// (5xx, network failure, unreachable host).
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "provider unavailable"
	}
	return fmt.Sprintf("provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded: generation stopped at the token budget and the
// truncated output is not a valid batch. Reading categories embed full
// passages, so this means the budget in Config is too small for the
// category, not a transient fault — it is never retried.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "response truncated at the token budget"
}
