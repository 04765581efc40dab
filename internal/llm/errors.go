package llm

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Upstream errors.
var (
	ErrUpstreamTimeout = errors.New("upstream request timed out")
	ErrEmptyCompletion = errors.New("upstream returned no completion choices")
	ErrMalformedReply  = errors.New("upstream returned a malformed response")
)

// StatusError is a non-200 response from the upstream API.
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited reports whether the upstream rejected the request with 429.
func (e *StatusError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// isRetryable reports whether a failed attempt is worth retrying.
// Rate limits, server errors, and timeouts are transient; everything else
// (auth failures, bad requests, malformed bodies) is not.
func isRetryable(err error) bool {
	if errors.Is(err, ErrUpstreamTimeout) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.IsRateLimited() || statusErr.StatusCode >= 500
	}
	return false
}
