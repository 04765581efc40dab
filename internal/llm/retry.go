package llm

import (
	"errors"
	"math/rand"
	"time"
)

// Backoff schedule for transient upstream failures.
// Attempt 1: 1s, Attempt 2: 3s, Attempt 3: 8s.
var retryDelays = []time.Duration{
	1 * time.Second,
	3 * time.Second,
	8 * time.Second,
}

// jitterFactor is the ±percentage of jitter applied to delays.
const jitterFactor = 0.2

// retryDelay calculates the delay before the next attempt.
// attemptCount is 0-indexed. A Retry-After hint from a 429 response
// overrides the schedule when it is longer.
func retryDelay(attemptCount int, lastErr error) time.Duration {
	if attemptCount < 0 {
		attemptCount = 0
	}
	if attemptCount >= len(retryDelays) {
		attemptCount = len(retryDelays) - 1
	}

	base := retryDelays[attemptCount]

	var statusErr *StatusError
	if errors.As(lastErr, &statusErr) && statusErr.RetryAfter > base {
		base = statusErr.RetryAfter
	}

	// Add ±20% jitter to avoid synchronized retries
	jitterRange := float64(base) * jitterFactor
	jitter := (rand.Float64()*2 - 1) * jitterRange

	return time.Duration(float64(base) + jitter)
}
