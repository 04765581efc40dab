// Package history provides asynchronous persistence of analysis results.
// Completed analyses are enqueued on a Redis stream and flushed to PostgreSQL
// in batches by a consumer-group worker, keeping the request path free of
// database writes.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/interviewiq/interviewiq/internal/metrics"
)

const (
	// StreamKey is the Redis stream for analysis events.
	StreamKey = "stream:analysis_events"

	// DeadLetterStreamKey is the Redis stream for poison messages.
	DeadLetterStreamKey = "stream:analysis_events:dlq"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 50000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// EventPayload is the compressed event format for the Redis stream.
type EventPayload struct {
	Feature       string   `json:"f"`
	JDDigest      string   `json:"jd"`
	Model         string   `json:"m"`
	MatchScore    *int     `json:"ms,omitempty"`
	MatchedSkills []string `json:"mk,omitempty"`
	MissingSkills []string `json:"xk,omitempty"`
	Result        string   `json:"r"` // result JSON as produced for the caller
	CreatedAt     int64    `json:"t"` // Unix milliseconds
}

// Publisher enqueues analysis events to the Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a new history event publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "history.publisher"),
		metrics: recorder,
	}
}

// Publish adds an analysis event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event EventPayload) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true, // ~MAXLEN for performance
		ID:     "*",  // Auto-generate ID
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()

	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged but not returned (fire-and-forget).
func (p *Publisher) PublishAsync(event EventPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, event)
		if err != nil {
			p.logger.Warn("failed to publish analysis event",
				"feature", event.Feature,
				"error", err,
			)
			p.metrics.IncHistoryEventPublished("dropped")
			return
		}

		p.logger.Debug("analysis event published",
			"feature", event.Feature,
			"stream_id", streamID,
		)
		p.metrics.IncHistoryEventPublished("success")
	}()
}

// ValidateEventPayload validates analysis event payload fields.
func ValidateEventPayload(payload EventPayload) error {
	if payload.Feature == "" {
		return fmt.Errorf("feature is required")
	}
	if payload.JDDigest == "" {
		return fmt.Errorf("jd digest is required")
	}
	if payload.Model == "" {
		return fmt.Errorf("model is required")
	}
	if payload.Result == "" {
		return fmt.Errorf("result is required")
	}
	if !json.Valid([]byte(payload.Result)) {
		return fmt.Errorf("result must be valid JSON")
	}
	if payload.CreatedAt <= 0 {
		return fmt.Errorf("created_at must be set")
	}
	if payload.MatchScore != nil && (*payload.MatchScore < 0 || *payload.MatchScore > 100) {
		return fmt.Errorf("match_score out of range")
	}
	return nil
}
