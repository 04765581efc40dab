// Package llm provides the client for the upstream OpenAI-compatible
// chat-completion API. Groq is the default provider; any endpoint speaking
// the same wire format works.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// clientTimeout is the total per-attempt request timeout.
	clientTimeout = 60 * time.Second
	// dialTimeout is the connection timeout.
	dialTimeout = 10 * time.Second
	// tlsHandshakeTimeout is the TLS negotiation timeout.
	tlsHandshakeTimeout = 10 * time.Second
	// responseHeaderTimeout is time to wait for response headers.
	responseHeaderTimeout = 30 * time.Second

	// maxResponseBody caps how much of the upstream body is read.
	maxResponseBody = 1 << 20 // 1MB
)

// Client sends a prompt to an LLM and returns the reply text.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Options configures a ChatClient.
type Options struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	MaxRetries int
}

// ChatClient implements Client against the OpenAI chat-completions wire format.
type ChatClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	maxRetries int
	logger     *slog.Logger
}

// NewChatClient creates a ChatClient with tuned transport timeouts.
func NewChatClient(opts Options, logger *slog.Logger) *ChatClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = clientTimeout
	}

	return &ChatClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   dialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   tlsHandshakeTimeout,
				ResponseHeaderTimeout: responseHeaderTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		model:      opts.Model,
		maxTokens:  opts.MaxTokens,
		maxRetries: opts.MaxRetries,
		logger:     logger.With("component", "llm.client"),
	}
}

// Model returns the configured model identifier.
func (c *ChatClient) Model() string {
	return c.model
}

// chatMessage is one entry in the messages array.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the chat-completions request payload.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

// chatResponse is the subset of the completion response we consume.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a system+user message pair and returns the assistant reply.
// Retries transient upstream failures (429, 5xx) with backoff.
func (c *ChatClient) Complete(ctx context.Context, system, user string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: c.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryDelay(attempt-1, lastErr)
			c.logger.Warn("retrying upstream completion",
				"attempt", attempt,
				"delay_ms", delay.Milliseconds(),
				"error", lastErr,
			)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
		}

		reply, err := c.doRequest(ctx, body)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return "", err
		}
	}

	return "", lastErr
}

// doRequest performs a single completion attempt.
func (c *ChatClient) doRequest(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeoutError(err) {
			return "", fmt.Errorf("%w: %s", ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", fmt.Errorf("read upstream response: %w", err)
	}

	c.logger.Debug("upstream completion finished",
		"status", resp.StatusCode,
		"duration_ms", float64(time.Since(start).Microseconds())/1000,
	)

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(data), 512),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedReply, err)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return parsed.Choices[0].Message.Content, nil
}

// isTimeoutError checks for client-side timeout conditions.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseRetryAfter parses a Retry-After header value in seconds.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// truncate shortens a string for log/error output.
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
