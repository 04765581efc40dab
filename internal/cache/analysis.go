package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key layout for analysis results.
const (
	analysisKeyPrefix = "analysis:"

	// DefaultAnalysisTTL is the fallback TTL when none is configured.
	DefaultAnalysisTTL = 6 * time.Hour
)

// ErrCacheMiss is returned when no cached entry exists.
var ErrCacheMiss = errors.New("cache miss")

// AnalysisKey derives the cache key for a JD-keyed feature result.
// The JD text is hashed so arbitrarily long input maps to a fixed key,
// and the model is part of the key so a model switch never serves
// stale results.
func AnalysisKey(feature, modelName, jd string) string {
	digest := sha256.Sum256([]byte(modelName + "|" + jd))
	return analysisKeyPrefix + feature + ":" + hex.EncodeToString(digest[:8])
}

// JDDigest returns the short digest of a job description used for
// correlating stored history rows with cache entries.
func JDDigest(jd string) string {
	digest := sha256.Sum256([]byte(jd))
	return hex.EncodeToString(digest[:8])
}

// GetAnalysis retrieves a cached analysis result as raw JSON.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetAnalysis(ctx context.Context, key string) ([]byte, error) {
	result, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return result, nil
}

// SetAnalysis stores an analysis result as raw JSON with the given TTL.
func (c *Cache) SetAnalysis(ctx context.Context, key string, result []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultAnalysisTTL
	}

	if err := c.client.Set(ctx, key, result, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache analysis: %w", err)
	}

	return nil
}
