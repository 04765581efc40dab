// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/interviewiq/interviewiq/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 771177

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetAnalysesSchema drops and recreates the analyses schema for tests.
func ResetAnalysesSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downPath := filepath.Join(root, "migrations", "000001_analyses.down.sql")
	upPath := filepath.Join(root, "migrations", "000001_analyses.up.sql")

	downSQL, err := os.ReadFile(downPath)
	if err != nil {
		return fmt.Errorf("read down migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply down migration: %w", err)
	}

	upSQL, err := os.ReadFile(upPath)
	if err != nil {
		return fmt.Errorf("read up migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply up migration: %w", err)
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// NewTestAnalysisRecord creates a stored analysis record with sensible defaults.
func NewTestAnalysisRecord(t testing.TB, feature model.Feature) *model.AnalysisRecord {
	t.Helper()
	now := time.Now().UTC()
	return &model.AnalysisRecord{
		ID:        ulid.Make().String(),
		EventID:   fmt.Sprintf("%d-0", now.UnixNano()),
		Feature:   feature,
		JDDigest:  "a1b2c3d4e5f60718",
		Model:     "llama-3.3-70b-versatile",
		Result:    []byte(`{"role_summary":"Test role."}`),
		CreatedAt: now,
	}
}

// NewTestMatchRecord creates a resume match record with score and skills set.
func NewTestMatchRecord(t testing.TB, score int) *model.AnalysisRecord {
	t.Helper()
	rec := NewTestAnalysisRecord(t, model.FeatureResumeMatch)
	rec.MatchScore = &score
	rec.MatchedSkills = []string{"Go", "PostgreSQL"}
	rec.MissingSkills = []string{"Kubernetes"}
	rec.Result = []byte(fmt.Sprintf(`{"match_score":%d}`, score))
	return rec
}
