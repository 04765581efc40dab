package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/interviewiq/interviewiq/internal/model"
)

// Common errors for analysis repository operations.
var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrInvalidCursor    = errors.New("invalid pagination cursor")
)

// AnalysisFilter defines filters for listing stored analyses.
type AnalysisFilter struct {
	Feature       model.Feature
	JDDigest      string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// PaginationCursor represents decoded cursor for pagination.
type PaginationCursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// BulkInsert inserts analysis records with idempotency via ON CONFLICT DO NOTHING.
// The stream message id (event_id) is the conflict key, so redelivered events
// are absorbed silently.
func (r *Repository) BulkInsert(ctx context.Context, records []*model.AnalysisRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	query := `
		INSERT INTO analyses (
			id, event_id, feature, jd_digest, model, match_score,
			matched_skills, missing_skills, result, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (event_id) DO NOTHING
	`

	for _, rec := range records {
		batch.Queue(query,
			rec.ID,
			rec.EventID,
			string(rec.Feature),
			rec.JDDigest,
			rec.Model,
			rec.MatchScore,
			pq.Array(rec.MatchedSkills),
			pq.Array(rec.MissingSkills),
			rec.Result,
			rec.CreatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(records); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert record %d: %w", i, err)
		}
	}

	return nil
}

// GetAnalysisByID retrieves a stored analysis by its ID.
func (r *Repository) GetAnalysisByID(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	query := `
		SELECT id, event_id, feature, jd_digest, model, match_score,
		       matched_skills, missing_skills, result, created_at
		FROM analyses
		WHERE id = $1
	`

	rec, err := scanAnalysis(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get analysis by ID: %w", err)
	}

	return rec, nil
}

// ListAnalyses retrieves a keyset-paginated list of stored analyses,
// newest first.
func (r *Repository) ListAnalyses(ctx context.Context, filter AnalysisFilter, cursor string, limit int) ([]*model.AnalysisRecord, string, error) {
	// Decode cursor if provided
	var cursorData *PaginationCursor
	if cursor != "" {
		var err error
		cursorData, err = decodeCursor(cursor)
		if err != nil {
			return nil, "", ErrInvalidCursor
		}
	}

	query := `
		SELECT id, event_id, feature, jd_digest, model, match_score,
		       matched_skills, missing_skills, result, created_at
		FROM analyses
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if filter.Feature != "" {
		query += fmt.Sprintf(" AND feature = $%d", argIndex)
		args = append(args, string(filter.Feature))
		argIndex++
	}

	if filter.JDDigest != "" {
		query += fmt.Sprintf(" AND jd_digest = $%d", argIndex)
		args = append(args, filter.JDDigest)
		argIndex++
	}

	if cursorData != nil {
		query += fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", argIndex, argIndex+1)
		args = append(args, cursorData.CreatedAt, cursorData.ID)
		argIndex += 2
	}

	if filter.CreatedAfter != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *filter.CreatedAfter)
		argIndex++
	}

	if filter.CreatedBefore != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *filter.CreatedBefore)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", argIndex)
	args = append(args, limit+1) // Fetch one extra to determine hasMore

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	records := make([]*model.AnalysisRecord, 0, limit+1)
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to iterate analyses: %w", err)
	}

	var nextCursor string
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		nextCursor = encodeCursor(&PaginationCursor{
			ID:        last.ID,
			CreatedAt: last.CreatedAt,
		})
	}

	return records, nextCursor, nil
}

// CountAnalyses returns the number of stored analyses matching the filter.
func (r *Repository) CountAnalyses(ctx context.Context, filter AnalysisFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM analyses WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Feature != "" {
		query += fmt.Sprintf(" AND feature = $%d", argIndex)
		args = append(args, string(filter.Feature))
		argIndex++
	}
	if filter.JDDigest != "" {
		query += fmt.Sprintf(" AND jd_digest = $%d", argIndex)
		args = append(args, filter.JDDigest)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanAnalysis scans a single analysis row.
func scanAnalysis(row rowScanner) (*model.AnalysisRecord, error) {
	var rec model.AnalysisRecord
	var feature string
	var matched, missing []string

	err := row.Scan(
		&rec.ID,
		&rec.EventID,
		&feature,
		&rec.JDDigest,
		&rec.Model,
		&rec.MatchScore,
		pq.Array(&matched),
		pq.Array(&missing),
		&rec.Result,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Feature = model.Feature(feature)
	rec.MatchedSkills = matched
	rec.MissingSkills = missing

	return &rec, nil
}

// encodeCursor encodes a pagination cursor as base64 JSON.
func encodeCursor(cursor *PaginationCursor) string {
	data, err := json.Marshal(cursor)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// decodeCursor decodes a base64 JSON pagination cursor.
func decodeCursor(cursor string) (*PaginationCursor, error) {
	data, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	var decoded PaginationCursor
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal cursor: %w", err)
	}
	if decoded.ID == "" || decoded.CreatedAt.IsZero() {
		return nil, errors.New("cursor missing fields")
	}

	return &decoded, nil
}
