package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	original := &PaginationCursor{
		ID:        "01HV3Q0XQ8Z5T9W2J4N6P8R0TC",
		CreatedAt: time.Date(2026, 8, 20, 12, 30, 0, 0, time.UTC),
	}

	encoded := encodeCursor(original)
	if encoded == "" {
		t.Fatal("encodeCursor returned empty string")
	}

	decoded, err := decodeCursor(encoded)
	if err != nil {
		t.Fatalf("decodeCursor failed: %v", err)
	}

	if decoded.ID != original.ID {
		t.Errorf("ID mismatch: %q vs %q", decoded.ID, original.ID)
	}
	if !decoded.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("CreatedAt mismatch: %s vs %s", decoded.CreatedAt, original.CreatedAt)
	}
}

func TestDecodeCursor_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"not json", base64.URLEncoding.EncodeToString([]byte("plain text"))},
		{"missing fields", base64.URLEncoding.EncodeToString([]byte(`{}`))},
		{"missing id", base64.URLEncoding.EncodeToString([]byte(`{"created_at":"2026-08-20T12:00:00Z"}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeCursor(tt.cursor); err == nil {
				t.Errorf("expected error for cursor %q", tt.cursor)
			}
		})
	}
}

func TestListAnalyses_InvalidCursorSentinel(t *testing.T) {
	// Exercised without a database: cursor validation happens before any query.
	r := &Repository{}

	_, _, err := r.ListAnalyses(context.Background(), AnalysisFilter{}, "%%%", 10)
	if !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("expected ErrInvalidCursor, got %v", err)
	}
}
