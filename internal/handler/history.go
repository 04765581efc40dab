package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/interviewiq/interviewiq/internal/handler/dto"
	"github.com/interviewiq/interviewiq/internal/model"
	"github.com/interviewiq/interviewiq/internal/repository"
)

// HistoryHandler serves stored analysis results.
type HistoryHandler struct {
	repo   *repository.Repository
	logger *slog.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(repo *repository.Repository, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		repo:   repo,
		logger: logger.With("component", "handler.history"),
	}
}

// List handles GET /api/v1/analyses.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 20
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	filter := repository.AnalysisFilter{
		JDDigest: query.Get("jd_digest"),
	}

	if f := query.Get("feature"); f != "" {
		feature := model.Feature(f)
		if !feature.IsValid() {
			writeError(w, http.StatusBadRequest, "INVALID_FEATURE", "Unknown feature filter")
			return
		}
		filter.Feature = feature
	}

	if after := query.Get("created_after"); after != "" {
		if t, err := time.Parse(time.RFC3339, after); err == nil {
			filter.CreatedAfter = &t
		}
	}
	if before := query.Get("created_before"); before != "" {
		if t, err := time.Parse(time.RFC3339, before); err == nil {
			filter.CreatedBefore = &t
		}
	}

	records, nextCursor, err := h.repo.ListAnalyses(r.Context(), filter, query.Get("cursor"), limit)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCursor) {
			writeError(w, http.StatusBadRequest, "INVALID_CURSOR", "Pagination cursor is malformed")
			return
		}
		h.logger.Error("failed to list analyses", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch analyses")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAnalysisListResponse(records, nextCursor))
}

// Get handles GET /api/v1/analyses/{id}.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Analysis ID is required")
		return
	}

	rec, err := h.repo.GetAnalysisByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Analysis not found")
			return
		}
		h.logger.Error("failed to get analysis", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch analysis")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAnalysisResponse(rec))
}
