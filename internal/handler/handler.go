// Package handler provides HTTP request handlers.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/interviewiq/interviewiq/internal/handler/dto"
	"github.com/interviewiq/interviewiq/internal/llm"
	"github.com/interviewiq/interviewiq/internal/service"
)

// Handler serves the root and fallback routes.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is the root endpoint.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "InterviewIQ API is running",
		"version": "1.0.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service and upstream errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var statusErr *llm.StatusError

	switch {
	case errors.Is(err, service.ErrMissingJD):
		writeError(w, http.StatusBadRequest, "MISSING_JD", "Job description text is required")
	case errors.Is(err, service.ErrMissingResume):
		writeError(w, http.StatusBadRequest, "MISSING_RESUME", "Resume text is required")
	case errors.Is(err, service.ErrMissingAnswer):
		writeError(w, http.StatusBadRequest, "MISSING_ANSWER", "An answered question is required")
	case errors.Is(err, service.ErrJDTooLong):
		writeError(w, http.StatusBadRequest, "JD_TOO_LONG", "Job description text exceeds maximum length")
	case errors.Is(err, service.ErrResumeTooLong):
		writeError(w, http.StatusBadRequest, "RESUME_TOO_LONG", "Resume text exceeds maximum length")
	case errors.Is(err, service.ErrAnswerTooLong):
		writeError(w, http.StatusBadRequest, "ANSWER_TOO_LONG", "Answer text exceeds maximum length")
	case errors.Is(err, llm.ErrUpstreamTimeout), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", "The AI provider did not respond in time")
	case errors.As(err, &statusErr):
		logger.Error("upstream_error", "status", statusErr.StatusCode, "error", err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "The AI provider returned an error")
	case errors.Is(err, llm.ErrEmptyCompletion), errors.Is(err, llm.ErrMalformedReply):
		logger.Error("upstream_error", "error", err)
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "The AI provider returned an unusable response")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
