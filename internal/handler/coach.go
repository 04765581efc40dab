package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/interviewiq/interviewiq/internal/handler/dto"
	"github.com/interviewiq/interviewiq/internal/service"
)

// CoachHandler handles the JD-driven coaching endpoints.
type CoachHandler struct {
	svc    *service.CoachService
	logger *slog.Logger
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(svc *service.CoachService, logger *slog.Logger) *CoachHandler {
	return &CoachHandler{
		svc:    svc,
		logger: logger.With("component", "handler.coach"),
	}
}

// AnalyzeJD handles POST /api/v1/jd/analyze.
func (h *CoachHandler) AnalyzeJD(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeJDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.AnalyzeJD(r.Context(), req.JDText)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("jd_analyzed",
		"skills", len(result.RequiredSkills),
		"questions", len(result.InterviewQuestions),
	)
	writeJSON(w, http.StatusOK, result)
}

// MatchResume handles POST /api/v1/resume/match.
func (h *CoachHandler) MatchResume(w http.ResponseWriter, r *http.Request) {
	var req dto.MatchResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.MatchResume(r.Context(), req.JDText, req.ResumeText)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("resume_matched",
		"match_score", result.MatchScore,
		"missing_skills", len(result.MissingSkills),
	)
	writeJSON(w, http.StatusOK, result)
}

// PrepPlan handles POST /api/v1/prep-plan.
func (h *CoachHandler) PrepPlan(w http.ResponseWriter, r *http.Request) {
	var req dto.PrepPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.BuildPrepPlan(r.Context(), req.JDText)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("prep_plan_built", "topics", len(result.Topics))
	writeJSON(w, http.StatusOK, result)
}
