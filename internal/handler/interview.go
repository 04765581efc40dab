package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/interviewiq/interviewiq/internal/handler/dto"
	"github.com/interviewiq/interviewiq/internal/service"
)

// InterviewHandler handles the mock interview endpoint.
type InterviewHandler struct {
	svc    *service.InterviewService
	logger *slog.Logger
}

// NewInterviewHandler creates a new InterviewHandler.
func NewInterviewHandler(svc *service.InterviewService, logger *slog.Logger) *InterviewHandler {
	return &InterviewHandler{
		svc:    svc,
		logger: logger.With("component", "handler.interview"),
	}
}

// MockInterview handles POST /api/v1/mock-interview.
// The action field selects the turn type: start, next or finish.
// An omitted action opens a new interview; an unknown one is rejected.
func (h *InterviewHandler) MockInterview(w http.ResponseWriter, r *http.Request) {
	var req dto.MockInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	action := req.Action
	if action == "" {
		action = dto.ActionStart
	}

	switch action {
	case dto.ActionStart:
		turn, err := h.svc.Start(r.Context(), req.JDText)
		if err != nil {
			handleServiceError(w, h.logger, err)
			return
		}
		h.logger.Info("mock_interview_started", "session_id", turn.SessionID)
		writeJSON(w, http.StatusOK, turn)

	case dto.ActionNext:
		transcript := dto.ToTranscript(req.PreviousQA, req.UserAnswer)
		turn, err := h.svc.Next(r.Context(), req.JDText, transcript)
		if err != nil {
			handleServiceError(w, h.logger, err)
			return
		}
		h.logger.Info("mock_interview_turn", "exchanges", len(transcript))
		writeJSON(w, http.StatusOK, turn)

	case dto.ActionFinish:
		transcript := dto.ToTranscript(req.PreviousQA, req.UserAnswer)
		assessment, err := h.svc.Finish(r.Context(), req.JDText, transcript)
		if err != nil {
			handleServiceError(w, h.logger, err)
			return
		}
		h.logger.Info("mock_interview_finished",
			"exchanges", len(transcript),
			"overall_score", assessment.OverallScore,
		)
		writeJSON(w, http.StatusOK, assessment)

	default:
		writeError(w, http.StatusBadRequest, "INVALID_ACTION", "Action must be start, next or finish")
	}
}
