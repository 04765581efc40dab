// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"encoding/json"
	"time"

	"github.com/interviewiq/interviewiq/internal/model"
)

// AnalyzeJDRequest represents the request body for JD analysis.
type AnalyzeJDRequest struct {
	JDText string `json:"jd_text"`
}

// MatchResumeRequest represents the request body for resume matching.
type MatchResumeRequest struct {
	JDText     string `json:"jd_text"`
	ResumeText string `json:"resume_text"`
}

// PrepPlanRequest represents the request body for prep-plan generation.
type PrepPlanRequest struct {
	JDText string `json:"jd_text"`
}

// Mock interview actions.
const (
	ActionStart  = "start"
	ActionNext   = "next"
	ActionFinish = "finish"
)

// QAItem is one question/answer exchange in a mock interview request.
type QAItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// MockInterviewRequest represents the request body for a mock interview turn.
// The transcript travels with every request; the server keeps no session state.
// An omitted Action is treated as "start".
type MockInterviewRequest struct {
	JDText     string   `json:"jd_text"`
	Action     string   `json:"action"`
	UserAnswer string   `json:"user_answer,omitempty"`
	PreviousQA []QAItem `json:"previous_qa,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// AnalysisResponse represents a stored analysis in API responses.
type AnalysisResponse struct {
	ID            string          `json:"id"`
	Feature       string          `json:"feature"`
	JDDigest      string          `json:"jd_digest"`
	Model         string          `json:"model"`
	MatchScore    *int            `json:"match_score,omitempty"`
	MatchedSkills []string        `json:"matched_skills,omitempty"`
	MissingSkills []string        `json:"missing_skills,omitempty"`
	Result        json.RawMessage `json:"result"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AnalysisListResponse represents a paginated list of stored analyses.
type AnalysisListResponse struct {
	Data       []AnalysisResponse `json:"data"`
	Pagination *Pagination        `json:"pagination"`
}

// Pagination provides cursor-based pagination info.
type Pagination struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// ToTranscript converts request Q&A items to domain exchanges. When the
// caller supplies a trailing user_answer, it fills the last unanswered
// question so clients need not merge it themselves.
func ToTranscript(items []QAItem, userAnswer string) []model.QA {
	transcript := make([]model.QA, len(items))
	for i, item := range items {
		transcript[i] = model.QA{Question: item.Question, Answer: item.Answer}
	}
	if userAnswer != "" && len(transcript) > 0 && transcript[len(transcript)-1].Answer == "" {
		transcript[len(transcript)-1].Answer = userAnswer
	}
	return transcript
}

// ToAnalysisResponse converts a stored record to its API representation.
func ToAnalysisResponse(rec *model.AnalysisRecord) *AnalysisResponse {
	return &AnalysisResponse{
		ID:            rec.ID,
		Feature:       string(rec.Feature),
		JDDigest:      rec.JDDigest,
		Model:         rec.Model,
		MatchScore:    rec.MatchScore,
		MatchedSkills: rec.MatchedSkills,
		MissingSkills: rec.MissingSkills,
		Result:        json.RawMessage(rec.Result),
		CreatedAt:     rec.CreatedAt,
	}
}

// ToAnalysisListResponse converts records plus cursor info to a list response.
func ToAnalysisListResponse(records []*model.AnalysisRecord, nextCursor string) *AnalysisListResponse {
	responses := make([]AnalysisResponse, len(records))
	for i, rec := range records {
		responses[i] = *ToAnalysisResponse(rec)
	}
	return &AnalysisListResponse{
		Data: responses,
		Pagination: &Pagination{
			NextCursor: nextCursor,
			HasMore:    nextCursor != "",
		},
	}
}
