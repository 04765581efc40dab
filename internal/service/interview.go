package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/interviewiq/interviewiq/internal/cache"
	"github.com/interviewiq/interviewiq/internal/history"
	"github.com/interviewiq/interviewiq/internal/llm"
	"github.com/interviewiq/interviewiq/internal/metrics"
	"github.com/interviewiq/interviewiq/internal/model"
	"github.com/interviewiq/interviewiq/internal/prompt"
)

// InterviewService drives the stateless mock interview loop. The full Q&A
// transcript travels with every request, so no server-side session state
// is kept; the session id only correlates turns in logs and history.
type InterviewService struct {
	llm       llm.Client
	events    EventPublisher
	metrics   metrics.Recorder
	logger    *slog.Logger
	modelName string
}

// NewInterviewService creates a mock interview service. Events may be nil,
// in which case finished interviews are not persisted.
func NewInterviewService(client llm.Client, events EventPublisher, recorder metrics.Recorder, logger *slog.Logger, modelName string) *InterviewService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &InterviewService{
		llm:       client,
		events:    events,
		metrics:   recorder,
		logger:    logger.With("component", "service.interview"),
		modelName: modelName,
	}
}

// Start opens a mock interview and returns the first question along with a
// fresh session id.
func (s *InterviewService) Start(ctx context.Context, jd string) (*model.MockTurn, error) {
	jd = strings.TrimSpace(jd)
	if err := validateJD(jd); err != nil {
		return nil, err
	}
	s.metrics.IncAnalysisRequested(string(model.FeatureMockTurn))

	reply, err := s.complete(ctx, prompt.MockStart(jd))
	if err != nil {
		return nil, err
	}

	var turn model.MockTurn
	if !decodeReply(reply, &turn) || turn.Question == "" {
		s.metrics.IncFallbackServed(string(model.FeatureMockTurn))
		turn = *fallbackMockStart()
	}
	turn.Feedback = nil
	turn.SessionID = ulid.Make().String()
	return &turn, nil
}

// Next scores the latest answer and produces the next question. The
// transcript must contain at least one answered exchange.
func (s *InterviewService) Next(ctx context.Context, jd string, transcript []model.QA) (*model.MockTurn, error) {
	jd = strings.TrimSpace(jd)
	if err := validateJD(jd); err != nil {
		return nil, err
	}
	if err := validateTranscript(transcript); err != nil {
		return nil, err
	}
	s.metrics.IncAnalysisRequested(string(model.FeatureMockTurn))

	reply, err := s.complete(ctx, prompt.MockNext(jd, transcript))
	if err != nil {
		return nil, err
	}

	var turn model.MockTurn
	if !decodeReply(reply, &turn) || turn.Question == "" {
		s.metrics.IncFallbackServed(string(model.FeatureMockTurn))
		return fallbackMockNext(), nil
	}
	turn.SessionID = ""
	if turn.Feedback != nil {
		turn.Feedback.Score = clampScore(turn.Feedback.Score)
	}
	return &turn, nil
}

// Finish closes the interview with feedback on the last answer and an
// overall assessment of the transcript.
func (s *InterviewService) Finish(ctx context.Context, jd string, transcript []model.QA) (*model.MockAssessment, error) {
	jd = strings.TrimSpace(jd)
	if err := validateJD(jd); err != nil {
		return nil, err
	}
	if err := validateTranscript(transcript); err != nil {
		return nil, err
	}
	s.metrics.IncAnalysisRequested(string(model.FeatureMockTurn))

	reply, err := s.complete(ctx, prompt.MockFinish(jd, transcript))
	if err != nil {
		return nil, err
	}

	var assessment model.MockAssessment
	if !decodeReply(reply, &assessment) || mockAssessmentEmpty(&assessment) {
		s.metrics.IncFallbackServed(string(model.FeatureMockTurn))
		return fallbackMockFinish(), nil
	}

	assessment.OverallScore = clampScore(assessment.OverallScore)
	if assessment.Feedback != nil {
		assessment.Feedback.Score = clampScore(assessment.Feedback.Score)
	}
	s.publishAssessment(jd, &assessment)
	return &assessment, nil
}

func (s *InterviewService) complete(ctx context.Context, user string) (string, error) {
	start := time.Now()
	reply, err := s.llm.Complete(ctx, prompt.System, user)
	s.metrics.ObserveUpstreamDuration(time.Since(start))
	if err != nil {
		s.metrics.IncUpstreamError()
		return "", err
	}
	return reply, nil
}

// publishAssessment enqueues the final assessment for history persistence.
func (s *InterviewService) publishAssessment(jd string, assessment *model.MockAssessment) {
	if s.events == nil {
		return
	}
	data, err := json.Marshal(assessment)
	if err != nil {
		return
	}
	score := assessment.OverallScore
	s.events.PublishAsync(history.EventPayload{
		Feature:    string(model.FeatureMockTurn),
		JDDigest:   cache.JDDigest(jd),
		Model:      s.modelName,
		MatchScore: &score,
		Result:     string(data),
		CreatedAt:  time.Now().UnixMilli(),
	})
}

// validateTranscript ensures the caller sent at least one answered exchange
// and that no answer exceeds the size limit.
func validateTranscript(transcript []model.QA) error {
	answered := false
	for _, qa := range transcript {
		if len(qa.Answer) > MaxAnswerLength {
			return ErrAnswerTooLong
		}
		if strings.TrimSpace(qa.Answer) != "" {
			answered = true
		}
	}
	if !answered {
		return ErrMissingAnswer
	}
	return nil
}

func mockAssessmentEmpty(a *model.MockAssessment) bool {
	return a.OverallScore == 0 && a.Feedback == nil &&
		len(a.Strengths) == 0 && len(a.Improvements) == 0
}
