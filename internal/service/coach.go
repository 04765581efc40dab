package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/interviewiq/interviewiq/internal/cache"
	"github.com/interviewiq/interviewiq/internal/history"
	"github.com/interviewiq/interviewiq/internal/llm"
	"github.com/interviewiq/interviewiq/internal/metrics"
	"github.com/interviewiq/interviewiq/internal/model"
	"github.com/interviewiq/interviewiq/internal/prompt"
)

// ResultCache stores analysis results keyed by feature, model and JD text.
type ResultCache interface {
	GetAnalysis(ctx context.Context, key string) ([]byte, error)
	SetAnalysis(ctx context.Context, key string, result []byte, ttl time.Duration) error
}

// EventPublisher enqueues completed analyses for asynchronous persistence.
type EventPublisher interface {
	PublishAsync(event history.EventPayload)
}

// CoachService runs the JD-driven coaching features: JD analysis,
// resume matching and prep-plan generation.
type CoachService struct {
	llm       llm.Client
	cache     ResultCache
	events    EventPublisher
	metrics   metrics.Recorder
	logger    *slog.Logger
	modelName string
	cacheTTL  time.Duration
}

// NewCoachService creates a coaching service. Cache and events may be nil,
// in which case caching and history persistence are skipped.
func NewCoachService(client llm.Client, resultCache ResultCache, events EventPublisher, recorder metrics.Recorder, logger *slog.Logger, modelName string, cacheTTL time.Duration) *CoachService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if cacheTTL <= 0 {
		cacheTTL = cache.DefaultAnalysisTTL
	}
	return &CoachService{
		llm:       client,
		cache:     resultCache,
		events:    events,
		metrics:   recorder,
		logger:    logger.With("component", "service.coach"),
		modelName: modelName,
		cacheTTL:  cacheTTL,
	}
}

// AnalyzeJD breaks a job description into skills, study topics, likely
// questions and a role summary. Results are cached per JD and model.
func (s *CoachService) AnalyzeJD(ctx context.Context, jd string) (*model.JDAnalysis, error) {
	jd = strings.TrimSpace(jd)
	if err := validateJD(jd); err != nil {
		return nil, err
	}
	s.metrics.IncAnalysisRequested(string(model.FeatureJDAnalysis))

	key := cache.AnalysisKey(string(model.FeatureJDAnalysis), s.modelName, jd)
	var cached model.JDAnalysis
	if s.cacheLookup(ctx, model.FeatureJDAnalysis, key, &cached) {
		return &cached, nil
	}

	reply, err := s.complete(ctx, prompt.JDAnalysis(jd))
	if err != nil {
		return nil, err
	}

	var result model.JDAnalysis
	if !decodeReply(reply, &result) || jdAnalysisEmpty(&result) {
		s.serveFallback(model.FeatureJDAnalysis)
		return fallbackJDAnalysis(), nil
	}

	s.cacheStore(ctx, key, &result)
	s.publishEvent(model.FeatureJDAnalysis, jd, &result, nil, nil, nil)
	return &result, nil
}

// MatchResume compares a resume against a job description. Results are not
// cached because the resume text varies per caller.
func (s *CoachService) MatchResume(ctx context.Context, jd, resume string) (*model.ResumeMatch, error) {
	jd = strings.TrimSpace(jd)
	resume = strings.TrimSpace(resume)
	if err := validateJD(jd); err != nil {
		return nil, err
	}
	if resume == "" {
		return nil, ErrMissingResume
	}
	if len(resume) > MaxResumeLength {
		return nil, ErrResumeTooLong
	}
	s.metrics.IncAnalysisRequested(string(model.FeatureResumeMatch))

	reply, err := s.complete(ctx, prompt.ResumeMatch(jd, resume))
	if err != nil {
		return nil, err
	}

	var result model.ResumeMatch
	if !decodeReply(reply, &result) || resumeMatchEmpty(&result) {
		s.serveFallback(model.FeatureResumeMatch)
		return fallbackResumeMatch(), nil
	}

	score := clampScore(result.MatchScore)
	result.MatchScore = score
	s.publishEvent(model.FeatureResumeMatch, jd, &result, &score, result.MatchedSkills, result.MissingSkills)
	return &result, nil
}

// BuildPrepPlan generates a prioritized study plan for a job description.
// Results are cached per JD and model.
func (s *CoachService) BuildPrepPlan(ctx context.Context, jd string) (*model.PrepPlan, error) {
	jd = strings.TrimSpace(jd)
	if err := validateJD(jd); err != nil {
		return nil, err
	}
	s.metrics.IncAnalysisRequested(string(model.FeaturePrepPlan))

	key := cache.AnalysisKey(string(model.FeaturePrepPlan), s.modelName, jd)
	var cached model.PrepPlan
	if s.cacheLookup(ctx, model.FeaturePrepPlan, key, &cached) {
		return &cached, nil
	}

	reply, err := s.complete(ctx, prompt.PrepPlan(jd))
	if err != nil {
		return nil, err
	}

	var result model.PrepPlan
	if !decodeReply(reply, &result) || prepPlanEmpty(&result) {
		s.serveFallback(model.FeaturePrepPlan)
		return fallbackPrepPlan(), nil
	}

	s.cacheStore(ctx, key, &result)
	s.publishEvent(model.FeaturePrepPlan, jd, &result, nil, nil, nil)
	return &result, nil
}

// complete calls the upstream model and records duration and error metrics.
func (s *CoachService) complete(ctx context.Context, user string) (string, error) {
	start := time.Now()
	reply, err := s.llm.Complete(ctx, prompt.System, user)
	s.metrics.ObserveUpstreamDuration(time.Since(start))
	if err != nil {
		s.metrics.IncUpstreamError()
		return "", err
	}
	return reply, nil
}

// cacheLookup loads a cached result into dst. A hit returns true; misses,
// decode failures and cache errors all count as misses.
func (s *CoachService) cacheLookup(ctx context.Context, feature model.Feature, key string, dst any) bool {
	if s.cache == nil {
		return false
	}

	data, err := s.cache.GetAnalysis(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("cache lookup failed", "feature", feature, "error", err)
		}
		s.metrics.IncCacheMiss(string(feature))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("cached result corrupt, ignoring", "feature", feature, "error", err)
		s.metrics.IncCacheMiss(string(feature))
		return false
	}

	s.metrics.IncCacheHit(string(feature))
	return true
}

// cacheStore writes a successful result to the cache. Failures are logged
// and swallowed so a cache outage never fails the request.
func (s *CoachService) cacheStore(ctx context.Context, key string, result any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.SetAnalysis(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache store failed", "error", err)
	}
}

// publishEvent enqueues a history event for a successful analysis.
// Fallback results are never published.
func (s *CoachService) publishEvent(feature model.Feature, jd string, result any, score *int, matched, missing []string) {
	if s.events == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	s.events.PublishAsync(history.EventPayload{
		Feature:       string(feature),
		JDDigest:      cache.JDDigest(jd),
		Model:         s.modelName,
		MatchScore:    score,
		MatchedSkills: matched,
		MissingSkills: missing,
		Result:        string(data),
		CreatedAt:     time.Now().UnixMilli(),
	})
}

func (s *CoachService) serveFallback(feature model.Feature) {
	s.logger.Warn("upstream reply not decodable, serving fallback", "feature", feature)
	s.metrics.IncFallbackServed(string(feature))
}

// validateJD checks presence and size of the job description text.
func validateJD(jd string) error {
	if jd == "" {
		return ErrMissingJD
	}
	if len(jd) > MaxJDLength {
		return ErrJDTooLong
	}
	return nil
}

// decodeReply strips markdown fences from the model reply and decodes the
// JSON body into dst. Returns false when the reply is not usable JSON.
func decodeReply(reply string, dst any) bool {
	cleaned := llm.ExtractJSON(reply)
	if cleaned == "" {
		return false
	}
	return json.Unmarshal([]byte(cleaned), dst) == nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Emptiness checks mirror the upstream contract: a structurally valid but
// hollow reply is treated the same as an undecodable one.

func jdAnalysisEmpty(a *model.JDAnalysis) bool {
	return len(a.RequiredSkills) == 0 && len(a.StudyTopics) == 0 &&
		len(a.InterviewQuestions) == 0 && a.RoleSummary == ""
}

func resumeMatchEmpty(m *model.ResumeMatch) bool {
	return m.Summary == "" && m.MatchScore == 0 &&
		len(m.MatchedSkills) == 0 && len(m.MissingSkills) == 0
}

func prepPlanEmpty(p *model.PrepPlan) bool {
	return p.StudySchedule == "" && len(p.Topics) == 0
}
