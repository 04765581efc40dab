// Package model defines domain entities for the application.
package model

import "time"

// Feature identifies which coaching feature produced a result.
type Feature string

const (
	FeatureJDAnalysis  Feature = "jd_analysis"
	FeatureResumeMatch Feature = "resume_match"
	FeaturePrepPlan    Feature = "prep_plan"
	FeatureMockTurn    Feature = "mock_interview"
)

// IsValid checks if the feature is a known value.
func (f Feature) IsValid() bool {
	switch f {
	case FeatureJDAnalysis, FeatureResumeMatch, FeaturePrepPlan, FeatureMockTurn:
		return true
	}
	return false
}

// Category classifies an interview question.
type Category string

const (
	CategoryTechnical   Category = "Technical"
	CategoryBehavioral  Category = "Behavioral"
	CategorySituational Category = "Situational"
)

// IsValid checks if the category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTechnical, CategoryBehavioral, CategorySituational:
		return true
	}
	return false
}

// InterviewQuestion is a single predicted interview question.
type InterviewQuestion struct {
	Question string   `json:"question"`
	Category Category `json:"category"`
}

// JDAnalysis is the structured breakdown of a job description.
type JDAnalysis struct {
	RequiredSkills     []string            `json:"required_skills"`
	StudyTopics        []string            `json:"study_topics"`
	InterviewQuestions []InterviewQuestion `json:"interview_questions"`
	RoleSummary        string              `json:"role_summary"`
}

// SkillGap describes an area where the resume falls short of the JD.
type SkillGap struct {
	Area        string `json:"area"`
	Description string `json:"description"`
}

// ResumeMatch is the comparison of a resume against a job description.
type ResumeMatch struct {
	MatchScore      int        `json:"match_score"`
	Summary         string     `json:"summary"`
	MatchedSkills   []string   `json:"matched_skills"`
	MissingSkills   []string   `json:"missing_skills"`
	Gaps            []SkillGap `json:"gaps"`
	Recommendations []string   `json:"recommendations"`
}

// PrepTopic is one study topic inside a preparation plan.
type PrepTopic struct {
	Name        string   `json:"name"`
	Priority    string   `json:"priority"` // High | Medium | Low
	StudyTime   string   `json:"study_time"`
	Description string   `json:"description"`
	Concepts    []string `json:"concepts"`
	Resources   []string `json:"resources"`
	Questions   []string `json:"questions"`
}

// PrepPlan is a generated interview study plan.
type PrepPlan struct {
	StudySchedule string      `json:"study_schedule"`
	Topics        []PrepTopic `json:"topics"`
}

// QA is one question/answer exchange in a mock interview.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnswerFeedback is the interviewer's assessment of a single answer.
type AnswerFeedback struct {
	Score         int      `json:"score"`
	Verdict       string   `json:"verdict"`
	GoodPoints    []string `json:"good_points"`
	ImprovePoints []string `json:"improve_points"`
	IdealHint     string   `json:"ideal_hint"`
}

// MockTurn is the interviewer's reply for one mock interview exchange.
// Feedback is nil on the opening turn.
type MockTurn struct {
	SessionID string          `json:"session_id,omitempty"`
	Feedback  *AnswerFeedback `json:"feedback,omitempty"`
	Question  string          `json:"question"`
	Category  Category        `json:"category"`
}

// MockAssessment is the closing summary of a mock interview.
type MockAssessment struct {
	Feedback     *AnswerFeedback `json:"feedback,omitempty"`
	OverallScore int             `json:"overall_score"`
	Strengths    []string        `json:"strengths"`
	Improvements []string        `json:"improvements"`
}

// AnalysisRecord is a persisted analysis result.
// EventID is the Redis stream message id and doubles as the idempotency key.
type AnalysisRecord struct {
	ID            string    `json:"id"`
	EventID       string    `json:"-"`
	Feature       Feature   `json:"feature"`
	JDDigest      string    `json:"jd_digest"`
	Model         string    `json:"model"`
	MatchScore    *int      `json:"match_score,omitempty"`
	MatchedSkills []string  `json:"matched_skills,omitempty"`
	MissingSkills []string  `json:"missing_skills,omitempty"`
	Result        []byte    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
