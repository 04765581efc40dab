// Package prompt assembles the instruction text sent to the upstream model.
// Each builder embeds the caller's text verbatim into a fixed template and
// demands a strict JSON reply so results can be decoded into typed structs.
package prompt

import (
	"fmt"
	"strings"

	"github.com/interviewiq/interviewiq/internal/model"
)

// System is the system message shared by all features.
const System = "You are an expert AI career coach and technical interviewer."

// JDAnalysis builds the prompt for analyzing a job description.
func JDAnalysis(jd string) string {
	return fmt.Sprintf(`Analyze this job description and return a JSON object with:
- required_skills: list of 8-12 key technical/soft skills required
- study_topics: list of 6-10 topics the candidate should study
- interview_questions: list of 8 likely interview questions, each as {"question": "...", "category": "Technical|Behavioral|Situational"}
- role_summary: 2-sentence summary of the role

JD:
%s

Return ONLY valid JSON, no other text.`, jd)
}

// ResumeMatch builds the prompt for comparing a resume against a JD.
func ResumeMatch(jd, resume string) string {
	return fmt.Sprintf(`Compare this resume against the job description and return a JSON object with:
- match_score: integer 0-100 indicating how well resume matches JD
- summary: 1-2 sentence overall assessment
- matched_skills: list of skills present in both JD and resume (max 10)
- missing_skills: list of skills required in JD but not in resume (max 8)
- gaps: list of gap objects {"area": "...", "description": "..."} (max 4)
- recommendations: list of 4-5 actionable recommendations to improve the match

JD:
%s

RESUME:
%s

Return ONLY valid JSON.`, jd, resume)
}

// PrepPlan builds the prompt for generating an interview study plan.
func PrepPlan(jd string) string {
	return fmt.Sprintf(`Create a comprehensive interview study plan for this job description. Return JSON with:
- study_schedule: overall study plan as a string (e.g. "Spend 3 days on core topics...")
- topics: list of 5-7 topic objects, each with:
  - name: topic name
  - priority: "High"|"Medium"|"Low"
  - study_time: estimated study time (e.g. "3-4 hours")
  - description: 1-2 sentence description
  - concepts: list of 4-6 key concepts to learn
  - resources: list of 3 specific resources/links to study
  - questions: list of 3 practice questions for this topic

JD:
%s

Return ONLY valid JSON.`, jd)
}

// MockStart builds the prompt for the opening mock interview question.
func MockStart(jd string) string {
	return fmt.Sprintf(`You are a technical interviewer. Generate the FIRST interview question for this role.
JD: %s

Return JSON with:
- question: the interview question (make it relevant, specific, not too easy)
- category: "Technical"|"Behavioral"|"Situational"

Return ONLY valid JSON.`, jd)
}

// MockNext builds the prompt for feedback on the last answer plus the
// next question.
func MockNext(jd string, history []model.QA) string {
	return fmt.Sprintf(`You are a technical interviewer. Generate feedback on the last answer AND the next question.

JD: %s
Previous Q&A:
%s

Return JSON with:
- feedback: object with score (0-100), verdict, good_points (list 2-3), improve_points (list 2-3), ideal_hint
- question: next interview question
- category: "Technical"|"Behavioral"|"Situational"

Return ONLY valid JSON.`, jd, RenderHistory(history))
}

// MockFinish builds the prompt for the final interview assessment.
func MockFinish(jd string, history []model.QA) string {
	return fmt.Sprintf(`You are a technical interviewer. Provide final assessment.

JD: %s
Full Q&A:
%s

Return JSON with:
- feedback: object with score, verdict, good_points, improve_points, ideal_hint
- overall_score: integer 0-100
- strengths: list of 3-4 overall strengths
- improvements: list of 3-4 key areas to improve

Return ONLY valid JSON.`, jd, RenderHistory(history))
}

// RenderHistory formats a Q&A transcript for inclusion in a prompt.
func RenderHistory(history []model.QA) string {
	lines := make([]string, 0, len(history))
	for _, qa := range history {
		lines = append(lines, fmt.Sprintf("Q: %s\nA: %s", qa.Question, qa.Answer))
	}
	return strings.Join(lines, "\n")
}
