package prompt

import (
	"strings"
	"testing"

	"github.com/interviewiq/interviewiq/internal/model"
)

const sampleJD = "Senior Backend Engineer, Python, AWS"

// Every builder must embed the submitted JD text verbatim.
func TestBuilders_EmbedJDVerbatim(t *testing.T) {
	history := []model.QA{{Question: "Q1", Answer: "A1"}}

	tests := []struct {
		name   string
		prompt string
	}{
		{"jd analysis", JDAnalysis(sampleJD)},
		{"resume match", ResumeMatch(sampleJD, "resume text")},
		{"prep plan", PrepPlan(sampleJD)},
		{"mock start", MockStart(sampleJD)},
		{"mock next", MockNext(sampleJD, history)},
		{"mock finish", MockFinish(sampleJD, history)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.prompt, sampleJD) {
				t.Errorf("prompt does not contain JD text verbatim:\n%s", tt.prompt)
			}
			if !strings.Contains(tt.prompt, "JSON") {
				t.Errorf("prompt does not demand JSON output:\n%s", tt.prompt)
			}
		})
	}
}

func TestResumeMatch_EmbedsResumeVerbatim(t *testing.T) {
	resume := "10 years of Go.\nBuilt payment systems at scale."

	p := ResumeMatch(sampleJD, resume)

	if !strings.Contains(p, resume) {
		t.Errorf("prompt does not contain resume text verbatim:\n%s", p)
	}
}

func TestRenderHistory(t *testing.T) {
	history := []model.QA{
		{Question: "Tell me about yourself.", Answer: "I am a backend engineer."},
		{Question: "Describe a hard bug.", Answer: "A race in our job queue."},
	}

	got := RenderHistory(history)
	want := "Q: Tell me about yourself.\nA: I am a backend engineer.\nQ: Describe a hard bug.\nA: A race in our job queue."

	if got != want {
		t.Errorf("RenderHistory() = %q, want %q", got, want)
	}
}

func TestRenderHistory_Empty(t *testing.T) {
	if got := RenderHistory(nil); got != "" {
		t.Errorf("expected empty transcript, got %q", got)
	}
}
