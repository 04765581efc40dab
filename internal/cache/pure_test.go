package cache

import (
	"strings"
	"testing"
)

func TestAnalysisKey_Deterministic(t *testing.T) {
	jd := "Senior Backend Engineer, Python, AWS"

	k1 := AnalysisKey("jd_analysis", "llama-3.3-70b-versatile", jd)
	k2 := AnalysisKey("jd_analysis", "llama-3.3-70b-versatile", jd)

	if k1 != k2 {
		t.Errorf("same input must produce same key: %q vs %q", k1, k2)
	}
	if !strings.HasPrefix(k1, "analysis:jd_analysis:") {
		t.Errorf("unexpected key shape: %q", k1)
	}
}

func TestAnalysisKey_VariesByInput(t *testing.T) {
	base := AnalysisKey("jd_analysis", "llama-3.3-70b-versatile", "jd text")

	byJD := AnalysisKey("jd_analysis", "llama-3.3-70b-versatile", "other jd")
	if byJD == base {
		t.Error("different JD text must produce a different key")
	}

	byModel := AnalysisKey("jd_analysis", "gpt-4o-mini", "jd text")
	if byModel == base {
		t.Error("different model must produce a different key")
	}

	byFeature := AnalysisKey("prep_plan", "llama-3.3-70b-versatile", "jd text")
	if byFeature == base {
		t.Error("different feature must produce a different key")
	}
}

func TestAnalysisKey_FixedLengthForLongInput(t *testing.T) {
	short := AnalysisKey("jd_analysis", "m", "short")
	long := AnalysisKey("jd_analysis", "m", strings.Repeat("very long jd ", 10000))

	if len(short) != len(long) {
		t.Errorf("key length must not depend on JD length: %d vs %d", len(short), len(long))
	}
}

func TestJDDigest(t *testing.T) {
	d := JDDigest("some jd")

	if len(d) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(d))
	}
	if d == JDDigest("another jd") {
		t.Error("different JDs must produce different digests")
	}
}

func TestHashIP(t *testing.T) {
	h := hashIP("203.0.113.7")

	if len(h) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(h))
	}
	if h == "203.0.113.7" {
		t.Error("raw IP must not appear in the key")
	}
	if h != hashIP("203.0.113.7") {
		t.Error("hash must be deterministic")
	}
}
