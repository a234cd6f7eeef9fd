package threat

import (
	"reflect"
	"testing"
)

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New([]Rule{{CategoryPhishing, `[unclosed`, defaultWeight}})
	if err == nil {
		t.Fatal("expected an error for an uncompilable pattern")
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry, err := NewDefault()
	if err != nil {
		t.Fatalf("NewDefault() failed: %v", err)
	}

	wantOrder := []Category{
		CategoryCyberbullying,
		CategoryHarassment,
		CategoryInappropriateContent,
		CategoryPhishing,
	}
	if !reflect.DeepEqual(registry.Categories(), wantOrder) {
		t.Errorf("category order = %v, want %v", registry.Categories(), wantOrder)
	}

	for _, cat := range wantOrder {
		if n := registry.RuleCount(cat); n != 2 {
			t.Errorf("category %s: rule count = %d, want 2", cat, n)
		}
	}
	if n := registry.RuleCount(CategoryOther); n != 0 {
		t.Errorf("category other must have no rules, got %d", n)
	}
}

func TestAnalyzerWithCustomRules(t *testing.T) {
	// The registry is injected, so the pipeline runs against any rule set.
	registry, err := New([]Rule{
		{CategoryPhishing, `\bfree bitcoin\b`, 0.7},
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	a := NewAnalyzer(registry)

	result := a.Analyze("Claim your FREE BITCOIN now")

	if result.ThreatType != CategoryPhishing {
		t.Errorf("threat_type = %s, want %s", result.ThreatType, CategoryPhishing)
	}
	if result.ConfidenceScore != 0.7 {
		t.Errorf("confidence_score = %v, want 0.7", result.ConfidenceScore)
	}
	if result.ThreatLevel != SeverityHigh {
		t.Errorf("threat_level = %s, want high", result.ThreatLevel)
	}
}

func TestPatternsMatchCaseInsensitively(t *testing.T) {
	a := newTestAnalyzer(t)

	lower := a.Score("verify account")[CategoryPhishing]
	upper := a.Score("VERIFY ACCOUNT")[CategoryPhishing]

	if lower != upper {
		t.Errorf("case changed the score: %v vs %v", lower, upper)
	}
	if lower == 0 {
		t.Error("expected a phishing match")
	}
}
