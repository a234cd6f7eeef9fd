package threat

import (
	"reflect"
	"strings"
	"testing"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	registry, err := NewDefault()
	if err != nil {
		t.Fatalf("NewDefault() failed: %v", err)
	}
	return NewAnalyzer(registry)
}

func TestAnalyzeBenignContent(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.Analyze("hello, nice weather")

	if result.ThreatDetected {
		t.Error("benign content should not be detected as a threat")
	}
	if result.ThreatType != CategoryOther {
		t.Errorf("threat_type = %s, want %s", result.ThreatType, CategoryOther)
	}
	if result.ConfidenceScore != 0.0 {
		t.Errorf("confidence_score = %v, want exactly 0.0", result.ConfidenceScore)
	}
	if len(result.RecommendedActions) != 0 {
		t.Errorf("recommended_actions = %v, want empty", result.RecommendedActions)
	}
	if _, ok := Escalate(result, "detection-1"); ok {
		t.Error("benign content must not produce an escalation event")
	}
}

func TestAnalyzeCyberbullying(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.Analyze("you are so stupid and ugly, kill yourself!")

	if !result.ThreatDetected {
		t.Fatal("expected threat to be detected")
	}
	if result.ThreatType != CategoryCyberbullying {
		t.Errorf("threat_type = %s, want %s", result.ThreatType, CategoryCyberbullying)
	}
	if result.ConfidenceScore < 0.6 {
		t.Errorf("confidence_score = %v, want >= 0.6", result.ConfidenceScore)
	}
	if !result.ThreatLevel.AtLeast(SeverityHigh) {
		t.Errorf("threat_level = %s, want high or critical", result.ThreatLevel)
	}

	found := false
	for _, action := range result.RecommendedActions {
		if action == "Contact emergency services if feeling unsafe" {
			found = true
		}
	}
	if !found {
		t.Errorf("recommended_actions missing emergency guidance: %v", result.RecommendedActions)
	}

	event, ok := Escalate(result, "detection-1")
	if !ok {
		t.Fatal("expected an escalation event")
	}
	if event.Priority != PriorityHigh && event.Priority != PriorityUrgent {
		t.Errorf("priority = %q, want high or urgent", event.Priority)
	}
	if event.DetectionID != "detection-1" {
		t.Errorf("detection id = %q, want detection-1", event.DetectionID)
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	a := newTestAnalyzer(t)
	content := "urgent: click here to verify account, you stupid loser"

	first := a.Analyze(content)
	second := a.Analyze(content)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	a := newTestAnalyzer(t)

	once := a.Score("you idiot")[CategoryCyberbullying]
	twice := a.Score("you idiot, what an idiot")[CategoryCyberbullying]

	if twice < once {
		t.Errorf("adding matches decreased the score: %v -> %v", once, twice)
	}
	if once <= 0 {
		t.Errorf("expected a positive cyberbullying score, got %v", once)
	}
}

func TestSeverityThresholds(t *testing.T) {
	cases := []struct {
		confidence float64
		want       Severity
	}{
		{0.0, SeverityLow},
		{0.2, SeverityLow},
		{0.29, SeverityLow},
		{0.3, SeverityMedium}, // boundary is closed
		{0.59, SeverityMedium},
		{0.6, SeverityHigh},
		{0.79, SeverityHigh},
		{0.8, SeverityCritical},
		{1.0, SeverityCritical},
	}

	for _, tc := range cases {
		if got := severityFor(tc.confidence); got != tc.want {
			t.Errorf("severityFor(%v) = %s, want %s", tc.confidence, got, tc.want)
		}
	}
}

func TestDetectionThresholdIsStrict(t *testing.T) {
	// threat_detected uses a strict > 0.2 comparison, independent of the
	// 0.3 medium boundary.
	if detectionThreshold == mediumThreshold {
		t.Fatal("detection and medium thresholds must stay distinct")
	}
	if 0.2 > detectionThreshold {
		t.Error("confidence of exactly 0.2 must not count as detected")
	}
	if !(0.21 > detectionThreshold) {
		t.Error("confidence of 0.21 must count as detected")
	}
}

func TestConfidenceClamping(t *testing.T) {
	a := newTestAnalyzer(t)

	// 10 matches at 0.3 each, raw score 3.0.
	result := a.Analyze(strings.Repeat("stupid ", 10))

	if result.ConfidenceScore != 1.0 {
		t.Errorf("confidence_score = %v, want exactly 1.0", result.ConfidenceScore)
	}
	if result.ThreatLevel != SeverityCritical {
		t.Errorf("threat_level = %s, want critical", result.ThreatLevel)
	}
}

func TestTieBreakFollowsRegistryOrder(t *testing.T) {
	a := newTestAnalyzer(t)

	// One harassment match and one phishing match, equal raw scores.
	// Harassment precedes phishing in the registry order and must win.
	result := a.Analyze("watching you. click here")

	scores := a.Score("watching you. click here")
	if scores[CategoryHarassment] != scores[CategoryPhishing] {
		t.Fatalf("test content must score equally, got harassment=%v phishing=%v",
			scores[CategoryHarassment], scores[CategoryPhishing])
	}
	if result.ThreatType != CategoryHarassment {
		t.Errorf("threat_type = %s, want %s (first in registry order)", result.ThreatType, CategoryHarassment)
	}
}

func TestRecommendationsOrder(t *testing.T) {
	a := newTestAnalyzer(t)

	// Two cyberbullying matches, confidence 0.6: recommendations plus the
	// high-severity extras, in the documented order.
	result := a.Analyze("you worthless freak")

	want := []string{
		"Document this content as evidence",
		"Report to platform administrators",
		"Consider blocking the sender",
		"Contact emergency services if feeling unsafe",
		"Inform trusted contacts about the situation",
	}
	if !reflect.DeepEqual(result.RecommendedActions, want) {
		t.Errorf("recommended_actions = %v, want %v", result.RecommendedActions, want)
	}
}

func TestRecommendationsBelowThreshold(t *testing.T) {
	a := newTestAnalyzer(t)

	// Single match, confidence 0.3: detected, but no recommendations.
	result := a.Analyze("you are a loser")

	if !result.ThreatDetected {
		t.Error("expected single-match content to count as detected")
	}
	if len(result.RecommendedActions) != 0 {
		t.Errorf("recommended_actions = %v, want empty at confidence <= 0.5", result.RecommendedActions)
	}
}
