// Package threat implements the content-threat classification pipeline:
// scoring free text against a compiled pattern registry, deriving a severity
// level, generating recommended actions and deciding whether a detection
// must be escalated. Every operation is pure and synchronous; the only
// shared state is the immutable Registry.
package threat

import (
	"fmt"
	"math"
	"strings"
)

// Severity thresholds over the confidence score. The boundaries are closed
// on the lower side: exactly 0.8 is critical, exactly 0.6 is high, exactly
// 0.3 is medium.
const (
	criticalThreshold = 0.8
	highThreshold     = 0.6
	mediumThreshold   = 0.3

	// detectionThreshold is deliberately below mediumThreshold: a single
	// weak match counts as detected while still classifying as low. The
	// comparison is strict, a confidence of exactly 0.2 is not a detection.
	detectionThreshold = 0.2

	// recommendThreshold gates the recommended-action list.
	recommendThreshold = 0.5
)

var baseRecommendations = []string{
	"Document this content as evidence",
	"Report to platform administrators",
	"Consider blocking the sender",
}

var urgentRecommendations = []string{
	"Contact emergency services if feeling unsafe",
	"Inform trusted contacts about the situation",
}

// Analyzer scores content against an immutable Registry. It holds no other
// state, so a single Analyzer may serve any number of concurrent calls.
type Analyzer struct {
	registry *Registry
}

func NewAnalyzer(registry *Registry) *Analyzer {
	return &Analyzer{registry: registry}
}

// Score computes the raw per-category score for content: for every rule in
// a category, the count of non-overlapping matches times the rule weight,
// summed across the category's rules. Deterministic and side-effect-free.
func (a *Analyzer) Score(content string) map[Category]float64 {
	lowered := strings.ToLower(content)

	scores := make(map[Category]float64, len(a.registry.order))
	for _, cat := range a.registry.order {
		var total float64
		for _, rule := range a.registry.byCategory[cat] {
			matches := len(rule.re.FindAllStringIndex(lowered, -1))
			total += float64(matches) * rule.weight
		}
		scores[cat] = total
	}
	return scores
}

// Analyze runs the full pipeline over a single pre-validated content string.
// The winning category is the one with the strictly greatest raw score in
// Registry order, so the first category encountered keeps a tie. When no
// pattern matches the result is CategoryOther with confidence zero.
func (a *Analyzer) Analyze(content string) Result {
	scores := a.Score(content)

	primary := CategoryOther
	var maxScore float64
	for _, cat := range a.registry.order {
		if scores[cat] > maxScore {
			maxScore = scores[cat]
			primary = cat
		}
	}

	confidence := math.Min(maxScore, 1.0)
	level := severityFor(confidence)

	return Result{
		ThreatDetected:     confidence > detectionThreshold,
		ThreatType:         primary,
		ThreatLevel:        level,
		ConfidenceScore:    confidence,
		Explanation:        fmt.Sprintf("Detected potential %s with %s severity level", primary, level),
		RecommendedActions: recommendationsFor(confidence, level),
	}
}

func severityFor(confidence float64) Severity {
	switch {
	case confidence >= criticalThreshold:
		return SeverityCritical
	case confidence >= highThreshold:
		return SeverityHigh
	case confidence >= mediumThreshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// recommendationsFor returns the fixed, ordered action list. Callers display
// it verbatim; it is never sorted or deduplicated.
func recommendationsFor(confidence float64, level Severity) []string {
	if confidence <= recommendThreshold {
		return []string{}
	}

	actions := make([]string, 0, len(baseRecommendations)+len(urgentRecommendations))
	actions = append(actions, baseRecommendations...)
	if level.AtLeast(SeverityHigh) {
		actions = append(actions, urgentRecommendations...)
	}
	return actions
}
