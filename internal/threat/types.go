package threat

// Category is a closed class of harmful content the analyzer recognizes.
// Adding a category means adding a constant here, extending DefaultRules and
// updating every switch the compiler then complains about.
type Category string

const (
	CategoryCyberbullying        Category = "cyberbullying"
	CategoryHarassment           Category = "harassment"
	CategoryInappropriateContent Category = "inappropriate_content"
	CategoryPhishing             Category = "phishing"
	// CategoryOther is the fallback when no pattern matched at all.
	CategoryOther Category = "other"
)

// Severity is the coarse threat bucket derived from the confidence score.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// rank gives severities their total order: low < medium < high < critical.
func (s Severity) rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	}
	return -1
}

// AtLeast reports whether s is as severe as other or more so.
func (s Severity) AtLeast(other Severity) bool {
	return s.rank() >= other.rank()
}

// Result is the outcome of analyzing a single piece of content. It is fully
// determined by the content and the rule set the Analyzer was built with.
type Result struct {
	ThreatDetected     bool     `json:"threat_detected"`
	ThreatType         Category `json:"threat_type"`
	ThreatLevel        Severity `json:"threat_level"`
	ConfidenceScore    float64  `json:"confidence_score"`
	Explanation        string   `json:"explanation"`
	RecommendedActions []string `json:"recommended_actions"`
}
