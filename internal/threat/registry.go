package threat

import (
	"fmt"
	"regexp"
)

// defaultWeight is the score contribution of a single pattern match.
const defaultWeight = 0.3

// Rule pairs one category with one match expression. Expressions are
// compiled case-insensitively when the Registry is built.
type Rule struct {
	Category Category
	Expr     string
	Weight   float64
}

type compiledRule struct {
	re     *regexp.Regexp
	weight float64
}

// Registry is the immutable pattern table the Analyzer scores against.
// It is built once at startup and is safe for concurrent reads without
// locking; nothing mutates it after New returns. Swapping rule sets at
// runtime means building a new Registry, never editing an existing one.
type Registry struct {
	byCategory map[Category][]compiledRule
	order      []Category
}

// New compiles the given rules into a Registry. A rule that fails to
// compile is a configuration error: the caller is expected to treat it as
// fatal at process start rather than degrade per-request.
func New(rules []Rule) (*Registry, error) {
	r := &Registry{byCategory: make(map[Category][]compiledRule)}

	for _, rule := range rules {
		re, err := regexp.Compile("(?i)" + rule.Expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q for category %s: %w", rule.Expr, rule.Category, err)
		}
		if _, seen := r.byCategory[rule.Category]; !seen {
			r.order = append(r.order, rule.Category)
		}
		r.byCategory[rule.Category] = append(r.byCategory[rule.Category], compiledRule{re: re, weight: rule.Weight})
	}

	return r, nil
}

// NewDefault builds the Registry from the built-in rule table.
func NewDefault() (*Registry, error) {
	return New(DefaultRules())
}

// Categories returns the scoring order of the registered categories.
// The order is a contract: on tied scores the Analyzer keeps the first
// category encountered here, so callers must not rely on map iteration.
func (r *Registry) Categories() []Category {
	return r.order
}

// RuleCount returns the number of compiled rules for a category.
func (r *Registry) RuleCount(cat Category) int {
	return len(r.byCategory[cat])
}

// DefaultRules is the built-in threat pattern table. Each match adds the
// same fixed weight to its category's raw score.
func DefaultRules() []Rule {
	return []Rule{
		{CategoryCyberbullying, `\b(stupid|idiot|loser|ugly|fat|worthless|kill yourself|die)\b`, defaultWeight},
		{CategoryCyberbullying, `\b(hate you|disgusting|pathetic|freak)\b`, defaultWeight},
		{CategoryHarassment, `\b(follow you|watching you|know where you live|find you)\b`, defaultWeight},
		{CategoryHarassment, `\b(won't leave you alone|obsessed|stalking)\b`, defaultWeight},
		{CategoryInappropriateContent, `\b(send nudes|naked|sexy pics|inappropriate)\b`, defaultWeight},
		{CategoryInappropriateContent, `\b(sexual|explicit|adult content)\b`, defaultWeight},
		{CategoryPhishing, `\b(click here|urgent|verify account|suspended)\b`, defaultWeight},
		{CategoryPhishing, `\b(winner|congratulations|claim prize|free money)\b`, defaultWeight},
	}
}
