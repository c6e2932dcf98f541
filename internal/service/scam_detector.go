package service

import (
	"regexp"

	"contract-analyzer/internal/domain"
)

// scamContextWindow is wider than the clause window: fraud indicators
// tend to need more surrounding text to be recognizable in a report.
const scamContextWindow = 100

const (
	scamHighSeverityThreshold = 2
	scamTotalThreshold        = 4
)

type compiledScamRule struct {
	re   *regexp.Regexp
	rule domain.ScamRule
}

// ScamDetector is a second, independent pattern engine configured with
// fraud-indicator rules and a severity-weighted decision threshold.
type ScamDetector struct {
	rules []compiledScamRule
}

// NewScamDetector compiles the scam rule table. Patterns are matched
// case-insensitively; an invalid pattern panics, as with NewPatternEngine.
func NewScamDetector(scamRules []domain.ScamRule) *ScamDetector {
	compiled := make([]compiledScamRule, 0, len(scamRules))
	for _, r := range scamRules {
		compiled = append(compiled, compiledScamRule{
			re:   regexp.MustCompile("(?i)" + r.Pattern),
			rule: r,
		})
	}
	return &ScamDetector{rules: compiled}
}

// Detect scans the text for fraud indicators. The likely-scam verdict is
// a plain threshold, not a score: two high-severity indicators, or four
// indicators of any severity. False positives are acceptable because the
// verdict only gates a warning, never the analysis itself.
func (d *ScamDetector) Detect(text string) ([]domain.ScamIndicator, bool) {
	var indicators []domain.ScamIndicator
	seen := make(map[string]bool)
	highCount := 0

	for _, cr := range d.rules {
		for _, span := range cr.re.FindAllStringIndex(text, -1) {
			snippet := contextSnippet(text, span[0], span[1], scamContextWindow)
			if seen[snippet] {
				continue
			}
			seen[snippet] = true

			indicators = append(indicators, domain.ScamIndicator{
				Indicator: cr.rule.Indicator,
				Severity:  cr.rule.Severity,
				Context:   snippet,
			})
			if cr.rule.Severity == domain.SeverityHigh {
				highCount++
			}
		}
	}

	likely := highCount >= scamHighSeverityThreshold || len(indicators) >= scamTotalThreshold
	return indicators, likely
}
