package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"contract-analyzer/internal/domain"
)

// clauseContextWindow is how many characters of surrounding context are
// captured around a clause-rule match.
const clauseContextWindow = 50

// PatternOptions tunes a PatternEngine. The zero value reproduces the
// original behavior: 50-character context windows and duplicate snippets
// suppressed across all risk buckets.
type PatternOptions struct {
	// ContextWindow is the number of characters captured before and
	// after each match. Zero means clauseContextWindow.
	ContextWindow int
	// BucketScopedDedup restricts duplicate suppression to matches in
	// the same bucket. Off by default: the original suppressed a snippet
	// anywhere once any bucket had collected it, which can hide a
	// distinct violates match behind an earlier safe one.
	BucketScopedDedup bool
}

type compiledRiskRule struct {
	re   *regexp.Regexp
	rule domain.RiskRule
	law  domain.LawEntry
}

// PatternEngine scans text against an ordered list of clause risk rules.
// Rules are compiled once at construction; the engine itself is
// immutable and safe for unlimited concurrent readers.
type PatternEngine struct {
	rules []compiledRiskRule
	opts  PatternOptions
}

// NewPatternEngine compiles the rule table against the law reference
// table. Patterns are matched case-insensitively. Construction panics on
// an invalid pattern: rule tables are validated at startup, so a bad
// pattern here is a programming error, not a user-facing condition.
func NewPatternEngine(riskRules []domain.RiskRule, laws map[string]domain.LawEntry, opts PatternOptions) *PatternEngine {
	if opts.ContextWindow <= 0 {
		opts.ContextWindow = clauseContextWindow
	}
	compiled := make([]compiledRiskRule, 0, len(riskRules))
	for _, r := range riskRules {
		law, ok := laws[r.LawRef]
		if !ok {
			law = domain.GeneralLawEntry
		}
		compiled = append(compiled, compiledRiskRule{
			re:   regexp.MustCompile("(?i)" + r.Pattern),
			rule: r,
			law:  law,
		})
	}
	return &PatternEngine{rules: compiled, opts: opts}
}

// ScanChunks scans each chunk in order against every rule and groups the
// matches by risk bucket. A region may match multiple rules; that is
// intentional, since rules represent distinct legal concerns. Matches
// from later chunks whose snippet exactly equals an already-collected
// snippet are suppressed, which bounds report size when a risky phrase
// repeats or spans a chunk boundary.
func (e *PatternEngine) ScanChunks(chunks []domain.TextChunk) *domain.ClauseBuckets {
	buckets := &domain.ClauseBuckets{}
	seen := make(map[string]bool)

	for _, chunk := range chunks {
		for _, cr := range e.rules {
			for _, span := range cr.re.FindAllStringIndex(chunk.Text, -1) {
				snippet := contextSnippet(chunk.Text, span[0], span[1], e.opts.ContextWindow)
				key := snippet
				if e.opts.BucketScopedDedup {
					key = string(cr.rule.Risk) + "\x00" + snippet
				}
				if seen[key] {
					continue
				}
				seen[key] = true

				match := domain.ClauseMatch{
					Clause:      snippet,
					Explanation: cr.rule.Explanation,
					Law:         cr.law.Title,
					LawLink:     cr.law.URL,
				}
				switch cr.rule.Risk {
				case domain.RiskBucketSafe:
					buckets.Safe = append(buckets.Safe, match)
				case domain.RiskBucketAttention:
					buckets.Attention = append(buckets.Attention, match)
				case domain.RiskBucketViolates:
					buckets.Violates = append(buckets.Violates, match)
				}
			}
		}
	}

	return buckets
}

// Scan scans a single undivided text.
func (e *PatternEngine) Scan(text string) *domain.ClauseBuckets {
	return e.ScanChunks([]domain.TextChunk{{Index: 0, Text: text}})
}

// ClassifyRisk reduces clause buckets to one ordinal risk level.
// Presence, not count, drives the level: any violates match means high,
// otherwise any attention match means medium, otherwise low.
func ClassifyRisk(buckets *domain.ClauseBuckets) domain.RiskLevel {
	switch {
	case len(buckets.Violates) > 0:
		return domain.RiskHigh
	case len(buckets.Attention) > 0:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// contextSnippet returns a trimmed window of text around [start, end),
// extended by window runes on each side and clamped to the text bounds.
// Counting runes rather than bytes keeps the window from splitting a
// multibyte character, common in German contract text.
func contextSnippet(text string, start, end, window int) string {
	lo := start
	for i := 0; i < window && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi := end
	for i := 0; i < window && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}
	return strings.TrimSpace(text[lo:hi])
}
