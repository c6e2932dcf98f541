package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"contract-analyzer/internal/domain"
	"contract-analyzer/internal/rules"
)

func defaultEngine() *PatternEngine {
	rs := rules.Default()
	return NewPatternEngine(rs.RiskRules, rs.LawsByID(), PatternOptions{})
}

func TestScanDepositViolation(t *testing.T) {
	engine := defaultEngine()

	buckets := engine.Scan("The tenant must pay a deposit of 5 months rent before moving in.")

	if len(buckets.Violates) != 1 {
		t.Fatalf("Expected 1 violates match, got %d", len(buckets.Violates))
	}
	match := buckets.Violates[0]
	if !strings.Contains(match.Clause, "deposit of 5 months") {
		t.Errorf("Snippet should contain the matched phrase, got %q", match.Clause)
	}
	if match.Law == "" || match.Law == domain.GeneralLawEntry.Title {
		t.Errorf("Deposit rule should cite a specific law, got %q", match.Law)
	}
	if match.LawLink == "#" || match.LawLink == "" {
		t.Errorf("Expected a real law link, got %q", match.LawLink)
	}

	if got := ClassifyRisk(buckets); got != domain.RiskHigh {
		t.Errorf("Expected high risk, got %s", got)
	}
}

func TestScanCleanTextFindsNothing(t *testing.T) {
	engine := defaultEngine()

	buckets := engine.Scan("The weather in Berlin was pleasant throughout the spring.")
	if buckets.Total() != 0 {
		t.Errorf("Expected no matches, got %d", buckets.Total())
	}
	if got := ClassifyRisk(buckets); got != domain.RiskLow {
		t.Errorf("Expected low risk for clean text, got %s", got)
	}
}

func TestScanCaseInsensitive(t *testing.T) {
	engine := defaultEngine()

	lower := engine.Scan("the deposit of 5 months rent is due now")
	upper := engine.Scan("THE DEPOSIT OF 5 MONTHS RENT IS DUE NOW")

	if len(lower.Violates) == 0 || len(upper.Violates) == 0 {
		t.Errorf("Matching should be case-insensitive: lower=%d upper=%d",
			len(lower.Violates), len(upper.Violates))
	}
}

func TestScanChunksDeduplicatesIdenticalSnippets(t *testing.T) {
	engine := defaultEngine()

	// Same short text in two chunks produces identical snippets.
	text := "deposit of 5 months rent"
	chunks := []domain.TextChunk{
		{Index: 0, Text: text},
		{Index: 1, Text: text},
	}

	buckets := engine.ScanChunks(chunks)
	if len(buckets.Violates) != 1 {
		t.Errorf("Identical snippets should be collapsed, got %d matches", len(buckets.Violates))
	}
}

func TestScanChunksKeepsDistinctSnippets(t *testing.T) {
	engine := defaultEngine()

	chunks := []domain.TextChunk{
		{Index: 0, Text: "First clause: deposit of 5 months rent applies here."},
		{Index: 1, Text: "Second clause: deposit of 6 months rent applies there."},
	}

	buckets := engine.ScanChunks(chunks)
	if len(buckets.Violates) != 2 {
		t.Errorf("Distinct snippets should both be kept, got %d matches", len(buckets.Violates))
	}
}

func TestScanUnknownLawRefFallsBackToGeneral(t *testing.T) {
	riskRules := []domain.RiskRule{
		{
			Pattern:     `missing reference`,
			Risk:        domain.RiskBucketAttention,
			Explanation: "Rule without a law entry",
			LawRef:      "does_not_exist",
		},
	}
	engine := NewPatternEngine(riskRules, map[string]domain.LawEntry{}, PatternOptions{})

	buckets := engine.Scan("a clause with a missing reference inside")
	if len(buckets.Attention) != 1 {
		t.Fatalf("Expected 1 attention match, got %d", len(buckets.Attention))
	}
	if buckets.Attention[0].Law != domain.GeneralLawEntry.Title {
		t.Errorf("Expected general law fallback, got %q", buckets.Attention[0].Law)
	}
	if buckets.Attention[0].LawLink != domain.GeneralLawEntry.URL {
		t.Errorf("Expected general law link, got %q", buckets.Attention[0].LawLink)
	}
}

func TestBucketScopedDedup(t *testing.T) {
	riskRules := []domain.RiskRule{
		{Pattern: `shared phrase`, Risk: domain.RiskBucketSafe, Explanation: "safe rule"},
		{Pattern: `shared phrase`, Risk: domain.RiskBucketViolates, Explanation: "violates rule"},
	}

	// Cross-bucket suppression: the safe match claims the snippet first
	// and the violates match is hidden.
	global := NewPatternEngine(riskRules, nil, PatternOptions{})
	buckets := global.Scan("shared phrase")
	if len(buckets.Safe) != 1 || len(buckets.Violates) != 0 {
		t.Errorf("Global dedup: expected safe=1 violates=0, got safe=%d violates=%d",
			len(buckets.Safe), len(buckets.Violates))
	}

	// Bucket-scoped suppression keeps both.
	scoped := NewPatternEngine(riskRules, nil, PatternOptions{BucketScopedDedup: true})
	buckets = scoped.Scan("shared phrase")
	if len(buckets.Safe) != 1 || len(buckets.Violates) != 1 {
		t.Errorf("Scoped dedup: expected safe=1 violates=1, got safe=%d violates=%d",
			len(buckets.Safe), len(buckets.Violates))
	}
}

func TestContextSnippetClamping(t *testing.T) {
	text := "abcdef"
	if got := contextSnippet(text, 0, 3, 50); got != "abcdef" {
		t.Errorf("Expected full text for window past bounds, got %q", got)
	}
	if got := contextSnippet("  padded  ", 2, 8, 2); got != "padded" {
		t.Errorf("Expected trimmed snippet, got %q", got)
	}
}

func TestContextSnippetKeepsRuneBoundaries(t *testing.T) {
	riskRules := []domain.RiskRule{
		{Pattern: `deposit`, Risk: domain.RiskBucketViolates, Explanation: "deposit rule"},
	}
	engine := NewPatternEngine(riskRules, nil, PatternOptions{ContextWindow: 10})

	// Multibyte runes right before the match must not be split by the
	// context window.
	buckets := engine.Scan(strings.Repeat("ü", 30) + " deposit")
	if len(buckets.Violates) != 1 {
		t.Fatalf("Expected 1 violates match, got %d", len(buckets.Violates))
	}
	clause := buckets.Violates[0].Clause
	if !utf8.ValidString(clause) {
		t.Fatalf("Snippet is not valid UTF-8: %q", clause)
	}
	if want := strings.Repeat("ü", 9) + " deposit"; clause != want {
		t.Errorf("Window should count runes, not bytes: got %q want %q", clause, want)
	}
}

func TestClassifyRiskOrdering(t *testing.T) {
	match := domain.ClauseMatch{Clause: "x"}

	tests := []struct {
		name    string
		buckets domain.ClauseBuckets
		want    domain.RiskLevel
	}{
		{"empty", domain.ClauseBuckets{}, domain.RiskLow},
		{"safe only", domain.ClauseBuckets{Safe: []domain.ClauseMatch{match}}, domain.RiskLow},
		{"attention", domain.ClauseBuckets{Attention: []domain.ClauseMatch{match}}, domain.RiskMedium},
		{"violates beats attention", domain.ClauseBuckets{
			Attention: []domain.ClauseMatch{match},
			Violates:  []domain.ClauseMatch{match},
		}, domain.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRisk(&tt.buckets); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
