// Package rules holds the static rule tables the analysis pipeline is
// configured with: clause risk patterns, scam indicator patterns, the
// law reference table and trusted external resources. Tables are built
// once at startup and passed into the engines explicitly, so tests can
// run against their own rule sets.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"contract-analyzer/internal/domain"
)

// Ruleset bundles every static table the pipeline needs.
type Ruleset struct {
	RiskRules []domain.RiskRule
	ScamRules []domain.ScamRule
	Laws      []domain.LawEntry

	Topics    []domain.Topic
	Resources map[string]domain.TrustedResources
}

// Default returns the built-in rule tables.
func Default() *Ruleset {
	return &Ruleset{
		RiskRules: defaultRiskRules,
		ScamRules: defaultScamRules,
		Laws:      defaultLaws,
		Topics:    defaultTopics,
		Resources: defaultResources,
	}
}

// fileOverride is the JSON shape accepted from a rules file. Any table
// present replaces the built-in one; absent tables keep their defaults.
type fileOverride struct {
	RiskRules []domain.RiskRule `json:"risk_rules,omitempty"`
	ScamRules []domain.ScamRule `json:"scam_rules,omitempty"`
	Laws      []domain.LawEntry `json:"laws,omitempty"`
}

// Load returns the default ruleset, overridden by the JSON file at path
// when path is non-empty. The result is validated before use.
func Load(path string) (*Ruleset, error) {
	rs := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rules file: %w", err)
		}
		var override fileOverride
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to parse rules file: %w", err)
		}
		if override.RiskRules != nil {
			rs.RiskRules = override.RiskRules
		}
		if override.ScamRules != nil {
			rs.ScamRules = override.ScamRules
		}
		if override.Laws != nil {
			rs.Laws = override.Laws
		}
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

// Validate checks that every pattern compiles and every law_ref resolves.
// A broken table is a startup failure, never a per-request one.
func (rs *Ruleset) Validate() error {
	laws := rs.LawsByID()
	for i, r := range rs.RiskRules {
		if _, err := regexp.Compile("(?i)" + r.Pattern); err != nil {
			return fmt.Errorf("risk rule %d: invalid pattern %q: %w", i, r.Pattern, err)
		}
		switch r.Risk {
		case domain.RiskBucketSafe, domain.RiskBucketAttention, domain.RiskBucketViolates:
		default:
			return fmt.Errorf("risk rule %d: unknown risk bucket %q", i, r.Risk)
		}
		if r.LawRef != "" {
			if _, ok := laws[r.LawRef]; !ok {
				return fmt.Errorf("risk rule %d: unknown law_ref %q", i, r.LawRef)
			}
		}
	}
	for i, r := range rs.ScamRules {
		if _, err := regexp.Compile("(?i)" + r.Pattern); err != nil {
			return fmt.Errorf("scam rule %d: invalid pattern %q: %w", i, r.Pattern, err)
		}
		switch r.Severity {
		case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh:
		default:
			return fmt.Errorf("scam rule %d: unknown severity %q", i, r.Severity)
		}
	}
	return nil
}

// LawsByID returns the law table keyed by id.
func (rs *Ruleset) LawsByID() map[string]domain.LawEntry {
	m := make(map[string]domain.LawEntry, len(rs.Laws))
	for _, law := range rs.Laws {
		m[law.ID] = law
	}
	return m
}

// ResourcesFor returns the trusted resources for a category, falling
// back to the general bucket for unknown categories.
func (rs *Ruleset) ResourcesFor(category string) domain.TrustedResources {
	if res, ok := rs.Resources[category]; ok {
		return res
	}
	return rs.Resources["general"]
}
