package domain

// RiskLevel is the ordinal risk classification of a whole document.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Risk is the per-rule risk bucket.
type Risk string

const (
	RiskBucketSafe      Risk = "safe"
	RiskBucketAttention Risk = "attention"
	RiskBucketViolates  Risk = "violates"
)

// Severity grades a scam indicator.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RiskRule is a labeled regular expression describing a legally risky
// clause. Rules are immutable after startup; their order only affects
// result list order, not matching.
type RiskRule struct {
	Pattern     string `json:"pattern"`
	Risk        Risk   `json:"risk"`
	Explanation string `json:"explanation"`
	LawRef      string `json:"law_ref,omitempty"`
}

// ScamRule is a labeled regular expression describing a fraud indicator.
type ScamRule struct {
	Pattern   string   `json:"pattern"`
	Indicator string   `json:"indicator"`
	Severity  Severity `json:"severity"`
}

// LawEntry is a static reference-table row looked up by RiskRule.LawRef.
type LawEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// GeneralLawEntry is the sentinel returned when a rule has no law_ref
// or references an unknown id.
var GeneralLawEntry = LawEntry{
	ID:          "",
	Title:       "General Legal Principle",
	Description: "General principles of contract law",
	URL:         "#",
}

// Topic is a selectable legal category exposed to clients.
type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// TrustedLink is a vetted external resource.
type TrustedLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TrustedResources groups vetted links for one legal category.
type TrustedResources struct {
	Authorities  []TrustedLink `json:"authorities"`
	Alternatives []TrustedLink `json:"alternatives"`
	Report       []TrustedLink `json:"report"`
}
