package domain

import (
	"context"
	"time"
)

// ClauseMatch is one occurrence of a risk pattern in document text,
// with its surrounding context and law citation. JSON keys follow the
// stored record format.
type ClauseMatch struct {
	Clause      string `json:"clause"`
	Explanation string `json:"explanation"`
	Law         string `json:"law"`
	LawLink     string `json:"law_link"`
}

// ClauseBuckets holds clause matches grouped by risk bucket.
type ClauseBuckets struct {
	Safe      []ClauseMatch `json:"clauses_safe"`
	Attention []ClauseMatch `json:"clauses_attention"`
	Violates  []ClauseMatch `json:"clauses_violates"`
}

// Total returns the number of matches across all buckets.
func (b *ClauseBuckets) Total() int {
	return len(b.Safe) + len(b.Attention) + len(b.Violates)
}

// ScamIndicator is one matched fraud-indicator occurrence.
type ScamIndicator struct {
	Indicator string   `json:"indicator"`
	Severity  Severity `json:"severity"`
	Context   string   `json:"context"`
}

// AISummary is the parsed output of the summarization collaborator.
type AISummary struct {
	DocumentType    string   `json:"document_type"`
	Summary         string   `json:"summary"`
	Recommendations string   `json:"recommendations"`
	KeyExcerpts     []string `json:"key_excerpts,omitempty"`
}

// ContractAnalysis is the aggregate result of one analysis request.
// It is created once, persisted, and immutable thereafter.
type ContractAnalysis struct {
	ID            string `json:"id" bson:"id"`
	Filename      string `json:"filename" bson:"filename"`
	ExtractedText string `json:"extracted_text" bson:"extracted_text"`
	DocumentType  string `json:"document_type" bson:"document_type"`

	RiskLevel RiskLevel `json:"risk_level" bson:"risk_level"`
	// PageCount may be absent in records stored before unit counting was
	// added; readers must tolerate the zero value.
	PageCount int `json:"page_count,omitempty" bson:"page_count,omitempty"`

	ClausesSafe      []ClauseMatch `json:"clauses_safe" bson:"clauses_safe"`
	ClausesAttention []ClauseMatch `json:"clauses_attention" bson:"clauses_attention"`
	ClausesViolates  []ClauseMatch `json:"clauses_violates" bson:"clauses_violates"`

	Summary         string   `json:"summary" bson:"summary"`
	Recommendations string   `json:"recommendations" bson:"recommendations"`
	KeyExcerpts     []string `json:"key_excerpts,omitempty" bson:"key_excerpts,omitempty"`

	ScamIndicators []ScamIndicator `json:"scam_indicators,omitempty" bson:"scam_indicators,omitempty"`
	LikelyScam     bool            `json:"likely_scam" bson:"likely_scam"`

	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// BucketCounts summarizes how many matches landed in each bucket; it is
// passed to the summarization merge prompt.
type BucketCounts struct {
	Safe      int
	Attention int
	Violates  int
}

// AnalysisRepository persists immutable analysis results.
type AnalysisRepository interface {
	Insert(ctx context.Context, analysis *ContractAnalysis) error
	GetByID(ctx context.Context, id string) (*ContractAnalysis, error)
}

// AnalysisService runs the full document analysis pipeline.
type AnalysisService interface {
	Analyze(ctx context.Context, data []byte, filename string) (*ContractAnalysis, error)
	GetAnalysis(ctx context.Context, id string) (*ContractAnalysis, error)
}

// ReportRenderer renders a stored analysis into a downloadable report.
type ReportRenderer interface {
	Render(analysis *ContractAnalysis) ([]byte, error)
}

// Summarizer is the narrow contract with the external language model.
// Summarize receives the leading chunks and the clause-bucket counts;
// a transient failure surfaces as a single error and is never retried.
type Summarizer interface {
	Summarize(ctx context.Context, chunks []TextChunk, counts BucketCounts) (*AISummary, error)
	Chat(ctx context.Context, systemPrompt string, history []ChatTurn, message string) (string, error)
}
