package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"contract-analyzer/internal/domain"
	"contract-analyzer/internal/rules"
)

// Mock implementations for testing
type MockTextExtractor struct {
	text string
	err  error
}

func (m *MockTextExtractor) Extract(ctx context.Context, data []byte, filename string) (*domain.ExtractedDocument, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ExtractedDocument{Text: m.text, UnitCount: 1}, nil
}

type MockSummarizer struct {
	summary    *domain.AISummary
	err        error
	gotChunks  []domain.TextChunk
	gotCounts  domain.BucketCounts
	chatReply  string
	chatErr    error
	gotHistory []domain.ChatTurn
}

func (m *MockSummarizer) Summarize(ctx context.Context, chunks []domain.TextChunk, counts domain.BucketCounts) (*domain.AISummary, error) {
	m.gotChunks = chunks
	m.gotCounts = counts
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *MockSummarizer) Chat(ctx context.Context, systemPrompt string, history []domain.ChatTurn, message string) (string, error) {
	m.gotHistory = history
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.chatReply, nil
}

type MockAnalysisRepository struct {
	analyses  map[string]*domain.ContractAnalysis
	insertErr error
}

func NewMockAnalysisRepository() *MockAnalysisRepository {
	return &MockAnalysisRepository{analyses: make(map[string]*domain.ContractAnalysis)}
}

func (m *MockAnalysisRepository) Insert(ctx context.Context, analysis *domain.ContractAnalysis) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.analyses[analysis.ID] = analysis
	return nil
}

func (m *MockAnalysisRepository) GetByID(ctx context.Context, id string) (*domain.ContractAnalysis, error) {
	if analysis, exists := m.analyses[id]; exists {
		return analysis, nil
	}
	return nil, domain.ErrAnalysisNotFound
}

func newTestAnalysisService(extractor domain.TextExtractor, summarizer domain.Summarizer, repo domain.AnalysisRepository) *ContractAnalysisService {
	rs := rules.Default()
	logger := &MockServiceLogger{}
	engine := NewPatternEngine(rs.RiskRules, rs.LawsByID(), PatternOptions{})
	scams := NewScamDetector(rs.ScamRules)
	return NewContractAnalysisService(extractor, engine, scams, summarizer, repo, logger, DefaultChunkSize)
}

func TestAnalyzeFullPipeline(t *testing.T) {
	extractor := &MockTextExtractor{
		text: "The tenant must pay a deposit of 5 months rent before moving in.",
	}
	summarizer := &MockSummarizer{
		summary: &domain.AISummary{
			DocumentType:    "rental",
			Summary:         "A rental contract with an excessive deposit.",
			Recommendations: "Negotiate the deposit down to three months.",
		},
	}
	repo := NewMockAnalysisRepository()
	svc := newTestAnalysisService(extractor, summarizer, repo)

	analysis, err := svc.Analyze(context.Background(), []byte("data"), "contract.pdf")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if analysis.ID == "" {
		t.Error("Analysis should get an id")
	}
	if analysis.Filename != "contract.pdf" {
		t.Errorf("Unexpected filename: %q", analysis.Filename)
	}
	if analysis.RiskLevel != domain.RiskHigh {
		t.Errorf("Expected high risk, got %s", analysis.RiskLevel)
	}
	if len(analysis.ClausesViolates) == 0 {
		t.Error("Expected at least one violates clause")
	}
	if analysis.DocumentType != "rental" {
		t.Errorf("Expected document type from summary, got %q", analysis.DocumentType)
	}
	if analysis.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if analysis.ClausesSafe == nil {
		t.Error("Empty buckets should be non-nil slices")
	}

	// Summarizer received the chunks and the bucket counts.
	if len(summarizer.gotChunks) != 1 {
		t.Errorf("Expected 1 chunk passed to summarizer, got %d", len(summarizer.gotChunks))
	}
	if summarizer.gotCounts.Violates == 0 {
		t.Error("Expected violates count passed to summarizer")
	}

	// Result was persisted.
	stored, err := repo.GetByID(context.Background(), analysis.ID)
	if err != nil {
		t.Fatalf("Stored analysis not found: %v", err)
	}
	if stored.RiskLevel != domain.RiskHigh {
		t.Errorf("Stored risk level mismatch: %s", stored.RiskLevel)
	}
}

func TestAnalyzeExtractionErrorPassesThrough(t *testing.T) {
	extractor := &MockTextExtractor{err: domain.ErrUnsupportedFile}
	svc := newTestAnalysisService(extractor, &MockSummarizer{}, NewMockAnalysisRepository())

	_, err := svc.Analyze(context.Background(), []byte("data"), "broken.bin")
	if !errors.Is(err, domain.ErrUnsupportedFile) {
		t.Errorf("Expected ErrUnsupportedFile, got %v", err)
	}
}

func TestAnalyzeSummarizerFailureDoesNotPersist(t *testing.T) {
	extractor := &MockTextExtractor{text: "Some ordinary contract text."}
	summarizer := &MockSummarizer{err: domain.ErrExternalService}
	repo := NewMockAnalysisRepository()
	svc := newTestAnalysisService(extractor, summarizer, repo)

	_, err := svc.Analyze(context.Background(), []byte("data"), "contract.pdf")
	if !errors.Is(err, domain.ErrExternalService) {
		t.Fatalf("Expected ErrExternalService, got %v", err)
	}
	if len(repo.analyses) != 0 {
		t.Error("A failed analysis must not be persisted")
	}
}

func TestAnalyzeLongDocumentIsChunked(t *testing.T) {
	extractor := &MockTextExtractor{
		text: strings.TrimSpace(strings.Repeat("clause text padding words ", 400)),
	}
	summarizer := &MockSummarizer{
		summary: &domain.AISummary{DocumentType: "other", Summary: "s", Recommendations: "r"},
	}
	svc := newTestAnalysisService(extractor, summarizer, NewMockAnalysisRepository())

	_, err := svc.Analyze(context.Background(), []byte("data"), "long.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(summarizer.gotChunks) < 2 {
		t.Errorf("Expected multiple chunks for a long document, got %d", len(summarizer.gotChunks))
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	svc := newTestAnalysisService(&MockTextExtractor{}, &MockSummarizer{}, NewMockAnalysisRepository())

	_, err := svc.GetAnalysis(context.Background(), "missing-id")
	if !errors.Is(err, domain.ErrAnalysisNotFound) {
		t.Errorf("Expected ErrAnalysisNotFound, got %v", err)
	}
}
