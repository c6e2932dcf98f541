package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"contract-analyzer/internal/domain"
)

func sampleAnalysis() *domain.ContractAnalysis {
	return &domain.ContractAnalysis{
		ID:            "11112222-3333-4444-5555-666677778888",
		Filename:      "mietvertrag.pdf",
		ExtractedText: "The tenant agrees to pay rent on time every month.",
		DocumentType:  "rental",
		RiskLevel:     domain.RiskHigh,
		PageCount:     3,
		ClausesViolates: []domain.ClauseMatch{
			{
				Clause:      "deposit of 5 months rent",
				Explanation: "Deposit exceeds legal maximum of 3 months rent",
				Law:         "BGB §551 - Mietkaution",
				LawLink:     "https://www.gesetze-im-internet.de/bgb/__551.html",
			},
		},
		Summary:         "A rental contract with an excessive deposit clause.",
		Recommendations: "Negotiate the deposit down before signing.",
		Timestamp:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderProducesPDF(t *testing.T) {
	svc := NewPDFReportService(&MockServiceLogger{})

	report, err := svc.Render(sampleAnalysis())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !bytes.HasPrefix(report, []byte("%PDF")) {
		t.Error("Render output should be a PDF document")
	}
	if len(report) < 1000 {
		t.Errorf("Report looks implausibly small: %d bytes", len(report))
	}
}

func TestRenderToleratesSparseRecord(t *testing.T) {
	svc := NewPDFReportService(&MockServiceLogger{})

	// A record from before unit counting and scam detection existed.
	analysis := &domain.ContractAnalysis{
		ID:            "old-record",
		Filename:      "old.pdf",
		ExtractedText: "text",
		RiskLevel:     domain.RiskLow,
		Timestamp:     time.Now().UTC(),
	}

	report, err := svc.Render(analysis)
	if err != nil {
		t.Fatalf("Render should tolerate missing optional fields: %v", err)
	}
	if !bytes.HasPrefix(report, []byte("%PDF")) {
		t.Error("Render output should be a PDF document")
	}
}

func TestRenderTruncatesLongText(t *testing.T) {
	svc := NewPDFReportService(&MockServiceLogger{})

	analysis := sampleAnalysis()
	analysis.ExtractedText = strings.Repeat("long contract text ", 1000)

	if _, err := svc.Render(analysis); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}
