package service

import (
	"bytes"
	"fmt"
	"strings"

	"contract-analyzer/internal/domain"
	apperrors "contract-analyzer/pkg/errors"

	"github.com/go-pdf/fpdf"
)

const (
	reportExcerptLimit  = 100
	reportFullTextLimit = 3000
)

// PDFReportService renders a stored analysis into a downloadable PDF
// report. It implements domain.ReportRenderer.
type PDFReportService struct {
	logger domain.Logger
}

func NewPDFReportService(logger domain.Logger) *PDFReportService {
	return &PDFReportService{logger: logger}
}

func (s *PDFReportService) Render(analysis *domain.ContractAnalysis) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(25, 25, 25)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(194, 65, 12)
	pdf.CellFormat(0, 12, tr("Contract Review Report"), "", 1, "C", false, 0, "")
	pdf.Ln(8)
	pdf.SetTextColor(28, 25, 23)

	section := 1
	heading := func(title string) {
		pdf.SetFont("Helvetica", "B", 15)
		pdf.SetTextColor(28, 25, 23)
		pdf.CellFormat(0, 9, tr(fmt.Sprintf("%d. %s", section, title)), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		section++
	}
	body := func(text string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 6, tr(text), "", "L", false)
		pdf.Ln(2)
	}

	// Document overview
	heading("Document Overview")
	overview := [][2]string{
		{"Type:", capitalize(orDefault(analysis.DocumentType, "general"))},
		{"Filename:", orDefault(analysis.Filename, "N/A")},
		{"Date Reviewed:", analysis.Timestamp.Format("02/01/2006")},
		{"Risk Level:", capitalize(orDefault(string(analysis.RiskLevel), "unknown"))},
	}
	if analysis.PageCount > 0 {
		overview = append(overview, [2]string{"Pages:", fmt.Sprintf("%d", analysis.PageCount)})
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range overview {
		pdf.SetFillColor(245, 245, 244)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 8, tr(row[0]), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Summary
	heading("Summary")
	body(orDefault(analysis.Summary, "No summary available."))

	// Clause buckets
	buckets := []struct {
		title   string
		matches []domain.ClauseMatch
	}{
		{"Clauses That Are Acceptable", analysis.ClausesSafe},
		{"Clauses That May Be Problematic", analysis.ClausesAttention},
		{"Clauses That Violate German Law", analysis.ClausesViolates},
	}
	for _, bucket := range buckets {
		if len(bucket.matches) == 0 {
			continue
		}
		heading(bucket.title)
		for _, clause := range bucket.matches {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, tr("- "+clause.Explanation), "", "L", false)
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("Excerpt: ...%s...", truncate(clause.Clause, reportExcerptLimit))), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("Reference: "+orDefault(clause.Law, "N/A")), "", "L", false)
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	// Scam indicators
	if analysis.LikelyScam && len(analysis.ScamIndicators) > 0 {
		heading("Fraud Warning")
		body("This document matched multiple known fraud indicators. Do not send money or share personal data before verifying the counterparty.")
		for _, ind := range analysis.ScamIndicators {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("- %s (%s)", ind.Indicator, ind.Severity)), "", "L", false)
		}
		pdf.Ln(4)
	}

	// Recommendations
	heading("Recommendations")
	body(orDefault(analysis.Recommendations, "Please consult with a legal professional."))

	// Full extracted text on its own page
	pdf.AddPage()
	heading("Full Extracted Text")
	fullText := analysis.ExtractedText
	if len(fullText) > reportFullTextLimit {
		fullText = fullText[:reportFullTextLimit] + "...\n\n[Text truncated for PDF report]"
	}
	body(fullText)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewInternalError("PDF generation failed", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
