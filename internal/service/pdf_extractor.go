package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// extractPDF pulls the text layer from each page. When the whole
// document yields fewer than minDirectTextChars characters the file is
// treated as a scan: each page is rendered to an image and run through
// OCR instead. OCR failures on individual pages are tolerated as long
// as the document as a whole produces text.
func (e *FormatExtractor) extractPDF(ctx context.Context, data []byte) (string, int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return "", 0, fmt.Errorf("pdf has no pages")
	}

	var sb strings.Builder
	for page := 0; page < pageCount; page++ {
		text, err := doc.Text(page)
		if err != nil {
			e.logger.Warn("Failed to extract pdf page text", "page", page+1, "error", err)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	direct := sb.String()
	if len(strings.TrimSpace(direct)) >= minDirectTextChars {
		return direct, pageCount, nil
	}

	// Text layer near-empty: scanned document. Render and recognize.
	e.logger.Info("PDF text layer near-empty, falling back to OCR", "pages", pageCount)
	var ocrOut strings.Builder
	for page := 0; page < pageCount; page++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		img, err := doc.Image(page)
		if err != nil {
			e.logger.Warn("Failed to render pdf page", "page", page+1, "error", err)
			continue
		}
		text, err := e.ocr.RecognizeImage(ctx, img)
		if err != nil {
			e.logger.Warn("OCR failed on pdf page", "page", page+1, "error", err)
			continue
		}
		ocrOut.WriteString(text)
		ocrOut.WriteString("\n")
	}

	return ocrOut.String(), pageCount, nil
}
