package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"contract-analyzer/internal/domain"
)

// minDirectTextChars is the heuristic guard below which direct
// extraction is considered to have failed and OCR kicks in. Kept small
// so a single-line scanned cover page does not false-trigger the slow
// path on a document that otherwise has a text layer.
const minDirectTextChars = 50

// plainTextPageChars approximates one "page" of plain text for unit
// counting.
const plainTextPageChars = 3000

// docxParagraphsPerUnit approximates one "page" of a word-processing
// document for unit counting.
const docxParagraphsPerUnit = 20

// FormatExtractor converts raw upload bytes into plain text, dispatching
// by file extension, with OCR as the fallback for image-only content.
// Stateless with respect to request data; safe for concurrent use.
type FormatExtractor struct {
	ocr    *OCRClient
	logger domain.Logger
}

// NewFormatExtractor creates a new format extractor.
func NewFormatExtractor(ocr *OCRClient, logger domain.Logger) *FormatExtractor {
	return &FormatExtractor{ocr: ocr, logger: logger}
}

// Extract implements domain.TextExtractor. It fails with
// domain.ErrUnsupportedFile when no extraction path yields usable text
// and with domain.ErrEmptyDocument when extraction succeeds
// structurally but the text is blank.
func (e *FormatExtractor) Extract(ctx context.Context, data []byte, filename string) (*domain.ExtractedDocument, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	var (
		text  string
		units int
		err   error
	)

	switch ext {
	case "pdf":
		text, units, err = e.extractPDF(ctx, data)
	case "docx", "doc":
		text, units, err = extractDOCX(data)
	case "xlsx", "xls":
		text, units, err = extractXLSX(data)
	case "pptx", "ppt":
		text, units, err = extractPPTX(data)
	case "odt", "ods":
		text, units, err = extractODF(data)
	case "txt", "log", "md", "rtf", "csv":
		text, units, err = extractPlainText(data)
	case "html", "htm":
		text, err = htmlToText(data)
		units = 1
	case "jpg", "jpeg", "png", "bmp", "tiff", "tif", "gif", "webp", "heic", "heif":
		text, err = e.extractImage(ctx, data, ext)
		units = 1
	default:
		text, err = e.extractUnknown(ctx, data)
		units = 1
	}

	if err != nil {
		e.logger.Warn("Text extraction failed", "filename", filename, "ext", ext, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFile, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyDocument
	}
	if units < 1 {
		units = 1
	}

	return &domain.ExtractedDocument{Text: text, UnitCount: units}, nil
}

// extractImage runs OCR on a standalone image upload.
func (e *FormatExtractor) extractImage(ctx context.Context, data []byte, ext string) (string, error) {
	return e.ocr.ImageToText(ctx, data, ext)
}

// extractUnknown handles files with an unrecognized extension: first a
// strict UTF-8 decode, then OCR as an image, then failure.
func (e *FormatExtractor) extractUnknown(ctx context.Context, data []byte) (string, error) {
	if utf8.Valid(data) {
		text := string(data)
		if countUsableChars(text) >= minDirectTextChars {
			return text, nil
		}
	}
	text, err := e.ocr.ImageToText(ctx, data, "png")
	if err != nil {
		return "", fmt.Errorf("no extraction path for unknown format: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("no extraction path yielded text for unknown format")
	}
	return text, nil
}

// extractPlainText decodes text content as UTF-8, falling back to
// Latin-1, which never fails: every byte maps to some code point.
func extractPlainText(data []byte) (string, int, error) {
	var text string
	if utf8.Valid(data) {
		text = string(data)
	} else {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", 0, fmt.Errorf("failed to decode text file: %w", err)
		}
		text = string(decoded)
	}
	units := utf8.RuneCountInString(text) / plainTextPageChars
	if units < 1 {
		units = 1
	}
	return text, units, nil
}

// countUsableChars counts printable, non-space characters; the guard
// against treating binary junk or a near-blank decode as a document.
func countUsableChars(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsGraphic(r) && !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
