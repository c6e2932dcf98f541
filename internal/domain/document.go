package domain

import "context"

// ExtractedDocument is the normalized output of format extraction.
// Text is non-empty on success; UnitCount is the page/sheet/slide count
// (always >= 1) and is used for report metadata only.
type ExtractedDocument struct {
	Text      string `json:"text"`
	UnitCount int    `json:"unit_count"`
}

// TextChunk is an ordered, word-aligned slice of extracted text.
// Index is semantically meaningful: the summarization step reports
// findings per chunk as "Section N".
type TextChunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// TextExtractor converts raw upload bytes plus the original filename
// into plain text. Implementations dispatch on the file extension and
// may fall back to OCR for image-only content.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) (*ExtractedDocument, error)
}
