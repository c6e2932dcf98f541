package service

import (
	"strings"

	"contract-analyzer/internal/domain"
)

// DefaultChunkSize is the byte budget for a single text chunk.
const DefaultChunkSize = 3000

// ChunkText splits text into ordered, word-aligned chunks of at most
// maxBytes bytes. Tokens are accumulated greedily; a chunk closes when
// the next token would push it over budget. The trailing partial chunk
// is always emitted. A single token longer than the budget becomes its
// own oversized chunk rather than being split mid-word.
//
// Pure function of its input: no chunk is ever empty, and rejoining all
// chunks with single spaces reproduces the whitespace-normalized token
// sequence of the original text.
func ChunkText(text string, maxBytes int) []domain.TextChunk {
	if maxBytes <= 0 {
		maxBytes = DefaultChunkSize
	}

	var chunks []domain.TextChunk
	var sb strings.Builder

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		chunks = append(chunks, domain.TextChunk{Index: len(chunks), Text: sb.String()})
		sb.Reset()
	}

	for _, token := range strings.Fields(text) {
		if sb.Len() > 0 && sb.Len()+1+len(token) > maxBytes {
			flush()
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(token)
	}
	flush()

	return chunks
}
