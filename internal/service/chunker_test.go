package service

import (
	"strings"
	"testing"
)

func TestChunkTextEmptyInput(t *testing.T) {
	if chunks := ChunkText("", 100); len(chunks) != 0 {
		t.Errorf("Expected no chunks for empty input, got %d", len(chunks))
	}
	if chunks := ChunkText("   \n\t  ", 100); len(chunks) != 0 {
		t.Errorf("Expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestChunkTextSingleChunk(t *testing.T) {
	chunks := ChunkText("short text that fits", 100)
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "short text that fits" {
		t.Errorf("Unexpected chunk text: %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 {
		t.Errorf("Expected index 0, got %d", chunks[0].Index)
	}
}

func TestChunkTextRespectsBudget(t *testing.T) {
	// 1800 five-byte tokens, 10800 bytes when space-joined.
	text := strings.TrimSpace(strings.Repeat("aaaa ", 1800))

	chunks := ChunkText(text, DefaultChunkSize)
	if len(chunks) < 3 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	for _, chunk := range chunks {
		if len(chunk.Text) > DefaultChunkSize {
			t.Errorf("Chunk %d exceeds budget: %d bytes", chunk.Index, len(chunk.Text))
		}
		if chunk.Text == "" {
			t.Errorf("Chunk %d is empty", chunk.Index)
		}
	}
}

func TestChunkTextExactSplitOfLargeDocument(t *testing.T) {
	// 900 nine-byte tokens: 9000 characters of text including separators.
	// A 3000-byte budget fits exactly 300 tokens per chunk (300*9 bytes
	// plus 299 separators = 2999), so the split is exactly three chunks.
	text := strings.TrimSpace(strings.Repeat("abcdefghi ", 900))
	if len(text) != 8999 {
		t.Fatalf("Fixture should be 8999 bytes joined, got %d", len(text))
	}

	chunks := ChunkText(text, 3000)
	if len(chunks) != 3 {
		t.Fatalf("Expected exactly 3 chunks, got %d", len(chunks))
	}
	for _, chunk := range chunks {
		if len(chunk.Text) != 2999 {
			t.Errorf("Chunk %d should hold 300 tokens (2999 bytes), got %d bytes", chunk.Index, len(chunk.Text))
		}
	}
}

func TestChunkTextIndexesAreSequential(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 500))

	chunks := ChunkText(text, 100)
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("Expected index %d, got %d", i, chunk.Index)
		}
	}
}

func TestChunkTextRejoinPreservesTokens(t *testing.T) {
	text := "The  tenant\nagrees to pay\t\ta deposit of   two months rent."
	want := strings.Join(strings.Fields(text), " ")

	chunks := ChunkText(text, 20)
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, chunk.Text)
	}
	if got := strings.Join(parts, " "); got != want {
		t.Errorf("Rejoined chunks differ from normalized input:\ngot  %q\nwant %q", got, want)
	}
}

func TestChunkTextOversizedToken(t *testing.T) {
	long := strings.Repeat("x", 50)
	chunks := ChunkText("small "+long+" small", 20)

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	if chunks[1].Text != long {
		t.Errorf("Oversized token should be its own chunk, got %q", chunks[1].Text)
	}
}

func TestChunkTextZeroBudgetUsesDefault(t *testing.T) {
	chunks := ChunkText("a b c", 0)
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk with default budget, got %d", len(chunks))
	}
}
