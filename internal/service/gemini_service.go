package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"contract-analyzer/internal/domain"
	"contract-analyzer/internal/rules"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

const (
	defaultSummaryChunks      = 5
	defaultSummaryConcurrency = 3

	analyzerSystemPrompt = "You are a legal document analyzer. Be concise, factual and professional. Never invent clauses that are not in the text."
)

// GeminiService produces document summaries and chat replies using the
// Gemini API. It implements domain.Summarizer.
type GeminiService struct {
	client      *genai.Client
	modelName   string
	ruleset     *rules.Ruleset
	logger      domain.Logger
	maxChunks   int
	concurrency int
}

func NewGeminiService(ctx context.Context, apiKey, modelName string, ruleset *rules.Ruleset, logger domain.Logger, maxChunks, concurrency int) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if maxChunks <= 0 {
		maxChunks = defaultSummaryChunks
	}
	if concurrency <= 0 {
		concurrency = defaultSummaryConcurrency
	}
	return &GeminiService{
		client:      client,
		modelName:   modelName,
		ruleset:     ruleset,
		logger:      logger,
		maxChunks:   maxChunks,
		concurrency: concurrency,
	}, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

// Summarize builds the typed AI summary for a document. Short documents
// go through a single model call; longer ones are summarized per chunk
// with bounded concurrency and merged in a final call. Results keep
// chunk order regardless of completion order.
func (s *GeminiService) Summarize(ctx context.Context, chunks []domain.TextChunk, counts domain.BucketCounts) (*domain.AISummary, error) {
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	if len(chunks) > s.maxChunks {
		chunks = chunks[:s.maxChunks]
	}

	var raw string
	var err error
	if len(chunks) == 1 {
		raw, err = s.generate(ctx, s.analysisPrompt(chunks[0].Text, counts))
	} else {
		raw, err = s.summarizeChunked(ctx, chunks, counts)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	summary, err := ParseAnalysisResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	return summary, nil
}

func (s *GeminiService) summarizeChunked(ctx context.Context, chunks []domain.TextChunk, counts domain.BucketCounts) (string, error) {
	type sectionNote struct {
		index int
		note  string
	}

	notes := make([]sectionNote, 0, len(chunks))
	var mu sync.Mutex
	sem := make(chan struct{}, s.concurrency)
	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}
			prompt := fmt.Sprintf(
				"Summarize the key obligations, rights and any risky or unusual terms in this contract section in at most 4 sentences.\n\nSection %d:\n%s",
				chunk.Index+1, chunk.Text,
			)
			note, err := s.generate(gctx, prompt)
			if err != nil {
				s.logger.Error("Chunk summarization failed", err, "chunk", chunk.Index)
				return err
			}
			mu.Lock()
			notes = append(notes, sectionNote{index: chunk.Index, note: note})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	sort.Slice(notes, func(i, j int) bool { return notes[i].index < notes[j].index })

	var sb strings.Builder
	for _, n := range notes {
		fmt.Fprintf(&sb, "Section %d: %s\n\n", n.index+1, n.note)
	}
	return s.generate(ctx, s.mergePrompt(sb.String(), len(notes), counts))
}

func (s *GeminiService) analysisPrompt(text string, counts domain.BucketCounts) string {
	return fmt.Sprintf(`Analyze this contract and provide:
1. The document type. Choose ONE word: rental, employment, subscription, immigration, tax, other.
2. A 3-5 sentence summary in plain language.
3. Key recommendations for the reader.
4. Up to 3 short excerpts quoted verbatim from the text that deserve attention.

A pattern scan of the full document found %d acceptable, %d needs-attention and %d violating clauses.

Relevant laws:
%s

Contract text:
%s

Respond in EXACTLY this format:
TYPE: <one word>
SUMMARY: <summary>
RECOMMENDATIONS: <recommendations>
KEY_EXCERPTS:
- <excerpt>`, counts.Safe, counts.Attention, counts.Violates, s.lawContext(), text)
}

func (s *GeminiService) mergePrompt(notes string, sections int, counts domain.BucketCounts) string {
	return fmt.Sprintf(`You reviewed a contract in %d sections. Here are your notes per section, in document order:

%s
A pattern scan of the full document found %d acceptable, %d needs-attention and %d violating clauses.

Relevant laws:
%s

Combine the notes into one assessment of the whole document. Respond in EXACTLY this format:
TYPE: <one word: rental, employment, subscription, immigration, tax, other>
SUMMARY: <3-5 sentence summary>
RECOMMENDATIONS: <key recommendations>
KEY_EXCERPTS:
- <up to 3 short verbatim excerpts>`, sections, notes, counts.Safe, counts.Attention, counts.Violates, s.lawContext())
}

func (s *GeminiService) lawContext() string {
	var sb strings.Builder
	for _, law := range s.ruleset.Laws {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", law.Title, law.ID, law.Description)
	}
	return sb.String()
}

// generate runs a single non-chat model call and concatenates the text
// parts of the first candidate.
func (s *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(analyzerSystemPrompt)},
	}
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("model returned no text")
	}
	return text, nil
}

// Chat answers a conversational message with the given system prompt
// and prior turns.
func (s *GeminiService) Chat(ctx context.Context, systemPrompt string, history []domain.ChatTurn, message string) (string, error) {
	model := s.client.GenerativeModel(s.modelName)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	chat := model.StartChat()
	chat.History = make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		chat.History = append(chat.History, &genai.Content{
			Parts: []genai.Part{genai.Text(turn.Content)},
			Role:  turn.Role,
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: model returned no text", domain.ErrExternalService)
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
