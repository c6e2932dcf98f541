package service

import (
	"context"
	"fmt"
	"time"

	"contract-analyzer/internal/domain"

	"github.com/google/uuid"
)

// ContractAnalysisService runs the full pipeline: extraction, chunking,
// pattern scan, scam detection, AI summary, persistence. The result is
// stored only when every stage succeeded, so a stored record is always
// complete.
type ContractAnalysisService struct {
	extractor  domain.TextExtractor
	engine     *PatternEngine
	scams      *ScamDetector
	summarizer domain.Summarizer
	repo       domain.AnalysisRepository
	logger     domain.Logger
	chunkSize  int
}

func NewContractAnalysisService(
	extractor domain.TextExtractor,
	engine *PatternEngine,
	scams *ScamDetector,
	summarizer domain.Summarizer,
	repo domain.AnalysisRepository,
	logger domain.Logger,
	chunkSize int,
) *ContractAnalysisService {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ContractAnalysisService{
		extractor:  extractor,
		engine:     engine,
		scams:      scams,
		summarizer: summarizer,
		repo:       repo,
		logger:     logger,
		chunkSize:  chunkSize,
	}
}

func (s *ContractAnalysisService) Analyze(ctx context.Context, data []byte, filename string) (*domain.ContractAnalysis, error) {
	start := time.Now()

	doc, err := s.extractor.Extract(ctx, data, filename)
	if err != nil {
		return nil, err
	}

	chunks := ChunkText(doc.Text, s.chunkSize)
	buckets := s.engine.ScanChunks(chunks)
	riskLevel := ClassifyRisk(buckets)
	indicators, likelyScam := s.scams.Detect(doc.Text)

	counts := domain.BucketCounts{
		Safe:      len(buckets.Safe),
		Attention: len(buckets.Attention),
		Violates:  len(buckets.Violates),
	}
	summary, err := s.summarizer.Summarize(ctx, chunks, counts)
	if err != nil {
		s.logger.Error("Summarization failed", err, "filename", filename)
		return nil, err
	}

	analysis := &domain.ContractAnalysis{
		ID:            uuid.NewString(),
		Filename:      filename,
		ExtractedText: doc.Text,
		DocumentType:  summary.DocumentType,

		RiskLevel: riskLevel,
		PageCount: doc.UnitCount,

		ClausesSafe:      ensureMatches(buckets.Safe),
		ClausesAttention: ensureMatches(buckets.Attention),
		ClausesViolates:  ensureMatches(buckets.Violates),

		Summary:         summary.Summary,
		Recommendations: summary.Recommendations,
		KeyExcerpts:     summary.KeyExcerpts,

		ScamIndicators: indicators,
		LikelyScam:     likelyScam,

		Timestamp: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}

	s.logger.Info("Contract analyzed",
		"id", analysis.ID,
		"filename", filename,
		"risk_level", riskLevel,
		"chunks", len(chunks),
		"duration", time.Since(start).String(),
	)
	return analysis, nil
}

func (s *ContractAnalysisService) GetAnalysis(ctx context.Context, id string) (*domain.ContractAnalysis, error) {
	return s.repo.GetByID(ctx, id)
}

// ensureMatches keeps empty buckets serializable as [] rather than null.
func ensureMatches(matches []domain.ClauseMatch) []domain.ClauseMatch {
	if matches == nil {
		return []domain.ClauseMatch{}
	}
	return matches
}
