package config

import (
	"context"
	"fmt"

	"contract-analyzer/internal/domain"
	"contract-analyzer/internal/handler"
	"contract-analyzer/internal/repository"
	"contract-analyzer/internal/rules"
	"contract-analyzer/internal/service"
	"contract-analyzer/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config  domain.Config
	Logger  domain.Logger
	Ruleset *rules.Ruleset

	AnalysisRepository domain.AnalysisRepository
	ChatRepository     domain.ChatRepository

	AnalysisService domain.AnalysisService
	ChatService     domain.ChatService
	ReportRenderer  domain.ReportRenderer

	AnalysisHandler *handler.AnalysisHandler
	ChatHandler     *handler.ChatHandler
	LawHandler      *handler.LawHandler

	gemini     *service.GeminiService
	mongoClose func(context.Context) error
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context) (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	ruleset, err := rules.Load(config.GetRulesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load rule tables: %w", err)
	}

	db, closeMongo, err := repository.NewMongoDatabase(config.GetMongoURI(), config.GetMongoDatabase())
	if err != nil {
		return nil, err
	}

	analysisRepo := repository.NewMongoAnalysisRepository(db, appLogger)
	chatRepo := repository.NewMongoChatRepository(db, appLogger)

	ocr := service.NewOCRClient(config.GetOCRLanguages(), config.GetOCRWorkers(), appLogger)
	extractor := service.NewFormatExtractor(ocr, appLogger)
	engine := service.NewPatternEngine(ruleset.RiskRules, ruleset.LawsByID(), service.PatternOptions{})
	scams := service.NewScamDetector(ruleset.ScamRules)

	gemini, err := service.NewGeminiService(
		ctx,
		config.GetGeminiAPIKey(),
		config.GetGeminiModel(),
		ruleset,
		appLogger,
		config.GetMaxSummaryChunks(),
		config.GetSummaryConcurrency(),
	)
	if err != nil {
		_ = closeMongo(ctx)
		return nil, err
	}

	analysisService := service.NewContractAnalysisService(
		extractor, engine, scams, gemini, analysisRepo, appLogger, config.GetChunkSize(),
	)
	chatService := service.NewAssistantChatService(gemini, chatRepo, analysisRepo, ruleset, appLogger)
	reportRenderer := service.NewPDFReportService(appLogger)

	c := &Container{
		Config:  config,
		Logger:  appLogger,
		Ruleset: ruleset,

		AnalysisRepository: analysisRepo,
		ChatRepository:     chatRepo,

		AnalysisService: analysisService,
		ChatService:     chatService,
		ReportRenderer:  reportRenderer,

		gemini:     gemini,
		mongoClose: closeMongo,
	}

	c.AnalysisHandler = handler.NewAnalysisHandler(analysisService, reportRenderer, appLogger, config.GetMaxFileSize())
	c.ChatHandler = handler.NewChatHandler(chatService, appLogger)
	c.LawHandler = handler.NewLawHandler(ruleset)

	return c, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// Close releases external connections on shutdown.
func (c *Container) Close(ctx context.Context) error {
	var firstErr error
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil {
			firstErr = err
		}
	}
	if c.mongoClose != nil {
		if err := c.mongoClose(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
