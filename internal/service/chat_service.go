package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contract-analyzer/internal/domain"
	"contract-analyzer/internal/rules"

	"github.com/google/uuid"
)

const (
	chatHistoryLimit     = 50
	contractContextChars = 1500
)

// AssistantChatService drives the legal assistant conversations, both
// general Q&A and chat grounded on a stored contract analysis. Every
// exchange is persisted so a session can be resumed later.
type AssistantChatService struct {
	summarizer   domain.Summarizer
	chatRepo     domain.ChatRepository
	analysisRepo domain.AnalysisRepository
	ruleset      *rules.Ruleset
	logger       domain.Logger
}

func NewAssistantChatService(
	summarizer domain.Summarizer,
	chatRepo domain.ChatRepository,
	analysisRepo domain.AnalysisRepository,
	ruleset *rules.Ruleset,
	logger domain.Logger,
) *AssistantChatService {
	return &AssistantChatService{
		summarizer:   summarizer,
		chatRepo:     chatRepo,
		analysisRepo: analysisRepo,
		ruleset:      ruleset,
		logger:       logger,
	}
}

func (s *AssistantChatService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history, err := s.chatRepo.GetSessionMessages(ctx, sessionID)
	if err != nil {
		s.logger.Warn("Failed to load chat history", "session_id", sessionID, "error", err)
		history = nil
	}

	answer, err := s.summarizer.Chat(ctx, s.generalSystemPrompt(), toTurns(history), req.Message)
	if err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		UserMessage: req.Message,
		AIResponse:  answer,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.chatRepo.InsertMessage(ctx, msg); err != nil {
		s.logger.Error("Failed to store chat message", err, "session_id", sessionID)
	}

	return &domain.ChatResponse{Response: answer, SessionID: sessionID}, nil
}

func (s *AssistantChatService) ContractChat(ctx context.Context, contractID string, req domain.ChatRequest) (*domain.ChatResponse, error) {
	analysis, err := s.analysisRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history, err := s.chatRepo.GetContractMessages(ctx, contractID, sessionID)
	if err != nil {
		s.logger.Warn("Failed to load contract chat history", "contract_id", contractID, "error", err)
		history = nil
	}

	answer, err := s.summarizer.Chat(ctx, s.contractSystemPrompt(analysis), toTurns(history), req.Message)
	if err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		ContractID:  contractID,
		UserMessage: req.Message,
		AIResponse:  answer,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.chatRepo.InsertContractMessage(ctx, msg); err != nil {
		s.logger.Error("Failed to store contract chat message", err, "contract_id", contractID)
	}

	return &domain.ChatResponse{Response: answer, SessionID: sessionID}, nil
}

func (s *AssistantChatService) GetHistory(ctx context.Context) ([]*domain.ChatSession, error) {
	return s.chatRepo.ListSessions(ctx, chatHistoryLimit)
}

func (s *AssistantChatService) GetSessionMessages(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	return s.chatRepo.GetSessionMessages(ctx, sessionID)
}

func (s *AssistantChatService) RenameSession(ctx context.Context, sessionID, name string) error {
	matched, err := s.chatRepo.RenameSession(ctx, sessionID, name)
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *AssistantChatService) DeleteSession(ctx context.Context, sessionID string) error {
	deleted, err := s.chatRepo.DeleteSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *AssistantChatService) GetContractChatHistory(ctx context.Context, contractID, sessionID string) ([]*domain.ChatMessage, error) {
	return s.chatRepo.GetContractMessages(ctx, contractID, sessionID)
}

// generalSystemPrompt grounds the assistant on the curated law catalog
// and the trusted resource links so answers cite real sources.
func (s *AssistantChatService) generalSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are a helpful legal assistant for people living in Germany. ")
	sb.WriteString("Answer questions about rental, employment, subscription and tax law in plain language. ")
	sb.WriteString("You are not a lawyer and must say so when the question needs professional advice.\n\n")

	sb.WriteString("Laws you can cite:\n")
	for _, law := range s.ruleset.Laws {
		fmt.Fprintf(&sb, "- %s: %s (%s)\n", law.Title, law.Description, law.URL)
	}

	sb.WriteString("\nTrusted resources to point users to:\n")
	for category, res := range s.ruleset.Resources {
		for _, link := range res.Authorities {
			fmt.Fprintf(&sb, "- [%s] %s: %s\n", category, link.Name, link.URL)
		}
		for _, link := range res.Report {
			fmt.Fprintf(&sb, "- [%s] %s: %s\n", category, link.Name, link.URL)
		}
	}
	return sb.String()
}

// contractSystemPrompt grounds the assistant on one analyzed document.
func (s *AssistantChatService) contractSystemPrompt(analysis *domain.ContractAnalysis) string {
	excerpt := analysis.ExtractedText
	if len(excerpt) > contractContextChars {
		excerpt = excerpt[:contractContextChars] + "..."
	}

	var sb strings.Builder
	sb.WriteString("You are a helpful legal assistant. The user is asking about a document that was already analyzed. ")
	sb.WriteString("Answer based on the analysis below and say clearly when something is outside the document.\n\n")
	fmt.Fprintf(&sb, "Document type: %s\n", analysis.DocumentType)
	fmt.Fprintf(&sb, "Risk level: %s\n", analysis.RiskLevel)
	fmt.Fprintf(&sb, "Clauses found: %d acceptable, %d need attention, %d violate the law\n",
		len(analysis.ClausesSafe), len(analysis.ClausesAttention), len(analysis.ClausesViolates))
	if analysis.LikelyScam {
		sb.WriteString("Warning: the document matched multiple fraud indicators.\n")
	}
	fmt.Fprintf(&sb, "\nSummary: %s\n", analysis.Summary)
	fmt.Fprintf(&sb, "\nRecommendations: %s\n", analysis.Recommendations)
	fmt.Fprintf(&sb, "\nDocument excerpt:\n%s\n", excerpt)
	return sb.String()
}

// toTurns flattens stored exchanges into alternating model turns,
// oldest first. Long-running sessions replay only the most recent
// chatHistoryLimit exchanges to bound the prompt.
func toTurns(messages []*domain.ChatMessage) []domain.ChatTurn {
	if len(messages) > chatHistoryLimit {
		messages = messages[len(messages)-chatHistoryLimit:]
	}
	turns := make([]domain.ChatTurn, 0, len(messages)*2)
	for _, msg := range messages {
		turns = append(turns, domain.ChatTurn{Role: "user", Content: msg.UserMessage})
		turns = append(turns, domain.ChatTurn{Role: "model", Content: msg.AIResponse})
	}
	return turns
}
