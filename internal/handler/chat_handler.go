package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"contract-analyzer/internal/domain"
	apperrors "contract-analyzer/pkg/errors"

	"github.com/gorilla/mux"
)

// ChatHandler handles assistant chat HTTP requests
type ChatHandler struct {
	chatService domain.ChatService
	logger      domain.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService domain.ChatService, logger domain.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat answers a general legal question.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeServiceError(w, apperrors.NewValidationError("Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeServiceError(w, apperrors.NewValidationError("Message is required"))
		return
	}

	resp, err := h.chatService.Chat(r.Context(), req)
	if err != nil {
		h.logger.Error("Chat failed", err, "session_id", req.SessionID)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ContractChat answers a question about a stored analysis.
func (h *ChatHandler) ContractChat(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["id"]

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeServiceError(w, apperrors.NewValidationError("Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeServiceError(w, apperrors.NewValidationError("Message is required"))
		return
	}

	resp, err := h.chatService.ContractChat(r.Context(), contractID, req)
	if err != nil {
		h.logger.Error("Contract chat failed", err, "contract_id", contractID)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetHistory lists recent chat sessions.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.chatService.GetHistory(r.Context())
	if err != nil {
		h.logger.Error("Failed to list chat sessions", err)
		writeServiceError(w, err)
		return
	}
	if sessions == nil {
		sessions = make([]*domain.ChatSession, 0)
	}
	writeJSON(w, http.StatusOK, sessions)
}

// GetSessionMessages returns all messages of one session, oldest first.
func (h *ChatHandler) GetSessionMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	messages, err := h.chatService.GetSessionMessages(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if messages == nil {
		messages = make([]*domain.ChatMessage, 0)
	}
	writeJSON(w, http.StatusOK, messages)
}

// RenameSession sets a display name on every message of a session.
func (h *ChatHandler) RenameSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeServiceError(w, apperrors.NewValidationError("Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeServiceError(w, apperrors.NewValidationError("Name is required"))
		return
	}

	if err := h.chatService.RenameSession(r.Context(), sessionID, req.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteSession removes a session and all its messages.
func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.chatService.DeleteSession(r.Context(), sessionID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetContractChatHistory returns the conversation about one contract.
func (h *ChatHandler) GetContractChatHistory(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["id"]
	sessionID := r.URL.Query().Get("session_id")

	messages, err := h.chatService.GetContractChatHistory(r.Context(), contractID, sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if messages == nil {
		messages = make([]*domain.ChatMessage, 0)
	}
	writeJSON(w, http.StatusOK, messages)
}
