package domain

import (
	"context"
	"time"
)

// ChatMessage is one stored user/assistant exchange.
type ChatMessage struct {
	ID          string    `json:"id" bson:"id"`
	SessionID   string    `json:"session_id" bson:"session_id"`
	SessionName string    `json:"session_name,omitempty" bson:"session_name,omitempty"`
	ContractID  string    `json:"contract_id,omitempty" bson:"contract_id,omitempty"`
	UserMessage string    `json:"user_message" bson:"user_message"`
	AIResponse  string    `json:"ai_response" bson:"ai_response"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

// ChatTurn is one prior exchange passed to the model as history.
type ChatTurn struct {
	Role    string
	Content string
}

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the outbound chat payload.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// ChatSession is a summary row for the session list.
type ChatSession struct {
	SessionID string    `json:"session_id"`
	Preview   string    `json:"preview"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRepository persists chat exchanges and session metadata.
type ChatRepository interface {
	InsertMessage(ctx context.Context, msg *ChatMessage) error
	GetSessionMessages(ctx context.Context, sessionID string) ([]*ChatMessage, error)
	ListSessions(ctx context.Context, limit int) ([]*ChatSession, error)
	RenameSession(ctx context.Context, sessionID, name string) (int64, error)
	DeleteSession(ctx context.Context, sessionID string) (int64, error)

	InsertContractMessage(ctx context.Context, msg *ChatMessage) error
	GetContractMessages(ctx context.Context, contractID, sessionID string) ([]*ChatMessage, error)
}

// ChatService drives assistant conversations.
type ChatService interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	ContractChat(ctx context.Context, contractID string, req ChatRequest) (*ChatResponse, error)
	GetHistory(ctx context.Context) ([]*ChatSession, error)
	GetSessionMessages(ctx context.Context, sessionID string) ([]*ChatMessage, error)
	RenameSession(ctx context.Context, sessionID, name string) error
	DeleteSession(ctx context.Context, sessionID string) error
	GetContractChatHistory(ctx context.Context, contractID, sessionID string) ([]*ChatMessage, error)
}
