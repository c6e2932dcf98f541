package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"contract-analyzer/internal/domain"

	"github.com/gorilla/mux"
)

type MockChatService struct {
	response *domain.ChatResponse
	sessions []*domain.ChatSession
	messages []*domain.ChatMessage
	err      error

	renamedTo      string
	deletedSession string
}

func (m *MockChatService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockChatService) ContractChat(ctx context.Context, contractID string, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockChatService) GetHistory(ctx context.Context) ([]*domain.ChatSession, error) {
	return m.sessions, m.err
}

func (m *MockChatService) GetSessionMessages(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	return m.messages, m.err
}

func (m *MockChatService) RenameSession(ctx context.Context, sessionID, name string) error {
	if m.err != nil {
		return m.err
	}
	m.renamedTo = name
	return nil
}

func (m *MockChatService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.err != nil {
		return m.err
	}
	m.deletedSession = sessionID
	return nil
}

func (m *MockChatService) GetContractChatHistory(ctx context.Context, contractID, sessionID string) ([]*domain.ChatMessage, error) {
	return m.messages, m.err
}

func TestChatSuccess(t *testing.T) {
	svc := &MockChatService{response: &domain.ChatResponse{Response: "answer", SessionID: "s1"}}
	h := NewChatHandler(svc, NewMockHandlerLogger())

	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{"session_id":"s1","message":"question"}`))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var got domain.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if got.Response != "answer" || got.SessionID != "s1" {
		t.Errorf("Unexpected response: %+v", got)
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	h := NewChatHandler(&MockChatService{}, NewMockHandlerLogger())

	tests := []struct {
		name string
		body string
	}{
		{"blank message", `{"session_id":"s1","message":"   "}`},
		{"missing message", `{"session_id":"s1"}`},
		{"invalid json", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Chat(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestChatServiceUnavailable(t *testing.T) {
	h := NewChatHandler(&MockChatService{err: domain.ErrExternalService}, NewMockHandlerLogger())

	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{"message":"q"}`))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rec.Code)
	}
}

func TestContractChatNotFound(t *testing.T) {
	h := NewChatHandler(&MockChatService{err: domain.ErrAnalysisNotFound}, NewMockHandlerLogger())

	req := httptest.NewRequest("POST", "/api/v1/contract/c1/chat", strings.NewReader(`{"message":"q"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "c1"})
	rec := httptest.NewRecorder()

	h.ContractChat(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestGetHistoryReturnsEmptyArray(t *testing.T) {
	h := NewChatHandler(&MockChatService{}, NewMockHandlerLogger())

	req := httptest.NewRequest("GET", "/api/v1/chat/history", nil)
	rec := httptest.NewRecorder()

	h.GetHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("Empty history should serialize as [], got %q", body)
	}
}

func TestGetHistoryListsSessions(t *testing.T) {
	sessions := []*domain.ChatSession{
		{SessionID: "s1", Preview: "first question", Timestamp: time.Now().UTC()},
	}
	h := NewChatHandler(&MockChatService{sessions: sessions}, NewMockHandlerLogger())

	req := httptest.NewRequest("GET", "/api/v1/chat/history", nil)
	rec := httptest.NewRecorder()

	h.GetHistory(rec, req)

	var got []*domain.ChatSession
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(got) != 1 || got[0].SessionID != "s1" {
		t.Errorf("Unexpected sessions: %+v", got)
	}
}

func TestRenameSession(t *testing.T) {
	svc := &MockChatService{}
	h := NewChatHandler(svc, NewMockHandlerLogger())

	req := httptest.NewRequest("PUT", "/api/v1/chat/s1/rename", strings.NewReader(`{"name":"Deposit questions"}`))
	req = mux.SetURLVars(req, map[string]string{"sessionId": "s1"})
	rec := httptest.NewRecorder()

	h.RenameSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if svc.renamedTo != "Deposit questions" {
		t.Errorf("Expected rename to propagate, got %q", svc.renamedTo)
	}
}

func TestRenameSessionRequiresName(t *testing.T) {
	h := NewChatHandler(&MockChatService{}, NewMockHandlerLogger())

	req := httptest.NewRequest("PUT", "/api/v1/chat/s1/rename", strings.NewReader(`{"name":""}`))
	req = mux.SetURLVars(req, map[string]string{"sessionId": "s1"})
	rec := httptest.NewRecorder()

	h.RenameSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestDeleteSessionNotFound(t *testing.T) {
	h := NewChatHandler(&MockChatService{err: domain.ErrSessionNotFound}, NewMockHandlerLogger())

	req := httptest.NewRequest("DELETE", "/api/v1/chat/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"sessionId": "missing"})
	rec := httptest.NewRecorder()

	h.DeleteSession(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}
