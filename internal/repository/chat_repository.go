package repository

import (
	"context"
	"fmt"
	"time"

	"contract-analyzer/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	chatMessagesCollection  = "chat_messages"
	contractChatsCollection = "contract_chats"

	sessionPreviewLimit = 60
)

// MongoChatRepository stores chat exchanges. General assistant messages
// and contract-scoped messages live in separate collections so session
// listing only covers the general ones.
type MongoChatRepository struct {
	messages      *mongo.Collection
	contractChats *mongo.Collection
	logger        domain.Logger
}

func NewMongoChatRepository(db *mongo.Database, logger domain.Logger) *MongoChatRepository {
	return &MongoChatRepository{
		messages:      db.Collection(chatMessagesCollection),
		contractChats: db.Collection(contractChatsCollection),
		logger:        logger,
	}
}

func (r *MongoChatRepository) InsertMessage(ctx context.Context, msg *domain.ChatMessage) error {
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

func (r *MongoChatRepository) GetSessionMessages(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	return r.findMessages(ctx, r.messages, bson.M{"session_id": sessionID})
}

// ListSessions groups messages by session and returns one row per
// session with the most recent user message as preview, newest session
// first.
func (r *MongoChatRepository) ListSessions(ctx context.Context, limit int) ([]*domain.ChatSession, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$session_id"},
			{Key: "last_message", Value: bson.D{{Key: "$first", Value: "$user_message"}}},
			{Key: "timestamp", Value: bson.D{{Key: "$first", Value: "$timestamp"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "timestamp", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.messages.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		SessionID   string    `bson:"_id"`
		LastMessage string    `bson:"last_message"`
		Timestamp   time.Time `bson:"timestamp"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	sessions := make([]*domain.ChatSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, &domain.ChatSession{
			SessionID: row.SessionID,
			Preview:   previewOf(row.LastMessage),
			Timestamp: row.Timestamp,
		})
	}
	return sessions, nil
}

func (r *MongoChatRepository) RenameSession(ctx context.Context, sessionID, name string) (int64, error) {
	result, err := r.messages.UpdateMany(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"session_name": name}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to rename session: %w", err)
	}
	return result.MatchedCount, nil
}

func (r *MongoChatRepository) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	result, err := r.messages.DeleteMany(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete session: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *MongoChatRepository) InsertContractMessage(ctx context.Context, msg *domain.ChatMessage) error {
	if _, err := r.contractChats.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert contract chat message: %w", err)
	}
	return nil
}

func (r *MongoChatRepository) GetContractMessages(ctx context.Context, contractID, sessionID string) ([]*domain.ChatMessage, error) {
	return r.findMessages(ctx, r.contractChats, bson.M{"contract_id": contractID, "session_id": sessionID})
}

// findMessages returns matching messages oldest first.
func (r *MongoChatRepository) findMessages(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]*domain.ChatMessage, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find chat messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*domain.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}
	return messages, nil
}

func previewOf(message string) string {
	runes := []rune(message)
	if len(runes) > sessionPreviewLimit {
		return string(runes[:sessionPreviewLimit]) + "..."
	}
	return message
}
