package repository

import (
	"context"
	"errors"
	"fmt"

	"contract-analyzer/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const analysesCollection = "contract_analyses"

// MongoAnalysisRepository stores analysis results in MongoDB. Records
// are keyed by the application-assigned id field, not Mongo's _id.
type MongoAnalysisRepository struct {
	collection *mongo.Collection
	logger     domain.Logger
}

func NewMongoAnalysisRepository(db *mongo.Database, logger domain.Logger) *MongoAnalysisRepository {
	return &MongoAnalysisRepository{
		collection: db.Collection(analysesCollection),
		logger:     logger,
	}
}

func (r *MongoAnalysisRepository) Insert(ctx context.Context, analysis *domain.ContractAnalysis) error {
	if _, err := r.collection.InsertOne(ctx, analysis); err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

func (r *MongoAnalysisRepository) GetByID(ctx context.Context, id string) (*domain.ContractAnalysis, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 0})

	var analysis domain.ContractAnalysis
	err := r.collection.FindOne(ctx, bson.M{"id": id}, opts).Decode(&analysis)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &analysis, nil
}
