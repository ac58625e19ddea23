package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fpm-inspections-core/internal/infrastructure/database/mongodb"
	"fpm-inspections-core/internal/modules/inspections/analyses/dto"
)

// ErrAnalysisNotFound document absent
var ErrAnalysisNotFound = errors.New("analyse introuvable")

// AnalysisRepository historique des analyses
type AnalysisRepository interface {
	Insert(ctx context.Context, a *dto.Analysis) error
	Recent(ctx context.Context, limit int64) ([]dto.Analysis, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*dto.Analysis, error)
	Count(ctx context.Context) (int64, error)
}

// MongoAnalysisRepository collection analysis_logs
type MongoAnalysisRepository struct {
	collection *mongo.Collection
}

func NewMongoAnalysisRepository(client *mongodb.Client) *MongoAnalysisRepository {
	return &MongoAnalysisRepository{collection: client.Collection(mongodb.AnalysisLogsCollection)}
}

// Insert renseigne l'identifiant généré
func (r *MongoAnalysisRepository) Insert(ctx context.Context, a *dto.Analysis) error {
	res, err := r.collection.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("insertion analyse: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return nil
}

// Recent - plus récentes d'abord (index date_analyse -1)
func (r *MongoAnalysisRepository) Recent(ctx context.Context, limit int64) ([]dto.Analysis, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date_analyse", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("lecture analyses récentes: %w", err)
	}
	defer cursor.Close(ctx)

	analyses := make([]dto.Analysis, 0, limit)
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, fmt.Errorf("décodage analyses: %w", err)
	}
	return analyses, nil
}

func (r *MongoAnalysisRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*dto.Analysis, error) {
	var a dto.Analysis
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture analyse %s: %w", id.Hex(), err)
	}
	return &a, nil
}

func (r *MongoAnalysisRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("comptage analyses: %w", err)
	}
	return n, nil
}
