package repositories

import (
	"context"
	"time"

	"github.com/anonto42/campus-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MediaRepository defines the interface for the uploaded media catalog
type MediaRepository interface {
	CreateMedia(ctx context.Context, asset *models.MediaAsset) error
}

// MongoMediaRepository implements MediaRepository for MongoDB
type MongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new MongoMediaRepository
func NewMongoMediaRepository(db *mongo.Database) *MongoMediaRepository {
	return &MongoMediaRepository{collection: db.Collection("media")}
}

// CreateMedia records an uploaded asset
func (r *MongoMediaRepository) CreateMedia(ctx context.Context, asset *models.MediaAsset) error {
	asset.ID = primitive.NewObjectID()
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, asset)
	return err
}
