package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaAsset records one uploaded image in the MongoDB media catalog
type MediaAsset struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID     string             `json:"owner_id" bson:"owner_id"`
	Folder      string             `json:"folder" bson:"folder"`
	Object      string             `json:"object" bson:"object"`
	URL         string             `json:"url" bson:"url"`
	ContentType string             `json:"content_type" bson:"content_type"`
	Size        int64              `json:"size" bson:"size"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
