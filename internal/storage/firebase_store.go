// Package storage uploads images to the Firebase Storage bucket and records
// each upload in the media catalog.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FirebaseImageStore implements services.ImageStore on a storage bucket
type FirebaseImageStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
	catalog    repositories.MediaRepository
	logger     *zap.Logger
}

// NewFirebaseImageStore creates the store. catalog may be nil.
func NewFirebaseImageStore(bucket *gcs.BucketHandle, bucketName string, catalog repositories.MediaRepository, logger *zap.Logger) *FirebaseImageStore {
	return &FirebaseImageStore{bucket: bucket, bucketName: bucketName, catalog: catalog, logger: logger}
}

// Upload writes the image under folder/owner and returns its download URL
func (s *FirebaseImageStore) Upload(ctx context.Context, ownerID uuid.UUID, folder string, img services.Image) (string, error) {
	name := objectName(folder, ownerID, img)
	token := uuid.NewString()

	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = img.ContentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}
	if _, err := io.Copy(w, bytes.NewReader(img.Data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}

	link := downloadURL(s.bucketName, name, token)
	if s.catalog != nil {
		asset := &models.MediaAsset{
			OwnerID:     ownerID.String(),
			Folder:      folder,
			Object:      name,
			URL:         link,
			ContentType: img.ContentType,
			Size:        int64(len(img.Data)),
		}
		if err := s.catalog.CreateMedia(ctx, asset); err != nil {
			s.logger.Warn("media catalog insert failed", zap.String("object", name), zap.Error(err))
		}
	}
	return link, nil
}

// objectName is folder/owner/random plus an extension taken from the file
// name, or from the content type when the name has none
func objectName(folder string, ownerID uuid.UUID, img services.Image) string {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(img.ContentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	return fmt.Sprintf("%s/%s/%s%s", folder, ownerID, uuid.NewString(), ext)
}

func downloadURL(bucket, object, token string) string {
	escaped := strings.ReplaceAll(url.PathEscape(object), "/", "%2F")
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s", bucket, escaped, token)
}
