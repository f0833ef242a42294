package repositories

import (
	"context"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
	UpdateCommentContent(ctx context.Context, id uuid.UUID, content string) error
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID retrieves a comment with its author
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID returns the top-level comments of a post, oldest first,
// each with its author and its replies.
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Replies", orderedByCreation).
		Preload("Replies.Author").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) UpdateCommentContent(ctx context.Context, id uuid.UUID, content string) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("content", content).Error
}

// DeleteComment deletes a comment and, through the foreign key, its replies
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error
}

func orderedByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
