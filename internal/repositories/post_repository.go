package repositories

import (
	"context"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostFilter narrows post listings. Zero fields do not filter.
type PostFilter struct {
	Department models.Department
	AuthorID   uuid.UUID
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	GetPostWithThread(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error)
	CountComments(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves the bare post row
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostWithThread retrieves a post with its author, likes and the full
// comment thread (top-level comments, their replies, and all authors).
func (r *PostgresPostRepository) GetPostWithThread(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Likes").
		Preload("Comments", topLevelByCreation).
		Preload("Comments.Author").
		Preload("Comments.Replies", orderedByCreation).
		Preload("Comments.Replies.Author").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns posts newest first with author and likes loaded
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Preload("Author").Preload("Likes")
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.AuthorID != uuid.Nil {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	var posts []models.Post
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountComments returns the number of comments, replies included, per post.
// Posts without comments are absent from the map.
func (r *PostgresPostRepository) CountComments(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID uuid.UUID
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

// UpdatePost saves content and image of an existing post
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Model(post).Select("content", "image").Updates(post).Error
}

// DeletePost deletes a post; likes, comments and notifications go with it
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error
}
