package repositories

import (
	"context"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommunityRepository defines the interface for communities and the posts
// and comments nested under them
type CommunityRepository interface {
	CreateCommunity(ctx context.Context, community *models.Community) error
	GetCommunityByID(ctx context.Context, id uuid.UUID) (*models.Community, error)
	GetCommunityWithPosts(ctx context.Context, id uuid.UUID) (*models.Community, error)
	GetCommunityByAuthor(ctx context.Context, authorID uuid.UUID) (*models.Community, error)
	ListCommunities(ctx context.Context, department models.Department) ([]models.Community, error)
	UpdateCommunity(ctx context.Context, community *models.Community) error
	DeleteCommunity(ctx context.Context, id uuid.UUID) error

	CreatePost(ctx context.Context, post *models.CommunityPost) error
	GetPostByID(ctx context.Context, id uuid.UUID) (*models.CommunityPost, error)
	GetPostWithThread(ctx context.Context, id uuid.UUID) (*models.CommunityPost, error)
	UpdatePost(ctx context.Context, post *models.CommunityPost) error
	DeletePost(ctx context.Context, id uuid.UUID) error

	CreateComment(ctx context.Context, comment *models.CommunityComment) error
	GetCommentByID(ctx context.Context, id uuid.UUID) (*models.CommunityComment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// PostgresCommunityRepository implements CommunityRepository for PostgreSQL
type PostgresCommunityRepository struct {
	db *gorm.DB
}

// NewPostgresCommunityRepository creates a new PostgresCommunityRepository
func NewPostgresCommunityRepository(db *gorm.DB) *PostgresCommunityRepository {
	return &PostgresCommunityRepository{db: db}
}

// CreateCommunity inserts a community. An author that already owns one
// yields ErrDuplicate.
func (r *PostgresCommunityRepository) CreateCommunity(ctx context.Context, community *models.Community) error {
	return translate(r.db.WithContext(ctx).Create(community).Error)
}

func (r *PostgresCommunityRepository) GetCommunityByID(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	var c models.Community
	if err := r.db.WithContext(ctx).Preload("Author").First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCommunityWithPosts loads the community with its posts (newest first),
// their comment threads and every author involved
func (r *PostgresCommunityRepository) GetCommunityWithPosts(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	var c models.Community
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Posts", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Posts.Author").
		Preload("Posts.Comments", topLevelByCreation).
		Preload("Posts.Comments.Author").
		Preload("Posts.Comments.Replies", orderedByCreation).
		Preload("Posts.Comments.Replies.Author").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCommunityRepository) GetCommunityByAuthor(ctx context.Context, authorID uuid.UUID) (*models.Community, error) {
	var c models.Community
	if err := r.db.WithContext(ctx).Where("author_id = ?", authorID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCommunities returns communities newest first, limited to department
// unless it is empty
func (r *PostgresCommunityRepository) ListCommunities(ctx context.Context, department models.Department) ([]models.Community, error) {
	q := r.db.WithContext(ctx).Preload("Author")
	if department != "" {
		q = q.Where("department = ?", department)
	}
	var communities []models.Community
	err := q.Order("created_at DESC").Find(&communities).Error
	return communities, err
}

func (r *PostgresCommunityRepository) UpdateCommunity(ctx context.Context, community *models.Community) error {
	return r.db.WithContext(ctx).Model(community).Select("title", "description", "image").Updates(community).Error
}

func (r *PostgresCommunityRepository) DeleteCommunity(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Community{}, "id = ?", id).Error
}

func (r *PostgresCommunityRepository) CreatePost(ctx context.Context, post *models.CommunityPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostgresCommunityRepository) GetPostByID(ctx context.Context, id uuid.UUID) (*models.CommunityPost, error) {
	var p models.CommunityPost
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresCommunityRepository) GetPostWithThread(ctx context.Context, id uuid.UUID) (*models.CommunityPost, error) {
	var p models.CommunityPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", topLevelByCreation).
		Preload("Comments.Author").
		Preload("Comments.Replies", orderedByCreation).
		Preload("Comments.Replies.Author").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresCommunityRepository) UpdatePost(ctx context.Context, post *models.CommunityPost) error {
	return r.db.WithContext(ctx).Model(post).Select("content", "image").Updates(post).Error
}

func (r *PostgresCommunityRepository) DeletePost(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CommunityPost{}, "id = ?", id).Error
}

func (r *PostgresCommunityRepository) CreateComment(ctx context.Context, comment *models.CommunityComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PostgresCommunityRepository) GetCommentByID(ctx context.Context, id uuid.UUID) (*models.CommunityComment, error) {
	var c models.CommunityComment
	if err := r.db.WithContext(ctx).Preload("Author").First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCommunityRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CommunityComment{}, "id = ?", id).Error
}

func topLevelByCreation(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id IS NULL").Order("created_at ASC")
}
