package repositories

import (
	"context"

	"github.com/anonto42/campus-social/backend/internal/models"
	"gorm.io/gorm"
)

// Repositories bundles every relational repository over one *gorm.DB, which
// is either the pool or an open transaction.
type Repositories struct {
	db *gorm.DB

	Users         UserRepository
	Follows       FollowRepository
	Posts         PostRepository
	Likes         LikeRepository
	Comments      CommentRepository
	Notifications NotificationRepository
	Communities   CommunityRepository
}

// New creates the repository bundle for db
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:            db,
		Users:         NewPostgresUserRepository(db),
		Follows:       NewPostgresFollowRepository(db),
		Posts:         NewPostgresPostRepository(db),
		Likes:         NewPostgresLikeRepository(db),
		Comments:      NewPostgresCommentRepository(db),
		Notifications: NewPostgresNotificationRepository(db),
		Communities:   NewPostgresCommunityRepository(db),
	}
}

// Transaction runs fn against a bundle bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise. Inside fn
// only tx may be used.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// AutoMigrate creates or updates the relational schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.Community{},
		&models.CommunityPost{},
		&models.CommunityComment{},
	)
}
