package repositories

import (
	"context"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID uuid.UUID) ([]models.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *postgresNotificationRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Creator").Preload("Post").Preload("Comment")
}

// GetByRecipientID returns every notification for the recipient, newest first
func (r *postgresNotificationRepository) GetByRecipientID(ctx context.Context, recipientID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.withRefs(ctx).
		Where("user_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := r.withRefs(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead flips read on the given ids that belong to recipientID and
// returns how many rows changed. Ids of other recipients are ignored.
func (r *postgresNotificationRepository) MarkAsRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND id IN ? AND read = ?", recipientID, ids, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}
