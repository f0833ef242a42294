package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
	NotificationFollow  NotificationType = "FOLLOW"
)

// Notification is a derived row written when someone else follows the
// recipient, likes their post or comments on it. Only Read ever changes.
type Notification struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Type      NotificationType `json:"type" gorm:"size:16;not null;index"`
	UserID    uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"` // recipient
	CreatorID uuid.UUID        `json:"creator_id" gorm:"type:uuid;not null"`
	Creator   User             `json:"-" gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
	PostID    *uuid.UUID       `json:"post_id,omitempty" gorm:"type:uuid;index"`
	Post      *Post            `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CommentID *uuid.UUID       `json:"comment_id,omitempty" gorm:"type:uuid"`
	Comment   *Comment         `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	Read      bool             `json:"read" gorm:"not null;default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// NotificationEvent is the closed set of things that notify a user.
// Implemented by FollowEvent, LikeEvent and CommentEvent only.
type NotificationEvent interface {
	Type() NotificationType
	apply(n *Notification)
}

type FollowEvent struct{}

type LikeEvent struct {
	PostID uuid.UUID
}

type CommentEvent struct {
	PostID    uuid.UUID
	CommentID uuid.UUID
}

func (FollowEvent) Type() NotificationType  { return NotificationFollow }
func (LikeEvent) Type() NotificationType    { return NotificationLike }
func (CommentEvent) Type() NotificationType { return NotificationComment }

func (FollowEvent) apply(n *Notification) {}

func (e LikeEvent) apply(n *Notification) {
	n.PostID = &e.PostID
}

func (e CommentEvent) apply(n *Notification) {
	n.PostID = &e.PostID
	n.CommentID = &e.CommentID
}

// NewNotification builds the row for event. It returns nil when the actor is
// the recipient: nobody is notified about their own actions.
func NewNotification(recipientID, actorID uuid.UUID, event NotificationEvent) *Notification {
	if recipientID == actorID {
		return nil
	}
	n := &Notification{
		Type:      event.Type(),
		UserID:    recipientID,
		CreatorID: actorID,
	}
	event.apply(n)
	return n
}

// Event rebuilds the typed event from the stored columns, rejecting rows
// that are missing a field their type requires.
func (n *Notification) Event() (NotificationEvent, error) {
	switch n.Type {
	case NotificationFollow:
		return FollowEvent{}, nil
	case NotificationLike:
		if n.PostID == nil {
			return nil, fmt.Errorf("like notification %s has no post", n.ID)
		}
		return LikeEvent{PostID: *n.PostID}, nil
	case NotificationComment:
		if n.PostID == nil || n.CommentID == nil {
			return nil, fmt.Errorf("comment notification %s needs post and comment", n.ID)
		}
		return CommentEvent{PostID: *n.PostID, CommentID: *n.CommentID}, nil
	}
	return nil, fmt.Errorf("unknown notification type %q", n.Type)
}

// NotificationView is a notification joined with its actor and, where
// applicable, the referenced post and comment.
type NotificationView struct {
	ID        uuid.UUID        `json:"id"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	Creator   UserCompact      `json:"creator"`
	Post      *PostSummary     `json:"post,omitempty"`
	Comment   *CommentSummary  `json:"comment,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewNotificationView(n *Notification) NotificationView {
	v := NotificationView{
		ID:        n.ID,
		Type:      n.Type,
		Read:      n.Read,
		Creator:   n.Creator.ToCompact(),
		CreatedAt: n.CreatedAt,
	}
	if n.Post != nil {
		v.Post = &PostSummary{ID: n.Post.ID, Content: n.Post.Content, Image: n.Post.Image}
	}
	if n.Comment != nil {
		v.Comment = &CommentSummary{
			ID:        n.Comment.ID,
			Content:   n.Comment.Content,
			AuthorID:  n.Comment.AuthorID,
			PostID:    n.Comment.PostID,
			CreatedAt: n.Comment.CreatedAt,
		}
	}
	return v
}

type MarkNotificationsReadRequest struct {
	IDs []string `json:"ids" validate:"required,dive,uuid"`
}
