// Package notify pushes created notifications through Firebase Cloud Messaging.
package notify

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"github.com/anonto42/campus-social/backend/internal/models"
)

// Sender is the part of *messaging.Client the pusher needs
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMPusher sends each notification to the recipient's topic, user_<id>.
// Clients subscribe their device tokens to that topic.
type FCMPusher struct {
	sender Sender
}

func NewFCMPusher(sender Sender) *FCMPusher {
	return &FCMPusher{sender: sender}
}

func (p *FCMPusher) Push(ctx context.Context, n *models.Notification) error {
	_, err := p.sender.Send(ctx, Message(n))
	return err
}

// Message builds the FCM message for n
func Message(n *models.Notification) *messaging.Message {
	data := map[string]string{
		"notificationId": n.ID.String(),
		"type":           string(n.Type),
		"creatorId":      n.CreatorID.String(),
	}
	if n.PostID != nil {
		data["postId"] = n.PostID.String()
	}
	if n.CommentID != nil {
		data["commentId"] = n.CommentID.String()
	}
	return &messaging.Message{
		Topic: Topic(n.UserID.String()),
		Notification: &messaging.Notification{
			Title: "Campus",
			Body:  body(n.Type),
		},
		Data: data,
	}
}

// Topic is the FCM topic of one user
func Topic(userID string) string {
	return "user_" + userID
}

func body(t models.NotificationType) string {
	switch t {
	case models.NotificationFollow:
		return "Someone started following you"
	case models.NotificationLike:
		return "Someone liked your post"
	case models.NotificationComment:
		return "Someone commented on your post"
	}
	return "You have a new notification"
}
