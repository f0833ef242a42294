// Package services implements the campus social operations: each method
// resolves the caller from the request session, validates and authorizes,
// writes through the repositories and returns *Error for expected failures.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/anonto42/campus-social/backend/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Image is an uploaded image held in memory
type Image struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ImageStore persists an image under a logical folder and returns its URL
type ImageStore interface {
	Upload(ctx context.Context, ownerID uuid.UUID, folder string, img Image) (string, error)
}

// Pusher delivers a created notification to the recipient's devices
type Pusher interface {
	Push(ctx context.Context, n *models.Notification) error
}

const (
	folderPosts          = "posts"
	folderProfile        = "profile"
	folderCommunities    = "communities"
	folderCommunityPosts = "community-posts"

	suggestedUsersLimit = 5
)

// Services groups every operation set over a shared set of collaborators
type Services struct {
	Auth          *AuthService
	Users         *UserService
	Follows       *FollowService
	Posts         *PostService
	Interactions  *InteractionService
	Notifications *NotificationService
	Communities   *CommunityService
}

// Deps are the collaborators of New. Images, Pusher and Firebase may be nil.
type Deps struct {
	Repos    *repositories.Repositories
	Tokens   *TokenIssuer
	Images   ImageStore
	Pusher   Pusher
	Firebase IDTokenVerifier
	Logger   *zap.Logger
	HashCost int
}

func New(d Deps) *Services {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &notifier{pusher: d.Pusher, logger: logger}
	return &Services{
		Auth:          NewAuthService(d.Repos, d.Tokens, d.Firebase, d.HashCost),
		Users:         NewUserService(d.Repos, d.Images),
		Follows:       NewFollowService(d.Repos, n),
		Posts:         NewPostService(d.Repos, d.Images),
		Interactions:  NewInteractionService(d.Repos, n),
		Notifications: NewNotificationService(d.Repos),
		Communities:   NewCommunityService(d.Repos, d.Images),
	}
}

// notifier writes notification rows inside the triggering transaction and
// pushes them once that transaction has committed
type notifier struct {
	pusher Pusher
	logger *zap.Logger
}

// record stores the notification for event. It returns nil, nil when the
// actor is the recipient.
func (n *notifier) record(ctx context.Context, tx *repositories.Repositories, recipientID, actorID uuid.UUID, event models.NotificationEvent) (*models.Notification, error) {
	row := models.NewNotification(recipientID, actorID, event)
	if row == nil {
		return nil, nil
	}
	if err := tx.Notifications.CreateNotification(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// dispatch is best effort: failures are logged and never reach the caller
func (n *notifier) dispatch(ctx context.Context, row *models.Notification) {
	if n == nil || row == nil || n.pusher == nil {
		return
	}
	if err := n.pusher.Push(ctx, row); err != nil {
		n.logger.Warn("notification push failed",
			zap.String("notification_id", row.ID.String()),
			zap.String("type", string(row.Type)),
			zap.Error(err))
	}
}

// caller returns the session user id or an AuthError
func caller(ctx context.Context) (uuid.UUID, error) {
	s, ok := session.FromContext(ctx)
	if !ok {
		return uuid.Nil, AuthError("you must be logged in")
	}
	return s.UserID, nil
}

// callerUser loads the session user. A token for a deleted user is treated
// as no session.
func callerUser(ctx context.Context, repos *repositories.Repositories) (*models.User, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	user, err := repos.Users.GetUserByID(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, AuthError("you must be logged in")
	}
	return user, err
}

// notFound turns gorm's missing-row error into a NotFoundError
func notFound(err error, what string) error {
	if repositories.IsNotFound(err) {
		return NotFoundError(what + " not found")
	}
	return err
}

func uploadImage(ctx context.Context, store ImageStore, ownerID uuid.UUID, folder string, img *Image) (string, error) {
	if img == nil {
		return "", nil
	}
	if store == nil {
		return "", ValidationError("image uploads are disabled")
	}
	if len(img.Data) == 0 {
		return "", ValidationError("image is empty")
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return "", ValidationError("file must be an image")
	}
	return store.Upload(ctx, ownerID, folder, *img)
}

func isDuplicate(err error) bool {
	return errors.Is(err, repositories.ErrDuplicate)
}
