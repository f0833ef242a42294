package services

import (
	"context"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/google/uuid"
)

type FollowService struct {
	repos    *repositories.Repositories
	notifier *notifier
}

func NewFollowService(repos *repositories.Repositories, n *notifier) *FollowService {
	return &FollowService{repos: repos, notifier: n}
}

// ToggleFollow follows targetID, or unfollows it when the caller already
// does, and reports whether the caller follows the target afterwards.
// Following writes the edge and the FOLLOW notification in one transaction;
// unfollowing notifies nobody.
func (s *FollowService) ToggleFollow(ctx context.Context, targetID uuid.UUID) (bool, error) {
	userID, err := caller(ctx)
	if err != nil {
		return false, err
	}
	if userID == targetID {
		return false, ValidationError("you cannot follow yourself")
	}
	if _, err := s.repos.Users.GetUserByID(ctx, targetID); err != nil {
		return false, notFound(err, "user")
	}

	following, err := s.repos.Follows.IsFollowing(ctx, userID, targetID)
	if err != nil {
		return false, err
	}
	if following {
		if _, err := s.repos.Follows.DeleteFollow(ctx, userID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}

	var row *models.Notification
	err = s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		if err := tx.Follows.CreateFollow(ctx, &models.Follow{FollowerID: userID, FollowingID: targetID}); err != nil {
			return err
		}
		var err error
		row, err = s.notifier.record(ctx, tx, targetID, userID, models.FollowEvent{})
		return err
	})
	if isDuplicate(err) {
		// a concurrent toggle created the edge first
		return true, nil
	}
	if err != nil {
		return false, err
	}
	s.notifier.dispatch(ctx, row)
	return true, nil
}
