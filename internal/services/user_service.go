package services

import (
	"context"
	"strings"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/anonto42/campus-social/backend/internal/session"
	"github.com/google/uuid"
)

type UserService struct {
	repos  *repositories.Repositories
	images ImageStore
}

func NewUserService(repos *repositories.Repositories, images ImageStore) *UserService {
	return &UserService{repos: repos, images: images}
}

// SuggestedUsers samples users the caller does not follow yet. Anonymous
// callers get an empty list.
func (s *UserService) SuggestedUsers(ctx context.Context) ([]models.UserCompact, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return []models.UserCompact{}, nil
	}
	users, err := s.repos.Users.GetSuggestedUsers(ctx, sess.UserID, suggestedUsersLimit)
	if err != nil {
		return nil, err
	}
	return compactUsers(users), nil
}

// ProfileByUsername returns a profile with follow counts as seen by the caller
func (s *UserService) ProfileByUsername(ctx context.Context, username string) (*models.ProfileView, error) {
	user, err := s.repos.Users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, notFound(err, "user")
	}
	view := &models.ProfileView{PublicProfile: user.ToPublicProfile()}
	if view.FollowersCount, err = s.repos.Follows.GetFollowersCount(ctx, user.ID); err != nil {
		return nil, err
	}
	if view.FollowingCount, err = s.repos.Follows.GetFollowingCount(ctx, user.ID); err != nil {
		return nil, err
	}
	if sess, ok := session.FromContext(ctx); ok {
		view.IsSelf = sess.UserID == user.ID
		if !view.IsSelf {
			if view.IsFollowing, err = s.repos.Follows.IsFollowing(ctx, sess.UserID, user.ID); err != nil {
				return nil, err
			}
		}
	}
	return view, nil
}

// UpdateProfile changes the caller's own profile. Empty fields are kept.
func (s *UserService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest, img *Image) (*models.PublicProfile, error) {
	user, err := callerUser(ctx, s.repos)
	if err != nil {
		return nil, err
	}
	if username := strings.TrimSpace(req.Username); username != "" && username != user.Username {
		other, err := s.repos.Users.GetUserByUsername(ctx, username)
		if err == nil && other.ID != user.ID {
			return nil, ConflictError("username is already taken", nil)
		}
		if err != nil && !repositories.IsNotFound(err) {
			return nil, err
		}
		user.Username = username
	}
	if v := strings.TrimSpace(req.Firstname); v != "" {
		user.Firstname = v
	}
	if v := strings.TrimSpace(req.Lastname); v != "" {
		user.Lastname = v
	}
	if img != nil {
		url, err := uploadImage(ctx, s.images, user.ID, folderProfile, img)
		if err != nil {
			return nil, err
		}
		user.Image = url
	}
	if err := s.repos.Users.UpdateUser(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, ConflictError("username is already taken", err)
		}
		return nil, err
	}
	p := user.ToPublicProfile()
	return &p, nil
}

// Followers lists who follows userID
func (s *UserService) Followers(ctx context.Context, userID uuid.UUID) ([]models.UserCompact, error) {
	if _, err := s.repos.Users.GetUserByID(ctx, userID); err != nil {
		return nil, notFound(err, "user")
	}
	users, err := s.repos.Follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return compactUsers(users), nil
}

// Following lists who userID follows
func (s *UserService) Following(ctx context.Context, userID uuid.UUID) ([]models.UserCompact, error) {
	if _, err := s.repos.Users.GetUserByID(ctx, userID); err != nil {
		return nil, notFound(err, "user")
	}
	users, err := s.repos.Follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return compactUsers(users), nil
}

func compactUsers(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out
}
