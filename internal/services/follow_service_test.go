package services

import (
	"context"
	"testing"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollow(t *testing.T) {
	e := newEnv(t)
	ana := e.signUp(t, "ana", models.DepartmentCCS)
	ben := e.signUp(t, "ben", models.DepartmentCBS)

	following, err := e.svc.Follows.ToggleFollow(as(ana), ben)
	require.NoError(t, err)
	assert.True(t, following)

	rows := e.notificationsOf(t, ben)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotificationFollow, rows[0].Type)
	assert.Equal(t, ana, rows[0].CreatorID)
	assert.Nil(t, rows[0].PostID)
	assert.False(t, rows[0].Read)
	require.Len(t, e.pusher.pushed, 1)
	assert.Equal(t, rows[0].ID, e.pusher.pushed[0].ID)

	following, err = e.svc.Follows.ToggleFollow(as(ana), ben)
	require.NoError(t, err)
	assert.False(t, following)

	is, err := e.repos.Follows.IsFollowing(context.Background(), ana, ben)
	require.NoError(t, err)
	assert.False(t, is, "two toggles restore the original state")
	assert.Len(t, e.notificationsOf(t, ben), 1, "unfollowing neither notifies nor retracts")
	assert.Empty(t, e.notificationsOf(t, ana))
}

func TestToggleFollowRejects(t *testing.T) {
	e := newEnv(t)
	ana := e.signUp(t, "ana", models.DepartmentCCS)

	_, err := e.svc.Follows.ToggleFollow(as(ana), ana)
	assert.True(t, IsValidation(err), "%v", err)

	_, err = e.svc.Follows.ToggleFollow(as(ana), uuidOfDeletedUser())
	assert.True(t, IsNotFound(err), "%v", err)

	_, err = e.svc.Follows.ToggleFollow(anonymous(), ana)
	assert.True(t, IsAuth(err), "%v", err)
	assert.Empty(t, e.pusher.pushed)
}

func TestToggleFollowPushFailureIsNotFatal(t *testing.T) {
	e := newEnv(t)
	ana := e.signUp(t, "ana", models.DepartmentCCS)
	ben := e.signUp(t, "ben", models.DepartmentCCS)
	e.pusher.err = errPushDown

	following, err := e.svc.Follows.ToggleFollow(as(ana), ben)
	require.NoError(t, err)
	assert.True(t, following)
	assert.Len(t, e.notificationsOf(t, ben), 1)
}

func TestFollowersAndSuggestions(t *testing.T) {
	e := newEnv(t)
	ana := e.signUp(t, "ana", models.DepartmentCCS)
	ben := e.signUp(t, "ben", models.DepartmentCCS)
	cid := e.signUp(t, "cid", models.DepartmentCEA)

	_, err := e.svc.Follows.ToggleFollow(as(ana), ben)
	require.NoError(t, err)
	_, err = e.svc.Follows.ToggleFollow(as(cid), ben)
	require.NoError(t, err)

	followers, err := e.svc.Users.Followers(anonymous(), ben)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ana", "cid"}, usernames(followers))

	following, err := e.svc.Users.Following(anonymous(), ana)
	require.NoError(t, err)
	assert.Equal(t, []string{"ben"}, usernames(following))

	suggested, err := e.svc.Users.SuggestedUsers(as(ana))
	require.NoError(t, err)
	assert.Equal(t, []string{"cid"}, usernames(suggested))

	suggested, err = e.svc.Users.SuggestedUsers(anonymous())
	require.NoError(t, err)
	assert.Empty(t, suggested)

	profile, err := e.svc.Users.ProfileByUsername(as(ana), "ben")
	require.NoError(t, err)
	assert.EqualValues(t, 2, profile.FollowersCount)
	assert.EqualValues(t, 0, profile.FollowingCount)
	assert.True(t, profile.IsFollowing)
	assert.False(t, profile.IsSelf)

	profile, err = e.svc.Users.ProfileByUsername(as(ben), "ben")
	require.NoError(t, err)
	assert.True(t, profile.IsSelf)
	assert.False(t, profile.IsFollowing)
}

func TestUpdateProfile(t *testing.T) {
	e := newEnv(t)
	ana := e.signUp(t, "ana", models.DepartmentCCS)
	e.signUp(t, "ben", models.DepartmentCCS)

	_, err := e.svc.Users.UpdateProfile(as(ana), models.UpdateProfileRequest{Username: "ben"}, nil)
	assert.True(t, IsConflict(err), "%v", err)

	p, err := e.svc.Users.UpdateProfile(as(ana), models.UpdateProfileRequest{Firstname: "Ana Maria"},
		&Image{Data: []byte("png"), Filename: "me.png", ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", p.Firstname)
	assert.Equal(t, "ana", p.Username)
	assert.Contains(t, p.Image, "https://img.test/profile/")
	assert.Equal(t, []string{folderProfile}, e.images.folders)
}

func usernames(users []models.UserCompact) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Username
	}
	return out
}
