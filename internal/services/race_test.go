package services

import (
	"context"
	"sync"
	"testing"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staleLikes answers the pre-check as if the like did not exist yet, the
// view a caller has when another request inserts the row in between
type staleLikes struct {
	repositories.LikeRepository
}

func (staleLikes) HasUserLikedPost(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

type staleFollows struct {
	repositories.FollowRepository
}

func (staleFollows) IsFollowing(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func TestToggleLikeLosingRaceReportsLiked(t *testing.T) {
	e := newEnv(t)
	ana := e.signUp(t, "ana", models.DepartmentCCS)
	ben := e.signUp(t, "ben", models.DepartmentCCS)
	post, err := e.svc.Posts.CreatePost(as(ana), "hello campus", nil)
	require.NoError(t, err)

	liked, err := e.svc.Interactions.ToggleLike(as(ben), post.ID)
	require.NoError(t, err)
	require.True(t, liked)

	e.repos.Likes = staleLikes{e.repos.Likes}
	liked, err = e.svc.Interactions.ToggleLike(as(ben), post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := e.repos.Likes.GetLikesCountByPostID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, e.notificationsOf(t, ana), 1, "the rolled back attempt leaves no notification")
	assert.Len(t, e.pusher.pushed, 1)
}

func TestToggleFollowLosingRaceReportsFollowing(t *testing.T) {
	e := newEnv(t)
	ana := e.signUp(t, "ana", models.DepartmentCCS)
	ben := e.signUp(t, "ben", models.DepartmentCCS)

	following, err := e.svc.Follows.ToggleFollow(as(ana), ben)
	require.NoError(t, err)
	require.True(t, following)

	e.repos.Follows = staleFollows{e.repos.Follows}
	following, err = e.svc.Follows.ToggleFollow(as(ana), ben)
	require.NoError(t, err)
	assert.True(t, following)

	count, err := e.repos.Follows.GetFollowersCount(context.Background(), ben)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, e.notificationsOf(t, ben), 1)
}

func TestConcurrentLikesCreateOneRow(t *testing.T) {
	e := newEnv(t)
	ana := e.signUp(t, "ana", models.DepartmentCCS)
	ben := e.signUp(t, "ben", models.DepartmentCCS)
	post, err := e.svc.Posts.CreatePost(as(ana), "hello campus", nil)
	require.NoError(t, err)

	// every caller takes the like branch
	e.repos.Likes = staleLikes{e.repos.Likes}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]bool, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.svc.Interactions.ToggleLike(as(ben), post.ID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.True(t, results[i])
	}
	count, err := e.repos.Likes.GetLikesCountByPostID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Len(t, e.notificationsOf(t, ana), 1)
}

func TestConcurrentToggleLikesNeverDuplicate(t *testing.T) {
	e := newEnv(t)
	ana := e.signUp(t, "ana", models.DepartmentCCS)
	ben := e.signUp(t, "ben", models.DepartmentCCS)
	post, err := e.svc.Posts.CreatePost(as(ana), "hello campus", nil)
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.svc.Interactions.ToggleLike(as(ben), post.ID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	count, err := e.repos.Likes.GetLikesCountByPostID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, int64(1))
}
