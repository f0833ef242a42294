package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/anonto42/campus-social/backend/internal/repositories/repotest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, repos *repositories.Repositories, username string, dept models.Department) *models.User {
	t.Helper()
	u := &models.User{
		Email:     username + "@campus.edu",
		Username:  username,
		Password:  "x",
		Firstname: username,
		Lastname:  "Test",
		Type:      dept,
	}
	require.NoError(t, repos.Users.CreateUser(context.Background(), u))
	return u
}

func TestDuplicateUserIsErrDuplicate(t *testing.T) {
	repos := repositories.New(repotest.NewDB(t))
	ctx := context.Background()
	newUser(t, repos, "ana", models.DepartmentCCS)

	err := repos.Users.CreateUser(ctx, &models.User{Email: "ana@campus.edu", Username: "other", Password: "x"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestLikeIsUniquePerUserAndPost(t *testing.T) {
	repos := repositories.New(repotest.NewDB(t))
	ctx := context.Background()
	author := newUser(t, repos, "ana", models.DepartmentCCS)
	post := &models.Post{Content: "hi", AuthorID: author.ID, Department: author.Type}
	require.NoError(t, repos.Posts.CreatePost(ctx, post))

	require.NoError(t, repos.Likes.CreateLike(ctx, &models.Like{UserID: author.ID, PostID: post.ID}))
	err := repos.Likes.CreateLike(ctx, &models.Like{UserID: author.ID, PostID: post.ID})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	count, err := repos.Likes.GetLikesCountByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestOneCommunityPerAuthor(t *testing.T) {
	repos := repositories.New(repotest.NewDB(t))
	ctx := context.Background()
	owner := newUser(t, repos, "ana", models.DepartmentCCS)

	require.NoError(t, repos.Communities.CreateCommunity(ctx, &models.Community{Title: "a", Description: "a", AuthorID: owner.ID}))
	err := repos.Communities.CreateCommunity(ctx, &models.Community{Title: "b", Description: "b", AuthorID: owner.ID})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestFollowEdges(t *testing.T) {
	repos := repositories.New(repotest.NewDB(t))
	ctx := context.Background()
	a := newUser(t, repos, "ana", models.DepartmentCCS)
	b := newUser(t, repos, "ben", models.DepartmentCBS)
	c := newUser(t, repos, "cy", models.DepartmentCEA)

	require.NoError(t, repos.Follows.CreateFollow(ctx, &models.Follow{FollowerID: a.ID, FollowingID: b.ID}))
	require.NoError(t, repos.Follows.CreateFollow(ctx, &models.Follow{FollowerID: c.ID, FollowingID: b.ID}))
	err := repos.Follows.CreateFollow(ctx, &models.Follow{FollowerID: a.ID, FollowingID: b.ID})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	followers, err := repos.Follows.GetFollowers(ctx, b.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, c.ID}, []uuid.UUID{followers[0].ID, followers[1].ID})

	n, err := repos.Follows.GetFollowingCount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	suggested, err := repos.Users.GetSuggestedUsers(ctx, a.ID, 5)
	require.NoError(t, err)
	require.Len(t, suggested, 1)
	assert.Equal(t, c.ID, suggested[0].ID)

	removed, err := repos.Follows.DeleteFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repos.Follows.DeleteFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTransactionRollsBack(t *testing.T) {
	repos := repositories.New(repotest.NewDB(t))
	ctx := context.Background()
	a := newUser(t, repos, "ana", models.DepartmentCCS)
	b := newUser(t, repos, "ben", models.DepartmentCBS)

	boom := errors.New("boom")
	err := repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		if err := tx.Follows.CreateFollow(ctx, &models.Follow{FollowerID: a.ID, FollowingID: b.ID}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	following, err := repos.Follows.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestMarkAsReadOnlyTouchesRecipient(t *testing.T) {
	repos := repositories.New(repotest.NewDB(t))
	ctx := context.Background()
	a := newUser(t, repos, "ana", models.DepartmentCCS)
	b := newUser(t, repos, "ben", models.DepartmentCBS)

	toA := models.NewNotification(a.ID, b.ID, models.FollowEvent{})
	toB := models.NewNotification(b.ID, a.ID, models.FollowEvent{})
	require.NoError(t, repos.Notifications.CreateNotification(ctx, toA))
	require.NoError(t, repos.Notifications.CreateNotification(ctx, toB))

	updated, err := repos.Notifications.MarkAsRead(ctx, a.ID, []uuid.UUID{toA.ID, toB.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	unread, err := repos.Notifications.GetUnreadCount(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	updated, err = repos.Notifications.MarkAsRead(ctx, a.ID, []uuid.UUID{toA.ID})
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestPostThreadAndCommentCounts(t *testing.T) {
	repos := repositories.New(repotest.NewDB(t))
	ctx := context.Background()
	a := newUser(t, repos, "ana", models.DepartmentCCS)
	post := &models.Post{Content: "hi", AuthorID: a.ID, Department: a.Type}
	require.NoError(t, repos.Posts.CreatePost(ctx, post))

	top := &models.Comment{Content: "first", AuthorID: a.ID, PostID: post.ID}
	require.NoError(t, repos.Comments.CreateComment(ctx, top))
	reply := &models.Comment{Content: "reply", AuthorID: a.ID, PostID: post.ID, ParentID: &top.ID}
	require.NoError(t, repos.Comments.CreateComment(ctx, reply))

	got, err := repos.Posts.GetPostWithThread(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "ana", got.Author.Username)
	require.Len(t, got.Comments[0].Replies, 1)
	assert.Equal(t, "reply", got.Comments[0].Replies[0].Content)
	assert.Equal(t, "ana", got.Comments[0].Replies[0].Author.Username)

	counts, err := repos.Posts.CountComments(ctx, []uuid.UUID{post.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[post.ID])

	require.NoError(t, repos.Comments.DeleteComment(ctx, top.ID))
	_, err = repos.Comments.GetCommentByID(ctx, reply.ID)
	assert.True(t, repositories.IsNotFound(err), "replies are deleted with their parent")
}
