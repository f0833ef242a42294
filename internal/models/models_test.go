package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDepartment(t *testing.T) {
	cases := map[string]Department{
		"CCS":                             DepartmentCCS,
		" cbs ":                           DepartmentCBS,
		"College of Engineering and Arts": DepartmentCEA,
		"college of computing studies":    DepartmentCCS,
	}
	for in, want := range cases {
		got, ok := ParseDepartment(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "CXX", "College"} {
		_, ok := ParseDepartment(in)
		assert.False(t, ok, in)
	}
	assert.False(t, Department("XYZ").Valid())
	assert.Equal(t, "College of Business Studies", DepartmentCBS.Label())
}

func TestNewNotification(t *testing.T) {
	recipient, actor := uuid.New(), uuid.New()
	postID, commentID := uuid.New(), uuid.New()

	assert.Nil(t, NewNotification(actor, actor, FollowEvent{}), "own actions never notify")

	n := NewNotification(recipient, actor, FollowEvent{})
	require.NotNil(t, n)
	assert.Equal(t, NotificationFollow, n.Type)
	assert.Nil(t, n.PostID)
	assert.Nil(t, n.CommentID)

	n = NewNotification(recipient, actor, LikeEvent{PostID: postID})
	assert.Equal(t, NotificationLike, n.Type)
	assert.Equal(t, postID, *n.PostID)
	assert.Nil(t, n.CommentID)

	n = NewNotification(recipient, actor, CommentEvent{PostID: postID, CommentID: commentID})
	assert.Equal(t, NotificationComment, n.Type)
	assert.Equal(t, recipient, n.UserID)
	assert.Equal(t, actor, n.CreatorID)
	assert.False(t, n.Read)

	ev, err := n.Event()
	require.NoError(t, err)
	assert.Equal(t, CommentEvent{PostID: postID, CommentID: commentID}, ev)
}

func TestNotificationEventRejectsIncompleteRows(t *testing.T) {
	postID := uuid.New()
	_, err := (&Notification{Type: NotificationLike}).Event()
	assert.Error(t, err)
	_, err = (&Notification{Type: NotificationComment, PostID: &postID}).Event()
	assert.Error(t, err)
	_, err = (&Notification{Type: "SHARE"}).Event()
	assert.Error(t, err)

	ev, err := (&Notification{Type: NotificationLike, PostID: &postID}).Event()
	require.NoError(t, err)
	assert.Equal(t, LikeEvent{PostID: postID}, ev)
}

func TestNewPostView(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	author := User{ID: uuid.New(), Username: "ana", Firstname: "Ana", Lastname: "Cruz", Type: DepartmentCCS}
	fan := uuid.New()
	topID := uuid.New()
	post := &Post{
		ID:         uuid.New(),
		Content:    "hello campus",
		Department: DepartmentCCS,
		AuthorID:   author.ID,
		Author:     author,
		Likes:      []Like{{UserID: fan}},
		Comments: []Comment{{
			ID:        topID,
			Content:   "welcome",
			Author:    author,
			CreatedAt: at,
			UpdatedAt: at,
			Replies: []Comment{{
				Content:   "thanks",
				ParentID:  &topID,
				Author:    author,
				CreatedAt: at,
				UpdatedAt: at,
			}},
		}},
		CreatedAt: at,
		UpdatedAt: at,
	}

	got := NewPostView(post, 2)
	want := PostView{
		ID:         post.ID,
		Content:    "hello campus",
		Department: DepartmentCCS,
		Author:     UserCompact{ID: author.ID, Username: "ana", Firstname: "Ana", Lastname: "Cruz"},
		LikedBy:    []uuid.UUID{fan},
		Comments: []CommentView{{
			ID:        topID,
			Content:   "welcome",
			Author:    author.ToCompact(),
			CreatedAt: at,
			UpdatedAt: at,
			Replies: []CommentView{{
				Content:   "thanks",
				ParentID:  &topID,
				Author:    author.ToCompact(),
				CreatedAt: at,
				UpdatedAt: at,
			}},
		}},
		LikesCount:    1,
		CommentsCount: 2,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewPostView mismatch (-want +got):\n%s", diff)
	}
}
