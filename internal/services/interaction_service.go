package services

import (
	"context"
	"strings"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/google/uuid"
)

const maxCommentLength = 500

// InteractionService handles likes and comments on feed posts
type InteractionService struct {
	repos    *repositories.Repositories
	notifier *notifier
}

func NewInteractionService(repos *repositories.Repositories, n *notifier) *InteractionService {
	return &InteractionService{repos: repos, notifier: n}
}

// ToggleLike likes the post, or removes the caller's like, and reports
// whether the caller likes it afterwards. A like and its LIKE notification
// are written together; unliking is a bare delete.
func (s *InteractionService) ToggleLike(ctx context.Context, postID uuid.UUID) (bool, error) {
	userID, err := caller(ctx)
	if err != nil {
		return false, err
	}
	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return false, notFound(err, "post")
	}

	liked, err := s.repos.Likes.HasUserLikedPost(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	if liked {
		if _, err := s.repos.Likes.DeleteLike(ctx, postID, userID); err != nil {
			return false, err
		}
		return false, nil
	}

	var row *models.Notification
	err = s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		if err := tx.Likes.CreateLike(ctx, &models.Like{UserID: userID, PostID: postID}); err != nil {
			return err
		}
		var err error
		row, err = s.notifier.record(ctx, tx, post.AuthorID, userID, models.LikeEvent{PostID: postID})
		return err
	})
	if isDuplicate(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	s.notifier.dispatch(ctx, row)
	return true, nil
}

// CreateComment adds a comment, or a reply when parentID is set, and
// notifies the post author unless they wrote it. Replies must target a
// top-level comment on the same post.
func (s *InteractionService) CreateComment(ctx context.Context, postID uuid.UUID, content string, parentID *uuid.UUID) (*models.CommentView, error) {
	user, err := callerUser(ctx, s.repos)
	if err != nil {
		return nil, err
	}
	content, err = commentContent(content)
	if err != nil {
		return nil, err
	}
	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post")
	}
	if parentID != nil {
		parent, err := s.repos.Comments.GetCommentByID(ctx, *parentID)
		if err != nil {
			return nil, notFound(err, "parent comment")
		}
		if parent.PostID != postID {
			return nil, ValidationError("parent comment belongs to another post")
		}
		if parent.ParentID != nil {
			return nil, ValidationError("replies cannot be replied to")
		}
	}

	comment := &models.Comment{
		Content:  content,
		AuthorID: user.ID,
		PostID:   postID,
		ParentID: parentID,
	}
	var row *models.Notification
	err = s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		if err := tx.Comments.CreateComment(ctx, comment); err != nil {
			return err
		}
		var err error
		row, err = s.notifier.record(ctx, tx, post.AuthorID, user.ID,
			models.CommentEvent{PostID: postID, CommentID: comment.ID})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifier.dispatch(ctx, row)

	comment.Author = *user
	view := models.NewCommentView(comment)
	return &view, nil
}

// UpdateComment edits the content of the caller's own comment
func (s *InteractionService) UpdateComment(ctx context.Context, commentID uuid.UUID, content string) (*models.CommentView, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	comment, err := s.repos.Comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, notFound(err, "comment")
	}
	if comment.AuthorID != userID {
		return nil, ForbiddenError("you can only edit your own comments")
	}
	content, err = commentContent(content)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Comments.UpdateCommentContent(ctx, commentID, content); err != nil {
		return nil, err
	}
	comment.Content = content
	view := models.NewCommentView(comment)
	return &view, nil
}

// DeleteComment removes a comment and its replies. The comment author and the
// post author may delete it.
func (s *InteractionService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	userID, err := caller(ctx)
	if err != nil {
		return err
	}
	comment, err := s.repos.Comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return notFound(err, "comment")
	}
	if comment.AuthorID != userID {
		post, err := s.repos.Posts.GetPostByID(ctx, comment.PostID)
		if err != nil {
			return notFound(err, "post")
		}
		if post.AuthorID != userID {
			return ForbiddenError("you can only delete your own comments")
		}
	}
	return s.repos.Comments.DeleteComment(ctx, commentID)
}

// PostComments returns the comment thread of a post
func (s *InteractionService) PostComments(ctx context.Context, postID uuid.UUID) ([]models.CommentView, error) {
	if _, err := s.repos.Posts.GetPostByID(ctx, postID); err != nil {
		return nil, notFound(err, "post")
	}
	comments, err := s.repos.Comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommentView, len(comments))
	for i := range comments {
		views[i] = models.NewCommentView(&comments[i])
	}
	return views, nil
}

func commentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ValidationError("comment cannot be empty")
	}
	if len([]rune(content)) > maxCommentLength {
		return "", ValidationError("comment is too long")
	}
	return content, nil
}
