package services

import (
	"context"
	"strings"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/anonto42/campus-social/backend/internal/session"
	"github.com/google/uuid"
)

type PostService struct {
	repos  *repositories.Repositories
	images ImageStore
}

func NewPostService(repos *repositories.Repositories, images ImageStore) *PostService {
	return &PostService{repos: repos, images: images}
}

// CreatePost stores a post by the caller. The image is uploaded first and
// only its URL is kept; the department is copied from the author.
func (s *PostService) CreatePost(ctx context.Context, content string, img *Image) (*models.PostView, error) {
	user, err := callerUser(ctx, s.repos)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" && img == nil {
		return nil, ValidationError("a post needs content or an image")
	}
	url, err := uploadImage(ctx, s.images, user.ID, folderPosts, img)
	if err != nil {
		return nil, err
	}
	post := &models.Post{
		Content:    content,
		Image:      url,
		Department: user.Type,
		AuthorID:   user.ID,
	}
	if err := s.repos.Posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	post.Author = *user
	view := models.NewPostView(post, 0)
	return &view, nil
}

// UpdatePost replaces the content of the caller's post and optionally its
// image. removeImage clears the image when no new one is given.
func (s *PostService) UpdatePost(ctx context.Context, postID uuid.UUID, content string, img *Image, removeImage bool) (*models.PostView, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post")
	}
	if post.AuthorID != userID {
		return nil, ForbiddenError("you can only edit your own posts")
	}
	content = strings.TrimSpace(content)
	switch {
	case img != nil:
		url, err := uploadImage(ctx, s.images, userID, folderPosts, img)
		if err != nil {
			return nil, err
		}
		post.Image = url
	case removeImage:
		post.Image = ""
	}
	if content == "" && post.Image == "" {
		return nil, ValidationError("a post needs content or an image")
	}
	post.Content = content
	if err := s.repos.Posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, postID)
}

// DeletePost deletes the caller's post with its likes and comments
func (s *PostService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	userID, err := caller(ctx)
	if err != nil {
		return err
	}
	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return notFound(err, "post")
	}
	if post.AuthorID != userID {
		return ForbiddenError("you can only delete your own posts")
	}
	return s.repos.Posts.DeletePost(ctx, postID)
}

// GetPost returns one post with its whole comment thread
func (s *PostService) GetPost(ctx context.Context, postID uuid.UUID) (*models.PostView, error) {
	post, err := s.repos.Posts.GetPostWithThread(ctx, postID)
	if err != nil {
		return nil, notFound(err, "post")
	}
	counts, err := s.repos.Posts.CountComments(ctx, []uuid.UUID{postID})
	if err != nil {
		return nil, err
	}
	view := models.NewPostView(post, counts[postID])
	return &view, nil
}

// Feed is the caller's department feed, or every post for anonymous callers
func (s *PostService) Feed(ctx context.Context) ([]models.PostView, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return s.list(ctx, repositories.PostFilter{})
	}
	user, err := s.repos.Users.GetUserByID(ctx, sess.UserID)
	if repositories.IsNotFound(err) {
		return s.list(ctx, repositories.PostFilter{})
	}
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repositories.PostFilter{Department: user.Type})
}

// PostsByDepartment lists the posts of one department, given by code or label
func (s *PostService) PostsByDepartment(ctx context.Context, department string) ([]models.PostView, error) {
	dept, ok := models.ParseDepartment(department)
	if !ok {
		return nil, ValidationError("unknown department " + department)
	}
	return s.list(ctx, repositories.PostFilter{Department: dept})
}

// UserPosts lists the posts written by userID
func (s *PostService) UserPosts(ctx context.Context, userID uuid.UUID) ([]models.PostView, error) {
	if _, err := s.repos.Users.GetUserByID(ctx, userID); err != nil {
		return nil, notFound(err, "user")
	}
	return s.list(ctx, repositories.PostFilter{AuthorID: userID})
}

func (s *PostService) list(ctx context.Context, filter repositories.PostFilter) ([]models.PostView, error) {
	posts, err := s.repos.Posts.ListPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	counts, err := s.repos.Posts.CountComments(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.PostView, len(posts))
	for i := range posts {
		views[i] = models.NewPostView(&posts[i], counts[posts[i].ID])
	}
	return views, nil
}
