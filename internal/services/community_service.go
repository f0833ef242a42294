package services

import (
	"context"
	"strings"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/anonto42/campus-social/backend/internal/session"
	"github.com/google/uuid"
)

// CommunityService manages communities and the posts and comments inside
// them. Community activity does not notify anyone.
type CommunityService struct {
	repos  *repositories.Repositories
	images ImageStore
}

func NewCommunityService(repos *repositories.Repositories, images ImageStore) *CommunityService {
	return &CommunityService{repos: repos, images: images}
}

// CreateCommunity creates the caller's community. Each user owns at most one.
func (s *CommunityService) CreateCommunity(ctx context.Context, req models.CreateCommunityRequest, img *Image) (*models.CommunityView, error) {
	user, err := callerUser(ctx, s.repos)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, ValidationError("title and description are required")
	}
	if _, err := s.repos.Communities.GetCommunityByAuthor(ctx, user.ID); err == nil {
		return nil, ConflictError("you already own a community", nil)
	} else if !repositories.IsNotFound(err) {
		return nil, err
	}
	url, err := uploadImage(ctx, s.images, user.ID, folderCommunities, img)
	if err != nil {
		return nil, err
	}
	community := &models.Community{
		Title:       title,
		Description: description,
		Image:       url,
		Department:  user.Type,
		AuthorID:    user.ID,
	}
	if err := s.repos.Communities.CreateCommunity(ctx, community); err != nil {
		if isDuplicate(err) {
			return nil, ConflictError("you already own a community", err)
		}
		return nil, err
	}
	community.Author = *user
	view := models.NewCommunityView(community)
	return &view, nil
}

// ListCommunities lists the caller's department, or every community for
// anonymous callers
func (s *CommunityService) ListCommunities(ctx context.Context) ([]models.CommunityView, error) {
	var dept models.Department
	if sess, ok := session.FromContext(ctx); ok {
		user, err := s.repos.Users.GetUserByID(ctx, sess.UserID)
		if err != nil && !repositories.IsNotFound(err) {
			return nil, err
		}
		if user != nil {
			dept = user.Type
		}
	}
	communities, err := s.repos.Communities.ListCommunities(ctx, dept)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommunityView, len(communities))
	for i := range communities {
		views[i] = models.NewCommunityView(&communities[i])
	}
	return views, nil
}

// GetCommunity returns a community with its posts and their comments
func (s *CommunityService) GetCommunity(ctx context.Context, id uuid.UUID) (*models.CommunityView, error) {
	c, err := s.repos.Communities.GetCommunityWithPosts(ctx, id)
	if err != nil {
		return nil, notFound(err, "community")
	}
	view := models.NewCommunityView(c)
	return &view, nil
}

// UpdateCommunity edits the caller's community. Empty fields are kept.
func (s *CommunityService) UpdateCommunity(ctx context.Context, id uuid.UUID, req models.UpdateCommunityRequest, img *Image) (*models.CommunityView, error) {
	c, err := s.ownedCommunity(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(req.Title); v != "" {
		c.Title = v
	}
	if v := strings.TrimSpace(req.Description); v != "" {
		c.Description = v
	}
	switch {
	case img != nil:
		url, err := uploadImage(ctx, s.images, c.AuthorID, folderCommunities, img)
		if err != nil {
			return nil, err
		}
		c.Image = url
	case req.RemoveImage:
		c.Image = ""
	}
	if err := s.repos.Communities.UpdateCommunity(ctx, c); err != nil {
		return nil, err
	}
	view := models.NewCommunityView(c)
	return &view, nil
}

// DeleteCommunity deletes the caller's community with everything in it
func (s *CommunityService) DeleteCommunity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ownedCommunity(ctx, id); err != nil {
		return err
	}
	return s.repos.Communities.DeleteCommunity(ctx, id)
}

func (s *CommunityService) ownedCommunity(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.repos.Communities.GetCommunityByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "community")
	}
	if c.AuthorID != userID {
		return nil, ForbiddenError("you do not own this community")
	}
	return c, nil
}

// CreatePost posts into an existing community
func (s *CommunityService) CreatePost(ctx context.Context, communityID uuid.UUID, content string, img *Image) (*models.CommunityPostView, error) {
	user, err := callerUser(ctx, s.repos)
	if err != nil {
		return nil, err
	}
	if _, err := s.repos.Communities.GetCommunityByID(ctx, communityID); err != nil {
		return nil, notFound(err, "community")
	}
	content = strings.TrimSpace(content)
	if content == "" && img == nil {
		return nil, ValidationError("a post needs content or an image")
	}
	url, err := uploadImage(ctx, s.images, user.ID, folderCommunityPosts, img)
	if err != nil {
		return nil, err
	}
	post := &models.CommunityPost{
		Content:     content,
		Image:       url,
		Department:  user.Type,
		CommunityID: communityID,
		AuthorID:    user.ID,
	}
	if err := s.repos.Communities.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	post.Author = *user
	view := models.NewCommunityPostView(post)
	return &view, nil
}

func (s *CommunityService) GetPost(ctx context.Context, postID uuid.UUID) (*models.CommunityPostView, error) {
	p, err := s.repos.Communities.GetPostWithThread(ctx, postID)
	if err != nil {
		return nil, notFound(err, "community post")
	}
	view := models.NewCommunityPostView(p)
	return &view, nil
}

// UpdatePost edits the caller's community post
func (s *CommunityService) UpdatePost(ctx context.Context, postID uuid.UUID, content string, img *Image, removeImage bool) (*models.CommunityPostView, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	post, err := s.repos.Communities.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "community post")
	}
	if post.AuthorID != userID {
		return nil, ForbiddenError("you can only edit your own posts")
	}
	switch {
	case img != nil:
		url, err := uploadImage(ctx, s.images, userID, folderCommunityPosts, img)
		if err != nil {
			return nil, err
		}
		post.Image = url
	case removeImage:
		post.Image = ""
	}
	post.Content = strings.TrimSpace(content)
	if post.Content == "" && post.Image == "" {
		return nil, ValidationError("a post needs content or an image")
	}
	if err := s.repos.Communities.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, postID)
}

// DeletePost removes a community post. Its author and the community owner
// may delete it.
func (s *CommunityService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	userID, err := caller(ctx)
	if err != nil {
		return err
	}
	post, err := s.repos.Communities.GetPostByID(ctx, postID)
	if err != nil {
		return notFound(err, "community post")
	}
	if post.AuthorID != userID {
		owner, err := s.isCommunityOwner(ctx, post.CommunityID, userID)
		if err != nil {
			return err
		}
		if !owner {
			return ForbiddenError("you can only delete your own posts")
		}
	}
	return s.repos.Communities.DeletePost(ctx, postID)
}

// CreateComment comments on a community post. The comment is filed under
// the post's own community.
func (s *CommunityService) CreateComment(ctx context.Context, postID uuid.UUID, content string, parentID *uuid.UUID) (*models.CommunityCommentView, error) {
	user, err := callerUser(ctx, s.repos)
	if err != nil {
		return nil, err
	}
	content, err = commentContent(content)
	if err != nil {
		return nil, err
	}
	post, err := s.repos.Communities.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "community post")
	}
	if parentID != nil {
		parent, err := s.repos.Communities.GetCommentByID(ctx, *parentID)
		if err != nil {
			return nil, notFound(err, "parent comment")
		}
		if parent.CommunityPostID != postID {
			return nil, ValidationError("parent comment belongs to another post")
		}
		if parent.ParentID != nil {
			return nil, ValidationError("replies cannot be replied to")
		}
	}
	comment := &models.CommunityComment{
		Content:         content,
		AuthorID:        user.ID,
		CommunityID:     post.CommunityID,
		CommunityPostID: postID,
		ParentID:        parentID,
	}
	if err := s.repos.Communities.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = *user
	view := models.NewCommunityCommentView(comment)
	return &view, nil
}

// DeleteComment removes a community comment and its replies. The comment
// author, the post author and the community owner may delete it.
func (s *CommunityService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	userID, err := caller(ctx)
	if err != nil {
		return err
	}
	comment, err := s.repos.Communities.GetCommentByID(ctx, commentID)
	if err != nil {
		return notFound(err, "comment")
	}
	if comment.AuthorID != userID {
		post, err := s.repos.Communities.GetPostByID(ctx, comment.CommunityPostID)
		if err != nil {
			return notFound(err, "community post")
		}
		if post.AuthorID != userID {
			owner, err := s.isCommunityOwner(ctx, comment.CommunityID, userID)
			if err != nil {
				return err
			}
			if !owner {
				return ForbiddenError("you can only delete your own comments")
			}
		}
	}
	return s.repos.Communities.DeleteComment(ctx, commentID)
}

func (s *CommunityService) isCommunityOwner(ctx context.Context, communityID, userID uuid.UUID) (bool, error) {
	c, err := s.repos.Communities.GetCommunityByID(ctx, communityID)
	if err != nil {
		return false, notFound(err, "community")
	}
	return c.AuthorID == userID, nil
}
