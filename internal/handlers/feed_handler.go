package handlers

import (
	"net/http"

	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves post listings
type FeedHandler struct {
	posts *services.PostService
}

func NewFeedHandler(posts *services.PostService) *FeedHandler {
	return &FeedHandler{posts: posts}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts", h.GetFeed)
	g.GET("/posts/department/:type", h.GetDepartmentPosts)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// GetFeed returns the caller's department feed, or all posts when anonymous
func (h *FeedHandler) GetFeed(c echo.Context) error {
	posts, err := h.posts.Feed(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": posts})
}

func (h *FeedHandler) GetDepartmentPosts(c echo.Context) error {
	posts, err := h.posts.PostsByDepartment(c.Request().Context(), c.Param("type"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": posts})
}

func (h *FeedHandler) GetUserPosts(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	posts, err := h.posts.UserPosts(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": posts})
}
