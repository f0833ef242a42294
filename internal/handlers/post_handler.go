package handlers

import (
	"net/http"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests for single posts
type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) RegisterPostRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts", h.CreatePost, requireAuth)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost, requireAuth)
	g.DELETE("/posts/:id", h.DeletePost, requireAuth)
}

// CreatePost accepts multipart form data: content and an optional image
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	img, err := formImage(c)
	if err != nil {
		return err
	}
	post, err := h.posts.CreatePost(c.Request().Context(), req.Content, img)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, echo.Map{"message": "post created", "data": post})
}

func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.posts.GetPost(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": post})
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	img, err := formImage(c)
	if err != nil {
		return err
	}
	post, err := h.posts.UpdatePost(c.Request().Context(), id, req.Content, img, req.RemoveImage)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "post updated", "data": post})
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.posts.DeletePost(c.Request().Context(), id); err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "post deleted"})
}
