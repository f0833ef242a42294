package handlers

import (
	"net/http"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	interactions *services.InteractionService
}

func NewCommentHandler(interactions *services.InteractionService) *CommentHandler {
	return &CommentHandler{interactions: interactions}
}

func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/posts/:id/comments", h.GetCommentsForPost)
	g.POST("/posts/:id/comments", h.CreateComment, requireAuth)
	g.PUT("/comments/:id", h.UpdateComment, requireAuth)
	g.DELETE("/comments/:id", h.DeleteComment, requireAuth)
}

func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.interactions.PostComments(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": comments})
}

// CreateComment adds a comment, or a reply when parentId is given
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.interactions.CreateComment(c.Request().Context(), postID, req.Content, optionalID(req.ParentID))
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, echo.Map{"message": "comment added", "data": comment})
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.interactions.UpdateComment(c.Request().Context(), id, req.Content)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "comment updated", "data": comment})
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.interactions.DeleteComment(c.Request().Context(), id); err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "comment deleted"})
}

// optionalID parses an id already checked by the uuid validate tag
func optionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
