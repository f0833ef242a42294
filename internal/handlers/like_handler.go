package handlers

import (
	"net/http"

	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	interactions *services.InteractionService
}

func NewLikeHandler(interactions *services.InteractionService) *LikeHandler {
	return &LikeHandler{interactions: interactions}
}

func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/like", h.ToggleLike, requireAuth)
}

// ToggleLike likes the post, or unlikes it when the caller already did
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	liked, err := h.interactions.ToggleLike(c.Request().Context(), id)
	if err != nil {
		return err
	}
	msg := "unliked"
	if liked {
		msg = "liked"
	}
	return ok(c, http.StatusOK, echo.Map{"message": msg, "liked": liked})
}
