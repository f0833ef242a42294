package handlers

import (
	"net/http"

	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles the follow graph
type FollowHandler struct {
	follows *services.FollowService
	users   *services.UserService
}

func NewFollowHandler(follows *services.FollowService, users *services.UserService) *FollowHandler {
	return &FollowHandler{follows: follows, users: users}
}

func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/users/:id/follow", h.ToggleFollow, requireAuth)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// ToggleFollow follows the user, or unfollows when already following
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	following, err := h.follows.ToggleFollow(c.Request().Context(), id)
	if err != nil {
		return err
	}
	msg := "unfollowed"
	if following {
		msg = "followed"
	}
	return ok(c, http.StatusOK, echo.Map{"message": msg, "following": following})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.users.Followers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": users})
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.users.Following(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": users})
}
