package handlers

import (
	"net/http"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile-related HTTP requests
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterProfileRoutes registers profile routes; requireAuth guards writes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/users/suggested", h.GetSuggestedUsers)
	g.GET("/users/:username", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile, requireAuth)
}

// GetSuggestedUsers returns up to five users the caller might follow
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	users, err := h.users.SuggestedUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": users})
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.users.ProfileByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": profile})
}

// UpdateProfile accepts JSON or multipart with an optional "image" file
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	img, err := formImage(c)
	if err != nil {
		return err
	}
	profile, err := h.users.UpdateProfile(c.Request().Context(), req, img)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "profile updated", "data": profile})
}
