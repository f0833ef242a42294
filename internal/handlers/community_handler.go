package handlers

import (
	"net/http"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommunityHandler handles communities and their posts and comments
type CommunityHandler struct {
	communities *services.CommunityService
}

func NewCommunityHandler(communities *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{communities: communities}
}

func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/communities", h.GetCommunities)
	g.POST("/communities", h.CreateCommunity, requireAuth)
	g.GET("/communities/:id", h.GetCommunity)
	g.PUT("/communities/:id", h.UpdateCommunity, requireAuth)
	g.DELETE("/communities/:id", h.DeleteCommunity, requireAuth)
	g.POST("/communities/:id/posts", h.CreatePost, requireAuth)

	g.GET("/community-posts/:id", h.GetPost)
	g.PUT("/community-posts/:id", h.UpdatePost, requireAuth)
	g.DELETE("/community-posts/:id", h.DeletePost, requireAuth)
	g.POST("/community-posts/:id/comments", h.CreateComment, requireAuth)
	g.DELETE("/community-comments/:id", h.DeleteComment, requireAuth)
}

func (h *CommunityHandler) GetCommunities(c echo.Context) error {
	communities, err := h.communities.ListCommunities(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": communities})
}

// CreateCommunity accepts multipart form data: title, description, image
func (h *CommunityHandler) CreateCommunity(c echo.Context) error {
	var req models.CreateCommunityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	img, err := formImage(c)
	if err != nil {
		return err
	}
	community, err := h.communities.CreateCommunity(c.Request().Context(), req, img)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, echo.Map{"message": "community created", "data": community})
}

func (h *CommunityHandler) GetCommunity(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	community, err := h.communities.GetCommunity(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": community})
}

func (h *CommunityHandler) UpdateCommunity(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateCommunityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	img, err := formImage(c)
	if err != nil {
		return err
	}
	community, err := h.communities.UpdateCommunity(c.Request().Context(), id, req, img)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "community updated", "data": community})
}

func (h *CommunityHandler) DeleteCommunity(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.communities.DeleteCommunity(c.Request().Context(), id); err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "community deleted"})
}

func (h *CommunityHandler) CreatePost(c echo.Context) error {
	communityID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	img, err := formImage(c)
	if err != nil {
		return err
	}
	post, err := h.communities.CreatePost(c.Request().Context(), communityID, req.Content, img)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, echo.Map{"message": "post created", "data": post})
}

func (h *CommunityHandler) GetPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.communities.GetPost(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": post})
}

func (h *CommunityHandler) UpdatePost(c echo.Context) error {
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
	post, err := h.communities.UpdatePost(c.Request().Context(), id, req.Content, img, req.RemoveImage)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "post updated", "data": post})
}

func (h *CommunityHandler) DeletePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.communities.DeletePost(c.Request().Context(), id); err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "post deleted"})
}

func (h *CommunityHandler) CreateComment(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.communities.CreateComment(c.Request().Context(), postID, req.Content, optionalID(req.ParentID))
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, echo.Map{"message": "comment added", "data": comment})
}

func (h *CommunityHandler) DeleteComment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.communities.DeleteComment(c.Request().Context(), id); err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"message": "comment deleted"})
}
