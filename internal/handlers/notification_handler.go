package handlers

import (
	"net/http"

	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests. Every
// route needs a session.
type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/notifications", h.GetNotifications, requireAuth)
	g.GET("/notifications/unread-count", h.GetUnreadCount, requireAuth)
	g.PUT("/notifications/read", h.MarkAsRead, requireAuth)
	g.GET("/notifications/:id", h.GetNotification, requireAuth)
}

func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.notifications.List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": notifications})
}

func (h *NotificationHandler) GetNotification(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.notifications.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"data": n})
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks the listed notifications of the caller as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	var req models.MarkNotificationsReadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, s := range req.IDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification id "+s)
		}
		ids = append(ids, id)
	}
	updated, err := h.notifications.MarkRead(c.Request().Context(), ids)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, echo.Map{"updated": updated})
}
