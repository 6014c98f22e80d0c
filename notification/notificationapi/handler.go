package notificationapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/notification/notificationsrv"
	"github.com/talentgate/portal/pkg/iam/auth"
	"github.com/talentgate/portal/pkg/kernel"
)

// Handlers provides HTTP handlers for staff notifications
type Handlers struct {
	service *notificationsrv.NotificationService
}

// NewHandlers creates a new notification handlers instance
func NewHandlers(service *notificationsrv.NotificationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListNotifications retrieves a group's notifications, newest first
// GET /api/notifications?group=staff-notifications
func (h *Handlers) ListNotifications(c *fiber.Ctx) error {
	group := notification.Group(c.Query("group", string(notification.GroupStaff)))
	pagination := parsePaginationOptions(c)

	notifications, err := h.service.ListNotifications(c.Context(), group, pagination)
	if err != nil {
		return err
	}

	return c.JSON(notifications)
}

// CountUnread returns the unread notification count of a group
// GET /api/notifications/unread-count?group=staff-notifications
func (h *Handlers) CountUnread(c *fiber.Ctx) error {
	group := notification.Group(c.Query("group", string(notification.GroupStaff)))

	count, err := h.service.CountUnread(c.Context(), group)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"group": group, "unread": count})
}

// MarkRead acknowledges a single notification
// POST /api/notifications/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	notificationID := kernel.NotificationID(c.Params("id"))
	if notificationID == "" {
		return notification.ErrNotificationNotFound().WithDetail("id", "missing or empty")
	}

	n, err := h.service.MarkRead(c.Context(), notificationID)
	if err != nil {
		return err
	}

	return c.JSON(n)
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		PageNumber: c.QueryInt("page", 1),
		PageSize:   c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

// RegisterRoutes registers all notification routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/notifications")

	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.ListNotifications,
	)

	api.Get("/unread-count",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.CountUnread,
	)

	api.Post("/:id/read",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.MarkRead,
	)
}
