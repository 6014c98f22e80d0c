package subscriberapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentgate/portal/pkg/iam/auth"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/subscriber"
	"github.com/talentgate/portal/recruitment/subscriber/subscribersrv"
)

// Handlers provides HTTP handlers for subscription operations
type Handlers struct {
	service *subscribersrv.SubscriberService
}

// NewHandlers creates a new subscriber handlers instance
func NewHandlers(service *subscribersrv.SubscriberService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Subscribe registers an email for vacancy mail-outs
// POST /api/subscribers
func (h *Handlers) Subscribe(c *fiber.Ctx) error {
	var req subscriber.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return subscriber.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	sub, err := h.service.Subscribe(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

// Unsubscribe deactivates a subscription
// DELETE /api/subscribers/:email
func (h *Handlers) Unsubscribe(c *fiber.Ctx) error {
	email := kernel.Email(c.Params("email"))
	if email == "" {
		return subscriber.ErrInvalidRequest().WithDetail("email", "missing or empty")
	}

	if err := h.service.Unsubscribe(c.Context(), email); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListSubscribers retrieves all subscribers with pagination
// GET /api/subscribers
func (h *Handlers) ListSubscribers(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		PageNumber: c.QueryInt("page", 1),
		PageSize:   c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()

	subs, err := h.service.ListSubscribers(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(subs)
}

// RegisterRoutes registers all subscriber routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/subscribers")

	// Public: anyone can subscribe or unsubscribe
	api.Post("/", handlers.Subscribe)
	api.Delete("/:email", handlers.Unsubscribe)

	// Staff routes
	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.ListSubscribers,
	)
}
