package interviewapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentgate/portal/pkg/iam/auth"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/interview"
	"github.com/talentgate/portal/recruitment/interview/interviewsrv"
)

// Handlers provides HTTP handlers for interview operations
type Handlers struct {
	service *interviewsrv.InterviewService
}

// NewHandlers creates a new interview handlers instance
func NewHandlers(service *interviewsrv.InterviewService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetInterviewByID retrieves an interview by ID
// GET /api/interviews/:id
func (h *Handlers) GetInterviewByID(c *fiber.Ctx) error {
	interviewID := kernel.InterviewID(c.Params("id"))
	if interviewID == "" {
		return interview.ErrInterviewNotFound().WithDetail("id", "missing or empty")
	}

	i, err := h.service.GetInterviewByID(c.Context(), interviewID)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// GetInterviewByApplication retrieves the interview of an application
// GET /api/interviews/by-application/:applicationId
func (h *Handlers) GetInterviewByApplication(c *fiber.Ctx) error {
	applicationID := kernel.ApplicationID(c.Params("applicationId"))
	if applicationID == "" {
		return interview.ErrInvalidRequest().WithDetail("application_id", "missing or empty")
	}

	i, err := h.service.GetInterviewByApplication(c.Context(), applicationID)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// ListInterviews retrieves all interviews with pagination
// GET /api/interviews
func (h *Handlers) ListInterviews(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		PageNumber: c.QueryInt("page", 1),
		PageSize:   c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()

	interviews, err := h.service.ListInterviews(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(interviews)
}

// RescheduleInterview moves an interview to a new slot
// PUT /api/interviews/:id/schedule
func (h *Handlers) RescheduleInterview(c *fiber.Ctx) error {
	interviewID := kernel.InterviewID(c.Params("id"))
	if interviewID == "" {
		return interview.ErrInterviewNotFound().WithDetail("id", "missing or empty")
	}

	var req interview.RescheduleInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	i, err := h.service.RescheduleInterview(c.Context(), interviewID, req)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// RespondToInterview records the candidate's response
// POST /api/interviews/:id/respond
func (h *Handlers) RespondToInterview(c *fiber.Ctx) error {
	interviewID := kernel.InterviewID(c.Params("id"))
	if interviewID == "" {
		return interview.ErrInterviewNotFound().WithDetail("id", "missing or empty")
	}

	var req interview.RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	i, err := h.service.RespondToInterview(c.Context(), interviewID, req)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// CancelInterview cancels a pending interview
// POST /api/interviews/:id/cancel
func (h *Handlers) CancelInterview(c *fiber.Ctx) error {
	interviewID := kernel.InterviewID(c.Params("id"))
	if interviewID == "" {
		return interview.ErrInterviewNotFound().WithDetail("id", "missing or empty")
	}

	i, err := h.service.CancelInterview(c.Context(), interviewID)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// CompleteInterview records the interview outcome
// POST /api/interviews/:id/complete
func (h *Handlers) CompleteInterview(c *fiber.Ctx) error {
	interviewID := kernel.InterviewID(c.Params("id"))
	if interviewID == "" {
		return interview.ErrInterviewNotFound().WithDetail("id", "missing or empty")
	}

	var req interview.CompleteInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	i, err := h.service.CompleteInterview(c.Context(), interviewID, req)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// ListLocations lists the interview venues
// GET /api/interviews/locations
func (h *Handlers) ListLocations(c *fiber.Ctx) error {
	locations, err := h.service.ListLocations(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(locations)
}

// RegisterRoutes registers all interview routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/interviews")

	// Candidates respond via an emailed link; no staff token involved
	api.Post("/:id/respond", handlers.RespondToInterview)

	// Staff routes
	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.ListInterviews,
	)

	api.Get("/locations",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.ListLocations,
	)

	api.Get("/by-application/:applicationId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.GetInterviewByApplication,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.GetInterviewByID,
	)

	// Recruiter routes
	api.Put("/:id/schedule",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.RescheduleInterview,
	)

	api.Post("/:id/cancel",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.CancelInterview,
	)

	api.Post("/:id/complete",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.CompleteInterview,
	)
}
