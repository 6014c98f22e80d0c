package vacancyapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentgate/portal/pkg/iam/auth"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/vacancy"
	"github.com/talentgate/portal/recruitment/vacancy/vacancysrv"
)

// Handlers provides HTTP handlers for vacancy operations
type Handlers struct {
	service *vacancysrv.VacancyService
}

// NewHandlers creates a new vacancy handlers instance
func NewHandlers(service *vacancysrv.VacancyService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateVacancy creates a new vacancy
// POST /api/vacancies
func (h *Handlers) CreateVacancy(c *fiber.Ctx) error {
	var req vacancy.CreateVacancyRequest
	if err := c.BodyParser(&req); err != nil {
		return vacancy.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	newVacancy, err := h.service.CreateVacancy(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newVacancy)
}

// ListVacancies retrieves all vacancies with pagination
// GET /api/vacancies
func (h *Handlers) ListVacancies(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	vacancies, err := h.service.ListVacancies(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(vacancies)
}

// ListOpenVacancies retrieves public vacancies still accepting applications
// GET /api/vacancies/open
func (h *Handlers) ListOpenVacancies(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	vacancies, err := h.service.ListOpenVacancies(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(vacancies)
}

// GetVacancyByID retrieves a vacancy by ID
// GET /api/vacancies/:id
func (h *Handlers) GetVacancyByID(c *fiber.Ctx) error {
	vacancyID := kernel.VacancyID(c.Params("id"))
	if vacancyID == "" {
		return vacancy.ErrVacancyNotFound().WithDetail("id", "missing or empty")
	}

	v, err := h.service.GetVacancyByID(c.Context(), vacancyID)
	if err != nil {
		return err
	}

	return c.JSON(v)
}

// GetVacancyBySlug retrieves a vacancy by slug, with its screening questions
// GET /api/vacancies/by-slug/:slug
func (h *Handlers) GetVacancyBySlug(c *fiber.Ctx) error {
	slug := kernel.Slug(c.Params("slug"))
	if slug == "" {
		return vacancy.ErrVacancyNotFound().WithDetail("slug", "missing or empty")
	}

	v, err := h.service.GetVacancyBySlug(c.Context(), slug)
	if err != nil {
		return err
	}

	return c.JSON(v)
}

// UpdateVacancy updates an existing vacancy
// PUT /api/vacancies/:id
func (h *Handlers) UpdateVacancy(c *fiber.Ctx) error {
	vacancyID := kernel.VacancyID(c.Params("id"))
	if vacancyID == "" {
		return vacancy.ErrVacancyNotFound().WithDetail("id", "missing or empty")
	}

	var req vacancy.UpdateVacancyRequest
	if err := c.BodyParser(&req); err != nil {
		return vacancy.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	v, err := h.service.UpdateVacancy(c.Context(), vacancyID, req)
	if err != nil {
		return err
	}

	return c.JSON(v)
}

// PublishVacancy marks a vacancy as published
// POST /api/vacancies/:id/publish
func (h *Handlers) PublishVacancy(c *fiber.Ctx) error {
	vacancyID := kernel.VacancyID(c.Params("id"))
	if vacancyID == "" {
		return vacancy.ErrVacancyNotFound().WithDetail("id", "missing or empty")
	}

	v, err := h.service.PublishVacancy(c.Context(), vacancyID)
	if err != nil {
		return err
	}

	return c.JSON(v)
}

// UnpublishVacancy withdraws a vacancy from the public listing
// POST /api/vacancies/:id/unpublish
func (h *Handlers) UnpublishVacancy(c *fiber.Ctx) error {
	vacancyID := kernel.VacancyID(c.Params("id"))
	if vacancyID == "" {
		return vacancy.ErrVacancyNotFound().WithDetail("id", "missing or empty")
	}

	v, err := h.service.UnpublishVacancy(c.Context(), vacancyID)
	if err != nil {
		return err
	}

	return c.JSON(v)
}

// DeleteVacancy deletes a vacancy without applications
// DELETE /api/vacancies/:id
func (h *Handlers) DeleteVacancy(c *fiber.Ctx) error {
	vacancyID := kernel.VacancyID(c.Params("id"))
	if vacancyID == "" {
		return vacancy.ErrVacancyNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteVacancy(c.Context(), vacancyID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddRequirement attaches a screening question to a vacancy
// POST /api/vacancies/:id/requirements
func (h *Handlers) AddRequirement(c *fiber.Ctx) error {
	vacancyID := kernel.VacancyID(c.Params("id"))
	if vacancyID == "" {
		return vacancy.ErrVacancyNotFound().WithDetail("id", "missing or empty")
	}

	var req vacancy.AddRequirementRequest
	if err := c.BodyParser(&req); err != nil {
		return vacancy.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	requirement, err := h.service.AddRequirement(c.Context(), vacancyID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(requirement)
}

// RemoveRequirement removes a screening question
// DELETE /api/vacancies/requirements/:requirementId
func (h *Handlers) RemoveRequirement(c *fiber.Ctx) error {
	requirementID := kernel.RequirementID(c.Params("requirementId"))
	if requirementID == "" {
		return vacancy.ErrRequirementNotFound().WithDetail("requirement_id", "missing or empty")
	}

	if err := h.service.RemoveRequirement(c.Context(), requirementID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		PageNumber: c.QueryInt("page", 1),
		PageSize:   c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

// RegisterRoutes registers all vacancy routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/vacancies")

	// Public routes
	api.Get("/open", handlers.ListOpenVacancies)
	api.Get("/by-slug/:slug", handlers.GetVacancyBySlug)

	// Staff routes
	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.ListVacancies,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.GetVacancyByID,
	)

	// Recruiter routes
	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.CreateVacancy,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.UpdateVacancy,
	)

	api.Post("/:id/publish",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.PublishVacancy,
	)

	api.Post("/:id/unpublish",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.UnpublishVacancy,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.DeleteVacancy,
	)

	api.Post("/:id/requirements",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.AddRequirement,
	)

	api.Delete("/requirements/:requirementId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.RemoveRequirement,
	)
}
