package bursaryapi

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/talentgate/portal/finaid/bursary"
	"github.com/talentgate/portal/finaid/bursary/bursarysrv"
	"github.com/talentgate/portal/pkg/iam/auth"
	"github.com/talentgate/portal/pkg/kernel"
)

// Handlers provides HTTP handlers for bursary operations
type Handlers struct {
	service *bursarysrv.BursaryService
}

// NewHandlers creates a new bursary handlers instance
func NewHandlers(service *bursarysrv.BursaryService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateAdvert accepts a multipart advert form with the advert PDF
// POST /api/bursaries
func (h *Handlers) CreateAdvert(c *fiber.Ctx) error {
	req, err := parseAdvertForm(c)
	if err != nil {
		return err
	}

	advert, err := h.service.CreateAdvert(c.Context(), *req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(advert)
}

// PublishAdvert makes an advert visible on the portal
// POST /api/bursaries/:id/publish
func (h *Handlers) PublishAdvert(c *fiber.Ctx) error {
	bursaryID := kernel.BursaryID(c.Params("id"))
	if bursaryID == "" {
		return bursary.ErrAdvertNotFound().WithDetail("id", "missing or empty")
	}

	advert, err := h.service.PublishAdvert(c.Context(), bursaryID)
	if err != nil {
		return err
	}

	return c.JSON(advert)
}

// DeleteAdvert removes an advert without applications
// DELETE /api/bursaries/:id
func (h *Handlers) DeleteAdvert(c *fiber.Ctx) error {
	bursaryID := kernel.BursaryID(c.Params("id"))
	if bursaryID == "" {
		return bursary.ErrAdvertNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteAdvert(c.Context(), bursaryID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetAdvertByID retrieves an advert by ID
// GET /api/bursaries/:id
func (h *Handlers) GetAdvertByID(c *fiber.Ctx) error {
	bursaryID := kernel.BursaryID(c.Params("id"))
	if bursaryID == "" {
		return bursary.ErrAdvertNotFound().WithDetail("id", "missing or empty")
	}

	advert, err := h.service.GetAdvertByID(c.Context(), bursaryID)
	if err != nil {
		return err
	}

	return c.JSON(advert)
}

// ListAdverts retrieves all adverts with pagination
// GET /api/bursaries
func (h *Handlers) ListAdverts(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	adverts, err := h.service.ListAdverts(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(adverts)
}

// ListOpenAdverts retrieves the visible adverts still accepting applications
// GET /api/bursaries/open
func (h *Handlers) ListOpenAdverts(c *fiber.Ctx) error {
	adverts, err := h.service.ListOpenAdverts(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(adverts)
}

// DownloadAdvert streams the advert PDF
// GET /api/bursaries/:id/advert
func (h *Handlers) DownloadAdvert(c *fiber.Ctx) error {
	bursaryID := kernel.BursaryID(c.Params("id"))
	if bursaryID == "" {
		return bursary.ErrAdvertNotFound().WithDetail("id", "missing or empty")
	}

	name, data, err := h.service.DownloadAdvert(c.Context(), bursaryID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}

// SubmitApplication accepts a multipart bursary application form with the
// supporting document pack
// POST /api/bursaries/:id/applications
func (h *Handlers) SubmitApplication(c *fiber.Ctx) error {
	bursaryID := kernel.BursaryID(c.Params("id"))
	if bursaryID == "" {
		return bursary.ErrAdvertNotFound().WithDetail("id", "missing or empty")
	}

	req, err := parseApplicationForm(c)
	if err != nil {
		return err
	}
	req.BursaryID = bursaryID

	app, err := h.service.SubmitApplication(c.Context(), *req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// ListApplications retrieves the applications of an advert
// GET /api/bursaries/:id/applications
func (h *Handlers) ListApplications(c *fiber.Ctx) error {
	bursaryID := kernel.BursaryID(c.Params("id"))
	if bursaryID == "" {
		return bursary.ErrAdvertNotFound().WithDetail("id", "missing or empty")
	}

	pagination := parsePaginationOptions(c)

	apps, err := h.service.ListApplications(c.Context(), bursaryID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(apps)
}

// GetApplicationByID retrieves a bursary application
// GET /api/bursaries/applications/:applicationId
func (h *Handlers) GetApplicationByID(c *fiber.Ctx) error {
	applicationID := kernel.BursaryApplicationID(c.Params("applicationId"))
	if applicationID == "" {
		return bursary.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	app, err := h.service.GetApplicationByID(c.Context(), applicationID)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// ReviewApplication records a reviewer decision
// POST /api/bursaries/applications/:applicationId/review
func (h *Handlers) ReviewApplication(c *fiber.Ctx) error {
	applicationID := kernel.BursaryApplicationID(c.Params("applicationId"))
	if applicationID == "" {
		return bursary.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req bursary.ReviewApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return bursary.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.ReviewApplication(c.Context(), applicationID, kernel.UserID(authContext.UserID), req)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// DownloadDocuments streams the document pack of an application
// GET /api/bursaries/applications/:applicationId/documents
func (h *Handlers) DownloadDocuments(c *fiber.Ctx) error {
	applicationID := kernel.BursaryApplicationID(c.Params("applicationId"))
	if applicationID == "" {
		return bursary.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	name, data, err := h.service.DownloadDocuments(c.Context(), applicationID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}

// parseAdvertForm reads the multipart advert form.
func parseAdvertForm(c *fiber.Ctx) (*bursary.CreateAdvertRequest, error) {
	deadline, err := time.Parse(time.RFC3339, c.FormValue("deadline"))
	if err != nil {
		return nil, bursary.ErrInvalidRequest().
			WithDetail("field", "deadline").
			WithDetail("parse_error", err.Error())
	}

	req := bursary.CreateAdvertRequest{
		Year:        c.FormValue("year"),
		Description: c.FormValue("description"),
		Deadline:    deadline,
		IsVisible:   c.FormValue("is_visible") == "true",
	}

	name, size, data, err := readUpload(c, "advert")
	if err != nil {
		return nil, err
	}
	req.AdvertFileName = name
	req.AdvertFileSize = size
	req.AdvertData = data

	return &req, nil
}

// parseApplicationForm reads the multipart application form.
func parseApplicationForm(c *fiber.Ctx) (*bursary.SubmitApplicationRequest, error) {
	dob, err := time.Parse("2006-01-02", c.FormValue("date_of_birth"))
	if err != nil {
		return nil, bursary.ErrInvalidRequest().
			WithDetail("field", "date_of_birth").
			WithDetail("parse_error", err.Error())
	}

	req := bursary.SubmitApplicationRequest{
		FirstName:        c.FormValue("first_name"),
		MiddleName:       c.FormValue("middle_name"),
		LastName:         c.FormValue("last_name"),
		IDNumber:         c.FormValue("id_number"),
		DateOfBirth:      dob,
		Email:            kernel.Email(c.FormValue("email")),
		PrimaryContact:   kernel.PhoneNumber(c.FormValue("primary_contact")),
		SecondaryContact: kernel.PhoneNumber(c.FormValue("secondary_contact")),
		MotivationLetter: c.FormValue("motivation_letter"),
	}

	name, size, data, err := readUpload(c, "documents")
	if err != nil {
		return nil, err
	}
	req.DocumentsFileName = name
	req.DocumentsFileSize = size
	req.DocumentsData = data

	return &req, nil
}

// readUpload pulls a single multipart file field into memory.
func readUpload(c *fiber.Ctx, field string) (string, int64, []byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", 0, nil, bursary.ErrInvalidRequest().
			WithDetail("field", field).
			WithDetail("parse_error", err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", 0, nil, bursary.ErrInvalidRequest().
			WithDetail("field", field).
			WithDetail("parse_error", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", 0, nil, bursary.ErrInvalidRequest().
			WithDetail("field", field).
			WithDetail("parse_error", err.Error())
	}

	return fileHeader.Filename, fileHeader.Size, data, nil
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		PageNumber: c.QueryInt("page", 1),
		PageSize:   c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

// RegisterRoutes registers all bursary routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/bursaries")

	// Public routes
	api.Get("/open", handlers.ListOpenAdverts)
	api.Get("/:id/advert", handlers.DownloadAdvert)
	api.Post("/:id/applications", handlers.SubmitApplication)

	// Staff routes
	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.ListAdverts,
	)

	api.Get("/applications/:applicationId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.GetApplicationByID,
	)

	api.Get("/applications/:applicationId/documents",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.DownloadDocuments,
	)

	api.Get("/:id/applications",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.ListApplications,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.GetAdvertByID,
	)

	// Financial-aid administration routes
	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleFinaid)),
		handlers.CreateAdvert,
	)

	api.Post("/:id/publish",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleFinaid)),
		handlers.PublishAdvert,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleFinaid)),
		handlers.DeleteAdvert,
	)

	api.Post("/applications/:applicationId/review",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleFinaid)),
		handlers.ReviewApplication,
	)
}
