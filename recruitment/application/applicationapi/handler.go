package applicationapi

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/talentgate/portal/pkg/iam/auth"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/application"
	"github.com/talentgate/portal/recruitment/application/applicationsrv"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SubmitApplication accepts a multipart application form with a CV file
// POST /api/applications
func (h *Handlers) SubmitApplication(c *fiber.Ctx) error {
	req, err := parseSubmitForm(c)
	if err != nil {
		return err
	}

	app, err := h.service.SubmitApplication(c.Context(), *req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetApplicationByID retrieves an application with its screening answers
// GET /api/applications/:id
func (h *Handlers) GetApplicationByID(c *fiber.Ctx) error {
	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID == "" {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	app, err := h.service.GetApplicationWithAnswers(c.Context(), applicationID)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// ListApplications retrieves all applications with pagination
// GET /api/applications
func (h *Handlers) ListApplications(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	apps, err := h.service.ListApplications(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(apps)
}

// ListApplicationsByVacancy retrieves applications for a vacancy
// GET /api/applications/by-vacancy/:vacancyId
func (h *Handlers) ListApplicationsByVacancy(c *fiber.Ctx) error {
	vacancyID := kernel.VacancyID(c.Params("vacancyId"))
	if vacancyID == "" {
		return application.ErrInvalidRequest().WithDetail("vacancy_id", "missing or empty")
	}

	pagination := parsePaginationOptions(c)

	apps, err := h.service.ListApplicationsByVacancy(c.Context(), vacancyID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(apps)
}

// ReviewApplication records a reviewer decision
// POST /api/applications/:id/review
func (h *Handlers) ReviewApplication(c *fiber.Ctx) error {
	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID == "" {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req application.ReviewApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.ReviewApplication(c.Context(), applicationID, kernel.UserID(authContext.UserID), req)
	if err != nil {
		return err
	}

	return c.JSON(app)
}

// DownloadCV streams the stored CV of an application
// GET /api/applications/:id/cv
func (h *Handlers) DownloadCV(c *fiber.Ctx) error {
	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID == "" {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	name, data, err := h.service.DownloadCV(c.Context(), applicationID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}

// parseSubmitForm reads the multipart application form.
func parseSubmitForm(c *fiber.Ctx) (*application.SubmitApplicationRequest, error) {
	dob, err := time.Parse("2006-01-02", c.FormValue("date_of_birth"))
	if err != nil {
		return nil, application.ErrInvalidRequest().
			WithDetail("field", "date_of_birth").
			WithDetail("parse_error", err.Error())
	}

	req := application.SubmitApplicationRequest{
		VacancyID:        kernel.VacancyID(c.FormValue("vacancy_id")),
		FirstName:        c.FormValue("first_name"),
		MiddleName:       c.FormValue("middle_name"),
		LastName:         c.FormValue("last_name"),
		Email:            kernel.Email(c.FormValue("email")),
		PrimaryContact:   kernel.PhoneNumber(c.FormValue("primary_contact")),
		SecondaryContact: kernel.PhoneNumber(c.FormValue("secondary_contact")),
		DateOfBirth:      dob,
	}

	if raw := c.FormValue("answers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Answers); err != nil {
			return nil, application.ErrInvalidRequest().
				WithDetail("field", "answers").
				WithDetail("parse_error", err.Error())
		}
	}

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		return nil, application.ErrInvalidRequest().
			WithDetail("field", "cv").
			WithDetail("parse_error", err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, application.ErrInvalidRequest().
			WithDetail("field", "cv").
			WithDetail("parse_error", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, application.ErrInvalidRequest().
			WithDetail("field", "cv").
			WithDetail("parse_error", err.Error())
	}

	req.CVFileName = fileHeader.Filename
	req.CVFileSize = fileHeader.Size
	req.CVData = data

	return &req, nil
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		PageNumber: c.QueryInt("page", 1),
		PageSize:   c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/applications")

	// Public: anyone can apply to an open vacancy
	api.Post("/", handlers.SubmitApplication)

	// Staff routes
	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.ListApplications,
	)

	api.Get("/by-vacancy/:vacancyId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.ListApplicationsByVacancy,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.GetApplicationByID,
	)

	api.Get("/:id/cv",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyStaff()),
		handlers.DownloadCV,
	)

	// Reviewer routes
	api.Post("/:id/review",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.AnyOf(auth.RoleAdmin, auth.RoleRecruiter)),
		handlers.ReviewApplication,
	)
}
