package application

import (
	"context"

	"github.com/talentgate/portal/pkg/kernel"
)

type Repository interface {
	// Create creates a new application together with its screening answers
	Create(ctx context.Context, application *Application, answers []RequirementAnswer) error

	// Update updates an existing application
	Update(ctx context.Context, id kernel.ApplicationID, application *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// List retrieves all applications with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)

	// ListByVacancyID retrieves applications for a specific vacancy
	ListByVacancyID(ctx context.Context, vacancyID kernel.VacancyID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)

	// ListAnswers retrieves the screening answers of an application
	ListAnswers(ctx context.Context, id kernel.ApplicationID) ([]RequirementAnswer, error)

	// ExistsByVacancyAndEmail checks if an email already applied to a vacancy
	ExistsByVacancyAndEmail(ctx context.Context, vacancyID kernel.VacancyID, email kernel.Email) (bool, error)

	// CountByVacancyID counts applications for a specific vacancy
	CountByVacancyID(ctx context.Context, vacancyID kernel.VacancyID) (int64, error)
}
