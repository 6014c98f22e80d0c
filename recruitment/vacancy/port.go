package vacancy

import (
	"context"
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

type Repository interface {
	// Create creates a new vacancy
	Create(ctx context.Context, v *Vacancy) error

	// Update updates an existing vacancy
	Update(ctx context.Context, id kernel.VacancyID, v *Vacancy) error

	// GetByID retrieves a vacancy by ID
	GetByID(ctx context.Context, id kernel.VacancyID) (*Vacancy, error)

	// GetBySlug retrieves a vacancy by its slug
	GetBySlug(ctx context.Context, slug kernel.Slug) (*Vacancy, error)

	// Delete deletes a vacancy; implementations must refuse while
	// applications reference it
	Delete(ctx context.Context, id kernel.VacancyID) error

	// List retrieves all vacancies with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Vacancy], error)

	// ListOpen retrieves public vacancies whose deadline is after now,
	// newest first
	ListOpen(ctx context.Context, now time.Time, pagination kernel.PaginationOptions) (*kernel.Paginated[Vacancy], error)

	// CountApplications counts applications referencing the vacancy
	CountApplications(ctx context.Context, id kernel.VacancyID) (int64, error)

	// Exists checks if a vacancy exists by ID
	Exists(ctx context.Context, id kernel.VacancyID) (bool, error)

	// CreateRequirement attaches a minimum requirement to a vacancy
	CreateRequirement(ctx context.Context, r *MinimumRequirement) error

	// ListRequirements lists the minimum requirements of a vacancy
	ListRequirements(ctx context.Context, id kernel.VacancyID) ([]MinimumRequirement, error)

	// DeleteRequirement removes a minimum requirement
	DeleteRequirement(ctx context.Context, id kernel.RequirementID) error
}
