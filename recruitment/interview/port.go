package interview

import (
	"context"

	"github.com/talentgate/portal/pkg/kernel"
)

type Repository interface {
	// Create creates a new interview
	Create(ctx context.Context, i *Interview) error

	// Update updates an existing interview
	Update(ctx context.Context, id kernel.InterviewID, i *Interview) error

	// GetByID retrieves an interview by ID
	GetByID(ctx context.Context, id kernel.InterviewID) (*Interview, error)

	// GetByApplicationID retrieves the interview of an application
	GetByApplicationID(ctx context.Context, applicationID kernel.ApplicationID) (*Interview, error)

	// List retrieves all interviews with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Interview], error)

	// ListLocations lists the interview venues
	ListLocations(ctx context.Context) ([]Location, error)

	// GetLocation retrieves a venue by ID
	GetLocation(ctx context.Context, id kernel.LocationID) (*Location, error)
}
