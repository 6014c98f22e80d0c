package bursary

import (
	"context"
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

type Repository interface {
	// CreateAdvert creates a new bursary advert
	CreateAdvert(ctx context.Context, a *Advert) error

	// UpdateAdvert updates an existing advert
	UpdateAdvert(ctx context.Context, id kernel.BursaryID, a *Advert) error

	// GetAdvertByID retrieves an advert by ID
	GetAdvertByID(ctx context.Context, id kernel.BursaryID) (*Advert, error)

	// GetAdvertByYear retrieves the advert of a given year
	GetAdvertByYear(ctx context.Context, year string) (*Advert, error)

	// DeleteAdvert deletes an advert; implementations must refuse while
	// applications reference it
	DeleteAdvert(ctx context.Context, id kernel.BursaryID) error

	// ListAdverts retrieves all adverts with pagination
	ListAdverts(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Advert], error)

	// ListOpenAdverts retrieves visible adverts whose deadline is after now
	ListOpenAdverts(ctx context.Context, now time.Time) ([]Advert, error)

	// CountApplications counts applications referencing an advert
	CountApplications(ctx context.Context, id kernel.BursaryID) (int64, error)

	// CreateApplication creates a new bursary application
	CreateApplication(ctx context.Context, a *Application) error

	// UpdateApplication updates an existing application
	UpdateApplication(ctx context.Context, id kernel.BursaryApplicationID, a *Application) error

	// GetApplicationByID retrieves an application by ID
	GetApplicationByID(ctx context.Context, id kernel.BursaryApplicationID) (*Application, error)

	// ListApplications retrieves the applications of an advert
	ListApplications(ctx context.Context, bursaryID kernel.BursaryID, pagination kernel.PaginationOptions) (*kernel.Paginated[Application], error)

	// ExistsByBursaryAndIDNumber checks for a duplicate national ID on a bursary
	ExistsByBursaryAndIDNumber(ctx context.Context, bursaryID kernel.BursaryID, idNumber string) (bool, error)
}
