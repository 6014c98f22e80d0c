package subscriber

import (
	"context"

	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/vacancy"
)

type Repository interface {
	// Create creates a new subscriber
	Create(ctx context.Context, s *Subscriber) error

	// Update updates an existing subscriber
	Update(ctx context.Context, id kernel.SubscriberID, s *Subscriber) error

	// GetByID retrieves a subscriber by ID
	GetByID(ctx context.Context, id kernel.SubscriberID) (*Subscriber, error)

	// GetByEmail retrieves a subscriber by email
	GetByEmail(ctx context.Context, email kernel.Email) (*Subscriber, error)

	// List retrieves all subscribers with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Subscriber], error)

	// ListActiveByVacancyType retrieves active subscribers of a vacancy type
	ListActiveByVacancyType(ctx context.Context, t vacancy.VacancyType) ([]Subscriber, error)
}

// Response type alias for paginated subscribers
type PaginatedSubscribersResponse = kernel.Paginated[Subscriber]

// SubscribeRequest - DTO for creating or reactivating a subscription
type SubscribeRequest struct {
	Email        kernel.Email          `json:"email" validate:"required,email"`
	VacancyTypes []vacancy.VacancyType `json:"vacancy_types" validate:"required,min=1"`
}
