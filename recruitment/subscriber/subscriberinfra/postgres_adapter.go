package subscriberinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/subscriber"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// PostgresSubscriberRepository implements subscriber.Repository using PostgreSQL
type PostgresSubscriberRepository struct {
	db *sqlx.DB
}

// NewPostgresSubscriberRepository creates a new PostgreSQL subscriber repository
func NewPostgresSubscriberRepository(db *sqlx.DB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type subscriberModel struct {
	ID             string         `db:"id"`
	Email          string         `db:"email"`
	VacancyTypes   pq.StringArray `db:"vacancy_types"`
	Subscribed     bool           `db:"subscribed"`
	SubscribedAt   time.Time      `db:"subscribed_at"`
	UnsubscribedAt *time.Time     `db:"unsubscribed_at"`
}

// toEntity converts database model to domain entity
func (m *subscriberModel) toEntity() *subscriber.Subscriber {
	types := make([]vacancy.VacancyType, 0, len(m.VacancyTypes))
	for _, t := range m.VacancyTypes {
		types = append(types, vacancy.VacancyType(t))
	}

	return &subscriber.Subscriber{
		ID:             kernel.SubscriberID(m.ID),
		Email:          kernel.Email(m.Email),
		VacancyTypes:   types,
		Subscribed:     m.Subscribed,
		SubscribedAt:   m.SubscribedAt,
		UnsubscribedAt: m.UnsubscribedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(s *subscriber.Subscriber) *subscriberModel {
	types := make(pq.StringArray, 0, len(s.VacancyTypes))
	for _, t := range s.VacancyTypes {
		types = append(types, string(t))
	}

	return &subscriberModel{
		ID:             string(s.ID),
		Email:          string(s.Email),
		VacancyTypes:   types,
		Subscribed:     s.Subscribed,
		SubscribedAt:   s.SubscribedAt,
		UnsubscribedAt: s.UnsubscribedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new subscriber
func (r *PostgresSubscriberRepository) Create(ctx context.Context, s *subscriber.Subscriber) error {
	model := fromEntity(s)

	query := `
		INSERT INTO subscribers (
			id, email, vacancy_types, subscribed, subscribed_at, unsubscribed_at
		) VALUES (
			:id, :email, :vacancy_types, :subscribed, :subscribed_at, :unsubscribed_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return subscriber.ErrAlreadySubscribed()
			}
		}
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	return nil
}

// Update updates an existing subscriber
func (r *PostgresSubscriberRepository) Update(ctx context.Context, id kernel.SubscriberID, s *subscriber.Subscriber) error {
	model := fromEntity(s)
	model.ID = string(id)

	query := `
		UPDATE subscribers SET
			vacancy_types = :vacancy_types,
			subscribed = :subscribed,
			subscribed_at = :subscribed_at,
			unsubscribed_at = :unsubscribed_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return subscriber.ErrSubscriberNotFound()
	}

	return nil
}

// GetByID retrieves a subscriber by ID
func (r *PostgresSubscriberRepository) GetByID(ctx context.Context, id kernel.SubscriberID) (*subscriber.Subscriber, error) {
	query := `
		SELECT id, email, vacancy_types, subscribed, subscribed_at, unsubscribed_at
		FROM subscribers
		WHERE id = $1
	`

	var model subscriberModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, subscriber.ErrSubscriberNotFound()
		}
		return nil, fmt.Errorf("failed to get subscriber by id: %w", err)
	}

	return model.toEntity(), nil
}

// GetByEmail retrieves a subscriber by email
func (r *PostgresSubscriberRepository) GetByEmail(ctx context.Context, email kernel.Email) (*subscriber.Subscriber, error) {
	query := `
		SELECT id, email, vacancy_types, subscribed, subscribed_at, unsubscribed_at
		FROM subscribers
		WHERE email = $1
	`

	var model subscriberModel
	err := r.db.GetContext(ctx, &model, query, string(email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, subscriber.ErrSubscriberNotFound()
		}
		return nil, fmt.Errorf("failed to get subscriber by email: %w", err)
	}

	return model.toEntity(), nil
}

// List retrieves all subscribers with pagination
func (r *PostgresSubscriberRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[subscriber.Subscriber], error) {
	pagination = pagination.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM subscribers`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, fmt.Errorf("failed to count subscribers: %w", err)
	}

	query := `
		SELECT id, email, vacancy_types, subscribed, subscribed_at, unsubscribed_at
		FROM subscribers
		ORDER BY subscribed_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []subscriberModel
	err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	entities := make([]subscriber.Subscriber, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// ListActiveByVacancyType retrieves active subscribers of a vacancy type
func (r *PostgresSubscriberRepository) ListActiveByVacancyType(ctx context.Context, t vacancy.VacancyType) ([]subscriber.Subscriber, error) {
	query := `
		SELECT id, email, vacancy_types, subscribed, subscribed_at, unsubscribed_at
		FROM subscribers
		WHERE subscribed = true AND $1 = ANY(vacancy_types)
		ORDER BY subscribed_at
	`

	var models []subscriberModel
	err := r.db.SelectContext(ctx, &models, query, string(t))
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers by type: %w", err)
	}

	entities := make([]subscriber.Subscriber, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return entities, nil
}
