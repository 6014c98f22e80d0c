package interviewinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/interview"
)

// PostgresInterviewRepository implements interview.Repository using PostgreSQL
type PostgresInterviewRepository struct {
	db *sqlx.DB
}

// NewPostgresInterviewRepository creates a new PostgreSQL interview repository
func NewPostgresInterviewRepository(db *sqlx.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type interviewModel struct {
	ID               string     `db:"id"`
	ApplicationID    string     `db:"application_id"`
	Status           string     `db:"status"`
	ScheduleDatetime time.Time  `db:"schedule_datetime"`
	Description      string     `db:"description"`
	LocationID       *string    `db:"location_id"`
	ResponseText     string     `db:"response_text"`
	ResponseDeadline *time.Time `db:"response_deadline"`
	ResponseDate     *time.Time `db:"response_date"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *interviewModel) toEntity() *interview.Interview {
	var locationID *kernel.LocationID
	if m.LocationID != nil {
		id := kernel.LocationID(*m.LocationID)
		locationID = &id
	}

	return &interview.Interview{
		ID:               kernel.InterviewID(m.ID),
		ApplicationID:    kernel.ApplicationID(m.ApplicationID),
		Status:           interview.InterviewStatus(m.Status),
		ScheduleDatetime: m.ScheduleDatetime,
		Description:      m.Description,
		LocationID:       locationID,
		ResponseText:     kernel.ResponseText(m.ResponseText),
		ResponseDeadline: m.ResponseDeadline,
		ResponseDate:     m.ResponseDate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(i *interview.Interview) *interviewModel {
	var locationID *string
	if i.LocationID != nil {
		id := string(*i.LocationID)
		locationID = &id
	}

	return &interviewModel{
		ID:               string(i.ID),
		ApplicationID:    string(i.ApplicationID),
		Status:           string(i.Status),
		ScheduleDatetime: i.ScheduleDatetime,
		Description:      i.Description,
		LocationID:       locationID,
		ResponseText:     string(i.ResponseText),
		ResponseDeadline: i.ResponseDeadline,
		ResponseDate:     i.ResponseDate,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

type locationModel struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
}

func (m *locationModel) toEntity() interview.Location {
	return interview.Location{
		ID:      kernel.LocationID(m.ID),
		Name:    m.Name,
		Address: m.Address,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new interview
func (r *PostgresInterviewRepository) Create(ctx context.Context, i *interview.Interview) error {
	model := fromEntity(i)

	query := `
		INSERT INTO interviews (
			id, application_id, status, schedule_datetime, description,
			location_id, response_text, response_deadline, response_date,
			created_at, updated_at
		) VALUES (
			:id, :application_id, :status, :schedule_datetime, :description,
			:location_id, :response_text, :response_deadline, :response_date,
			:created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}

	return nil
}

// Update updates an existing interview
func (r *PostgresInterviewRepository) Update(ctx context.Context, id kernel.InterviewID, i *interview.Interview) error {
	model := fromEntity(i)
	model.ID = string(id)

	query := `
		UPDATE interviews SET
			status = :status,
			schedule_datetime = :schedule_datetime,
			description = :description,
			location_id = :location_id,
			response_text = :response_text,
			response_deadline = :response_deadline,
			response_date = :response_date,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return interview.ErrInterviewNotFound()
	}

	return nil
}

// GetByID retrieves an interview by ID
func (r *PostgresInterviewRepository) GetByID(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	query := `
		SELECT
			id, application_id, status, schedule_datetime, description,
			location_id, response_text, response_deadline, response_date,
			created_at, updated_at
		FROM interviews
		WHERE id = $1
	`

	var model interviewModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, interview.ErrInterviewNotFound()
		}
		return nil, fmt.Errorf("failed to get interview by id: %w", err)
	}

	return model.toEntity(), nil
}

// GetByApplicationID retrieves the interview of an application
func (r *PostgresInterviewRepository) GetByApplicationID(ctx context.Context, applicationID kernel.ApplicationID) (*interview.Interview, error) {
	query := `
		SELECT
			id, application_id, status, schedule_datetime, description,
			location_id, response_text, response_deadline, response_date,
			created_at, updated_at
		FROM interviews
		WHERE application_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var model interviewModel
	err := r.db.GetContext(ctx, &model, query, string(applicationID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, interview.ErrInterviewNotFound()
		}
		return nil, fmt.Errorf("failed to get interview by application: %w", err)
	}

	return model.toEntity(), nil
}

// List retrieves all interviews with pagination
func (r *PostgresInterviewRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	pagination = pagination.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM interviews`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, fmt.Errorf("failed to count interviews: %w", err)
	}

	query := `
		SELECT
			id, application_id, status, schedule_datetime, description,
			location_id, response_text, response_deadline, response_date,
			created_at, updated_at
		FROM interviews
		ORDER BY schedule_datetime
		LIMIT $1 OFFSET $2
	`

	var models []interviewModel
	err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}

	entities := make([]interview.Interview, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// ListLocations lists the interview venues
func (r *PostgresInterviewRepository) ListLocations(ctx context.Context) ([]interview.Location, error) {
	query := `SELECT id, name, address FROM interview_locations ORDER BY name`

	var models []locationModel
	err := r.db.SelectContext(ctx, &models, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	locations := make([]interview.Location, 0, len(models))
	for _, model := range models {
		locations = append(locations, model.toEntity())
	}

	return locations, nil
}

// GetLocation retrieves a venue by ID
func (r *PostgresInterviewRepository) GetLocation(ctx context.Context, id kernel.LocationID) (*interview.Location, error) {
	query := `SELECT id, name, address FROM interview_locations WHERE id = $1`

	var model locationModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, interview.ErrLocationNotFound()
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	location := model.toEntity()
	return &location, nil
}
