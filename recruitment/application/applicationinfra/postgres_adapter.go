package applicationinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/application"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type applicationModel struct {
	ID               string     `db:"id"`
	VacancyID        string     `db:"vacancy_id"`
	Status           string     `db:"status"`
	FirstName        string     `db:"first_name"`
	MiddleName       string     `db:"middle_name"`
	LastName         string     `db:"last_name"`
	Email            string     `db:"email"`
	PrimaryContact   string     `db:"primary_contact"`
	SecondaryContact string     `db:"secondary_contact"`
	DateOfBirth      time.Time  `db:"date_of_birth"`
	CVPath           string     `db:"cv_path"`
	ReviewedBy       *string    `db:"reviewed_by"`
	ReviewedAt       *time.Time `db:"reviewed_at"`
	ReviewComments   string     `db:"review_comments"`
	SubmittedAt      time.Time  `db:"submitted_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *applicationModel) toEntity() *application.Application {
	var reviewedBy *kernel.UserID
	if m.ReviewedBy != nil {
		id := kernel.UserID(*m.ReviewedBy)
		reviewedBy = &id
	}

	return &application.Application{
		ID:               kernel.ApplicationID(m.ID),
		VacancyID:        kernel.VacancyID(m.VacancyID),
		Status:           application.ApplicationStatus(m.Status),
		FirstName:        m.FirstName,
		MiddleName:       m.MiddleName,
		LastName:         m.LastName,
		Email:            kernel.Email(m.Email),
		PrimaryContact:   kernel.PhoneNumber(m.PrimaryContact),
		SecondaryContact: kernel.PhoneNumber(m.SecondaryContact),
		DateOfBirth:      m.DateOfBirth,
		CVPath:           kernel.BucketURL(m.CVPath),
		ReviewedBy:       reviewedBy,
		ReviewedAt:       m.ReviewedAt,
		ReviewComments:   m.ReviewComments,
		SubmittedAt:      m.SubmittedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(a *application.Application) *applicationModel {
	var reviewedBy *string
	if a.ReviewedBy != nil {
		id := string(*a.ReviewedBy)
		reviewedBy = &id
	}

	return &applicationModel{
		ID:               string(a.ID),
		VacancyID:        string(a.VacancyID),
		Status:           string(a.Status),
		FirstName:        a.FirstName,
		MiddleName:       a.MiddleName,
		LastName:         a.LastName,
		Email:            string(a.Email),
		PrimaryContact:   string(a.PrimaryContact),
		SecondaryContact: string(a.SecondaryContact),
		DateOfBirth:      a.DateOfBirth,
		CVPath:           string(a.CVPath),
		ReviewedBy:       reviewedBy,
		ReviewedAt:       a.ReviewedAt,
		ReviewComments:   a.ReviewComments,
		SubmittedAt:      a.SubmittedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

type answerModel struct {
	ApplicationID string `db:"application_id"`
	RequirementID string `db:"requirement_id"`
	Answer        string `db:"answer"`
}

func (m *answerModel) toEntity() application.RequirementAnswer {
	return application.RequirementAnswer{
		ApplicationID: kernel.ApplicationID(m.ApplicationID),
		RequirementID: kernel.RequirementID(m.RequirementID),
		Answer:        m.Answer,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new application and its answers in one transaction
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application, answers []application.RequirementAnswer) error {
	model := fromEntity(app)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO applications (
			id, vacancy_id, status, first_name, middle_name, last_name,
			email, primary_contact, secondary_contact, date_of_birth, cv_path,
			reviewed_by, reviewed_at, review_comments, submitted_at, updated_at
		) VALUES (
			:id, :vacancy_id, :status, :first_name, :middle_name, :last_name,
			:email, :primary_contact, :secondary_contact, :date_of_birth, :cv_path,
			:reviewed_by, :reviewed_at, :review_comments, :submitted_at, :updated_at
		)
	`

	if _, err := tx.NamedExecContext(ctx, query, model); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return application.ErrApplicationAlreadyExists()
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	for _, answer := range answers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO application_answers (application_id, requirement_id, answer) VALUES ($1, $2, $3)`,
			string(answer.ApplicationID), string(answer.RequirementID), answer.Answer); err != nil {
			return fmt.Errorf("failed to store answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit application: %w", err)
	}

	return nil
}

// Update updates an existing application
func (r *PostgresApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, app *application.Application) error {
	model := fromEntity(app)
	model.ID = string(id)

	query := `
		UPDATE applications SET
			status = :status,
			reviewed_by = :reviewed_by,
			reviewed_at = :reviewed_at,
			review_comments = :review_comments,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `
		SELECT
			id, vacancy_id, status, first_name, middle_name, last_name,
			email, primary_contact, secondary_contact, date_of_birth, cv_path,
			reviewed_by, reviewed_at, review_comments, submitted_at, updated_at
		FROM applications
		WHERE id = $1
	`

	var model applicationModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}

	return model.toEntity(), nil
}

// List retrieves all applications with pagination
func (r *PostgresApplicationRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	pagination = pagination.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM applications`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	query := `
		SELECT
			id, vacancy_id, status, first_name, middle_name, last_name,
			email, primary_contact, secondary_contact, date_of_birth, cv_path,
			reviewed_by, reviewed_at, review_comments, submitted_at, updated_at
		FROM applications
		ORDER BY submitted_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []applicationModel
	err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	entities := make([]application.Application, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// ListByVacancyID retrieves applications for a specific vacancy
func (r *PostgresApplicationRepository) ListByVacancyID(ctx context.Context, vacancyID kernel.VacancyID, pagination kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	pagination = pagination.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM applications WHERE vacancy_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(vacancyID)); err != nil {
		return nil, fmt.Errorf("failed to count vacancy applications: %w", err)
	}

	query := `
		SELECT
			id, vacancy_id, status, first_name, middle_name, last_name,
			email, primary_contact, secondary_contact, date_of_birth, cv_path,
			reviewed_by, reviewed_at, review_comments, submitted_at, updated_at
		FROM applications
		WHERE vacancy_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []applicationModel
	err := r.db.SelectContext(ctx, &models, query, string(vacancyID), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list vacancy applications: %w", err)
	}

	entities := make([]application.Application, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// ListAnswers retrieves the screening answers of an application
func (r *PostgresApplicationRepository) ListAnswers(ctx context.Context, id kernel.ApplicationID) ([]application.RequirementAnswer, error) {
	query := `
		SELECT application_id, requirement_id, answer
		FROM application_answers
		WHERE application_id = $1
	`

	var models []answerModel
	err := r.db.SelectContext(ctx, &models, query, string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	answers := make([]application.RequirementAnswer, 0, len(models))
	for _, model := range models {
		answers = append(answers, model.toEntity())
	}

	return answers, nil
}

// ExistsByVacancyAndEmail checks if an email already applied to a vacancy
func (r *PostgresApplicationRepository) ExistsByVacancyAndEmail(ctx context.Context, vacancyID kernel.VacancyID, email kernel.Email) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE vacancy_id = $1 AND email = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(vacancyID), string(email))
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}

	return exists, nil
}

// CountByVacancyID counts applications for a specific vacancy
func (r *PostgresApplicationRepository) CountByVacancyID(ctx context.Context, vacancyID kernel.VacancyID) (int64, error) {
	query := `SELECT COUNT(*) FROM applications WHERE vacancy_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, string(vacancyID))
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}

	return count, nil
}
