package vacancyinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// PostgresVacancyRepository implements vacancy.Repository using PostgreSQL
type PostgresVacancyRepository struct {
	db *sqlx.DB
}

// NewPostgresVacancyRepository creates a new PostgreSQL vacancy repository
func NewPostgresVacancyRepository(db *sqlx.DB) *PostgresVacancyRepository {
	return &PostgresVacancyRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type vacancyModel struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	VacancyType string    `db:"vacancy_type"`
	PayGrade    string    `db:"pay_grade"`
	Description string    `db:"description"`
	Remarks     string    `db:"remarks"`
	Deadline    time.Time `db:"deadline"`
	IsPublic    bool      `db:"is_public"`
	IsPublished bool      `db:"is_published"`
	Slug        string    `db:"slug"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *vacancyModel) toEntity() *vacancy.Vacancy {
	return &vacancy.Vacancy{
		ID:          kernel.VacancyID(m.ID),
		Title:       kernel.VacancyTitle(m.Title),
		Type:        vacancy.VacancyType(m.VacancyType),
		PayGrade:    kernel.PayGrade(m.PayGrade),
		Description: kernel.VacancyDescription(m.Description),
		Remarks:     kernel.VacancyDescription(m.Remarks),
		Deadline:    m.Deadline,
		IsPublic:    m.IsPublic,
		IsPublished: m.IsPublished,
		Slug:        kernel.Slug(m.Slug),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(v *vacancy.Vacancy) *vacancyModel {
	return &vacancyModel{
		ID:          string(v.ID),
		Title:       string(v.Title),
		VacancyType: string(v.Type),
		PayGrade:    string(v.PayGrade),
		Description: string(v.Description),
		Remarks:     string(v.Remarks),
		Deadline:    v.Deadline,
		IsPublic:    v.IsPublic,
		IsPublished: v.IsPublished,
		Slug:        string(v.Slug),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

type requirementModel struct {
	ID           string `db:"id"`
	VacancyID    string `db:"vacancy_id"`
	Title        string `db:"title"`
	QuestionType string `db:"question_type"`
	IsRequired   bool   `db:"is_required"`
}

func (m *requirementModel) toEntity() vacancy.MinimumRequirement {
	return vacancy.MinimumRequirement{
		ID:           kernel.RequirementID(m.ID),
		VacancyID:    kernel.VacancyID(m.VacancyID),
		Title:        m.Title,
		QuestionType: vacancy.QuestionType(m.QuestionType),
		IsRequired:   m.IsRequired,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new vacancy
func (r *PostgresVacancyRepository) Create(ctx context.Context, v *vacancy.Vacancy) error {
	model := fromEntity(v)

	query := `
		INSERT INTO vacancies (
			id, title, vacancy_type, pay_grade, description, remarks,
			deadline, is_public, is_published, slug, created_at, updated_at
		) VALUES (
			:id, :title, :vacancy_type, :pay_grade, :description, :remarks,
			:deadline, :is_public, :is_published, :slug, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return vacancy.ErrVacancyAlreadyExists()
			}
		}
		return fmt.Errorf("failed to create vacancy: %w", err)
	}

	if err := r.replaceTowns(ctx, v.ID, v.TownIDs); err != nil {
		return err
	}

	return nil
}

// Update updates an existing vacancy
func (r *PostgresVacancyRepository) Update(ctx context.Context, id kernel.VacancyID, v *vacancy.Vacancy) error {
	model := fromEntity(v)
	model.ID = string(id)

	query := `
		UPDATE vacancies SET
			title = :title,
			pay_grade = :pay_grade,
			description = :description,
			remarks = :remarks,
			deadline = :deadline,
			is_public = :is_public,
			is_published = :is_published,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update vacancy: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return vacancy.ErrVacancyNotFound()
	}

	if v.TownIDs != nil {
		if err := r.replaceTowns(ctx, id, v.TownIDs); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a vacancy by ID
func (r *PostgresVacancyRepository) GetByID(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
	query := `
		SELECT
			id, title, vacancy_type, pay_grade, description, remarks,
			deadline, is_public, is_published, slug, created_at, updated_at
		FROM vacancies
		WHERE id = $1
	`

	var model vacancyModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vacancy.ErrVacancyNotFound()
		}
		return nil, fmt.Errorf("failed to get vacancy by id: %w", err)
	}

	entity := model.toEntity()
	towns, err := r.listTowns(ctx, id)
	if err != nil {
		return nil, err
	}
	entity.TownIDs = towns

	return entity, nil
}

// GetBySlug retrieves a vacancy by its slug
func (r *PostgresVacancyRepository) GetBySlug(ctx context.Context, slug kernel.Slug) (*vacancy.Vacancy, error) {
	query := `
		SELECT
			id, title, vacancy_type, pay_grade, description, remarks,
			deadline, is_public, is_published, slug, created_at, updated_at
		FROM vacancies
		WHERE slug = $1
	`

	var model vacancyModel
	err := r.db.GetContext(ctx, &model, query, string(slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vacancy.ErrVacancyNotFound()
		}
		return nil, fmt.Errorf("failed to get vacancy by slug: %w", err)
	}

	entity := model.toEntity()
	towns, err := r.listTowns(ctx, entity.ID)
	if err != nil {
		return nil, err
	}
	entity.TownIDs = towns

	return entity, nil
}

// Delete deletes a vacancy by ID
func (r *PostgresVacancyRepository) Delete(ctx context.Context, id kernel.VacancyID) error {
	query := `DELETE FROM vacancies WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return vacancy.ErrVacancyHasApplications()
			}
		}
		return fmt.Errorf("failed to delete vacancy: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return vacancy.ErrVacancyNotFound()
	}

	return nil
}

// List retrieves all vacancies with pagination
func (r *PostgresVacancyRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[vacancy.Vacancy], error) {
	pagination = pagination.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM vacancies`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, fmt.Errorf("failed to count vacancies: %w", err)
	}

	query := `
		SELECT
			id, title, vacancy_type, pay_grade, description, remarks,
			deadline, is_public, is_published, slug, created_at, updated_at
		FROM vacancies
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []vacancyModel
	err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list vacancies: %w", err)
	}

	entities := make([]vacancy.Vacancy, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// ListOpen retrieves public vacancies whose deadline is after now
func (r *PostgresVacancyRepository) ListOpen(ctx context.Context, now time.Time, pagination kernel.PaginationOptions) (*kernel.Paginated[vacancy.Vacancy], error) {
	pagination = pagination.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM vacancies WHERE is_public = true AND is_published = true AND deadline > $1`
	if err := r.db.GetContext(ctx, &total, countQuery, now); err != nil {
		return nil, fmt.Errorf("failed to count open vacancies: %w", err)
	}

	query := `
		SELECT
			id, title, vacancy_type, pay_grade, description, remarks,
			deadline, is_public, is_published, slug, created_at, updated_at
		FROM vacancies
		WHERE is_public = true AND is_published = true AND deadline > $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []vacancyModel
	err := r.db.SelectContext(ctx, &models, query, now, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list open vacancies: %w", err)
	}

	entities := make([]vacancy.Vacancy, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// CountApplications counts applications referencing a vacancy
func (r *PostgresVacancyRepository) CountApplications(ctx context.Context, id kernel.VacancyID) (int64, error) {
	query := `SELECT COUNT(*) FROM applications WHERE vacancy_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, string(id))
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}

	return count, nil
}

// Exists checks if a vacancy exists by ID
func (r *PostgresVacancyRepository) Exists(ctx context.Context, id kernel.VacancyID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM vacancies WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(id))
	if err != nil {
		return false, fmt.Errorf("failed to check vacancy existence: %w", err)
	}

	return exists, nil
}

// CreateRequirement attaches a minimum requirement to a vacancy
func (r *PostgresVacancyRepository) CreateRequirement(ctx context.Context, req *vacancy.MinimumRequirement) error {
	query := `
		INSERT INTO vacancy_requirements (id, vacancy_id, title, question_type, is_required)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		string(req.ID), string(req.VacancyID), req.Title, string(req.QuestionType), req.IsRequired)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return vacancy.ErrVacancyNotFound()
			}
		}
		return fmt.Errorf("failed to create requirement: %w", err)
	}

	return nil
}

// ListRequirements lists the minimum requirements of a vacancy
func (r *PostgresVacancyRepository) ListRequirements(ctx context.Context, id kernel.VacancyID) ([]vacancy.MinimumRequirement, error) {
	query := `
		SELECT id, vacancy_id, title, question_type, is_required
		FROM vacancy_requirements
		WHERE vacancy_id = $1
		ORDER BY title
	`

	var models []requirementModel
	err := r.db.SelectContext(ctx, &models, query, string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}

	requirements := make([]vacancy.MinimumRequirement, 0, len(models))
	for _, model := range models {
		requirements = append(requirements, model.toEntity())
	}

	return requirements, nil
}

// DeleteRequirement removes a minimum requirement
func (r *PostgresVacancyRepository) DeleteRequirement(ctx context.Context, id kernel.RequirementID) error {
	query := `DELETE FROM vacancy_requirements WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete requirement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return vacancy.ErrRequirementNotFound()
	}

	return nil
}

// replaceTowns rewrites the vacancy/town links for a vacancy
func (r *PostgresVacancyRepository) replaceTowns(ctx context.Context, id kernel.VacancyID, towns []kernel.TownID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM vacancy_towns WHERE vacancy_id = $1`, string(id)); err != nil {
		return fmt.Errorf("failed to clear vacancy towns: %w", err)
	}

	for _, town := range towns {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO vacancy_towns (vacancy_id, town_id) VALUES ($1, $2)`,
			string(id), string(town)); err != nil {
			return fmt.Errorf("failed to link vacancy town: %w", err)
		}
	}

	return nil
}

// listTowns loads the town links for a vacancy
func (r *PostgresVacancyRepository) listTowns(ctx context.Context, id kernel.VacancyID) ([]kernel.TownID, error) {
	var ids []string
	query := `SELECT town_id FROM vacancy_towns WHERE vacancy_id = $1 ORDER BY town_id`
	if err := r.db.SelectContext(ctx, &ids, query, string(id)); err != nil {
		return nil, fmt.Errorf("failed to list vacancy towns: %w", err)
	}

	towns := make([]kernel.TownID, 0, len(ids))
	for _, townID := range ids {
		towns = append(towns, kernel.TownID(townID))
	}

	return towns, nil
}
