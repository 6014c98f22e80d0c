package bursaryinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/talentgate/portal/finaid/bursary"
	"github.com/talentgate/portal/pkg/kernel"
)

// PostgresBursaryRepository implements bursary.Repository using PostgreSQL
type PostgresBursaryRepository struct {
	db *sqlx.DB
}

// NewPostgresBursaryRepository creates a new PostgreSQL bursary repository
func NewPostgresBursaryRepository(db *sqlx.DB) *PostgresBursaryRepository {
	return &PostgresBursaryRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type advertModel struct {
	ID          string    `db:"id"`
	Year        string    `db:"year"`
	AdvertPath  string    `db:"advert_path"`
	Description string    `db:"description"`
	Deadline    time.Time `db:"deadline"`
	IsVisible   bool      `db:"is_visible"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m *advertModel) toEntity() *bursary.Advert {
	return &bursary.Advert{
		ID:          kernel.BursaryID(m.ID),
		Year:        m.Year,
		AdvertPath:  kernel.BucketURL(m.AdvertPath),
		Description: m.Description,
		Deadline:    m.Deadline,
		IsVisible:   m.IsVisible,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func advertFromEntity(a *bursary.Advert) *advertModel {
	return &advertModel{
		ID:          string(a.ID),
		Year:        a.Year,
		AdvertPath:  string(a.AdvertPath),
		Description: a.Description,
		Deadline:    a.Deadline,
		IsVisible:   a.IsVisible,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type applicationModel struct {
	ID               string     `db:"id"`
	BursaryID        string     `db:"bursary_id"`
	Status           string     `db:"status"`
	FirstName        string     `db:"first_name"`
	MiddleName       string     `db:"middle_name"`
	LastName         string     `db:"last_name"`
	IDNumber         string     `db:"id_number"`
	DateOfBirth      time.Time  `db:"date_of_birth"`
	Email            string     `db:"email"`
	PrimaryContact   string     `db:"primary_contact"`
	SecondaryContact string     `db:"secondary_contact"`
	DocumentsPath    string     `db:"documents_path"`
	MotivationLetter string     `db:"motivation_letter"`
	ReviewedBy       *string    `db:"reviewed_by"`
	ReviewedAt       *time.Time `db:"reviewed_at"`
	ReviewComments   string     `db:"review_comments"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

func (m *applicationModel) toEntity() *bursary.Application {
	var reviewedBy *kernel.UserID
	if m.ReviewedBy != nil {
		id := kernel.UserID(*m.ReviewedBy)
		reviewedBy = &id
	}

	return &bursary.Application{
		ID:               kernel.BursaryApplicationID(m.ID),
		BursaryID:        kernel.BursaryID(m.BursaryID),
		Status:           bursary.ApplicationStatus(m.Status),
		FirstName:        m.FirstName,
		MiddleName:       m.MiddleName,
		LastName:         m.LastName,
		IDNumber:         m.IDNumber,
		DateOfBirth:      m.DateOfBirth,
		Email:            kernel.Email(m.Email),
		PrimaryContact:   kernel.PhoneNumber(m.PrimaryContact),
		SecondaryContact: kernel.PhoneNumber(m.SecondaryContact),
		DocumentsPath:    kernel.BucketURL(m.DocumentsPath),
		MotivationLetter: m.MotivationLetter,
		ReviewedBy:       reviewedBy,
		ReviewedAt:       m.ReviewedAt,
		ReviewComments:   m.ReviewComments,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func applicationFromEntity(a *bursary.Application) *applicationModel {
	var reviewedBy *string
	if a.ReviewedBy != nil {
		id := string(*a.ReviewedBy)
		reviewedBy = &id
	}

	return &applicationModel{
		ID:               string(a.ID),
		BursaryID:        string(a.BursaryID),
		Status:           string(a.Status),
		FirstName:        a.FirstName,
		MiddleName:       a.MiddleName,
		LastName:         a.LastName,
		IDNumber:         a.IDNumber,
		DateOfBirth:      a.DateOfBirth,
		Email:            string(a.Email),
		PrimaryContact:   string(a.PrimaryContact),
		SecondaryContact: string(a.SecondaryContact),
		DocumentsPath:    string(a.DocumentsPath),
		MotivationLetter: a.MotivationLetter,
		ReviewedBy:       reviewedBy,
		ReviewedAt:       a.ReviewedAt,
		ReviewComments:   a.ReviewComments,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// CreateAdvert creates a new bursary advert
func (r *PostgresBursaryRepository) CreateAdvert(ctx context.Context, a *bursary.Advert) error {
	model := advertFromEntity(a)

	query := `
		INSERT INTO bursary_adverts (
			id, year, advert_path, description, deadline, is_visible,
			created_at, updated_at
		) VALUES (
			:id, :year, :advert_path, :description, :deadline, :is_visible,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return bursary.ErrAdvertYearExists()
			}
		}
		return fmt.Errorf("failed to create advert: %w", err)
	}

	return nil
}

// UpdateAdvert updates an existing advert
func (r *PostgresBursaryRepository) UpdateAdvert(ctx context.Context, id kernel.BursaryID, a *bursary.Advert) error {
	model := advertFromEntity(a)
	model.ID = string(id)

	query := `
		UPDATE bursary_adverts SET
			year = :year,
			advert_path = :advert_path,
			description = :description,
			deadline = :deadline,
			is_visible = :is_visible,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return bursary.ErrAdvertYearExists()
			}
		}
		return fmt.Errorf("failed to update advert: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return bursary.ErrAdvertNotFound()
	}

	return nil
}

// GetAdvertByID retrieves an advert by ID
func (r *PostgresBursaryRepository) GetAdvertByID(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
	query := `
		SELECT id, year, advert_path, description, deadline, is_visible,
			created_at, updated_at
		FROM bursary_adverts
		WHERE id = $1
	`

	var model advertModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, bursary.ErrAdvertNotFound()
		}
		return nil, fmt.Errorf("failed to get advert by id: %w", err)
	}

	return model.toEntity(), nil
}

// GetAdvertByYear retrieves the advert of a given year
func (r *PostgresBursaryRepository) GetAdvertByYear(ctx context.Context, year string) (*bursary.Advert, error) {
	query := `
		SELECT id, year, advert_path, description, deadline, is_visible,
			created_at, updated_at
		FROM bursary_adverts
		WHERE year = $1
	`

	var model advertModel
	err := r.db.GetContext(ctx, &model, query, year)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, bursary.ErrAdvertNotFound()
		}
		return nil, fmt.Errorf("failed to get advert by year: %w", err)
	}

	return model.toEntity(), nil
}

// DeleteAdvert deletes an advert
func (r *PostgresBursaryRepository) DeleteAdvert(ctx context.Context, id kernel.BursaryID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bursary_adverts WHERE id = $1`, string(id))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" { // foreign_key_violation
				return bursary.ErrAdvertHasApplications()
			}
		}
		return fmt.Errorf("failed to delete advert: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return bursary.ErrAdvertNotFound()
	}

	return nil
}

// ListAdverts retrieves all adverts with pagination
func (r *PostgresBursaryRepository) ListAdverts(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[bursary.Advert], error) {
	pagination = pagination.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM bursary_adverts`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, fmt.Errorf("failed to count adverts: %w", err)
	}

	query := `
		SELECT id, year, advert_path, description, deadline, is_visible,
			created_at, updated_at
		FROM bursary_adverts
		ORDER BY year DESC
		LIMIT $1 OFFSET $2
	`

	var models []advertModel
	err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list adverts: %w", err)
	}

	entities := make([]bursary.Advert, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// ListOpenAdverts retrieves visible adverts whose deadline is after now
func (r *PostgresBursaryRepository) ListOpenAdverts(ctx context.Context, now time.Time) ([]bursary.Advert, error) {
	query := `
		SELECT id, year, advert_path, description, deadline, is_visible,
			created_at, updated_at
		FROM bursary_adverts
		WHERE is_visible = true AND deadline > $1
		ORDER BY year DESC
	`

	var models []advertModel
	err := r.db.SelectContext(ctx, &models, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list open adverts: %w", err)
	}

	entities := make([]bursary.Advert, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return entities, nil
}

// CountApplications counts applications referencing an advert
func (r *PostgresBursaryRepository) CountApplications(ctx context.Context, id kernel.BursaryID) (int64, error) {
	query := `SELECT COUNT(*) FROM bursary_applications WHERE bursary_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, string(id))
	if err != nil {
		return 0, fmt.Errorf("failed to count bursary applications: %w", err)
	}

	return count, nil
}

// CreateApplication creates a new bursary application
func (r *PostgresBursaryRepository) CreateApplication(ctx context.Context, a *bursary.Application) error {
	model := applicationFromEntity(a)

	query := `
		INSERT INTO bursary_applications (
			id, bursary_id, status, first_name, middle_name, last_name,
			id_number, date_of_birth, email, primary_contact, secondary_contact,
			documents_path, motivation_letter, reviewed_by, reviewed_at,
			review_comments, created_at, updated_at
		) VALUES (
			:id, :bursary_id, :status, :first_name, :middle_name, :last_name,
			:id_number, :date_of_birth, :email, :primary_contact, :secondary_contact,
			:documents_path, :motivation_letter, :reviewed_by, :reviewed_at,
			:review_comments, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return bursary.ErrApplicationAlreadyExists()
			case "23503": // foreign_key_violation
				return bursary.ErrAdvertNotFound()
			}
		}
		return fmt.Errorf("failed to create bursary application: %w", err)
	}

	return nil
}

// UpdateApplication updates an existing application
func (r *PostgresBursaryRepository) UpdateApplication(ctx context.Context, id kernel.BursaryApplicationID, a *bursary.Application) error {
	model := applicationFromEntity(a)
	model.ID = string(id)

	query := `
		UPDATE bursary_applications SET
			status = :status,
			reviewed_by = :reviewed_by,
			reviewed_at = :reviewed_at,
			review_comments = :review_comments,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update bursary application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return bursary.ErrApplicationNotFound()
	}

	return nil
}

// GetApplicationByID retrieves an application by ID
func (r *PostgresBursaryRepository) GetApplicationByID(ctx context.Context, id kernel.BursaryApplicationID) (*bursary.Application, error) {
	query := `
		SELECT
			id, bursary_id, status, first_name, middle_name, last_name,
			id_number, date_of_birth, email, primary_contact, secondary_contact,
			documents_path, motivation_letter, reviewed_by, reviewed_at,
			review_comments, created_at, updated_at
		FROM bursary_applications
		WHERE id = $1
	`

	var model applicationModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, bursary.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get bursary application by id: %w", err)
	}

	return model.toEntity(), nil
}

// ListApplications retrieves the applications of an advert with pagination
func (r *PostgresBursaryRepository) ListApplications(ctx context.Context, bursaryID kernel.BursaryID, pagination kernel.PaginationOptions) (*kernel.Paginated[bursary.Application], error) {
	pagination = pagination.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM bursary_applications WHERE bursary_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, string(bursaryID)); err != nil {
		return nil, fmt.Errorf("failed to count bursary applications: %w", err)
	}

	query := `
		SELECT
			id, bursary_id, status, first_name, middle_name, last_name,
			id_number, date_of_birth, email, primary_contact, secondary_contact,
			documents_path, motivation_letter, reviewed_by, reviewed_at,
			review_comments, created_at, updated_at
		FROM bursary_applications
		WHERE bursary_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []applicationModel
	err := r.db.SelectContext(ctx, &models, query, string(bursaryID), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list bursary applications: %w", err)
	}

	entities := make([]bursary.Application, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// ExistsByBursaryAndIDNumber checks for a duplicate national ID on a bursary
func (r *PostgresBursaryRepository) ExistsByBursaryAndIDNumber(ctx context.Context, bursaryID kernel.BursaryID, idNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bursary_applications WHERE bursary_id = $1 AND id_number = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, string(bursaryID), idNumber)
	if err != nil {
		return false, fmt.Errorf("failed to check bursary application existence: %w", err)
	}

	return exists, nil
}
