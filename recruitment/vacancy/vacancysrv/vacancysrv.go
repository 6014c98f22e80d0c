package vacancysrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/errx"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// VacancyService provides business operations for vacancies
type VacancyService struct {
	repo   vacancy.Repository
	events notification.Publisher
}

// NewVacancyService creates a new instance of the vacancy service
func NewVacancyService(repo vacancy.Repository, events notification.Publisher) *VacancyService {
	return &VacancyService{
		repo:   repo,
		events: events,
	}
}

// CreateVacancy creates a new vacancy. A public, published vacancy emits a
// VacancyCreated event for subscriber mail-out and the staff broadcast.
func (s *VacancyService) CreateVacancy(ctx context.Context, req vacancy.CreateVacancyRequest) (*vacancy.Vacancy, error) {
	if !req.Type.IsValid() {
		return nil, vacancy.ErrInvalidVacancyType().WithDetail("vacancy_type", req.Type)
	}

	now := time.Now()
	if !req.Deadline.After(now) {
		return nil, vacancy.ErrDeadlineInPast().
			WithDetail("field", "deadline").
			WithDetail("deadline", req.Deadline)
	}

	id := kernel.NewVacancyID(uuid.NewString())
	newVacancy := &vacancy.Vacancy{
		ID:          id,
		Title:       req.Title,
		Type:        req.Type,
		PayGrade:    req.PayGrade,
		Description: req.Description,
		Remarks:     req.Remarks,
		TownIDs:     req.TownIDs,
		Deadline:    req.Deadline,
		IsPublic:    req.IsPublic,
		IsPublished: req.IsPublished,
		Slug:        vacancy.DeriveSlug(req.Title, id),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, newVacancy); err != nil {
		return nil, errx.Wrap(err, "failed to create vacancy", errx.TypeInternal)
	}

	if newVacancy.IsVisible() {
		s.events.Publish(vacancy.CreatedEvent(newVacancy))
	}

	return newVacancy, nil
}

// GetVacancyByID retrieves a vacancy by ID
func (s *VacancyService) GetVacancyByID(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, vacancy.ErrVacancyNotFound().WithDetail("vacancy_id", id.String())
	}
	return v, nil
}

// GetVacancyBySlug retrieves a vacancy by slug together with its screening
// questions; this backs the public application form.
func (s *VacancyService) GetVacancyBySlug(ctx context.Context, slug kernel.Slug) (*vacancy.VacancyWithRequirementsResponse, error) {
	v, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, vacancy.ErrVacancyNotFound().WithDetail("slug", slug.String())
	}

	reqs, err := s.repo.ListRequirements(ctx, v.ID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list requirements", errx.TypeInternal)
	}

	return &vacancy.VacancyWithRequirementsResponse{
		Vacancy:      *v,
		Requirements: reqs,
	}, nil
}

// ListVacancies retrieves all vacancies with pagination
func (s *VacancyService) ListVacancies(ctx context.Context, pagination kernel.PaginationOptions) (*vacancy.PaginatedVacanciesResponse, error) {
	vacancies, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list vacancies", errx.TypeInternal)
	}
	return vacancies, nil
}

// ListOpenVacancies retrieves public vacancies whose deadline has not passed,
// newest first. This is the public landing query.
func (s *VacancyService) ListOpenVacancies(ctx context.Context, pagination kernel.PaginationOptions) (*vacancy.PaginatedVacanciesResponse, error) {
	vacancies, err := s.repo.ListOpen(ctx, time.Now(), pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list open vacancies", errx.TypeInternal)
	}
	return vacancies, nil
}

// UpdateVacancy updates an existing vacancy
func (s *VacancyService) UpdateVacancy(ctx context.Context, id kernel.VacancyID, req vacancy.UpdateVacancyRequest) (*vacancy.Vacancy, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, vacancy.ErrVacancyNotFound().WithDetail("vacancy_id", id.String())
	}

	if req.Deadline != nil {
		if !req.Deadline.After(time.Now()) {
			return nil, vacancy.ErrDeadlineInPast().
				WithDetail("field", "deadline").
				WithDetail("deadline", *req.Deadline)
		}
		v.Deadline = *req.Deadline
	}
	if req.IsPublic != nil {
		v.IsPublic = *req.IsPublic
	}

	var title kernel.VacancyTitle
	var description, remarks kernel.VacancyDescription
	var payGrade kernel.PayGrade
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Remarks != nil {
		remarks = *req.Remarks
	}
	if req.PayGrade != nil {
		payGrade = *req.PayGrade
	}
	v.UpdateDetails(title, description, remarks, payGrade)

	if err := s.repo.Update(ctx, id, v); err != nil {
		return nil, errx.Wrap(err, "failed to update vacancy", errx.TypeInternal)
	}

	return v, nil
}

// PublishVacancy marks a vacancy as published and, if it is also public,
// emits the VacancyCreated event.
func (s *VacancyService) PublishVacancy(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, vacancy.ErrVacancyNotFound().WithDetail("vacancy_id", id.String())
	}

	if err := v.Publish(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, v); err != nil {
		return nil, errx.Wrap(err, "failed to publish vacancy", errx.TypeInternal)
	}

	if v.IsVisible() {
		s.events.Publish(vacancy.CreatedEvent(v))
	}

	return v, nil
}

// UnpublishVacancy withdraws a vacancy from the public listing.
func (s *VacancyService) UnpublishVacancy(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, vacancy.ErrVacancyNotFound().WithDetail("vacancy_id", id.String())
	}

	v.Unpublish()

	if err := s.repo.Update(ctx, id, v); err != nil {
		return nil, errx.Wrap(err, "failed to unpublish vacancy", errx.TypeInternal)
	}

	return v, nil
}

// DeleteVacancy deletes a vacancy. Vacancies with applications are protected.
func (s *VacancyService) DeleteVacancy(ctx context.Context, id kernel.VacancyID) error {
	count, err := s.repo.CountApplications(ctx, id)
	if err != nil {
		return errx.Wrap(err, "failed to count applications", errx.TypeInternal)
	}
	if count > 0 {
		return vacancy.ErrVacancyHasApplications().
			WithDetail("vacancy_id", id.String()).
			WithDetail("applications", count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete vacancy", errx.TypeInternal)
	}
	return nil
}

// AddRequirement attaches a screening question to a vacancy.
func (s *VacancyService) AddRequirement(ctx context.Context, id kernel.VacancyID, req vacancy.AddRequirementRequest) (*vacancy.MinimumRequirement, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check vacancy existence", errx.TypeInternal)
	}
	if !exists {
		return nil, vacancy.ErrVacancyNotFound().WithDetail("vacancy_id", id.String())
	}

	if req.QuestionType != vacancy.QuestionTypeText && req.QuestionType != vacancy.QuestionTypeBoolean {
		return nil, vacancy.ErrInvalidRequest().
			WithDetail("field", "question_type").
			WithDetail("question_type", req.QuestionType)
	}

	requirement := &vacancy.MinimumRequirement{
		ID:           kernel.NewRequirementID(uuid.NewString()),
		VacancyID:    id,
		Title:        req.Title,
		QuestionType: req.QuestionType,
		IsRequired:   req.IsRequired,
	}

	if err := s.repo.CreateRequirement(ctx, requirement); err != nil {
		return nil, errx.Wrap(err, "failed to create requirement", errx.TypeInternal)
	}
	return requirement, nil
}

// RemoveRequirement removes a screening question.
func (s *VacancyService) RemoveRequirement(ctx context.Context, id kernel.RequirementID) error {
	if err := s.repo.DeleteRequirement(ctx, id); err != nil {
		return vacancy.ErrRequirementNotFound().WithDetail("requirement_id", id.String())
	}
	return nil
}
