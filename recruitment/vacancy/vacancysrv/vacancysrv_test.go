package vacancysrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/errx"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// mockRepository implements vacancy.Repository with overridable functions
type mockRepository struct {
	CreateFunc            func(ctx context.Context, v *vacancy.Vacancy) error
	UpdateFunc            func(ctx context.Context, id kernel.VacancyID, v *vacancy.Vacancy) error
	GetByIDFunc           func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error)
	GetBySlugFunc         func(ctx context.Context, slug kernel.Slug) (*vacancy.Vacancy, error)
	DeleteFunc            func(ctx context.Context, id kernel.VacancyID) error
	ListFunc              func(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[vacancy.Vacancy], error)
	ListOpenFunc          func(ctx context.Context, now time.Time, p kernel.PaginationOptions) (*kernel.Paginated[vacancy.Vacancy], error)
	CountApplicationsFunc func(ctx context.Context, id kernel.VacancyID) (int64, error)
	ExistsFunc            func(ctx context.Context, id kernel.VacancyID) (bool, error)
	CreateRequirementFunc func(ctx context.Context, r *vacancy.MinimumRequirement) error
	ListRequirementsFunc  func(ctx context.Context, id kernel.VacancyID) ([]vacancy.MinimumRequirement, error)
	DeleteRequirementFunc func(ctx context.Context, id kernel.RequirementID) error
}

func (m *mockRepository) Create(ctx context.Context, v *vacancy.Vacancy) error {
	return m.CreateFunc(ctx, v)
}
func (m *mockRepository) Update(ctx context.Context, id kernel.VacancyID, v *vacancy.Vacancy) error {
	return m.UpdateFunc(ctx, id, v)
}
func (m *mockRepository) GetByID(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockRepository) GetBySlug(ctx context.Context, slug kernel.Slug) (*vacancy.Vacancy, error) {
	return m.GetBySlugFunc(ctx, slug)
}
func (m *mockRepository) Delete(ctx context.Context, id kernel.VacancyID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockRepository) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[vacancy.Vacancy], error) {
	return m.ListFunc(ctx, p)
}
func (m *mockRepository) ListOpen(ctx context.Context, now time.Time, p kernel.PaginationOptions) (*kernel.Paginated[vacancy.Vacancy], error) {
	return m.ListOpenFunc(ctx, now, p)
}
func (m *mockRepository) CountApplications(ctx context.Context, id kernel.VacancyID) (int64, error) {
	return m.CountApplicationsFunc(ctx, id)
}
func (m *mockRepository) Exists(ctx context.Context, id kernel.VacancyID) (bool, error) {
	return m.ExistsFunc(ctx, id)
}
func (m *mockRepository) CreateRequirement(ctx context.Context, r *vacancy.MinimumRequirement) error {
	return m.CreateRequirementFunc(ctx, r)
}
func (m *mockRepository) ListRequirements(ctx context.Context, id kernel.VacancyID) ([]vacancy.MinimumRequirement, error) {
	return m.ListRequirementsFunc(ctx, id)
}
func (m *mockRepository) DeleteRequirement(ctx context.Context, id kernel.RequirementID) error {
	return m.DeleteRequirementFunc(ctx, id)
}

// capturePublisher records published events
type capturePublisher struct {
	events []notification.Event
}

func (p *capturePublisher) Publish(e notification.Event) {
	p.events = append(p.events, e)
}

func TestCreateVacancyEmitsEventWhenVisible(t *testing.T) {
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, v *vacancy.Vacancy) error { return nil },
	}
	events := &capturePublisher{}
	svc := NewVacancyService(repo, events)

	v, err := svc.CreateVacancy(context.Background(), vacancy.CreateVacancyRequest{
		Title:       "Field Officer",
		Type:        vacancy.VacancyTypePermanent,
		Description: "desc",
		Deadline:    time.Now().Add(14 * 24 * time.Hour),
		IsPublic:    true,
		IsPublished: true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.NotEmpty(t, v.Slug)

	require.Len(t, events.events, 1)
	created, ok := events.events[0].(notification.VacancyCreated)
	require.True(t, ok)
	assert.Equal(t, v.ID, created.VacancyID)
	assert.Equal(t, v.Slug, created.VacancySlug)
	assert.Equal(t, v.Title, created.VacancyTitle)
}

func TestCreateVacancyDraftEmitsNothing(t *testing.T) {
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, v *vacancy.Vacancy) error { return nil },
	}
	events := &capturePublisher{}
	svc := NewVacancyService(repo, events)

	_, err := svc.CreateVacancy(context.Background(), vacancy.CreateVacancyRequest{
		Title:       "Field Officer",
		Type:        vacancy.VacancyTypePermanent,
		Description: "desc",
		Deadline:    time.Now().Add(14 * 24 * time.Hour),
		IsPublic:    true,
		IsPublished: false,
	})

	require.NoError(t, err)
	assert.Empty(t, events.events)
}

func TestCreateVacancyRejectsPastDeadline(t *testing.T) {
	svc := NewVacancyService(&mockRepository{}, notification.NopPublisher{})

	_, err := svc.CreateVacancy(context.Background(), vacancy.CreateVacancyRequest{
		Title:       "Field Officer",
		Type:        vacancy.VacancyTypePermanent,
		Description: "desc",
		Deadline:    time.Now().Add(-time.Hour),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, vacancy.ErrDeadlineInPast())
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestCreateVacancyRejectsUnknownType(t *testing.T) {
	svc := NewVacancyService(&mockRepository{}, notification.NopPublisher{})

	_, err := svc.CreateVacancy(context.Background(), vacancy.CreateVacancyRequest{
		Title:       "Field Officer",
		Type:        "freelance",
		Description: "desc",
		Deadline:    time.Now().Add(time.Hour),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, vacancy.ErrInvalidVacancyType())
}

func TestDeleteVacancyProtectedWhileApplicationsExist(t *testing.T) {
	repo := &mockRepository{
		CountApplicationsFunc: func(ctx context.Context, id kernel.VacancyID) (int64, error) {
			return 3, nil
		},
	}
	svc := NewVacancyService(repo, notification.NopPublisher{})

	err := svc.DeleteVacancy(context.Background(), kernel.VacancyID("v1"))

	require.Error(t, err)
	assert.ErrorIs(t, err, vacancy.ErrVacancyHasApplications())
}

func TestDeleteVacancyWithoutApplications(t *testing.T) {
	deleted := false
	repo := &mockRepository{
		CountApplicationsFunc: func(ctx context.Context, id kernel.VacancyID) (int64, error) {
			return 0, nil
		},
		DeleteFunc: func(ctx context.Context, id kernel.VacancyID) error {
			deleted = true
			return nil
		},
	}
	svc := NewVacancyService(repo, notification.NopPublisher{})

	require.NoError(t, svc.DeleteVacancy(context.Background(), kernel.VacancyID("v1")))
	assert.True(t, deleted)
}

func TestPublishVacancyEmitsEventForPublicVacancy(t *testing.T) {
	stored := &vacancy.Vacancy{
		ID:       kernel.VacancyID("v1"),
		Title:    "Clerk",
		Type:     vacancy.VacancyTypeContract,
		Slug:     "clerk-v1",
		IsPublic: true,
		Deadline: time.Now().Add(48 * time.Hour),
	}
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, id kernel.VacancyID, v *vacancy.Vacancy) error {
			return nil
		},
	}
	events := &capturePublisher{}
	svc := NewVacancyService(repo, events)

	v, err := svc.PublishVacancy(context.Background(), kernel.VacancyID("v1"))

	require.NoError(t, err)
	assert.True(t, v.IsPublished)
	require.Len(t, events.events, 1)
	assert.Equal(t, notification.EventVacancyCreated, events.events[0].Kind())
}

func TestUnpublishVacancyWithdrawsFromListing(t *testing.T) {
	stored := &vacancy.Vacancy{
		ID:          kernel.VacancyID("v1"),
		Title:       "Clerk",
		Type:        vacancy.VacancyTypeContract,
		Slug:        "clerk-v1",
		IsPublic:    true,
		IsPublished: true,
		Deadline:    time.Now().Add(48 * time.Hour),
	}
	var updated *vacancy.Vacancy
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, id kernel.VacancyID, v *vacancy.Vacancy) error {
			updated = v
			return nil
		},
	}
	events := &capturePublisher{}
	svc := NewVacancyService(repo, events)

	v, err := svc.UnpublishVacancy(context.Background(), kernel.VacancyID("v1"))

	require.NoError(t, err)
	assert.False(t, v.IsPublished)
	assert.False(t, v.IsVisible())
	require.NotNil(t, updated)
	assert.False(t, updated.IsPublished)
	assert.Empty(t, events.events)
}

func TestUpdateVacancyRejectsPastDeadline(t *testing.T) {
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return &vacancy.Vacancy{ID: id}, nil
		},
	}
	svc := NewVacancyService(repo, notification.NopPublisher{})

	past := time.Now().Add(-time.Hour)
	_, err := svc.UpdateVacancy(context.Background(), kernel.VacancyID("v1"), vacancy.UpdateVacancyRequest{
		Deadline: &past,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, vacancy.ErrDeadlineInPast())
}
