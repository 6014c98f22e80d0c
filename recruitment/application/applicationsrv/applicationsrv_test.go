package applicationsrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/fsx/fsxmem"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/application"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// mockRepository implements application.Repository with overridable functions
type mockRepository struct {
	CreateFunc                  func(ctx context.Context, a *application.Application, answers []application.RequirementAnswer) error
	UpdateFunc                  func(ctx context.Context, id kernel.ApplicationID, a *application.Application) error
	GetByIDFunc                 func(ctx context.Context, id kernel.ApplicationID) (*application.Application, error)
	ListFunc                    func(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[application.Application], error)
	ListByVacancyIDFunc         func(ctx context.Context, vacancyID kernel.VacancyID, p kernel.PaginationOptions) (*kernel.Paginated[application.Application], error)
	ListAnswersFunc             func(ctx context.Context, id kernel.ApplicationID) ([]application.RequirementAnswer, error)
	ExistsByVacancyAndEmailFunc func(ctx context.Context, vacancyID kernel.VacancyID, email kernel.Email) (bool, error)
	CountByVacancyIDFunc        func(ctx context.Context, vacancyID kernel.VacancyID) (int64, error)
}

func (m *mockRepository) Create(ctx context.Context, a *application.Application, answers []application.RequirementAnswer) error {
	return m.CreateFunc(ctx, a, answers)
}
func (m *mockRepository) Update(ctx context.Context, id kernel.ApplicationID, a *application.Application) error {
	return m.UpdateFunc(ctx, id, a)
}
func (m *mockRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockRepository) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return m.ListFunc(ctx, p)
}
func (m *mockRepository) ListByVacancyID(ctx context.Context, vacancyID kernel.VacancyID, p kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return m.ListByVacancyIDFunc(ctx, vacancyID, p)
}
func (m *mockRepository) ListAnswers(ctx context.Context, id kernel.ApplicationID) ([]application.RequirementAnswer, error) {
	return m.ListAnswersFunc(ctx, id)
}
func (m *mockRepository) ExistsByVacancyAndEmail(ctx context.Context, vacancyID kernel.VacancyID, email kernel.Email) (bool, error) {
	return m.ExistsByVacancyAndEmailFunc(ctx, vacancyID, email)
}
func (m *mockRepository) CountByVacancyID(ctx context.Context, vacancyID kernel.VacancyID) (int64, error) {
	return m.CountByVacancyIDFunc(ctx, vacancyID)
}

// mockVacancyRepository implements vacancy.Repository for the methods the
// application service touches
type mockVacancyRepository struct {
	GetByIDFunc          func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error)
	ListRequirementsFunc func(ctx context.Context, id kernel.VacancyID) ([]vacancy.MinimumRequirement, error)
}

func (m *mockVacancyRepository) Create(ctx context.Context, v *vacancy.Vacancy) error { return nil }
func (m *mockVacancyRepository) Update(ctx context.Context, id kernel.VacancyID, v *vacancy.Vacancy) error {
	return nil
}
func (m *mockVacancyRepository) GetByID(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockVacancyRepository) GetBySlug(ctx context.Context, slug kernel.Slug) (*vacancy.Vacancy, error) {
	return nil, nil
}
func (m *mockVacancyRepository) Delete(ctx context.Context, id kernel.VacancyID) error { return nil }
func (m *mockVacancyRepository) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[vacancy.Vacancy], error) {
	return nil, nil
}
func (m *mockVacancyRepository) ListOpen(ctx context.Context, now time.Time, p kernel.PaginationOptions) (*kernel.Paginated[vacancy.Vacancy], error) {
	return nil, nil
}
func (m *mockVacancyRepository) CountApplications(ctx context.Context, id kernel.VacancyID) (int64, error) {
	return 0, nil
}
func (m *mockVacancyRepository) Exists(ctx context.Context, id kernel.VacancyID) (bool, error) {
	return true, nil
}
func (m *mockVacancyRepository) CreateRequirement(ctx context.Context, r *vacancy.MinimumRequirement) error {
	return nil
}
func (m *mockVacancyRepository) ListRequirements(ctx context.Context, id kernel.VacancyID) ([]vacancy.MinimumRequirement, error) {
	if m.ListRequirementsFunc != nil {
		return m.ListRequirementsFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockVacancyRepository) DeleteRequirement(ctx context.Context, id kernel.RequirementID) error {
	return nil
}

// mockScheduler implements InterviewScheduler
type mockScheduler struct {
	ScheduleFunc func(ctx context.Context, applicationID kernel.ApplicationID) (*ScheduledInterview, error)
	calls        int
}

func (m *mockScheduler) ScheduleForApplication(ctx context.Context, applicationID kernel.ApplicationID) (*ScheduledInterview, error) {
	m.calls++
	return m.ScheduleFunc(ctx, applicationID)
}

type capturePublisher struct {
	events []notification.Event
}

func (p *capturePublisher) Publish(e notification.Event) {
	p.events = append(p.events, e)
}

func openVacancy() *vacancy.Vacancy {
	return &vacancy.Vacancy{
		ID:       kernel.VacancyID("v1"),
		Title:    "Field Officer",
		Deadline: time.Now().Add(7 * 24 * time.Hour),
	}
}

func submitRequest() application.SubmitApplicationRequest {
	return application.SubmitApplicationRequest{
		VacancyID:      kernel.VacancyID("v1"),
		FirstName:      "Thabo",
		LastName:       "Nkosi",
		Email:          kernel.Email("thabo@example.com"),
		PrimaryContact: kernel.PhoneNumber("+26771234567"),
		DateOfBirth:    time.Now().AddDate(-25, 0, 0),
		CVFileName:     "cv.pdf",
		CVFileSize:     2048,
		CVData:         []byte("%PDF-1.4"),
	}
}

func TestSubmitApplication(t *testing.T) {
	files := fsxmem.New()
	repo := &mockRepository{
		ExistsByVacancyAndEmailFunc: func(ctx context.Context, vacancyID kernel.VacancyID, email kernel.Email) (bool, error) {
			return false, nil
		},
		CreateFunc: func(ctx context.Context, a *application.Application, answers []application.RequirementAnswer) error {
			return nil
		},
	}
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return openVacancy(), nil
		},
	}
	events := &capturePublisher{}
	svc := NewApplicationService(repo, vacancies, files, &mockScheduler{}, events)

	app, err := svc.SubmitApplication(context.Background(), submitRequest())

	require.NoError(t, err)
	assert.Equal(t, application.ApplicationStatusSubmitted, app.Status)
	assert.NotEmpty(t, app.CVPath)
	assert.Equal(t, 1, files.Len())

	require.Len(t, events.events, 1)
	submitted, ok := events.events[0].(notification.ApplicationSubmitted)
	require.True(t, ok)
	assert.Equal(t, "Thabo Nkosi", submitted.ApplicantName)
}

func TestSubmitApplicationDeadlinePassed(t *testing.T) {
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			v := openVacancy()
			v.Deadline = time.Now().Add(-time.Hour)
			return v, nil
		},
	}
	svc := NewApplicationService(&mockRepository{}, vacancies, fsxmem.New(), &mockScheduler{}, notification.NopPublisher{})

	_, err := svc.SubmitApplication(context.Background(), submitRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, application.ErrDeadlinePassed())
}

func TestSubmitApplicationUnderage(t *testing.T) {
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return openVacancy(), nil
		},
	}
	svc := NewApplicationService(&mockRepository{}, vacancies, fsxmem.New(), &mockScheduler{}, notification.NopPublisher{})

	req := submitRequest()
	req.DateOfBirth = time.Now().AddDate(-17, 0, 0)
	_, err := svc.SubmitApplication(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, application.ErrApplicantTooYoung())
}

func TestSubmitApplicationDuplicate(t *testing.T) {
	repo := &mockRepository{
		ExistsByVacancyAndEmailFunc: func(ctx context.Context, vacancyID kernel.VacancyID, email kernel.Email) (bool, error) {
			return true, nil
		},
	}
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return openVacancy(), nil
		},
	}
	svc := NewApplicationService(repo, vacancies, fsxmem.New(), &mockScheduler{}, notification.NopPublisher{})

	_, err := svc.SubmitApplication(context.Background(), submitRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, application.ErrApplicationAlreadyExists())
}

func TestSubmitApplicationRejectsWrongFileType(t *testing.T) {
	repo := &mockRepository{
		ExistsByVacancyAndEmailFunc: func(ctx context.Context, vacancyID kernel.VacancyID, email kernel.Email) (bool, error) {
			return false, nil
		},
	}
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return openVacancy(), nil
		},
	}
	files := fsxmem.New()
	svc := NewApplicationService(repo, vacancies, files, &mockScheduler{}, notification.NopPublisher{})

	req := submitRequest()
	req.CVFileName = "cv.exe"
	_, err := svc.SubmitApplication(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, 0, files.Len())
}

func TestSubmitApplicationCleansUpCVOnInsertFailure(t *testing.T) {
	files := fsxmem.New()
	repo := &mockRepository{
		ExistsByVacancyAndEmailFunc: func(ctx context.Context, vacancyID kernel.VacancyID, email kernel.Email) (bool, error) {
			return false, nil
		},
		CreateFunc: func(ctx context.Context, a *application.Application, answers []application.RequirementAnswer) error {
			return application.ErrApplicationAlreadyExists()
		},
	}
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return openVacancy(), nil
		},
	}
	svc := NewApplicationService(repo, vacancies, files, &mockScheduler{}, notification.NopPublisher{})

	_, err := svc.SubmitApplication(context.Background(), submitRequest())

	require.Error(t, err)
	assert.Equal(t, 0, files.Len())
}

func TestSubmitApplicationMissingRequiredAnswer(t *testing.T) {
	repo := &mockRepository{
		ExistsByVacancyAndEmailFunc: func(ctx context.Context, vacancyID kernel.VacancyID, email kernel.Email) (bool, error) {
			return false, nil
		},
	}
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return openVacancy(), nil
		},
		ListRequirementsFunc: func(ctx context.Context, id kernel.VacancyID) ([]vacancy.MinimumRequirement, error) {
			return []vacancy.MinimumRequirement{
				{ID: kernel.RequirementID("r1"), Title: "Driver's licence", IsRequired: true},
			}, nil
		},
	}
	svc := NewApplicationService(repo, vacancies, fsxmem.New(), &mockScheduler{}, notification.NopPublisher{})

	_, err := svc.SubmitApplication(context.Background(), submitRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, application.ErrMissingRequiredAnswer())
}

func TestReviewAcceptSchedulesInterview(t *testing.T) {
	stored := &application.Application{
		ID:             kernel.ApplicationID("a1"),
		VacancyID:      kernel.VacancyID("v1"),
		Status:         application.ApplicationStatusSubmitted,
		FirstName:      "Thabo",
		LastName:       "Nkosi",
		Email:          kernel.Email("thabo@example.com"),
		PrimaryContact: kernel.PhoneNumber("+26771234567"),
	}
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, id kernel.ApplicationID, a *application.Application) error {
			return nil
		},
	}
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return openVacancy(), nil
		},
	}
	scheduleTime := time.Now().Add(48 * time.Hour)
	scheduler := &mockScheduler{
		ScheduleFunc: func(ctx context.Context, applicationID kernel.ApplicationID) (*ScheduledInterview, error) {
			return &ScheduledInterview{ID: kernel.InterviewID("i1"), ScheduleDatetime: scheduleTime}, nil
		},
	}
	events := &capturePublisher{}
	svc := NewApplicationService(repo, vacancies, fsxmem.New(), scheduler, events)

	app, err := svc.ReviewApplication(context.Background(), kernel.ApplicationID("a1"), kernel.UserID("u1"), application.ReviewApplicationRequest{
		Status:   application.ApplicationStatusAccepted,
		Comments: "good fit",
	})

	require.NoError(t, err)
	assert.Equal(t, application.ApplicationStatusAccepted, app.Status)
	assert.Equal(t, 1, scheduler.calls)

	require.Len(t, events.events, 2)
	assert.Equal(t, notification.EventApplicationStatusChanged, events.events[0].Kind())
	scheduledEvt, ok := events.events[1].(notification.InterviewScheduled)
	require.True(t, ok)
	assert.Equal(t, kernel.InterviewID("i1"), scheduledEvt.InterviewID)
	assert.Equal(t, scheduleTime, scheduledEvt.ScheduleDatetime)
}

func TestReviewRejectDoesNotScheduleInterview(t *testing.T) {
	stored := &application.Application{
		ID:        kernel.ApplicationID("a1"),
		VacancyID: kernel.VacancyID("v1"),
		Status:    application.ApplicationStatusSubmitted,
	}
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, id kernel.ApplicationID, a *application.Application) error {
			return nil
		},
	}
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return openVacancy(), nil
		},
	}
	scheduler := &mockScheduler{}
	events := &capturePublisher{}
	svc := NewApplicationService(repo, vacancies, fsxmem.New(), scheduler, events)

	app, err := svc.ReviewApplication(context.Background(), kernel.ApplicationID("a1"), kernel.UserID("u1"), application.ReviewApplicationRequest{
		Status: application.ApplicationStatusRejected,
	})

	require.NoError(t, err)
	assert.Equal(t, application.ApplicationStatusRejected, app.Status)
	assert.Equal(t, 0, scheduler.calls)
	require.Len(t, events.events, 1)
	assert.Equal(t, notification.EventApplicationStatusChanged, events.events[0].Kind())
}

func TestReviewAcceptSurvivesSchedulingFailure(t *testing.T) {
	stored := &application.Application{
		ID:        kernel.ApplicationID("a1"),
		VacancyID: kernel.VacancyID("v1"),
		Status:    application.ApplicationStatusSubmitted,
		FirstName: "Thabo",
		LastName:  "Nkosi",
		Email:     kernel.Email("thabo@example.com"),
	}
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, id kernel.ApplicationID, a *application.Application) error {
			return nil
		},
	}
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return openVacancy(), nil
		},
	}
	scheduler := &mockScheduler{
		ScheduleFunc: func(ctx context.Context, applicationID kernel.ApplicationID) (*ScheduledInterview, error) {
			return nil, assert.AnError
		},
	}
	events := &capturePublisher{}
	svc := NewApplicationService(repo, vacancies, fsxmem.New(), scheduler, events)

	app, err := svc.ReviewApplication(context.Background(), kernel.ApplicationID("a1"), kernel.UserID("u1"), application.ReviewApplicationRequest{
		Status: application.ApplicationStatusAccepted,
	})

	require.NoError(t, err)
	assert.Equal(t, application.ApplicationStatusAccepted, app.Status)
	require.Len(t, events.events, 1)
	assert.Equal(t, notification.EventApplicationStatusChanged, events.events[0].Kind())
}

func TestReviewTwiceFails(t *testing.T) {
	stored := &application.Application{
		ID:     kernel.ApplicationID("a1"),
		Status: application.ApplicationStatusRejected,
	}
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
			return stored, nil
		},
	}
	svc := NewApplicationService(repo, &mockVacancyRepository{}, fsxmem.New(), &mockScheduler{}, notification.NopPublisher{})

	_, err := svc.ReviewApplication(context.Background(), kernel.ApplicationID("a1"), kernel.UserID("u1"), application.ReviewApplicationRequest{
		Status: application.ApplicationStatusAccepted,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, application.ErrApplicationAlreadyReviewed())
}
