package interviewsrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/application"
	"github.com/talentgate/portal/recruitment/interview"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// mockRepository implements interview.Repository with overridable functions
type mockRepository struct {
	CreateFunc             func(ctx context.Context, i *interview.Interview) error
	UpdateFunc             func(ctx context.Context, id kernel.InterviewID, i *interview.Interview) error
	GetByIDFunc            func(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error)
	GetByApplicationIDFunc func(ctx context.Context, applicationID kernel.ApplicationID) (*interview.Interview, error)
	ListFunc               func(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error)
	ListLocationsFunc      func(ctx context.Context) ([]interview.Location, error)
	GetLocationFunc        func(ctx context.Context, id kernel.LocationID) (*interview.Location, error)
}

func (m *mockRepository) Create(ctx context.Context, i *interview.Interview) error {
	return m.CreateFunc(ctx, i)
}
func (m *mockRepository) Update(ctx context.Context, id kernel.InterviewID, i *interview.Interview) error {
	return m.UpdateFunc(ctx, id, i)
}
func (m *mockRepository) GetByID(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockRepository) GetByApplicationID(ctx context.Context, applicationID kernel.ApplicationID) (*interview.Interview, error) {
	return m.GetByApplicationIDFunc(ctx, applicationID)
}
func (m *mockRepository) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	return m.ListFunc(ctx, p)
}
func (m *mockRepository) ListLocations(ctx context.Context) ([]interview.Location, error) {
	return m.ListLocationsFunc(ctx)
}
func (m *mockRepository) GetLocation(ctx context.Context, id kernel.LocationID) (*interview.Location, error) {
	return m.GetLocationFunc(ctx, id)
}

// mockApplicationRepository covers the single lookup the interview service
// performs
type mockApplicationRepository struct {
	GetByIDFunc func(ctx context.Context, id kernel.ApplicationID) (*application.Application, error)
}

func (m *mockApplicationRepository) Create(ctx context.Context, a *application.Application, answers []application.RequirementAnswer) error {
	return nil
}
func (m *mockApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, a *application.Application) error {
	return nil
}
func (m *mockApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockApplicationRepository) List(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return nil, nil
}
func (m *mockApplicationRepository) ListByVacancyID(ctx context.Context, vacancyID kernel.VacancyID, p kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	return nil, nil
}
func (m *mockApplicationRepository) ListAnswers(ctx context.Context, id kernel.ApplicationID) ([]application.RequirementAnswer, error) {
	return nil, nil
}
func (m *mockApplicationRepository) ExistsByVacancyAndEmail(ctx context.Context, vacancyID kernel.VacancyID, email kernel.Email) (bool, error) {
	return false, nil
}
func (m *mockApplicationRepository) CountByVacancyID(ctx context.Context, vacancyID kernel.VacancyID) (int64, error) {
	return 0, nil
}

// mockVacancyRepository covers the single lookup the interview service
// performs
type mockVacancyRepository struct {
	GetByIDFunc func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error)
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
	return nil, nil
}
func (m *mockVacancyRepository) DeleteRequirement(ctx context.Context, id kernel.RequirementID) error {
	return nil
}

type capturePublisher struct {
	events []notification.Event
}

func (p *capturePublisher) Publish(e notification.Event) {
	p.events = append(p.events, e)
}

func TestScheduleForApplication(t *testing.T) {
	var created *interview.Interview
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, i *interview.Interview) error {
			created = i
			return nil
		},
	}
	svc := NewInterviewService(repo, &mockApplicationRepository{}, &mockVacancyRepository{}, notification.NopPublisher{})

	i, err := svc.ScheduleForApplication(context.Background(), kernel.ApplicationID("a1"))

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, interview.InterviewStatusScheduled, i.Status)
	assert.Equal(t, kernel.ApplicationID("a1"), i.ApplicationID)

	// Scheduled two days out, never on a weekend
	assert.NotEqual(t, time.Saturday, i.ScheduleDatetime.Weekday())
	assert.NotEqual(t, time.Sunday, i.ScheduleDatetime.Weekday())
	assert.False(t, i.ScheduleDatetime.Before(time.Now().Add(47*time.Hour)))

	require.NotNil(t, i.ResponseDeadline)
	assert.Equal(t, i.ScheduleDatetime.Add(-24*time.Hour), *i.ResponseDeadline)
}

func TestRescheduleInterviewEmitsEvent(t *testing.T) {
	stored := &interview.Interview{
		ID:               kernel.InterviewID("i1"),
		ApplicationID:    kernel.ApplicationID("a1"),
		Status:           interview.InterviewStatusScheduled,
		ScheduleDatetime: time.Now().Add(48 * time.Hour),
	}
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, id kernel.InterviewID, i *interview.Interview) error {
			return nil
		},
	}
	apps := &mockApplicationRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
			return &application.Application{
				ID:        id,
				VacancyID: kernel.VacancyID("v1"),
				FirstName: "Thabo",
				LastName:  "Nkosi",
				Email:     kernel.Email("thabo@example.com"),
			}, nil
		},
	}
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return &vacancy.Vacancy{
				ID:       id,
				Title:    "Field Officer",
				Deadline: time.Now().Add(-24 * time.Hour),
			}, nil
		},
	}
	events := &capturePublisher{}
	svc := NewInterviewService(repo, apps, vacancies, events)

	// Next weekday at least two days out
	newDT := nextWeekdayAfter(time.Now().AddDate(0, 0, 3))
	i, err := svc.RescheduleInterview(context.Background(), kernel.InterviewID("i1"), interview.RescheduleInterviewRequest{
		ScheduleDatetime: newDT,
	})

	require.NoError(t, err)
	assert.Equal(t, newDT, i.ScheduleDatetime)

	require.Len(t, events.events, 1)
	evt, ok := events.events[0].(notification.InterviewScheduled)
	require.True(t, ok)
	assert.Equal(t, kernel.InterviewID("i1"), evt.InterviewID)
	assert.Equal(t, newDT, evt.ScheduleDatetime)
}

func TestRescheduleInterviewRejectsWeekend(t *testing.T) {
	stored := &interview.Interview{
		ID:            kernel.InterviewID("i1"),
		ApplicationID: kernel.ApplicationID("a1"),
		Status:        interview.InterviewStatusScheduled,
	}
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
			return stored, nil
		},
	}
	apps := &mockApplicationRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
			return &application.Application{ID: id, VacancyID: kernel.VacancyID("v1")}, nil
		},
	}
	vacancies := &mockVacancyRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.VacancyID) (*vacancy.Vacancy, error) {
			return &vacancy.Vacancy{ID: id, Deadline: time.Now().Add(-24 * time.Hour)}, nil
		},
	}
	svc := NewInterviewService(repo, apps, vacancies, notification.NopPublisher{})

	saturday := nextWeekday(time.Now().AddDate(0, 0, 7), time.Saturday)
	_, err := svc.RescheduleInterview(context.Background(), kernel.InterviewID("i1"), interview.RescheduleInterviewRequest{
		ScheduleDatetime: saturday,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, interview.ErrScheduleOnWeekend())
}

func TestRespondToInterviewOnce(t *testing.T) {
	responded := time.Now().Add(-time.Hour)
	stored := &interview.Interview{
		ID:           kernel.InterviewID("i1"),
		Status:       interview.InterviewStatusScheduled,
		ResponseDate: &responded,
	}
	repo := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
			return stored, nil
		},
	}
	svc := NewInterviewService(repo, &mockApplicationRepository{}, &mockVacancyRepository{}, notification.NopPublisher{})

	_, err := svc.RespondToInterview(context.Background(), kernel.InterviewID("i1"), interview.RespondRequest{
		ResponseText: "I will attend",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, interview.ErrAlreadyResponded())
}

// nextWeekdayAfter returns the first Monday-Friday date at or after t.
func nextWeekdayAfter(t time.Time) time.Time {
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// nextWeekday returns the first occurrence of day at or after t.
func nextWeekday(t time.Time, day time.Weekday) time.Time {
	for t.Weekday() != day {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
