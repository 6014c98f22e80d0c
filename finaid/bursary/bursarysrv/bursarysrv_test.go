package bursarysrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgate/portal/finaid/bursary"
	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/errx"
	"github.com/talentgate/portal/pkg/fsx/fsxmem"
	"github.com/talentgate/portal/pkg/kernel"
)

// mockRepository implements bursary.Repository with overridable functions
type mockRepository struct {
	CreateAdvertFunc               func(ctx context.Context, a *bursary.Advert) error
	UpdateAdvertFunc               func(ctx context.Context, id kernel.BursaryID, a *bursary.Advert) error
	GetAdvertByIDFunc              func(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error)
	GetAdvertByYearFunc            func(ctx context.Context, year string) (*bursary.Advert, error)
	DeleteAdvertFunc               func(ctx context.Context, id kernel.BursaryID) error
	ListAdvertsFunc                func(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[bursary.Advert], error)
	ListOpenAdvertsFunc            func(ctx context.Context, now time.Time) ([]bursary.Advert, error)
	CountApplicationsFunc          func(ctx context.Context, id kernel.BursaryID) (int64, error)
	CreateApplicationFunc          func(ctx context.Context, a *bursary.Application) error
	UpdateApplicationFunc          func(ctx context.Context, id kernel.BursaryApplicationID, a *bursary.Application) error
	GetApplicationByIDFunc         func(ctx context.Context, id kernel.BursaryApplicationID) (*bursary.Application, error)
	ListApplicationsFunc           func(ctx context.Context, bursaryID kernel.BursaryID, p kernel.PaginationOptions) (*kernel.Paginated[bursary.Application], error)
	ExistsByBursaryAndIDNumberFunc func(ctx context.Context, bursaryID kernel.BursaryID, idNumber string) (bool, error)
}

func (m *mockRepository) CreateAdvert(ctx context.Context, a *bursary.Advert) error {
	return m.CreateAdvertFunc(ctx, a)
}
func (m *mockRepository) UpdateAdvert(ctx context.Context, id kernel.BursaryID, a *bursary.Advert) error {
	return m.UpdateAdvertFunc(ctx, id, a)
}
func (m *mockRepository) GetAdvertByID(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
	return m.GetAdvertByIDFunc(ctx, id)
}
func (m *mockRepository) GetAdvertByYear(ctx context.Context, year string) (*bursary.Advert, error) {
	return m.GetAdvertByYearFunc(ctx, year)
}
func (m *mockRepository) DeleteAdvert(ctx context.Context, id kernel.BursaryID) error {
	return m.DeleteAdvertFunc(ctx, id)
}
func (m *mockRepository) ListAdverts(ctx context.Context, p kernel.PaginationOptions) (*kernel.Paginated[bursary.Advert], error) {
	return m.ListAdvertsFunc(ctx, p)
}
func (m *mockRepository) ListOpenAdverts(ctx context.Context, now time.Time) ([]bursary.Advert, error) {
	return m.ListOpenAdvertsFunc(ctx, now)
}
func (m *mockRepository) CountApplications(ctx context.Context, id kernel.BursaryID) (int64, error) {
	return m.CountApplicationsFunc(ctx, id)
}
func (m *mockRepository) CreateApplication(ctx context.Context, a *bursary.Application) error {
	return m.CreateApplicationFunc(ctx, a)
}
func (m *mockRepository) UpdateApplication(ctx context.Context, id kernel.BursaryApplicationID, a *bursary.Application) error {
	return m.UpdateApplicationFunc(ctx, id, a)
}
func (m *mockRepository) GetApplicationByID(ctx context.Context, id kernel.BursaryApplicationID) (*bursary.Application, error) {
	return m.GetApplicationByIDFunc(ctx, id)
}
func (m *mockRepository) ListApplications(ctx context.Context, bursaryID kernel.BursaryID, p kernel.PaginationOptions) (*kernel.Paginated[bursary.Application], error) {
	return m.ListApplicationsFunc(ctx, bursaryID, p)
}
func (m *mockRepository) ExistsByBursaryAndIDNumber(ctx context.Context, bursaryID kernel.BursaryID, idNumber string) (bool, error) {
	return m.ExistsByBursaryAndIDNumberFunc(ctx, bursaryID, idNumber)
}

type capturePublisher struct {
	events []notification.Event
}

func (p *capturePublisher) Publish(e notification.Event) {
	p.events = append(p.events, e)
}

func openAdvert() *bursary.Advert {
	return &bursary.Advert{
		ID:        kernel.BursaryID("b1"),
		Year:      "2027",
		Deadline:  time.Now().AddDate(0, 2, 0),
		IsVisible: true,
	}
}

func submitRequest() bursary.SubmitApplicationRequest {
	return bursary.SubmitApplicationRequest{
		BursaryID:         kernel.BursaryID("b1"),
		FirstName:         "Naledi",
		LastName:          "Mokoena",
		IDNumber:          "0806155800087",
		DateOfBirth:       time.Now().AddDate(-17, 0, 0),
		Email:             kernel.Email("naledi@example.com"),
		PrimaryContact:    kernel.PhoneNumber("+27821234567"),
		MotivationLetter:  "I would like to study engineering.",
		DocumentsFileName: "documents.pdf",
		DocumentsFileSize: 4096,
		DocumentsData:     []byte("%PDF-1.7 pack"),
	}
}

func TestCreateAdvertStoresPDF(t *testing.T) {
	files := fsxmem.New()
	var created *bursary.Advert
	repo := &mockRepository{
		GetAdvertByYearFunc: func(ctx context.Context, year string) (*bursary.Advert, error) {
			return nil, bursary.ErrAdvertNotFound()
		},
		CreateAdvertFunc: func(ctx context.Context, a *bursary.Advert) error {
			created = a
			return nil
		},
	}
	service := NewBursaryService(repo, files, &capturePublisher{})

	advert, err := service.CreateAdvert(context.Background(), bursary.CreateAdvertRequest{
		Year:           "2027",
		Description:    "Engineering bursaries",
		Deadline:       time.Now().AddDate(0, 3, 0),
		IsVisible:      true,
		AdvertFileName: "advert.pdf",
		AdvertFileSize: 2048,
		AdvertData:     []byte("%PDF-1.7 advert"),
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "2027", advert.Year)
	assert.NotEmpty(t, advert.ID)
	assert.Equal(t, 1, files.Len())
}

func TestCreateAdvertDuplicateYear(t *testing.T) {
	repo := &mockRepository{
		GetAdvertByYearFunc: func(ctx context.Context, year string) (*bursary.Advert, error) {
			return openAdvert(), nil
		},
	}
	service := NewBursaryService(repo, fsxmem.New(), &capturePublisher{})

	_, err := service.CreateAdvert(context.Background(), bursary.CreateAdvertRequest{
		Year:           "2027",
		Deadline:       time.Now().AddDate(0, 3, 0),
		AdvertFileName: "advert.pdf",
		AdvertFileSize: 2048,
		AdvertData:     []byte("%PDF-1.7"),
	})
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeConflict))
}

func TestCreateAdvertRejectsNonPDF(t *testing.T) {
	files := fsxmem.New()
	repo := &mockRepository{
		GetAdvertByYearFunc: func(ctx context.Context, year string) (*bursary.Advert, error) {
			return nil, bursary.ErrAdvertNotFound()
		},
	}
	service := NewBursaryService(repo, files, &capturePublisher{})

	_, err := service.CreateAdvert(context.Background(), bursary.CreateAdvertRequest{
		Year:           "2027",
		Deadline:       time.Now().AddDate(0, 3, 0),
		AdvertFileName: "advert.docx",
		AdvertFileSize: 2048,
		AdvertData:     []byte("not a pdf"),
	})
	require.Error(t, err)
	assert.Equal(t, 0, files.Len())
}

func TestCreateAdvertPastDeadline(t *testing.T) {
	service := NewBursaryService(&mockRepository{}, fsxmem.New(), &capturePublisher{})

	_, err := service.CreateAdvert(context.Background(), bursary.CreateAdvertRequest{
		Year:           "2024",
		Deadline:       time.Now().AddDate(0, 0, -1),
		AdvertFileName: "advert.pdf",
		AdvertFileSize: 2048,
		AdvertData:     []byte("%PDF-1.7"),
	})
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestDeleteAdvertProtectedWithApplications(t *testing.T) {
	repo := &mockRepository{
		GetAdvertByIDFunc: func(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
			return openAdvert(), nil
		},
		CountApplicationsFunc: func(ctx context.Context, id kernel.BursaryID) (int64, error) {
			return 12, nil
		},
	}
	service := NewBursaryService(repo, fsxmem.New(), &capturePublisher{})

	err := service.DeleteAdvert(context.Background(), kernel.BursaryID("b1"))
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeBusiness))
}

func TestDeleteAdvertWithoutApplications(t *testing.T) {
	deleted := false
	repo := &mockRepository{
		GetAdvertByIDFunc: func(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
			return openAdvert(), nil
		},
		CountApplicationsFunc: func(ctx context.Context, id kernel.BursaryID) (int64, error) {
			return 0, nil
		},
		DeleteAdvertFunc: func(ctx context.Context, id kernel.BursaryID) error {
			deleted = true
			return nil
		},
	}
	service := NewBursaryService(repo, fsxmem.New(), &capturePublisher{})

	require.NoError(t, service.DeleteAdvert(context.Background(), kernel.BursaryID("b1")))
	assert.True(t, deleted)
}

func TestSubmitApplicationEmitsEvent(t *testing.T) {
	files := fsxmem.New()
	events := &capturePublisher{}
	repo := &mockRepository{
		GetAdvertByIDFunc: func(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
			return openAdvert(), nil
		},
		ExistsByBursaryAndIDNumberFunc: func(ctx context.Context, bursaryID kernel.BursaryID, idNumber string) (bool, error) {
			return false, nil
		},
		CreateApplicationFunc: func(ctx context.Context, a *bursary.Application) error {
			return nil
		},
	}
	service := NewBursaryService(repo, files, events)

	app, err := service.SubmitApplication(context.Background(), submitRequest())
	require.NoError(t, err)

	assert.Equal(t, bursary.ApplicationStatusSubmitted, app.Status)
	assert.Equal(t, 1, files.Len())

	require.Len(t, events.events, 1)
	submitted, ok := events.events[0].(notification.BursaryApplicationSubmitted)
	require.True(t, ok)
	assert.Equal(t, "2027", submitted.BursaryYear)
	assert.Equal(t, "Naledi Mokoena", submitted.ApplicantName)
}

func TestSubmitApplicationDeadlinePassed(t *testing.T) {
	repo := &mockRepository{
		GetAdvertByIDFunc: func(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
			advert := openAdvert()
			advert.Deadline = time.Now().AddDate(0, 0, -1)
			return advert, nil
		},
	}
	service := NewBursaryService(repo, fsxmem.New(), &capturePublisher{})

	_, err := service.SubmitApplication(context.Background(), submitRequest())
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestSubmitApplicationUnderage(t *testing.T) {
	repo := &mockRepository{
		GetAdvertByIDFunc: func(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
			return openAdvert(), nil
		},
	}
	service := NewBursaryService(repo, fsxmem.New(), &capturePublisher{})

	req := submitRequest()
	req.DateOfBirth = time.Now().AddDate(-15, 0, 0)

	_, err := service.SubmitApplication(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestSubmitApplicationDuplicateIDNumber(t *testing.T) {
	repo := &mockRepository{
		GetAdvertByIDFunc: func(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
			return openAdvert(), nil
		},
		ExistsByBursaryAndIDNumberFunc: func(ctx context.Context, bursaryID kernel.BursaryID, idNumber string) (bool, error) {
			return true, nil
		},
	}
	service := NewBursaryService(repo, fsxmem.New(), &capturePublisher{})

	_, err := service.SubmitApplication(context.Background(), submitRequest())
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeConflict))
}

func TestSubmitApplicationCleansUpDocumentsOnFailure(t *testing.T) {
	files := fsxmem.New()
	repo := &mockRepository{
		GetAdvertByIDFunc: func(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
			return openAdvert(), nil
		},
		ExistsByBursaryAndIDNumberFunc: func(ctx context.Context, bursaryID kernel.BursaryID, idNumber string) (bool, error) {
			return false, nil
		},
		CreateApplicationFunc: func(ctx context.Context, a *bursary.Application) error {
			return assert.AnError
		},
	}
	service := NewBursaryService(repo, files, &capturePublisher{})

	_, err := service.SubmitApplication(context.Background(), submitRequest())
	require.Error(t, err)
	assert.Equal(t, 0, files.Len())
}

func TestReviewApplicationEmitsEvent(t *testing.T) {
	events := &capturePublisher{}
	repo := &mockRepository{
		GetApplicationByIDFunc: func(ctx context.Context, id kernel.BursaryApplicationID) (*bursary.Application, error) {
			return &bursary.Application{
				ID:             kernel.BursaryApplicationID("ba1"),
				BursaryID:      kernel.BursaryID("b1"),
				Status:         bursary.ApplicationStatusSubmitted,
				FirstName:      "Naledi",
				LastName:       "Mokoena",
				Email:          kernel.Email("naledi@example.com"),
				PrimaryContact: kernel.PhoneNumber("+27821234567"),
			}, nil
		},
		UpdateApplicationFunc: func(ctx context.Context, id kernel.BursaryApplicationID, a *bursary.Application) error {
			return nil
		},
		GetAdvertByIDFunc: func(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
			return openAdvert(), nil
		},
	}
	service := NewBursaryService(repo, fsxmem.New(), events)

	app, err := service.ReviewApplication(context.Background(), kernel.BursaryApplicationID("ba1"), kernel.UserID("staff-1"), bursary.ReviewApplicationRequest{
		Status:   bursary.ApplicationStatusAccepted,
		Comments: "strong academic record",
	})
	require.NoError(t, err)
	assert.Equal(t, bursary.ApplicationStatusAccepted, app.Status)

	require.Len(t, events.events, 1)
	reviewed, ok := events.events[0].(notification.BursaryApplicationReviewed)
	require.True(t, ok)
	assert.Equal(t, "accepted", reviewed.NewStatus)
	assert.Equal(t, "2027", reviewed.BursaryYear)
}

func TestReviewApplicationTwiceFails(t *testing.T) {
	reviewed := time.Now()
	reviewer := kernel.UserID("staff-1")
	repo := &mockRepository{
		GetApplicationByIDFunc: func(ctx context.Context, id kernel.BursaryApplicationID) (*bursary.Application, error) {
			return &bursary.Application{
				ID:         kernel.BursaryApplicationID("ba1"),
				Status:     bursary.ApplicationStatusRejected,
				ReviewedBy: &reviewer,
				ReviewedAt: &reviewed,
			}, nil
		},
	}
	service := NewBursaryService(repo, fsxmem.New(), &capturePublisher{})

	_, err := service.ReviewApplication(context.Background(), kernel.BursaryApplicationID("ba1"), kernel.UserID("staff-2"), bursary.ReviewApplicationRequest{
		Status: bursary.ApplicationStatusAccepted,
	})
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeBusiness))
}
