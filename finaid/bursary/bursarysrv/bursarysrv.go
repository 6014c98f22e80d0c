package bursarysrv

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/talentgate/portal/finaid/bursary"
	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/errx"
	"github.com/talentgate/portal/pkg/fsx"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/pkg/logx"
)

// BursaryService provides business operations for bursary adverts and
// applications.
type BursaryService struct {
	repo   bursary.Repository
	files  fsx.FileSystem
	events notification.Publisher
}

// NewBursaryService creates a new instance of the bursary service
func NewBursaryService(repo bursary.Repository, files fsx.FileSystem, events notification.Publisher) *BursaryService {
	return &BursaryService{
		repo:   repo,
		files:  files,
		events: events,
	}
}

// CreateAdvert validates and persists a new yearly advert together with its
// PDF. The advert object is removed again if the insert fails.
func (s *BursaryService) CreateAdvert(ctx context.Context, req bursary.CreateAdvertRequest) (*bursary.Advert, error) {
	if req.Year == "" {
		return nil, bursary.ErrInvalidRequest().WithDetail("field", "year")
	}

	now := time.Now()
	if !req.Deadline.After(now) {
		return nil, bursary.ErrDeadlineInPast().
			WithDetail("field", "deadline").
			WithDetail("deadline", req.Deadline)
	}

	existing, err := s.repo.GetAdvertByYear(ctx, req.Year)
	if err == nil && existing != nil {
		return nil, bursary.ErrAdvertYearExists().WithDetail("year", req.Year)
	}

	if err := fsx.ValidateUpload("advert", req.AdvertFileName, req.AdvertFileSize, fsx.AdvertExtensions, fsx.MaxUploadSize); err != nil {
		return nil, err
	}

	id := kernel.NewBursaryID(uuid.NewString())
	advertPath := s.files.Join("bursary", fmt.Sprintf("%s-%s", id, req.AdvertFileName))
	if err := s.files.WriteFile(ctx, advertPath, req.AdvertData); err != nil {
		return nil, errx.Wrap(err, "failed to store advert", errx.TypeExternal)
	}

	advert := &bursary.Advert{
		ID:          id,
		Year:        req.Year,
		AdvertPath:  kernel.BucketURL(advertPath),
		Description: req.Description,
		Deadline:    req.Deadline,
		IsVisible:   req.IsVisible,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateAdvert(ctx, advert); err != nil {
		if delErr := s.files.DeleteFile(ctx, advertPath); delErr != nil {
			logx.Warnf("failed to remove advert after aborted creation: %v", delErr)
		}
		return nil, errx.Wrap(err, "failed to create advert", errx.TypeInternal)
	}

	return advert, nil
}

// PublishAdvert makes an advert visible on the portal.
func (s *BursaryService) PublishAdvert(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
	advert, err := s.repo.GetAdvertByID(ctx, id)
	if err != nil {
		return nil, bursary.ErrAdvertNotFound().WithDetail("bursary_id", id.String())
	}

	if err := advert.Publish(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAdvert(ctx, id, advert); err != nil {
		return nil, errx.Wrap(err, "failed to update advert", errx.TypeInternal)
	}

	return advert, nil
}

// DeleteAdvert removes an advert. Adverts with applications cannot be
// deleted.
func (s *BursaryService) DeleteAdvert(ctx context.Context, id kernel.BursaryID) error {
	advert, err := s.repo.GetAdvertByID(ctx, id)
	if err != nil {
		return bursary.ErrAdvertNotFound().WithDetail("bursary_id", id.String())
	}

	count, err := s.repo.CountApplications(ctx, id)
	if err != nil {
		return errx.Wrap(err, "failed to count applications", errx.TypeInternal)
	}
	if count > 0 {
		return bursary.ErrAdvertHasApplications().
			WithDetail("bursary_id", id.String()).
			WithDetail("application_count", count)
	}

	if err := s.repo.DeleteAdvert(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete advert", errx.TypeInternal)
	}

	if delErr := s.files.DeleteFile(ctx, string(advert.AdvertPath)); delErr != nil {
		logx.Warnf("failed to remove advert file for %s: %v", id, delErr)
	}

	return nil
}

// GetAdvertByID retrieves an advert by ID
func (s *BursaryService) GetAdvertByID(ctx context.Context, id kernel.BursaryID) (*bursary.Advert, error) {
	advert, err := s.repo.GetAdvertByID(ctx, id)
	if err != nil {
		return nil, bursary.ErrAdvertNotFound().WithDetail("bursary_id", id.String())
	}
	return advert, nil
}

// ListAdverts retrieves all adverts with pagination
func (s *BursaryService) ListAdverts(ctx context.Context, pagination kernel.PaginationOptions) (*bursary.PaginatedAdvertsResponse, error) {
	adverts, err := s.repo.ListAdverts(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list adverts", errx.TypeInternal)
	}
	return adverts, nil
}

// ListOpenAdverts retrieves the visible adverts still accepting applications.
func (s *BursaryService) ListOpenAdverts(ctx context.Context) ([]bursary.Advert, error) {
	adverts, err := s.repo.ListOpenAdverts(ctx, time.Now())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list open adverts", errx.TypeInternal)
	}
	return adverts, nil
}

// DownloadAdvert streams the stored advert PDF.
func (s *BursaryService) DownloadAdvert(ctx context.Context, id kernel.BursaryID) (string, []byte, error) {
	advert, err := s.repo.GetAdvertByID(ctx, id)
	if err != nil {
		return "", nil, bursary.ErrAdvertNotFound().WithDetail("bursary_id", id.String())
	}

	stream, err := s.files.ReadFileStream(ctx, string(advert.AdvertPath))
	if err != nil {
		return "", nil, errx.Wrap(err, "failed to read advert", errx.TypeExternal)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return "", nil, errx.Wrap(err, "failed to read advert", errx.TypeExternal)
	}

	return string(advert.AdvertPath), data, nil
}

// SubmitApplication validates and persists a new bursary application. Nothing
// is persisted on failure: the document pack is removed again if the insert
// fails.
func (s *BursaryService) SubmitApplication(ctx context.Context, req bursary.SubmitApplicationRequest) (*bursary.Application, error) {
	advert, err := s.repo.GetAdvertByID(ctx, req.BursaryID)
	if err != nil {
		return nil, bursary.ErrAdvertNotFound().WithDetail("bursary_id", req.BursaryID.String())
	}

	now := time.Now()
	if advert.DeadlinePassed(now) {
		return nil, bursary.ErrDeadlinePassed().
			WithDetail("bursary_id", advert.ID.String()).
			WithDetail("deadline", advert.Deadline)
	}

	if !req.Email.IsValid() {
		return nil, bursary.ErrInvalidRequest().
			WithDetail("field", "email").
			WithDetail("email", req.Email)
	}

	if req.IDNumber == "" {
		return nil, bursary.ErrInvalidRequest().WithDetail("field", "id_number")
	}

	if age := bursary.AgeAt(req.DateOfBirth, now); age < bursary.MinimumApplicantAge {
		return nil, bursary.ErrApplicantTooYoung().
			WithDetail("field", "date_of_birth").
			WithDetail("age", age)
	}

	exists, err := s.repo.ExistsByBursaryAndIDNumber(ctx, req.BursaryID, req.IDNumber)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check for duplicate application", errx.TypeInternal)
	}
	if exists {
		return nil, bursary.ErrApplicationAlreadyExists().
			WithDetail("bursary_id", req.BursaryID.String()).
			WithDetail("id_number", req.IDNumber)
	}

	if err := fsx.ValidateUpload("documents", req.DocumentsFileName, req.DocumentsFileSize, fsx.CVExtensions, fsx.MaxUploadSize); err != nil {
		return nil, err
	}

	id := kernel.NewBursaryApplicationID(uuid.NewString())
	documentsPath := s.files.Join("bursary", "documents", fmt.Sprintf("%s-%s", id, req.DocumentsFileName))
	if err := s.files.WriteFile(ctx, documentsPath, req.DocumentsData); err != nil {
		return nil, errx.Wrap(err, "failed to store documents", errx.TypeExternal)
	}

	app := &bursary.Application{
		ID:               id,
		BursaryID:        req.BursaryID,
		Status:           bursary.ApplicationStatusSubmitted,
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		IDNumber:         req.IDNumber,
		DateOfBirth:      req.DateOfBirth,
		Email:            req.Email,
		PrimaryContact:   req.PrimaryContact,
		SecondaryContact: req.SecondaryContact,
		DocumentsPath:    kernel.BucketURL(documentsPath),
		MotivationLetter: req.MotivationLetter,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		if delErr := s.files.DeleteFile(ctx, documentsPath); delErr != nil {
			logx.Warnf("failed to remove documents after aborted submission: %v", delErr)
		}
		return nil, errx.Wrap(err, "failed to create bursary application", errx.TypeInternal)
	}

	s.events.Publish(notification.BursaryApplicationSubmitted{
		Base:                 notification.Now(),
		BursaryApplicationID: app.ID,
		BursaryYear:          advert.Year,
		ApplicantName:        app.FullName(),
		ApplicantEmail:       app.Email,
		ApplicantPhone:       app.PrimaryContact,
	})

	return app, nil
}

// ReviewApplication records the reviewer's decision on a submitted bursary
// application.
func (s *BursaryService) ReviewApplication(ctx context.Context, id kernel.BursaryApplicationID, reviewer kernel.UserID, req bursary.ReviewApplicationRequest) (*bursary.Application, error) {
	app, err := s.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, bursary.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}

	if err := app.Review(req.Status, reviewer, req.Comments); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateApplication(ctx, id, app); err != nil {
		return nil, errx.Wrap(err, "failed to update bursary application", errx.TypeInternal)
	}

	advert, err := s.repo.GetAdvertByID(ctx, app.BursaryID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load advert", errx.TypeInternal)
	}

	s.events.Publish(notification.BursaryApplicationReviewed{
		Base:                 notification.Now(),
		BursaryApplicationID: app.ID,
		BursaryYear:          advert.Year,
		NewStatus:            string(app.Status),
		ReviewComments:       app.ReviewComments,
		ApplicantName:        app.FullName(),
		ApplicantEmail:       app.Email,
		ApplicantPhone:       app.PrimaryContact,
	})

	return app, nil
}

// GetApplicationByID retrieves a bursary application by ID
func (s *BursaryService) GetApplicationByID(ctx context.Context, id kernel.BursaryApplicationID) (*bursary.Application, error) {
	app, err := s.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, bursary.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return app, nil
}

// ListApplications retrieves the applications of an advert with pagination
func (s *BursaryService) ListApplications(ctx context.Context, bursaryID kernel.BursaryID, pagination kernel.PaginationOptions) (*bursary.PaginatedApplicationsResponse, error) {
	apps, err := s.repo.ListApplications(ctx, bursaryID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list bursary applications", errx.TypeInternal)
	}
	return apps, nil
}

// DownloadDocuments streams the stored document pack of an application.
func (s *BursaryService) DownloadDocuments(ctx context.Context, id kernel.BursaryApplicationID) (string, []byte, error) {
	app, err := s.repo.GetApplicationByID(ctx, id)
	if err != nil {
		return "", nil, bursary.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}

	stream, err := s.files.ReadFileStream(ctx, string(app.DocumentsPath))
	if err != nil {
		return "", nil, errx.Wrap(err, "failed to read documents", errx.TypeExternal)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return "", nil, errx.Wrap(err, "failed to read documents", errx.TypeExternal)
	}

	return string(app.DocumentsPath), data, nil
}
