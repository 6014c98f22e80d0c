package applicationsrv

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/errx"
	"github.com/talentgate/portal/pkg/fsx"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/pkg/logx"
	"github.com/talentgate/portal/recruitment/application"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// ScheduledInterview is what the interview scheduler reports back after an
// accepted application.
type ScheduledInterview struct {
	ID               kernel.InterviewID
	ScheduleDatetime time.Time
}

// InterviewScheduler schedules the automatic first interview for an accepted
// application.
type InterviewScheduler interface {
	ScheduleForApplication(ctx context.Context, applicationID kernel.ApplicationID) (*ScheduledInterview, error)
}

// ApplicationService provides business operations for vacancy applications
type ApplicationService struct {
	repo        application.Repository
	vacancyRepo vacancy.Repository
	files       fsx.FileSystem
	interviews  InterviewScheduler
	events      notification.Publisher
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	repo application.Repository,
	vacancyRepo vacancy.Repository,
	files fsx.FileSystem,
	interviews InterviewScheduler,
	events notification.Publisher,
) *ApplicationService {
	return &ApplicationService{
		repo:        repo,
		vacancyRepo: vacancyRepo,
		files:       files,
		interviews:  interviews,
		events:      events,
	}
}

// SubmitApplication validates and persists a new application. Nothing is
// persisted on failure: the CV object is removed again if the insert fails.
func (s *ApplicationService) SubmitApplication(ctx context.Context, req application.SubmitApplicationRequest) (*application.Application, error) {
	v, err := s.vacancyRepo.GetByID(ctx, req.VacancyID)
	if err != nil {
		return nil, vacancy.ErrVacancyNotFound().WithDetail("vacancy_id", req.VacancyID.String())
	}

	now := time.Now()
	if v.DeadlinePassed(now) {
		return nil, application.ErrDeadlinePassed().
			WithDetail("vacancy_id", v.ID.String()).
			WithDetail("deadline", v.Deadline)
	}

	if !req.Email.IsValid() {
		return nil, application.ErrInvalidRequest().
			WithDetail("field", "email").
			WithDetail("email", req.Email)
	}

	if age := application.AgeAt(req.DateOfBirth, now); age < application.MinimumApplicantAge {
		return nil, application.ErrApplicantTooYoung().
			WithDetail("field", "date_of_birth").
			WithDetail("age", age)
	}

	exists, err := s.repo.ExistsByVacancyAndEmail(ctx, req.VacancyID, req.Email)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check for duplicate application", errx.TypeInternal)
	}
	if exists {
		return nil, application.ErrApplicationAlreadyExists().
			WithDetail("vacancy_id", req.VacancyID.String()).
			WithDetail("email", req.Email)
	}

	answers, err := s.collectAnswers(ctx, v.ID, req.Answers)
	if err != nil {
		return nil, err
	}

	if err := fsx.ValidateUpload("cv", req.CVFileName, req.CVFileSize, fsx.CVExtensions, fsx.MaxUploadSize); err != nil {
		return nil, err
	}

	id := kernel.NewApplicationID(uuid.NewString())
	cvPath := s.files.Join("cv", fmt.Sprintf("%s-%s", id, req.CVFileName))
	if err := s.files.WriteFile(ctx, cvPath, req.CVData); err != nil {
		return nil, errx.Wrap(err, "failed to store cv", errx.TypeExternal)
	}

	app := &application.Application{
		ID:               id,
		VacancyID:        req.VacancyID,
		Status:           application.ApplicationStatusSubmitted,
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		Email:            req.Email,
		PrimaryContact:   req.PrimaryContact,
		SecondaryContact: req.SecondaryContact,
		DateOfBirth:      req.DateOfBirth,
		CVPath:           kernel.BucketURL(cvPath),
		SubmittedAt:      now,
		UpdatedAt:        now,
	}
	for i := range answers {
		answers[i].ApplicationID = id
	}

	if err := s.repo.Create(ctx, app, answers); err != nil {
		if delErr := s.files.DeleteFile(ctx, cvPath); delErr != nil {
			logx.Warnf("failed to remove cv after aborted submission: %v", delErr)
		}
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}

	s.events.Publish(notification.ApplicationSubmitted{
		Base:           notification.Now(),
		ApplicationID:  app.ID,
		VacancyTitle:   v.Title,
		ApplicantName:  app.FullName(),
		ApplicantEmail: app.Email,
		ApplicantPhone: app.PrimaryContact,
	})

	return app, nil
}

// ReviewApplication records the reviewer's decision on a submitted
// application. Accepting also schedules the first interview.
func (s *ApplicationService) ReviewApplication(ctx context.Context, id kernel.ApplicationID, reviewer kernel.UserID, req application.ReviewApplicationRequest) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}

	oldStatus := app.Status
	if err := app.Review(req.Status, reviewer, req.Comments); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, app); err != nil {
		return nil, errx.Wrap(err, "failed to update application", errx.TypeInternal)
	}

	// The decision is persisted at this point; the follow-ups below must not
	// fail the review, or a re-review would be blocked on a recorded outcome.
	var title kernel.VacancyTitle
	if v, err := s.vacancyRepo.GetByID(ctx, app.VacancyID); err != nil {
		logx.Errorf("review %s: failed to load vacancy %s: %v", app.ID, app.VacancyID, err)
	} else {
		title = v.Title
	}

	s.events.Publish(notification.ApplicationStatusChanged{
		Base:           notification.Now(),
		ApplicationID:  app.ID,
		VacancyTitle:   title,
		OldStatus:      string(oldStatus),
		NewStatus:      string(app.Status),
		ReviewComments: app.ReviewComments,
		ApplicantName:  app.FullName(),
		ApplicantEmail: app.Email,
		ApplicantPhone: app.PrimaryContact,
	})

	if app.Status == application.ApplicationStatusAccepted {
		scheduled, err := s.interviews.ScheduleForApplication(ctx, app.ID)
		if err != nil {
			logx.Errorf("review %s: failed to schedule interview: %v", app.ID, err)
			return app, nil
		}

		s.events.Publish(notification.InterviewScheduled{
			Base:             notification.Now(),
			InterviewID:      scheduled.ID,
			ApplicationID:    app.ID,
			VacancyTitle:     title,
			ScheduleDatetime: scheduled.ScheduleDatetime,
			ApplicantName:    app.FullName(),
			ApplicantEmail:   app.Email,
			ApplicantPhone:   app.PrimaryContact,
		})
	}

	return app, nil
}

// GetApplicationByID retrieves an application by ID
func (s *ApplicationService) GetApplicationByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return app, nil
}

// GetApplicationWithAnswers retrieves an application with its screening
// answers.
func (s *ApplicationService) GetApplicationWithAnswers(ctx context.Context, id kernel.ApplicationID) (*application.ApplicationWithAnswersResponse, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}

	answers, err := s.repo.ListAnswers(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list answers", errx.TypeInternal)
	}

	return &application.ApplicationWithAnswersResponse{
		Application: *app,
		Answers:     answers,
	}, nil
}

// ListApplications retrieves all applications with pagination
func (s *ApplicationService) ListApplications(ctx context.Context, pagination kernel.PaginationOptions) (*application.PaginatedApplicationsResponse, error) {
	apps, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	return apps, nil
}

// ListApplicationsByVacancy retrieves applications for a specific vacancy
func (s *ApplicationService) ListApplicationsByVacancy(ctx context.Context, vacancyID kernel.VacancyID, pagination kernel.PaginationOptions) (*application.PaginatedApplicationsResponse, error) {
	apps, err := s.repo.ListByVacancyID(ctx, vacancyID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications by vacancy", errx.TypeInternal)
	}
	return apps, nil
}

// DownloadCV streams the stored CV of an application.
func (s *ApplicationService) DownloadCV(ctx context.Context, id kernel.ApplicationID) (string, []byte, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}

	stream, err := s.files.ReadFileStream(ctx, string(app.CVPath))
	if err != nil {
		return "", nil, errx.Wrap(err, "failed to read cv", errx.TypeExternal)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return "", nil, errx.Wrap(err, "failed to read cv", errx.TypeExternal)
	}

	return string(app.CVPath), data, nil
}

// collectAnswers matches submitted answers against the vacancy's screening
// questions and rejects submissions missing a required answer.
func (s *ApplicationService) collectAnswers(ctx context.Context, vacancyID kernel.VacancyID, submitted []application.AnswerRequest) ([]application.RequirementAnswer, error) {
	requirements, err := s.vacancyRepo.ListRequirements(ctx, vacancyID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list requirements", errx.TypeInternal)
	}

	byID := make(map[kernel.RequirementID]string, len(submitted))
	for _, a := range submitted {
		byID[a.RequirementID] = a.Answer
	}

	answers := make([]application.RequirementAnswer, 0, len(requirements))
	for _, r := range requirements {
		answer, ok := byID[r.ID]
		if r.IsRequired && (!ok || answer == "") {
			return nil, application.ErrMissingRequiredAnswer().
				WithDetail("requirement_id", r.ID.String()).
				WithDetail("title", r.Title)
		}
		if ok {
			answers = append(answers, application.RequirementAnswer{
				RequirementID: r.ID,
				Answer:        answer,
			})
		}
	}

	return answers, nil
}
