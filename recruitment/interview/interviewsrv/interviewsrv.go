package interviewsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/errx"
	"github.com/talentgate/portal/pkg/kernel"
	"github.com/talentgate/portal/recruitment/application"
	"github.com/talentgate/portal/recruitment/interview"
	"github.com/talentgate/portal/recruitment/vacancy"
)

// InterviewService provides business operations for interviews
type InterviewService struct {
	repo            interview.Repository
	applicationRepo application.Repository
	vacancyRepo     vacancy.Repository
	events          notification.Publisher
}

// NewInterviewService creates a new instance of the interview service
func NewInterviewService(
	repo interview.Repository,
	applicationRepo application.Repository,
	vacancyRepo vacancy.Repository,
	events notification.Publisher,
) *InterviewService {
	return &InterviewService{
		repo:            repo,
		applicationRepo: applicationRepo,
		vacancyRepo:     vacancyRepo,
		events:          events,
	}
}

// ScheduleForApplication creates the automatic first interview for an
// accepted application: two days out, weekends rolled to Monday.
func (s *InterviewService) ScheduleForApplication(ctx context.Context, applicationID kernel.ApplicationID) (*interview.Interview, error) {
	now := time.Now()
	scheduleTime := interview.CandidateScheduleTime(now)
	responseDeadline := scheduleTime.Add(-24 * time.Hour)

	i := &interview.Interview{
		ID:               kernel.NewInterviewID(uuid.NewString()),
		ApplicationID:    applicationID,
		Status:           interview.InterviewStatusScheduled,
		ScheduleDatetime: scheduleTime,
		ResponseDeadline: &responseDeadline,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, errx.Wrap(err, "failed to create interview", errx.TypeInternal)
	}

	return i, nil
}

// GetInterviewByID retrieves an interview by ID
func (s *InterviewService) GetInterviewByID(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, interview.ErrInterviewNotFound().WithDetail("interview_id", id.String())
	}
	return i, nil
}

// GetInterviewByApplication retrieves the interview of an application
func (s *InterviewService) GetInterviewByApplication(ctx context.Context, applicationID kernel.ApplicationID) (*interview.Interview, error) {
	i, err := s.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, interview.ErrInterviewNotFound().WithDetail("application_id", applicationID.String())
	}
	return i, nil
}

// ListInterviews retrieves all interviews with pagination
func (s *InterviewService) ListInterviews(ctx context.Context, pagination kernel.PaginationOptions) (*interview.PaginatedInterviewsResponse, error) {
	interviews, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list interviews", errx.TypeInternal)
	}
	return interviews, nil
}

// RescheduleInterview moves an interview, enforcing the scheduling rules
// against the owning vacancy's deadline.
func (s *InterviewService) RescheduleInterview(ctx context.Context, id kernel.InterviewID, req interview.RescheduleInterviewRequest) (*interview.Interview, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, interview.ErrInterviewNotFound().WithDetail("interview_id", id.String())
	}

	app, err := s.applicationRepo.GetByID(ctx, i.ApplicationID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load application", errx.TypeInternal)
	}

	v, err := s.vacancyRepo.GetByID(ctx, app.VacancyID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load vacancy", errx.TypeInternal)
	}

	if req.LocationID != nil {
		if _, err := s.repo.GetLocation(ctx, *req.LocationID); err != nil {
			return nil, interview.ErrLocationNotFound().WithDetail("location_id", req.LocationID.String())
		}
		i.LocationID = req.LocationID
	}

	if err := i.Reschedule(req.ScheduleDatetime, time.Now(), v.Deadline); err != nil {
		return nil, err
	}
	if req.Description != "" {
		i.Description = req.Description
	}

	if err := s.repo.Update(ctx, id, i); err != nil {
		return nil, errx.Wrap(err, "failed to update interview", errx.TypeInternal)
	}

	s.events.Publish(notification.InterviewScheduled{
		Base:             notification.Now(),
		InterviewID:      i.ID,
		ApplicationID:    app.ID,
		VacancyTitle:     v.Title,
		ScheduleDatetime: i.ScheduleDatetime,
		ApplicantName:    app.FullName(),
		ApplicantEmail:   app.Email,
		ApplicantPhone:   app.PrimaryContact,
	})

	return i, nil
}

// RespondToInterview records the candidate's one-shot response.
func (s *InterviewService) RespondToInterview(ctx context.Context, id kernel.InterviewID, req interview.RespondRequest) (*interview.Interview, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, interview.ErrInterviewNotFound().WithDetail("interview_id", id.String())
	}

	if err := i.Respond(req.ResponseText); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, i); err != nil {
		return nil, errx.Wrap(err, "failed to update interview", errx.TypeInternal)
	}

	return i, nil
}

// CancelInterview cancels a pending interview.
func (s *InterviewService) CancelInterview(ctx context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, interview.ErrInterviewNotFound().WithDetail("interview_id", id.String())
	}

	if err := i.Cancel(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, i); err != nil {
		return nil, errx.Wrap(err, "failed to update interview", errx.TypeInternal)
	}

	return i, nil
}

// CompleteInterview records the outcome after the interview took place.
func (s *InterviewService) CompleteInterview(ctx context.Context, id kernel.InterviewID, req interview.CompleteInterviewRequest) (*interview.Interview, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, interview.ErrInterviewNotFound().WithDetail("interview_id", id.String())
	}

	if err := i.Complete(req.Outcome); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, i); err != nil {
		return nil, errx.Wrap(err, "failed to update interview", errx.TypeInternal)
	}

	return i, nil
}

// ListLocations lists the interview venues.
func (s *InterviewService) ListLocations(ctx context.Context) ([]interview.Location, error) {
	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list locations", errx.TypeInternal)
	}
	return locations, nil
}
