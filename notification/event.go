// Package notification carries lifecycle events from the domain services to
// the delivery channels. Services publish typed events on a Bus; the
// Dispatcher turns each event into per-channel delivery jobs on a Redis queue;
// a worker pool delivers them. Delivery is at-least-once, side-effect-only,
// and never feeds back into lifecycle outcomes.
package notification

import (
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// EventKind discriminates lifecycle events.
type EventKind string

const (
	EventVacancyCreated              EventKind = "vacancy_created"
	EventApplicationSubmitted        EventKind = "application_submitted"
	EventApplicationStatusChanged    EventKind = "application_status_changed"
	EventInterviewScheduled          EventKind = "interview_scheduled"
	EventBursaryApplicationSubmitted EventKind = "bursary_application_submitted"
	EventBursaryApplicationReviewed  EventKind = "bursary_application_reviewed"
)

// Event is the interface all lifecycle events satisfy.
type Event interface {
	Kind() EventKind
	OccurredAt() time.Time
}

type Base struct {
	At time.Time `json:"at"`
}

func (b Base) OccurredAt() time.Time { return b.At }

// Now stamps an event Base with the current time.
func Now() Base { return Base{At: time.Now()} }

// VacancyCreated fires when a vacancy is created with is_public and
// is_published both set.
type VacancyCreated struct {
	Base
	VacancyID    kernel.VacancyID    `json:"vacancy_id"`
	VacancySlug  kernel.Slug         `json:"vacancy_slug"`
	VacancyTitle kernel.VacancyTitle `json:"vacancy_title"`
	VacancyType  string              `json:"vacancy_type"`
	Deadline     time.Time           `json:"deadline"`
}

func (VacancyCreated) Kind() EventKind { return EventVacancyCreated }

// ApplicationSubmitted fires on successful application creation.
type ApplicationSubmitted struct {
	Base
	ApplicationID  kernel.ApplicationID `json:"application_id"`
	VacancyTitle   kernel.VacancyTitle  `json:"vacancy_title"`
	ApplicantName  string               `json:"applicant_name"`
	ApplicantEmail kernel.Email         `json:"applicant_email"`
	ApplicantPhone kernel.PhoneNumber   `json:"applicant_phone"`
}

func (ApplicationSubmitted) Kind() EventKind { return EventApplicationSubmitted }

// ApplicationStatusChanged fires when a reviewer accepts or rejects an
// application.
type ApplicationStatusChanged struct {
	Base
	ApplicationID  kernel.ApplicationID `json:"application_id"`
	VacancyTitle   kernel.VacancyTitle  `json:"vacancy_title"`
	OldStatus      string               `json:"old_status"`
	NewStatus      string               `json:"new_status"`
	ReviewComments string               `json:"review_comments,omitempty"`
	ApplicantName  string               `json:"applicant_name"`
	ApplicantEmail kernel.Email         `json:"applicant_email"`
	ApplicantPhone kernel.PhoneNumber   `json:"applicant_phone"`
}

func (ApplicationStatusChanged) Kind() EventKind { return EventApplicationStatusChanged }

// InterviewScheduled fires when an interview is created or rescheduled.
type InterviewScheduled struct {
	Base
	InterviewID      kernel.InterviewID  `json:"interview_id"`
	ApplicationID    kernel.ApplicationID `json:"application_id"`
	VacancyTitle     kernel.VacancyTitle `json:"vacancy_title"`
	ScheduleDatetime time.Time           `json:"schedule_datetime"`
	ApplicantName    string              `json:"applicant_name"`
	ApplicantEmail   kernel.Email        `json:"applicant_email"`
	ApplicantPhone   kernel.PhoneNumber  `json:"applicant_phone"`
}

func (InterviewScheduled) Kind() EventKind { return EventInterviewScheduled }

// BursaryApplicationSubmitted fires on successful bursary application
// creation.
type BursaryApplicationSubmitted struct {
	Base
	BursaryApplicationID kernel.BursaryApplicationID `json:"bursary_application_id"`
	BursaryYear          string                      `json:"bursary_year"`
	ApplicantName        string                      `json:"applicant_name"`
	ApplicantEmail       kernel.Email                `json:"applicant_email"`
	ApplicantPhone       kernel.PhoneNumber          `json:"applicant_phone"`
}

func (BursaryApplicationSubmitted) Kind() EventKind { return EventBursaryApplicationSubmitted }

// BursaryApplicationReviewed fires when a bursary application is accepted or
// rejected.
type BursaryApplicationReviewed struct {
	Base
	BursaryApplicationID kernel.BursaryApplicationID `json:"bursary_application_id"`
	BursaryYear          string                      `json:"bursary_year"`
	NewStatus            string                      `json:"new_status"`
	ReviewComments       string                      `json:"review_comments,omitempty"`
	ApplicantName        string                      `json:"applicant_name"`
	ApplicantEmail       kernel.Email                `json:"applicant_email"`
	ApplicantPhone       kernel.PhoneNumber          `json:"applicant_phone"`
}

func (BursaryApplicationReviewed) Kind() EventKind { return EventBursaryApplicationReviewed }

// Publisher is the port lifecycle services use to emit events. Publish must
// never block or fail the caller.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher discards events; used in tests and tooling.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
