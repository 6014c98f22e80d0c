package interview

import (
	"time"

	"github.com/talentgate/portal/pkg/kernel"
)

// InterviewStatus represents the status of an interview
type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusDone      InterviewStatus = "done"
	InterviewStatusCanceled  InterviewStatus = "canceled"
	InterviewStatusWaiting   InterviewStatus = "waiting"
	InterviewStatusRejected  InterviewStatus = "rejected"
	InterviewStatusAccepted  InterviewStatus = "accepted"
)

// AutoScheduleLead is how far ahead the automatic first interview lands.
const AutoScheduleLead = 48 * time.Hour

type Interview struct {
	ID               kernel.InterviewID   `db:"id" json:"id"`
	ApplicationID    kernel.ApplicationID `db:"application_id" json:"application_id"`
	Status           InterviewStatus      `db:"status" json:"status"`
	ScheduleDatetime time.Time            `db:"schedule_datetime" json:"schedule_datetime"`
	Description      string               `db:"description" json:"description,omitempty"`
	LocationID       *kernel.LocationID   `db:"location_id" json:"location_id,omitempty"`
	ResponseText     kernel.ResponseText  `db:"response_text" json:"response_text,omitempty"`
	ResponseDeadline *time.Time           `db:"response_deadline" json:"response_deadline,omitempty"`
	ResponseDate     *time.Time           `db:"response_date" json:"response_date,omitempty"`
	CreatedAt        time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time            `db:"updated_at" json:"updated_at"`
}

// Location is interview venue reference data.
type Location struct {
	ID      kernel.LocationID `db:"id" json:"id"`
	Name    string            `db:"name" json:"name"`
	Address string            `db:"address" json:"address"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// NextWorkday rolls a weekend date forward to the following Monday; weekdays
// pass through unchanged.
func NextWorkday(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}

// CandidateScheduleTime computes the automatic interview slot for an
// application accepted at now: two days ahead, weekends rolled to Monday.
func CandidateScheduleTime(now time.Time) time.Time {
	return NextWorkday(now.Add(AutoScheduleLead))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ValidateReschedule applies the reschedule rules in order. Each violation is
// a distinct validation error so callers can surface the exact reason.
func ValidateReschedule(newDT, now, vacancyDeadline time.Time) error {
	if newDT.Before(now) {
		return ErrScheduleInPast().WithDetail("schedule_datetime", newDT)
	}
	if sameDay(newDT, now) {
		return ErrScheduleSameDay().WithDetail("schedule_datetime", newDT)
	}
	if isWeekend(newDT) {
		return ErrScheduleOnWeekend().WithDetail("schedule_datetime", newDT)
	}
	if newDT.Before(now.AddDate(0, 0, 1)) {
		return ErrScheduleTooSoon().WithDetail("schedule_datetime", newDT)
	}
	if newDT.Before(vacancyDeadline) {
		return ErrScheduleBeforeDeadline().
			WithDetail("schedule_datetime", newDT).
			WithDetail("vacancy_deadline", vacancyDeadline)
	}
	return nil
}

// Reschedule moves the interview to newDT after validating it.
func (i *Interview) Reschedule(newDT, now, vacancyDeadline time.Time) error {
	if err := ValidateReschedule(newDT, now, vacancyDeadline); err != nil {
		return err
	}

	i.ScheduleDatetime = newDT
	i.Status = InterviewStatusScheduled
	i.UpdatedAt = now
	return nil
}

// HasResponse reports whether the candidate already responded.
func (i *Interview) HasResponse() bool {
	return i.ResponseDate != nil
}

// Respond records the candidate's one-shot response to the interview
// invitation.
func (i *Interview) Respond(text kernel.ResponseText) error {
	if i.HasResponse() {
		return ErrAlreadyResponded().WithDetail("response_date", *i.ResponseDate)
	}

	now := time.Now()
	i.ResponseText = text
	i.ResponseDate = &now
	i.UpdatedAt = now
	return nil
}

// Cancel marks the interview as canceled.
func (i *Interview) Cancel() error {
	if i.Status == InterviewStatusDone {
		return ErrInterviewAlreadyDone()
	}
	i.Status = InterviewStatusCanceled
	i.UpdatedAt = time.Now()
	return nil
}

// Complete records the interview outcome after it took place.
func (i *Interview) Complete(outcome InterviewStatus) error {
	if i.Status == InterviewStatusCanceled {
		return ErrInterviewCanceled()
	}
	if outcome != InterviewStatusDone && outcome != InterviewStatusAccepted && outcome != InterviewStatusRejected {
		return ErrInvalidOutcome().WithDetail("outcome", outcome)
	}
	i.Status = outcome
	i.UpdatedAt = time.Now()
	return nil
}
