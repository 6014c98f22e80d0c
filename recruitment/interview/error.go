package interview

import (
	"net/http"

	"github.com/talentgate/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("INTERVIEW")

// Error codes
var (
	CodeInterviewNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Interview not found")
	CodeScheduleInPast         = ErrRegistry.Register("SCHEDULE_IN_PAST", errx.TypeValidation, http.StatusBadRequest, "Interview cannot be scheduled in the past")
	CodeScheduleSameDay        = ErrRegistry.Register("SCHEDULE_SAME_DAY", errx.TypeValidation, http.StatusBadRequest, "Interview cannot be scheduled on the same day")
	CodeScheduleOnWeekend      = ErrRegistry.Register("SCHEDULE_ON_WEEKEND", errx.TypeValidation, http.StatusBadRequest, "Interview cannot be scheduled on a weekend")
	CodeScheduleTooSoon        = ErrRegistry.Register("SCHEDULE_TOO_SOON", errx.TypeValidation, http.StatusBadRequest, "Interview must be scheduled at least one full day ahead")
	CodeScheduleBeforeDeadline = ErrRegistry.Register("SCHEDULE_BEFORE_DEADLINE", errx.TypeValidation, http.StatusBadRequest, "Interview cannot be scheduled before the vacancy deadline")
	CodeAlreadyResponded       = ErrRegistry.Register("ALREADY_RESPONDED", errx.TypeBusiness, http.StatusConflict, "A response has already been recorded for this interview")
	CodeInterviewAlreadyDone   = ErrRegistry.Register("ALREADY_DONE", errx.TypeBusiness, http.StatusConflict, "Interview has already taken place")
	CodeInterviewCanceled      = ErrRegistry.Register("CANCELED", errx.TypeBusiness, http.StatusConflict, "Interview has been canceled")
	CodeInvalidOutcome         = ErrRegistry.Register("INVALID_OUTCOME", errx.TypeValidation, http.StatusBadRequest, "Invalid interview outcome")
	CodeInvalidRequest         = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeLocationNotFound       = ErrRegistry.Register("LOCATION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Interview location not found")
)

// Helper functions
func ErrInterviewNotFound() *errx.Error {
	return ErrRegistry.New(CodeInterviewNotFound)
}

func ErrScheduleInPast() *errx.Error {
	return ErrRegistry.New(CodeScheduleInPast)
}

func ErrScheduleSameDay() *errx.Error {
	return ErrRegistry.New(CodeScheduleSameDay)
}

func ErrScheduleOnWeekend() *errx.Error {
	return ErrRegistry.New(CodeScheduleOnWeekend)
}

func ErrScheduleTooSoon() *errx.Error {
	return ErrRegistry.New(CodeScheduleTooSoon)
}

func ErrScheduleBeforeDeadline() *errx.Error {
	return ErrRegistry.New(CodeScheduleBeforeDeadline)
}

func ErrAlreadyResponded() *errx.Error {
	return ErrRegistry.New(CodeAlreadyResponded)
}

func ErrInterviewAlreadyDone() *errx.Error {
	return ErrRegistry.New(CodeInterviewAlreadyDone)
}

func ErrInterviewCanceled() *errx.Error {
	return ErrRegistry.New(CodeInterviewCanceled)
}

func ErrInvalidOutcome() *errx.Error {
	return ErrRegistry.New(CodeInvalidOutcome)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrLocationNotFound() *errx.Error {
	return ErrRegistry.New(CodeLocationNotFound)
}
