package application

import (
	"net/http"

	"github.com/talentgate/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeApplicationAlreadyExists   = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "An application for this vacancy with this email already exists")
	CodeDeadlinePassed             = ErrRegistry.Register("DEADLINE_PASSED", errx.TypeValidation, http.StatusBadRequest, "The vacancy deadline has passed")
	CodeApplicantTooYoung          = ErrRegistry.Register("APPLICANT_TOO_YOUNG", errx.TypeValidation, http.StatusBadRequest, "Applicants must be at least 18 years old")
	CodeApplicationAlreadyReviewed = ErrRegistry.Register("ALREADY_REVIEWED", errx.TypeBusiness, http.StatusConflict, "Application has already been reviewed")
	CodeInvalidStatusTransition    = ErrRegistry.Register("INVALID_STATUS_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Invalid status transition")
	CodeInvalidRequest             = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeMissingRequiredAnswer      = ErrRegistry.Register("MISSING_REQUIRED_ANSWER", errx.TypeValidation, http.StatusBadRequest, "A required screening question was not answered")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrApplicationAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeApplicationAlreadyExists)
}

func ErrDeadlinePassed() *errx.Error {
	return ErrRegistry.New(CodeDeadlinePassed)
}

func ErrApplicantTooYoung() *errx.Error {
	return ErrRegistry.New(CodeApplicantTooYoung)
}

func ErrApplicationAlreadyReviewed() *errx.Error {
	return ErrRegistry.New(CodeApplicationAlreadyReviewed)
}

func ErrInvalidStatusTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatusTransition)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrMissingRequiredAnswer() *errx.Error {
	return ErrRegistry.New(CodeMissingRequiredAnswer)
}
