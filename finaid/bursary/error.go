package bursary

import (
	"net/http"

	"github.com/talentgate/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("BURSARY")

// Error codes
var (
	CodeAdvertNotFound             = ErrRegistry.Register("ADVERT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Bursary advert not found")
	CodeAdvertYearExists           = ErrRegistry.Register("ADVERT_YEAR_EXISTS", errx.TypeConflict, http.StatusConflict, "A bursary advert for this year already exists")
	CodeAdvertAlreadyPublished     = ErrRegistry.Register("ADVERT_ALREADY_PUBLISHED", errx.TypeBusiness, http.StatusConflict, "Bursary advert is already published")
	CodeAdvertHasApplications      = ErrRegistry.Register("ADVERT_HAS_APPLICATIONS", errx.TypeBusiness, http.StatusConflict, "Bursary advert has applications and cannot be deleted")
	CodeDeadlinePassed             = ErrRegistry.Register("DEADLINE_PASSED", errx.TypeValidation, http.StatusBadRequest, "The bursary deadline has passed")
	CodeDeadlineInPast             = ErrRegistry.Register("DEADLINE_IN_PAST", errx.TypeValidation, http.StatusBadRequest, "Deadline must be in the future")
	CodeApplicationNotFound        = ErrRegistry.Register("APPLICATION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Bursary application not found")
	CodeApplicationAlreadyExists   = ErrRegistry.Register("APPLICATION_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "An application with this ID number already exists for this bursary")
	CodeApplicantTooYoung          = ErrRegistry.Register("APPLICANT_TOO_YOUNG", errx.TypeValidation, http.StatusBadRequest, "Applicants must be at least 16 years old")
	CodeApplicationAlreadyReviewed = ErrRegistry.Register("APPLICATION_ALREADY_REVIEWED", errx.TypeBusiness, http.StatusConflict, "Bursary application has already been reviewed")
	CodeInvalidStatusTransition    = ErrRegistry.Register("INVALID_STATUS_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Invalid status transition")
	CodeInvalidRequest             = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrAdvertNotFound() *errx.Error {
	return ErrRegistry.New(CodeAdvertNotFound)
}

func ErrAdvertYearExists() *errx.Error {
	return ErrRegistry.New(CodeAdvertYearExists)
}

func ErrAdvertAlreadyPublished() *errx.Error {
	return ErrRegistry.New(CodeAdvertAlreadyPublished)
}

func ErrAdvertHasApplications() *errx.Error {
	return ErrRegistry.New(CodeAdvertHasApplications)
}

func ErrDeadlinePassed() *errx.Error {
	return ErrRegistry.New(CodeDeadlinePassed)
}

func ErrDeadlineInPast() *errx.Error {
	return ErrRegistry.New(CodeDeadlineInPast)
}

func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrApplicationAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeApplicationAlreadyExists)
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
