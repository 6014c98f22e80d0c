package vacancy

import (
	"net/http"

	"github.com/talentgate/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("VACANCY")

// Error codes
var (
	CodeVacancyNotFound         = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Vacancy not found")
	CodeVacancyAlreadyExists    = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Vacancy already exists")
	CodeVacancyAlreadyPublished = ErrRegistry.Register("ALREADY_PUBLISHED", errx.TypeBusiness, http.StatusConflict, "Vacancy is already published")
	CodeVacancyHasApplications  = ErrRegistry.Register("HAS_APPLICATIONS", errx.TypeBusiness, http.StatusConflict, "Cannot delete vacancy with applications")
	CodeDeadlineInPast          = ErrRegistry.Register("DEADLINE_IN_PAST", errx.TypeValidation, http.StatusBadRequest, "Vacancy deadline must be in the future")
	CodeInvalidVacancyType      = ErrRegistry.Register("INVALID_TYPE", errx.TypeValidation, http.StatusBadRequest, "Unknown vacancy type")
	CodeRequirementNotFound     = ErrRegistry.Register("REQUIREMENT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Minimum requirement not found")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrVacancyNotFound() *errx.Error {
	return ErrRegistry.New(CodeVacancyNotFound)
}

func ErrVacancyAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeVacancyAlreadyExists)
}

func ErrVacancyAlreadyPublished() *errx.Error {
	return ErrRegistry.New(CodeVacancyAlreadyPublished)
}

func ErrVacancyHasApplications() *errx.Error {
	return ErrRegistry.New(CodeVacancyHasApplications)
}

func ErrDeadlineInPast() *errx.Error {
	return ErrRegistry.New(CodeDeadlineInPast)
}

func ErrInvalidVacancyType() *errx.Error {
	return ErrRegistry.New(CodeInvalidVacancyType)
}

func ErrRequirementNotFound() *errx.Error {
	return ErrRegistry.New(CodeRequirementNotFound)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
