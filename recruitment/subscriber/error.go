package subscriber

import (
	"net/http"

	"github.com/talentgate/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SUBSCRIBER")

// Error codes
var (
	CodeSubscriberNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Subscriber not found")
	CodeAlreadySubscribed   = ErrRegistry.Register("ALREADY_SUBSCRIBED", errx.TypeConflict, http.StatusConflict, "This email is already subscribed")
	CodeAlreadyUnsubscribed = ErrRegistry.Register("ALREADY_UNSUBSCRIBED", errx.TypeBusiness, http.StatusConflict, "This email is already unsubscribed")
	CodeInvalidEmail        = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid email address")
	CodeInvalidVacancyType  = ErrRegistry.Register("INVALID_VACANCY_TYPE", errx.TypeValidation, http.StatusBadRequest, "Unknown vacancy type")
	CodeInvalidRequest      = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrSubscriberNotFound() *errx.Error {
	return ErrRegistry.New(CodeSubscriberNotFound)
}

func ErrAlreadySubscribed() *errx.Error {
	return ErrRegistry.New(CodeAlreadySubscribed)
}

func ErrAlreadyUnsubscribed() *errx.Error {
	return ErrRegistry.New(CodeAlreadyUnsubscribed)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrInvalidVacancyType() *errx.Error {
	return ErrRegistry.New(CodeInvalidVacancyType)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
