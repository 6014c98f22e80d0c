package notification

import (
	"net/http"

	"github.com/talentgate/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("NOTIFICATION")

// Error codes
var (
	CodeNotificationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Notification not found")
	CodeInvalidGroup         = ErrRegistry.Register("INVALID_GROUP", errx.TypeValidation, http.StatusBadRequest, "Unknown notification group")
	CodeEnqueueFailed        = ErrRegistry.Register("ENQUEUE_FAILED", errx.TypeExternal, http.StatusServiceUnavailable, "Failed to enqueue delivery job")
	CodeDeliveryFailed       = ErrRegistry.Register("DELIVERY_FAILED", errx.TypeExternal, http.StatusServiceUnavailable, "Failed to deliver notification")
)

// Helper functions
func ErrNotificationNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotificationNotFound)
}

func ErrInvalidGroup() *errx.Error {
	return ErrRegistry.New(CodeInvalidGroup)
}

func ErrEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeEnqueueFailed)
}

func ErrDeliveryFailed() *errx.Error {
	return ErrRegistry.New(CodeDeliveryFailed)
}
