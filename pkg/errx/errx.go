// Package errx provides a registry-based error model shared by all domain
// packages. Each package registers its error codes once and exposes helper
// constructors; the HTTP layer converts *Error values to JSON responses.
package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for transport-independent handling.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeBusiness      Type = "BUSINESS"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// Code identifies a registered error within a registry.
type Code struct {
	registry   string
	code       string
	errType    Type
	httpStatus int
	message    string
}

func (c Code) String() string {
	return c.registry + "_" + c.code
}

// Registry groups the error codes of one domain package under a prefix.
type Registry struct {
	prefix string
}

// NewRegistry creates a registry with the given prefix, e.g. "VACANCY".
func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix}
}

// Register adds an error code to the registry.
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) Code {
	return Code{
		registry:   r.prefix,
		code:       code,
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
}

// New creates an error for a registered code.
func (r *Registry) New(code Code) *Error {
	return &Error{
		Code:       code.String(),
		Type:       code.errType,
		HTTPStatus: code.httpStatus,
		Message:    code.message,
	}
}

// NewWithCause creates an error for a registered code wrapping a cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.cause = cause
	return e
}

// Error is the concrete error type carried across layers.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches two registry errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail attaches one key/value pair of context and returns the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges a map of context values and returns the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	e, ok := err.(*Error)
	return ok && e.Type == t
}

// Wrap converts an arbitrary error into an *Error of the given type. Registry
// errors pass through unchanged so their code and status survive.
func Wrap(err error, message string, errType Type) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{
		Code:       string(errType) + "_ERROR",
		Type:       errType,
		HTTPStatus: statusFor(errType),
		Message:    message,
		cause:      err,
	}
}

func statusFor(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeBusiness:
		return http.StatusBadRequest
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HTTPResponse is the wire shape of an error payload.
type HTTPResponse struct {
	Error   string         `json:"error"`
	Type    Type           `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToHTTPResponse converts the error to its JSON payload.
func (e *Error) ToHTTPResponse() HTTPResponse {
	return HTTPResponse{
		Error:   e.Message,
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}
