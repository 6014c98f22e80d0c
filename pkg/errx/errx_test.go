package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryNew(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "thing not found")

	err := reg.New(code)
	assert.Equal(t, "TEST_NOT_FOUND", err.Code)
	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "thing not found", err.Message)
}

func TestWithDetail(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("INVALID", TypeValidation, http.StatusBadRequest, "invalid")

	err := reg.New(code).WithDetail("field", "deadline").WithDetail("reason", "in past")
	assert.Equal(t, "deadline", err.Details["field"])
	assert.Equal(t, "in past", err.Details["reason"])

	resp := err.ToHTTPResponse()
	assert.Equal(t, "TEST_INVALID", resp.Code)
	assert.Equal(t, "deadline", resp.Details["field"])
}

func TestWrapPassesRegistryErrorsThrough(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("CONFLICT", TypeConflict, http.StatusConflict, "conflict")
	orig := reg.New(code)

	wrapped := Wrap(orig, "should be ignored", TypeInternal)
	assert.Same(t, orig, wrapped)
}

func TestWrapForeignError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, "db unavailable", TypeInternal)

	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesByCode(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("GONE", TypeNotFound, http.StatusNotFound, "gone")

	a := reg.New(code).WithDetail("id", "1")
	b := reg.New(code)
	assert.True(t, errors.Is(a, b))
}

func TestIsType(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("NOPE", TypeAuthorization, http.StatusForbidden, "no")

	assert.True(t, IsType(reg.New(code), TypeAuthorization))
	assert.False(t, IsType(errors.New("plain"), TypeAuthorization))
}
