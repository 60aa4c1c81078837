package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := ValidationError("invalid input")

	assert.Equal(t, TypeValidation, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Nil(t, err.Cause)
	assert.NotNil(t, err.Context)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Contains(t, err.Error(), "validation")
	assert.Contains(t, err.Error(), "invalid input")
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("record not found")

	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, "record not found", err.Message)
	assert.Nil(t, err.Cause)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus())
	assert.Contains(t, err.Error(), "not_found")
}

func TestInternalError(t *testing.T) {
	cause := fmt.Errorf("database connection failed")
	err := InternalError("failed to save record", cause)

	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.Contains(t, err.Error(), "failed to save record")
	assert.Contains(t, err.Error(), "database connection failed")
}

func TestInternalErrorWithoutCause(t *testing.T) {
	err := InternalError("something went wrong", nil)

	assert.Nil(t, err.Cause)
	assert.NotContains(t, err.Error(), "<nil>")
}

func TestExternalError(t *testing.T) {
	cause := fmt.Errorf("store timeout")
	err := ExternalError("failed to reach feedback store", cause)

	assert.Equal(t, TypeExternal, err.Type)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus())
	assert.Contains(t, err.Error(), "external")
}

func TestUnavailableError(t *testing.T) {
	cause := fmt.Errorf("circuit open")
	err := UnavailableError("store temporarily unavailable", cause)

	assert.Equal(t, TypeUnavailable, err.Type)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus())
	assert.Contains(t, err.Error(), "unavailable")
}

func TestWithFieldChaining(t *testing.T) {
	err := NotFoundError("feedback not found").
		WithField("feedback_id", "abc-123").
		WithField("status", "Resolved")

	assert.Len(t, err.Context, 2)
	assert.Equal(t, "abc-123", err.Context["feedback_id"])
	assert.Equal(t, "Resolved", err.Context["status"])
}

func TestWithFieldNilMap(t *testing.T) {
	err := &Error{
		Type:    TypeValidation,
		Message: "test",
		Context: nil,
	}

	err = err.WithField("key", "value")

	assert.NotNil(t, err.Context)
	assert.Equal(t, "value", err.Context["key"])
}

func TestToResponse(t *testing.T) {
	err := ValidationError("invalid status").
		WithField("field", "status").
		WithField("max_length", 500)

	resp := err.ToResponse()

	assert.Equal(t, "invalid status", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Len(t, resp.Context, 2)
	assert.Equal(t, "status", resp.Context["field"])
	assert.Equal(t, 500, resp.Context["max_length"])
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := InternalError("wrapper", cause)

	assert.True(t, errors.Is(err, cause))
}

func TestAsStructuredError_Nil(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))
}

func TestAsStructuredError_AlreadyStructured(t *testing.T) {
	original := ValidationError("bad input")
	result := AsStructuredError(original)

	assert.Same(t, original, result)
}

func TestAsStructuredError_WrappedStructured(t *testing.T) {
	original := NotFoundError("missing")
	wrapped := fmt.Errorf("handler: %w", original)

	result := AsStructuredError(wrapped)
	require.NotNil(t, result)
	assert.Equal(t, TypeNotFound, result.Type)
}

func TestAsStructuredError_PlainError(t *testing.T) {
	plain := errors.New("something broke")
	result := AsStructuredError(plain)

	require.NotNil(t, result)
	assert.Equal(t, TypeInternal, result.Type)
	assert.Equal(t, plain, result.Cause)
}
