package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request from string", err: failure.BadRequestFromString("bad"), code: http.StatusBadRequest, message: "bad"},
		{name: "bad request from error", err: failure.BadRequest(errors.New("decode")), code: http.StatusBadRequest, message: "decode"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "forbidden", err: failure.Forbidden("denied"), code: http.StatusForbidden, message: "denied"},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, message: "booking not found"},
		{name: "conflict", err: failure.Conflict("room not available for selected dates"), code: http.StatusConflict, message: "room not available for selected dates"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "unimplemented", err: failure.Unimplemented("Export"), code: http.StatusNotImplemented, message: "Export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
	assert.NoError(t, failure.Validation(nil))
}

func TestValidation(t *testing.T) {
	err := failure.Validation([]string{"guestName is required", "checkOutDate must be after checkInDate"})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, []string{"guestName is required", "checkOutDate must be after checkInDate"}, failure.GetErrors(err))
}

func TestGetCodeAndIs(t *testing.T) {
	wrapped := fmt.Errorf("failed to create booking: %w", failure.Conflict("taken"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.True(t, failure.Is(wrapped, http.StatusConflict))
	assert.False(t, failure.Is(wrapped, http.StatusNotFound))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Nil(t, failure.GetErrors(errors.New("plain")))
}
