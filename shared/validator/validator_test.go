package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
)

type stayRequest struct {
	GuestName  string `json:"guestName"  validate:"required,max=10"`
	GuestEmail string `json:"guestEmail" validate:"required,email"`
	Guests     int    `json:"guests"     validate:"gt=0"`
	Status     string `json:"status"     validate:"omitempty,oneof=Pending Confirmed"`
	Nights     int    `json:"nights"`
}

func (s *stayRequest) ValidateFields() []string {
	if s.Nights < 0 {
		return []string{"nights must not be negative"}
	}

	return nil
}

type imageRequest struct {
	Image string `json:"image" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		data       stayRequest
		wantErrors []string
	}{
		{
			name: "valid",
			data: stayRequest{GuestName: "Ana", GuestEmail: "ana@example.com", Guests: 2, Status: "Pending"},
		},
		{
			name: "every invalid field is reported",
			data: stayRequest{GuestName: "", GuestEmail: "nope", Guests: 0, Status: "Lost", Nights: -1},
			wantErrors: []string{
				"guestName is required",
				"guestEmail must be a valid email address",
				"guests must be greater than 0",
				"status must be one of Pending Confirmed",
				"nights must not be negative",
			},
		},
		{
			name:       "max length uses json name",
			data:       stayRequest{GuestName: strings.Repeat("a", 11), GuestEmail: "ana@example.com", Guests: 1},
			wantErrors: []string{"guestName must not exceed 10 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantErrors == nil {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantErrors, failure.GetErrors(err))
		})
	}
}

func TestValidate(t *testing.T) {
	req := stayRequest{}
	err := validator.Validate(strings.NewReader(`{"guestName":"Ana","guestEmail":"ana@example.com","guests":1}`), &req)

	assert.NoError(t, err)
	assert.Equal(t, "Ana", req.GuestName)

	err = validator.Validate(strings.NewReader(`{"guestName":`), &req)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestDecodeSkipsValidation(t *testing.T) {
	req := stayRequest{}
	err := validator.Decode(strings.NewReader(`{"guests":0}`), &req)

	assert.NoError(t, err)
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("ana@example.com", "email"))
	assert.Error(t, validator.ValidateVar("ana", "email"))
}

func TestDataURLValidation(t *testing.T) {
	valid := imageRequest{Image: "data:image/png;base64,iVBORw0KGgo="}
	assert.NoError(t, validator.ValidateStruct(&valid))

	wrongType := imageRequest{Image: "data:text/plain;base64,SGVsbG8="}
	assert.Error(t, validator.ValidateStruct(&wrongType))

	tooLarge := imageRequest{Image: "data:image/png;base64," + strings.Repeat("A", 2*1024*1024)}
	assert.Error(t, validator.ValidateStruct(&tooLarge))
}
