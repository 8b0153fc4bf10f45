package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"slotbook/shared/failure"
	"slotbook/shared/validator"
)

type sizeRequest struct {
	Name  string `json:"name"  validate:"required,notblank,max=100"`
	Notes string `json:"notes" validate:"omitempty,max=20"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"Large"}`},
		{name: "missing name", body: `{}`, wantErr: "name is required"},
		{name: "blank name", body: `{"name":"   "}`, wantErr: "name must not be blank"},
		{name: "notes too long", body: `{"name":"Large","notes":"aaaaaaaaaaaaaaaaaaaaa"}`, wantErr: "notes must be less than or equal to 20"},
		{name: "malformed body", body: `{"name":`, wantErr: "failed to decode request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req sizeRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("6f1c1c4e-5b7a-4f7e-9d8e-1a2b3c4d5e6f", "uuid"))
	assert.Error(t, validator.ValidateVar("not-an-id", "uuid"))
	assert.NoError(t, validator.ValidateVar("", "empty"))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, validator.ValidateID("6f1c1c4e-5b7a-4f7e-9d8e-1a2b3c4d5e6f"))

	err := validator.ValidateID("42")
	assert.ErrorContains(t, err, "invalid id")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
