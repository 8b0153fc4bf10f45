package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbook/internal/scheduling"
	"slotbook/shared/constant"
	"slotbook/shared/failure"
	"slotbook/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid window", scheduling.ErrInvalidWindow, http.StatusBadRequest, scheduling.ErrInvalidWindow.Message},
		{"slot not found", scheduling.ErrSlotNotFound, http.StatusNotFound, "slot not found"},
		{"model not found", scheduling.ErrModelNotFound, http.StatusNotFound, "model not found"},
		{"reservation not found", scheduling.ErrReservationNotFound, http.StatusNotFound, "reservation not found"},
		{"user not found", scheduling.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"slot inactive", scheduling.ErrSlotInactive, http.StatusBadRequest, "slot is not active"},
		{"outside slot window", scheduling.ErrOutsideSlotWindow, http.StatusBadRequest, scheduling.ErrOutsideSlotWindow.Message},
		{"overlap conflict", scheduling.ErrOverlapConflict, http.StatusConflict, scheduling.ErrOverlapConflict.Message},
		{"reservation overlap", scheduling.ErrReservationOverlap, http.StatusConflict, scheduling.ErrReservationOverlap.Message},
		{"duplicate user reservation", scheduling.ErrDuplicateUserReservation, http.StatusConflict, scheduling.ErrDuplicateUserReservation.Message},
		{"slot in use", scheduling.ErrSlotInUse, http.StatusConflict, "slot still has reservations"},
		{"wrapped kind", fmt.Errorf("failed to create slot: %w", scheduling.ErrOverlapConflict), http.StatusConflict, "failed to create slot: " + scheduling.ErrOverlapConflict.Message},
		{"internal hides cause", scheduling.Internal(errors.New("dial tcp 10.0.0.3:5432: refused")), http.StatusInternalServerError, constant.ResponseErrorInternal},
		{"failure code", failure.Conflict("size name already exists"), http.StatusConflict, "size name already exists"},
		{"plain error", errors.New("pq: relation does not exist"), http.StatusInternalServerError, constant.ResponseErrorInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.code, recorder.Code)
			assert.Equal(t, constant.ContentTypeJSON, recorder.Header().Get(constant.RequestHeaderContentType))

			var body response.Error
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.message, *body.Error)
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]string{"id": "slot-1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"id":"slot-1"}}`, recorder.Body.String())
}

func TestWithMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithRequestLimitExceeded(recorder)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.JSONEq(t, `{"message":"`+constant.ResponseErrorRequestLimitExceeded+`"}`, recorder.Body.String())
}
