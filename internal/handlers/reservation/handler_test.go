package reservation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "slotbook/infras/otel/mocks"
	"slotbook/internal/domains/reservation/mocks"
	"slotbook/internal/domains/reservation/model/dto"
	"slotbook/internal/handlers/reservation"
	"slotbook/internal/scheduling"
)

const (
	reservationID = "0b0c8d56-1d0e-4a53-a0f6-3c2f1a9e7b11"
	slotID        = "6f1c1c4e-5b7a-4f7e-9d8e-1a2b3c4d5e6f"
)

func newRouter(t *testing.T) (*mocks.MockReservationService, http.Handler) {
	t.Helper()

	service := mocks.NewMockReservationService(gomock.NewController(t))
	handler := reservation.New(service, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestCreateMyReservation(t *testing.T) {
	body := `{"slot_id":"` + slotID + `","start_date_time":"2025-01-01T09:00:00Z","end_date_time":"2025-01-01T09:30:00Z"}`

	t.Run("created", func(t *testing.T) {
		service, router := newRouter(t)
		service.EXPECT().CreateMine(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error) {
				assert.Equal(t, slotID, req.SlotID)

				return dto.ReservationResponse{ID: reservationID}, nil
			})

		rec := serve(router, http.MethodPost, "/reservations/my", body)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("rule rejections map to status codes", func(t *testing.T) {
		tests := []struct {
			err  error
			want int
		}{
			{err: scheduling.ErrSlotInactive, want: http.StatusBadRequest},
			{err: scheduling.ErrOutsideSlotWindow, want: http.StatusBadRequest},
			{err: scheduling.ErrSlotNotFound, want: http.StatusNotFound},
			{err: scheduling.ErrReservationOverlap, want: http.StatusConflict},
			{err: scheduling.ErrDuplicateUserReservation, want: http.StatusConflict},
		}

		for _, tt := range tests {
			t.Run(tt.err.Error(), func(t *testing.T) {
				service, router := newRouter(t)
				service.EXPECT().CreateMine(gomock.Any(), gomock.Any()).Return(dto.ReservationResponse{}, tt.err)

				rec := serve(router, http.MethodPost, "/reservations/my", body)

				assert.Equal(t, tt.want, rec.Code)
			})
		}
	})
}

func TestCreateReservationRequiresEmail(t *testing.T) {
	_, router := newRouter(t)

	rec := serve(router, http.MethodPost, "/reservations", `{"slot_id":"`+slotID+`","start_date_time":"a","end_date_time":"b"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOwnerRoutesUseOwnerOperations(t *testing.T) {
	service, router := newRouter(t)

	gomock.InOrder(
		service.EXPECT().UpdateMine(gomock.Any(), reservationID, gomock.Any()).Return(dto.ReservationResponse{ID: reservationID}, nil),
		service.EXPECT().DeleteMine(gomock.Any(), reservationID).Return(scheduling.ErrReservationNotFound),
	)

	rec := serve(router, http.MethodPut, "/reservations/my/"+reservationID, `{"notes":"late"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodDelete, "/reservations/my/"+reservationID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesUseAdminOperations(t *testing.T) {
	service, router := newRouter(t)

	service.EXPECT().Get(gomock.Any(), reservationID).Return(dto.ReservationResponse{ID: reservationID}, nil)
	service.EXPECT().Update(gomock.Any(), reservationID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req dto.UpdateReservationRequest) (dto.ReservationResponse, error) {
			if assert.NotNil(t, req.UserEmail) {
				assert.Equal(t, "someone@example.com", *req.UserEmail)
			}

			return dto.ReservationResponse{ID: reservationID}, nil
		})
	service.EXPECT().Delete(gomock.Any(), reservationID).Return(nil)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/reservations/"+reservationID, "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPut, "/reservations/"+reservationID, `{"user_email":"someone@example.com"}`).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodDelete, "/reservations/"+reservationID, "").Code)
}

func TestInvalidIDNeverReachesService(t *testing.T) {
	_, router := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/reservations/42", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodDelete, "/reservations/my/42", "").Code)
}
