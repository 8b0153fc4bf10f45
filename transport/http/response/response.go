package response

import (
	"encoding/json"
	"net/http"

	"slotbook/internal/scheduling"
	"slotbook/shared/constant"
	"slotbook/shared/failure"
	"slotbook/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

var kindStatus = map[scheduling.Kind]int{
	scheduling.KindInvalidWindow:            http.StatusBadRequest,
	scheduling.KindSlotNotFound:             http.StatusNotFound,
	scheduling.KindModelNotFound:            http.StatusNotFound,
	scheduling.KindReservationNotFound:      http.StatusNotFound,
	scheduling.KindUserNotFound:             http.StatusNotFound,
	scheduling.KindSlotInactive:             http.StatusBadRequest,
	scheduling.KindOutsideSlotWindow:        http.StatusBadRequest,
	scheduling.KindOverlapConflict:          http.StatusConflict,
	scheduling.KindReservationOverlap:       http.StatusConflict,
	scheduling.KindDuplicateUserReservation: http.StatusConflict,
	scheduling.KindSlotInUse:                http.StatusConflict,
	scheduling.KindInternal:                 http.StatusInternalServerError,
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends a response with an error message. Server-side failures
// never leak their cause.
func WithError(writer http.ResponseWriter, err error) {
	code := StatusOf(err)
	errMsg := err.Error()

	if code >= http.StatusInternalServerError {
		errMsg = constant.ResponseErrorInternal
	}

	response(writer, code, Error{Error: &errMsg})
}

// StatusOf picks the HTTP status for err: scheduling kinds first, then
// failure codes, otherwise 500.
func StatusOf(err error) int {
	if kind, ok := scheduling.KindOf(err); ok {
		if code, found := kindStatus[kind]; found {
			return code
		}

		return http.StatusInternalServerError
	}

	return failure.GetCode(err)
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
