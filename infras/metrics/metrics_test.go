package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"slotbook/config"
	"slotbook/infras/metrics"
)

func TestObserveRequest(t *testing.T) {
	m := metrics.New(&config.Config{})

	m.ObserveRequest(http.MethodPost, "/v1/slots", http.StatusCreated, 20*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/v1/slots", http.StatusCreated, 10*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/v1/slots", http.StatusConflict, 5*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Requests().WithLabelValues(http.MethodPost, "/v1/slots", "201")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Requests().WithLabelValues(http.MethodPost, "/v1/slots", "409")), 0)
}

func TestRecordRejection(t *testing.T) {
	m := metrics.New(&config.Config{})

	m.RecordRejection("overlap_conflict")
	m.RecordRejection("overlap_conflict")
	m.RecordRejection("slot_inactive")

	assert.InDelta(t, 2, testutil.ToFloat64(m.Rejections().WithLabelValues("overlap_conflict")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Rejections().WithLabelValues("slot_inactive")), 0)
}

func TestHandler(t *testing.T) {
	m := metrics.New(&config.Config{})
	m.RecordRejection("reservation_overlap")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `slotbook_scheduling_rejections_total{kind="reservation_overlap"} 1`)
}
