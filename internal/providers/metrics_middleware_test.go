package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstrumentRoute_LabelsByRoute(t *testing.T) {
	metrics := &cacheMetricsTestMetrics{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodGet, "/recent/extra?n=0", nil)
	rr := httptest.NewRecorder()
	InstrumentRoute(metrics, "/recent", handler).ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/recent", metrics.requestEndpoint)
	assert.Equal(t, http.StatusBadRequest, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
}

func TestInstrumentRoute_WriteOnlyIs200(t *testing.T) {
	metrics := &cacheMetricsTestMetrics{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	InstrumentRoute(metrics, "/stats", handler).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
}

func TestStatusRecorder_KeepsFirstStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: rr, code: http.StatusOK}

	rec.WriteHeader(http.StatusNotFound)
	rec.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusNotFound, rec.code)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatusRecorder_HeaderAfterWriteIgnored(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), code: http.StatusOK}

	_, _ = rec.Write([]byte("body"))
	rec.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusOK, rec.code)
}
