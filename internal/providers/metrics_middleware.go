package providers

import (
	"net/http"
	"time"
)

// statusRecorder keeps the first status a handler sends. Handlers that only
// Write leave it at 200.
type statusRecorder struct {
	http.ResponseWriter
	code    int
	written bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.code, r.written = code, true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.written = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// InstrumentRoute counts and times requests under the registered route, not
// the request path, so query strings and trailing junk never mint new series.
func InstrumentRoute(metrics MetricsProviderInterface, route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		began := time.Now()
		next.ServeHTTP(rec, req)
		metrics.ObserveRequestDuration(route, time.Since(began))
		metrics.IncRequestsTotal(route, rec.code)
	})
}
