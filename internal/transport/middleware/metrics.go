package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timekeeping",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests broken down by route, method and status class.",
	}, []string{"route", "method", "result"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "timekeeping",
		Subsystem: "http",
		Name:      "latency_seconds",
		Help:      "Latency distribution for HTTP requests.",
		Buckets: []float64{
			0.001, 0.005,
			0.01, 0.05,
			0.1, 0.25, 0.5,
			1, 2.5, 5, 10,
		},
	}, []string{"route", "method", "result"})
)

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}

// Metrics records request counts and latency per chi route pattern, so ids in paths do not explode cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		result := statusClass(rec.status)

		httpRequests.WithLabelValues(route, r.Method, result).Inc()
		httpLatency.WithLabelValues(route, r.Method, result).Observe(time.Since(start).Seconds())
	})
}
