package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Middleware wraps HTTP handlers with per-handler request count and
// duration metrics, registered against the given registry.
type Middleware struct {
	histDuration  *prometheus.HistogramVec
	counterStatus *prometheus.CounterVec
}

func New(reg prometheus.Registerer, constLabels prometheus.Labels) *Middleware {
	factory := promauto.With(reg)
	return &Middleware{
		histDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_handler_duration_seconds",
			Help:        "Duration of HTTP requests per handler",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"handler"}),
		counterStatus: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_handler_requests_total",
			Help:        "Count of HTTP requests per handler and status",
			ConstLabels: constLabels,
		}, []string{"handler", "status"}),
	}
}

func (m *Middleware) WrapHandler(handlerName string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		handler.ServeHTTP(sw, r)
		m.histDuration.WithLabelValues(handlerName).Observe(time.Since(start).Seconds())
		m.counterStatus.WithLabelValues(handlerName, strconv.Itoa(sw.status)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
	w.status = statusCode
}
