package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery converts handler panics into 500 responses instead of
// tearing down the whole server, and counts them.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				log.Errorf("http: panic serving %s: %v\n%s", r.URL.Path, rec, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
