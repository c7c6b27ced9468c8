package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// LogRequest traces every incoming request. Kept at trace level so the
// access log stays quiet unless explicitly turned on.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Tracef(
				" ====> request [%s] path: [%s] [UA: %s]",
				r.Method, r.URL.Path, r.UserAgent(),
			)
			next.ServeHTTP(w, r)
		})
	}
}
