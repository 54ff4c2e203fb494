package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/Mester2001/portfolio/pkg/logger"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rr, r)

		duration := time.Since(start)

		logger.Info("%s %s %d %s", r.Method, r.RequestURI, rr.statusCode, duration)
	})
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

type adminKey struct{}

// AdminMode marks the request context when the URL carries admin=true. It is
// a display switch, not an authentication check.
func AdminMode(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin := r.URL.Query().Get("admin") == "true"
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey{}, admin)))
	})
}

func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(adminKey{}).(bool)
	return admin
}

// RequireAdmin rejects the request with 403 unless AdminMode flagged it.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			errors.WriteHTTPError(w, errors.New(
				errors.RefAdminRequired,
				"Admin mode required",
				"This action is only available in admin mode",
				nil,
				errors.LevelWarning,
			).WithStatus(http.StatusForbidden))
			return
		}
		next.ServeHTTP(w, r)
	})
}
