package router

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/auth"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/category"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/customfield"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/monthlyrecord"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/note"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/notification"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/routine"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/transaction"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/user"
)

const apiPrefix = "/projeto-x-api"

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self';")
			}
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Handlers groups every HTTP handler mounted by RegisterRoutes.
type Handlers struct {
	Users          *user.Handler
	Engagement     *engagement.Handler
	Notifications  *notification.Handler
	Categories     *category.Handler
	Notes          *note.Handler
	Routines       *routine.Handler
	CustomFields   *customfield.Handler
	MonthlyRecords *monthlyrecord.Handler
	Transactions   *transaction.Handler
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
// Everything except health, signup and login sits behind the auth middleware.
func RegisterRoutes(h Handlers, tokens *auth.TokenService, logger *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+apiPrefix+"/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST "+apiPrefix+"/users/signup", h.Users.Signup)
	mux.HandleFunc("POST "+apiPrefix+"/users/login", h.Users.Login)
	mux.HandleFunc("POST "+apiPrefix+"/users/refresh", h.Users.Refresh)
	mux.HandleFunc("POST "+apiPrefix+"/users/logout", h.Users.Logout)

	protected := http.NewServeMux()

	protected.HandleFunc("GET "+apiPrefix+"/users/validate", h.Users.Validate)
	protected.HandleFunc("GET "+apiPrefix+"/users/me", h.Users.Me)

	protected.HandleFunc("POST "+apiPrefix+"/engagement/activity", h.Engagement.Activity)
	protected.HandleFunc("GET "+apiPrefix+"/engagement/streak", h.Engagement.Streak)
	protected.HandleFunc("GET "+apiPrefix+"/engagement/week", h.Engagement.WeekProgress)
	protected.HandleFunc("GET "+apiPrefix+"/engagement/presence", h.Engagement.Presence)
	protected.HandleFunc("GET "+apiPrefix+"/engagement/leaderboard", h.Engagement.Leaderboard)

	protected.HandleFunc("GET "+apiPrefix+"/notifications", h.Notifications.List)
	protected.HandleFunc("PATCH "+apiPrefix+"/notifications/{id}/read", h.Notifications.MarkRead)

	protected.HandleFunc("POST "+apiPrefix+"/categories", h.Categories.Create)
	protected.HandleFunc("GET "+apiPrefix+"/categories", h.Categories.List)
	protected.HandleFunc("GET "+apiPrefix+"/categories/{id}", h.Categories.Get)
	protected.HandleFunc("PUT "+apiPrefix+"/categories/{id}", h.Categories.Update)
	protected.HandleFunc("DELETE "+apiPrefix+"/categories/{id}", h.Categories.Delete)

	protected.HandleFunc("POST "+apiPrefix+"/notes", h.Notes.Create)
	protected.HandleFunc("GET "+apiPrefix+"/notes", h.Notes.List)
	protected.HandleFunc("GET "+apiPrefix+"/notes/{id}", h.Notes.Get)
	protected.HandleFunc("PUT "+apiPrefix+"/notes/{id}", h.Notes.Update)
	protected.HandleFunc("DELETE "+apiPrefix+"/notes/{id}", h.Notes.Delete)

	protected.HandleFunc("POST "+apiPrefix+"/routines", h.Routines.Create)
	protected.HandleFunc("GET "+apiPrefix+"/routines", h.Routines.List)
	protected.HandleFunc("GET "+apiPrefix+"/routines/{id}", h.Routines.Get)
	protected.HandleFunc("PUT "+apiPrefix+"/routines/{id}", h.Routines.Update)
	protected.HandleFunc("DELETE "+apiPrefix+"/routines/{id}", h.Routines.Delete)

	protected.HandleFunc("POST "+apiPrefix+"/custom-fields", h.CustomFields.Create)
	protected.HandleFunc("GET "+apiPrefix+"/custom-fields", h.CustomFields.List)
	protected.HandleFunc("GET "+apiPrefix+"/custom-fields/{id}", h.CustomFields.Get)
	protected.HandleFunc("PUT "+apiPrefix+"/custom-fields/{id}", h.CustomFields.Update)
	protected.HandleFunc("DELETE "+apiPrefix+"/custom-fields/{id}", h.CustomFields.Delete)

	protected.HandleFunc("POST "+apiPrefix+"/monthly-records", h.MonthlyRecords.Create)
	protected.HandleFunc("GET "+apiPrefix+"/monthly-records", h.MonthlyRecords.List)
	protected.HandleFunc("GET "+apiPrefix+"/monthly-records/{id}", h.MonthlyRecords.Get)
	protected.HandleFunc("PUT "+apiPrefix+"/monthly-records/{id}", h.MonthlyRecords.Update)
	protected.HandleFunc("DELETE "+apiPrefix+"/monthly-records/{id}", h.MonthlyRecords.Delete)

	protected.HandleFunc("POST "+apiPrefix+"/transactions", h.Transactions.Create)
	protected.HandleFunc("GET "+apiPrefix+"/monthly-records/{recordId}/transactions", h.Transactions.ListByRecord)
	protected.HandleFunc("GET "+apiPrefix+"/monthly-records/{recordId}/summary", h.Transactions.Summarize)
	protected.HandleFunc("GET "+apiPrefix+"/transactions/{id}", h.Transactions.Get)
	protected.HandleFunc("PUT "+apiPrefix+"/transactions/{id}", h.Transactions.Update)
	protected.HandleFunc("DELETE "+apiPrefix+"/transactions/{id}", h.Transactions.Delete)

	mux.Handle(apiPrefix+"/", auth.Middleware(tokens, logger)(protected))

	return LoggingMiddleware(logger)(SecurityHeadersMiddleware()(mux))
}
