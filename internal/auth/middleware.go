package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFrom returns the authenticated claims stored by Middleware.
func ClaimsFrom(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

// Middleware validates the bearer token and stores its claims on the request
// context. Requests without a valid token are rejected with 401.
func Middleware(ts *TokenService, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
				return
			}
			claims, err := ts.ValidateAccess(token)
			if err != nil {
				logger.Debugw("token rejected", "err", err)
				utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}
