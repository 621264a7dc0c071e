package middleware

import (
	"net/http"
	"strings"

	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenVerifier turns a bearer token into the caller's id and role.
type TokenVerifier interface {
	ValidateToken(token string) (uuid.UUID, string, error)
}

// Auth rejects requests without a valid bearer token and stores the caller's
// identity in the request context.
func Auth(tokens TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w)
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w)
				return
			}

			userID, role, err := tokens.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Invalid bearer token",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w)
				return
			}

			ctx := utils.SetIdentity(r.Context(), utils.Identity{UserID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
