package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Adilet2047/Lingua_Connect/internal/apperrors"
	"github.com/Adilet2047/Lingua_Connect/internal/models"
	jwtutil "github.com/Adilet2047/Lingua_Connect/pkg/jwt"
	"github.com/sirupsen/logrus"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "jwt"

type contextKey string

const userContextKey contextKey = "currentUser"

// UserResolver looks up the authenticated identity behind a session token.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthMiddleware authenticates requests via the session cookie. The token
// is verified, the embedded user id resolved, and the sanitized user
// attached to the request context. Missing, invalid or expired tokens
// short-circuit with 401 before any handler runs.
func AuthMiddleware(secret string, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			claims, err := jwtutil.ValidateToken(cookie.Value, secret)
			if err != nil {
				logrus.WithError(err).Warn("Session token rejected")
				writeMessage(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					writeMessage(w, http.StatusNotFound, "User not found")
					return
				}
				logrus.WithError(err).Error("Failed to resolve session user")
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user.Sanitized())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user attached by
// AuthMiddleware, or nil when the request is unauthenticated.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
