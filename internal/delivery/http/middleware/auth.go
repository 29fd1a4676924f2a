package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "reservationportal/internal/delivery/http/helpers"
	"reservationportal/internal/domain"
)

type contextKey string

const userIDKey contextKey = "userID"

// SetUserID returns a context with the user ID set. Used by auth middleware.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// AdminChecker reports whether a member currently holds the admin flag.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the user ID in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetUserID(r.Context(), userID))
			next(w, r)
		}
	}
}

// RequireAdmin authenticates like RequireAuth, then re-reads the admin flag from the allow-list on
// every request. Non-admins get 403; members removed from the allow-list get 401.
func RequireAdmin(verifier domain.TokenVerifier, admins AdminChecker, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	requireAuth := RequireAuth(verifier, logger)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return requireAuth(func(w http.ResponseWriter, r *http.Request) {
			userID, _ := UserIDFromContext(r.Context())
			isAdmin, err := admins.IsAdmin(r.Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "member no longer registered")
					return
				}
				logger.ErrorContext(r.Context(), "admin check failed", "user_id", userID, "err", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal server error")
				return
			}
			if !isAdmin {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "admin access required")
				return
			}
			next(w, r)
		})
	}
}
