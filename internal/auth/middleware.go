package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"settings-api/internal/apperror"
	"settings-api/internal/repository"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the values we store.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth enforces authentication on protected routes.
//
// It reads the bearer token from the Authorization header, validates it, and
// stores the token subject in the request context as the caller's user ID.
// A missing or invalid token short-circuits with 401 before any further
// processing — in particular, before any database access.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes. It composes strictly AFTER
// RequireAuth: the roster lookup uses the context identity RequireAuth
// stored, so an unauthenticated caller is rejected without ever touching the
// database.
//
// Outcomes are deliberately distinct:
//   - no identity in context → 401 (guard ordering was violated)
//   - identity not on the roster → 403
//   - roster lookup failed → 500 (the store being down is not "forbidden")
func RequireAdmin(admins repository.AdminRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}

			if _, err := admins.GetByID(r.Context(), userID); err != nil {
				if errors.Is(err, apperror.ErrNotFound) {
					http.Error(w, `{"error":"forbidden","message":"admin access required"}`, http.StatusForbidden)
					return
				}
				logger.Error("admin roster lookup failed",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
				http.Error(w, `{"error":"internal_error","message":"failed to verify admin access"}`, http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext retrieves the authenticated caller's ID from the request
// context. Returns ("", false) if RequireAuth didn't run on this request.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// WithUserID returns a context carrying the given caller identity.
// Handler tests use this to simulate an authenticated request without
// minting a token.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// extractUserID pulls the bearer token out of the Authorization header and
// validates it.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("auth: no authorization header")
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errors.New("auth: authorization header is not a bearer token")
	}

	return tokens.Validate(token)
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
}
