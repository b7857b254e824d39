package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/models"
)

// AccessCookieName is the cookie carrying the short-lived access token.
const AccessCookieName = "accessToken"

// AccessVerifier validates an access token and returns the subject user id.
type AccessVerifier interface {
	VerifyAccess(token string) (string, error)
}

// UserLoader resolves the authenticated user record for the session context.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (models.User, error)
}

// RequireAuth rejects requests without a valid session. The access token is
// read from the accessToken cookie or an Authorization bearer header; the
// resolved user is stored on the request context.
func RequireAuth(verifier AccessVerifier, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := resolveUser(r, verifier, users)
			if !ok {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// OptionalAuth resolves the session when one is presented and otherwise lets
// the request through anonymously. Read endpoints use it to compute
// viewer-relative fields.
func OptionalAuth(verifier AccessVerifier, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, ok := resolveUser(r, verifier, users); ok {
				r = r.WithContext(auth.WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveUser(r *http.Request, verifier AccessVerifier, users UserLoader) (models.User, bool) {
	token := accessToken(r)
	if token == "" {
		return models.User{}, false
	}

	userID, err := verifier.VerifyAccess(token)
	if err != nil {
		logging.FromContext(r.Context()).Debug("access token rejected", "error", err)
		return models.User{}, false
	}

	user, err := users.FindByID(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Debug("session user not found", "user_id", userID)
		return models.User{}, false
	}

	return user, true
}

func accessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"status":401,"data":null,"message":"authentication required"}`))
}
