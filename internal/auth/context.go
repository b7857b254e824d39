package auth

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

type ctxKey string

const sessionKey ctxKey = "sessionUser"

// WithUser stores the authenticated user on the context. The session
// middleware is the only writer; handlers must not re-derive identity from
// cookies themselves.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, sessionKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (models.User, bool) {
	if ctx == nil {
		return models.User{}, false
	}
	user, ok := ctx.Value(sessionKey).(models.User)
	return user, ok
}
