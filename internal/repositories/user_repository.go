package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// UserRepository defines the data access contract for users.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	// FindByLogin resolves a user by username or email, caller's choice.
	FindByLogin(ctx context.Context, identifier string) (models.User, error)
	Update(ctx context.Context, user models.User) error
	// SetRefreshToken replaces the single active refresh token; an empty
	// value clears it (logout).
	SetRefreshToken(ctx context.Context, userID, token string) error
	SetPassword(ctx context.Context, userID, passwordHash string) error
}
