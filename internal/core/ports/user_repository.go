package ports

import (
	"context"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// StoredUser is a user record with its password hash, only visible to the
// local identity provider.
type StoredUser struct {
	Record       domain.UserRecord
	PasswordHash string
}

// UserRepository backs the local identity provider.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*StoredUser, error)
	Create(ctx context.Context, user *StoredUser) (*StoredUser, error)
}
