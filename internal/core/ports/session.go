package ports

import (
	"context"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// SessionRepository persists a session's token and user record under its
// session id. Reads happen on restore; writes follow every state-mutating
// operation, last write wins.
type SessionRepository interface {
	Save(ctx context.Context, sid, token string, user *domain.UserRecord) error
	Load(ctx context.Context, sid string) (token string, user *domain.UserRecord, err error)
	Delete(ctx context.Context, sid string) error
}

// AuthResult is returned by Login and Register: the derived session plus the
// signed gateway token the client presents on subsequent requests.
type AuthResult struct {
	SessionID string
	Token     string
	Session   domain.Session
}

// SessionService owns the session lifecycle.
type SessionService interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
	Logout(ctx context.Context, sid string) error
	Restore(ctx context.Context, sid string) (domain.Session, error)
	FetchProfile(ctx context.Context, sid string) (domain.Session, error)
	UpdateUser(ctx context.Context, sid string, user *domain.UserRecord) (domain.Session, error)
}
