package ports

import (
	"context"
	"errors"
	"net/http"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// Credentials is the login payload forwarded to the identity backend.
type Credentials struct {
	Email    string
	Password string
}

// Registration is the register payload forwarded to the identity backend.
type Registration struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// AuthPayload is the successful auth envelope body: the user record plus the
// backend bearer token.
type AuthPayload struct {
	User  *domain.UserRecord
	Token string
}

// IdentityProvider is the backend collaborator behind login, register,
// logout and profile. Implementations: the upstream HTTP client and the
// mongo-backed local provider. All failures must be *EnvelopeError.
type IdentityProvider interface {
	Login(ctx context.Context, creds Credentials) (*AuthPayload, error)
	Register(ctx context.Context, reg Registration) (*AuthPayload, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*domain.UserRecord, error)
}

// EnvelopeError is the normalized failure shape surfaced by every identity
// operation: {success:false, message, errors, status}. Status 0 means the
// request never got a response (network failure).
type EnvelopeError struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Status  int                 `json:"status"`
}

func (e *EnvelopeError) Error() string {
	if e.Message == "" {
		return "identity request failed"
	}
	return e.Message
}

// NetworkError is the fixed envelope for transport-level failures.
func NetworkError() *EnvelopeError {
	return &EnvelopeError{
		Message: "Network error. Please check your internet connection.",
		Status:  0,
	}
}

// IsUnauthorized reports whether err is a 401-classified envelope, which must
// trigger unconditional session teardown.
func IsUnauthorized(err error) bool {
	var env *EnvelopeError
	return errors.As(err, &env) && env.Status == http.StatusUnauthorized
}
