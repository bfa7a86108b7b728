package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

// LocalIdentity is an identity provider backed by the gateway's own user
// collection. It implements the same envelope contract as the upstream
// backend and exists for development and self-contained deployments
// (AUTH_MODE=local). Issued bearer tokens are opaque and held in memory, so
// they do not survive a restart.
type LocalIdentity struct {
	users ports.UserRepository

	mu     sync.Mutex
	tokens map[string]string // token -> email
}

func NewLocalIdentity(users ports.UserRepository) *LocalIdentity {
	return &LocalIdentity{users: users, tokens: make(map[string]string)}
}

func (l *LocalIdentity) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthPayload, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, invalidCredentials()
	}

	stored, err := l.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, invalidCredentials()
		}
		return nil, &ports.EnvelopeError{Message: "identity store unavailable", Status: http.StatusInternalServerError}
	}

	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(creds.Password)) != nil {
		return nil, invalidCredentials()
	}

	return &ports.AuthPayload{User: recordCopy(stored.Record), Token: l.issueToken(creds.Email)}, nil
}

func (l *LocalIdentity) Register(ctx context.Context, reg ports.Registration) (*ports.AuthPayload, error) {
	if errs := validateRegistration(reg); len(errs) > 0 {
		return nil, &ports.EnvelopeError{
			Message: "The given data was invalid.",
			Errors:  errs,
			Status:  http.StatusUnprocessableEntity,
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &ports.EnvelopeError{Message: "could not hash password", Status: http.StatusInternalServerError}
	}

	now := time.Now().UTC()
	roles := []string{domain.RoleCustomer}
	stored := &ports.StoredUser{
		Record: domain.UserRecord{
			Name:        reg.Name,
			Email:       reg.Email,
			Roles:       roles,
			Permissions: domain.ExpandRoles(roles),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		PasswordHash: string(hash),
	}

	created, err := l.users.Create(ctx, stored)
	if err != nil {
		if err == domain.ErrUserExists {
			return nil, &ports.EnvelopeError{
				Message: "The given data was invalid.",
				Errors:  map[string][]string{"email": {"The email has already been taken."}},
				Status:  http.StatusUnprocessableEntity,
			}
		}
		return nil, &ports.EnvelopeError{Message: "identity store unavailable", Status: http.StatusInternalServerError}
	}

	return &ports.AuthPayload{User: recordCopy(created.Record), Token: l.issueToken(reg.Email)}, nil
}

func (l *LocalIdentity) Logout(_ context.Context, token string) error {
	l.mu.Lock()
	delete(l.tokens, token)
	l.mu.Unlock()
	return nil
}

func (l *LocalIdentity) Profile(ctx context.Context, token string) (*domain.UserRecord, error) {
	l.mu.Lock()
	email, ok := l.tokens[token]
	l.mu.Unlock()
	if !ok {
		return nil, &ports.EnvelopeError{Message: "Unauthenticated.", Status: http.StatusUnauthorized}
	}

	stored, err := l.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, &ports.EnvelopeError{Message: "Unauthenticated.", Status: http.StatusUnauthorized}
		}
		return nil, &ports.EnvelopeError{Message: "identity store unavailable", Status: http.StatusInternalServerError}
	}
	return recordCopy(stored.Record), nil
}

func (l *LocalIdentity) issueToken(email string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		b = []byte(fmt.Sprintf("%d", time.Now().UnixNano()))
	}
	token := fmt.Sprintf("%x", b)
	l.mu.Lock()
	l.tokens[token] = email
	l.mu.Unlock()
	return token
}

func validateRegistration(reg ports.Registration) map[string][]string {
	errs := make(map[string][]string)
	if reg.Name == "" {
		errs["name"] = append(errs["name"], "The name field is required.")
	}
	if reg.Email == "" {
		errs["email"] = append(errs["email"], "The email field is required.")
	}
	if reg.Password == "" {
		errs["password"] = append(errs["password"], "The password field is required.")
	}
	if reg.Password != reg.PasswordConfirmation {
		errs["password_confirmation"] = append(errs["password_confirmation"], "The password confirmation does not match.")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func invalidCredentials() *ports.EnvelopeError {
	return &ports.EnvelopeError{Message: "Invalid credentials.", Status: http.StatusUnauthorized}
}

func recordCopy(r domain.UserRecord) *domain.UserRecord {
	clone := r
	return &clone
}
