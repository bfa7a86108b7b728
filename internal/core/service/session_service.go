package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/premiumerp/dashboard-gateway/internal/api/metrics"
	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

// SessionService owns the session lifecycle: it authenticates against the
// identity provider, derives the session from the returned user record,
// persists token+user, and signs the gateway token clients present back.
type SessionService struct {
	identity   ports.IdentityProvider
	sessions   ports.SessionRepository
	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewSessionService(identity ports.IdentityProvider, sessions ports.SessionRepository, jwtSecret string, sessionTTL time.Duration, logger zerolog.Logger) *SessionService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &SessionService{
		identity:   identity,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Login authenticates against the identity provider. On failure the error is
// surfaced unchanged and no session state is touched.
func (s *SessionService) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	payload, err := s.identity.Login(ctx, creds)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	result, err := s.establish(ctx, payload)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", payload.User.ID).Msg("login")
	return result, nil
}

// Register creates an account upstream; the contract is identical to Login.
func (s *SessionService) Register(ctx context.Context, reg ports.Registration) (*ports.AuthResult, error) {
	payload, err := s.identity.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	result, err := s.establish(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", payload.User.ID).Msg("registered")
	return result, nil
}

// Logout notifies the identity provider best-effort: a remote failure is
// logged and ignored so local teardown always completes.
func (s *SessionService) Logout(ctx context.Context, sid string) error {
	token, _, err := s.sessions.Load(ctx, sid)
	if err == nil && token != "" {
		if err := s.identity.Logout(ctx, token); err != nil {
			s.logger.Warn().Err(err).Msg("upstream logout failed, tearing down anyway")
		}
	}
	return s.teardown(ctx, sid, "logout")
}

// Restore rebuilds the session from persisted state. A missing or unparsable
// record clears whatever was stored and yields an unauthenticated session.
func (s *SessionService) Restore(ctx context.Context, sid string) (domain.Session, error) {
	token, user, err := s.sessions.Load(ctx, sid)
	if err != nil {
		if err != domain.ErrSessionNotFound {
			// stored state is corrupt, not merely absent
			metrics.SessionTeardownsTotal.WithLabelValues("restore_failed").Inc()
			_ = s.sessions.Delete(ctx, sid)
		}
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return domain.NewSession(user, token), nil
}

// FetchProfile refreshes user, roles and permissions from the backend. A
// 401-classified failure tears the session down before the error is returned.
func (s *SessionService) FetchProfile(ctx context.Context, sid string) (domain.Session, error) {
	token, _, err := s.sessions.Load(ctx, sid)
	if err != nil {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	user, err := s.identity.Profile(ctx, token)
	if err != nil {
		if ports.IsUnauthorized(err) {
			_ = s.teardown(ctx, sid, "unauthorized")
		}
		return domain.Session{}, err
	}

	sess := domain.NewSession(user, token)
	if err := s.sessions.Save(ctx, sid, token, user); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return sess, nil
}

// UpdateUser replaces the user record wholesale and recomputes the derived
// role and permission sets.
func (s *SessionService) UpdateUser(ctx context.Context, sid string, user *domain.UserRecord) (domain.Session, error) {
	token, _, err := s.sessions.Load(ctx, sid)
	if err != nil {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	sess := domain.NewSession(user, token)
	if err := s.sessions.Save(ctx, sid, token, user); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return sess, nil
}

func (s *SessionService) establish(ctx context.Context, payload *ports.AuthPayload) (*ports.AuthResult, error) {
	sid := newSessionID()
	if err := s.sessions.Save(ctx, sid, payload.Token, payload.User); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	token, err := s.signSessionToken(sid)
	if err != nil {
		_ = s.sessions.Delete(ctx, sid)
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &ports.AuthResult{
		SessionID: sid,
		Token:     token,
		Session:   domain.NewSession(payload.User, payload.Token),
	}, nil
}

func (s *SessionService) teardown(ctx context.Context, sid, reason string) error {
	metrics.SessionTeardownsTotal.WithLabelValues(reason).Inc()
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionService) signSessionToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(s.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newSessionID returns a random session id in the format sess-XXXXXXXXXXXXXXXX.
func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("sess-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("sess-%016X", b)
}
