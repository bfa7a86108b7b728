package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub identity provider
// ---------------------------------------------------------------------------

type stubIdentity struct {
	loginPayload *ports.AuthPayload
	loginErr     error

	profileUser *domain.UserRecord
	profileErr  error

	logoutErr    error
	logoutCalls  int
	lastLogoutTk string
}

func (s *stubIdentity) Login(_ context.Context, _ ports.Credentials) (*ports.AuthPayload, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginPayload, nil
}

func (s *stubIdentity) Register(_ context.Context, _ ports.Registration) (*ports.AuthPayload, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginPayload, nil
}

func (s *stubIdentity) Logout(_ context.Context, token string) error {
	s.logoutCalls++
	s.lastLogoutTk = token
	return s.logoutErr
}

func (s *stubIdentity) Profile(_ context.Context, _ string) (*domain.UserRecord, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profileUser, nil
}

// ---------------------------------------------------------------------------
// In-memory stub session repository
// ---------------------------------------------------------------------------

type storedSession struct {
	token string
	user  *domain.UserRecord
}

type stubSessionRepo struct {
	sessions map[string]storedSession
	saveErr  error
	loadErr  error // overrides lookup when set
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]storedSession)}
}

func (r *stubSessionRepo) Save(_ context.Context, sid, token string, user *domain.UserRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.sessions[sid] = storedSession{token: token, user: user}
	return nil
}

func (r *stubSessionRepo) Load(_ context.Context, sid string) (string, *domain.UserRecord, error) {
	if r.loadErr != nil {
		return "", nil, r.loadErr
	}
	s, ok := r.sessions[sid]
	if !ok {
		return "", nil, domain.ErrSessionNotFound
	}
	return s.token, s.user, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, sid string) error {
	delete(r.sessions, sid)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

func testUser() *domain.UserRecord {
	return &domain.UserRecord{
		ID:          "u1",
		Name:        "Pedro",
		Email:       "pedro@example.com",
		Roles:       []string{domain.RoleSalesOfficer},
		Permissions: domain.ExpandRoles([]string{domain.RoleSalesOfficer}),
	}
}

func newTestSessionService(identity ports.IdentityProvider, repo ports.SessionRepository) *SessionService {
	return NewSessionService(identity, repo, testSecret, time.Hour, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestSessionService_Login_PersistsAndSignsToken(t *testing.T) {
	repo := newStubSessionRepo()
	identity := &stubIdentity{loginPayload: &ports.AuthPayload{User: testUser(), Token: "backend-token"}}
	svc := newTestSessionService(identity, repo)

	result, err := svc.Login(context.Background(), ports.Credentials{Email: "pedro@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(result.SessionID, "sess-") {
		t.Errorf("session id format wrong: %q", result.SessionID)
	}
	if !result.Session.Authenticated {
		t.Error("login must yield an authenticated session")
	}
	if !result.Session.HasRole(domain.RoleSalesOfficer) {
		t.Errorf("roles not derived: %v", result.Session.Roles)
	}

	stored, ok := repo.sessions[result.SessionID]
	if !ok {
		t.Fatal("session not persisted")
	}
	if stored.token != "backend-token" {
		t.Errorf("persisted token: want %q, got %q", "backend-token", stored.token)
	}

	// Gateway token must be an HS256 JWT carrying the session id.
	parsed, err := jwt.Parse(result.Token, func(tk *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("gateway token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sid"] != result.SessionID {
		t.Errorf("sid claim: want %q, got %v", result.SessionID, claims["sid"])
	}
}

func TestSessionService_Login_FailureLeavesNoState(t *testing.T) {
	repo := newStubSessionRepo()
	identity := &stubIdentity{loginErr: &ports.EnvelopeError{Message: "Invalid credentials.", Status: http.StatusUnauthorized}}
	svc := newTestSessionService(identity, repo)

	_, err := svc.Login(context.Background(), ports.Credentials{Email: "x@y.z", Password: "nope"})
	if err == nil {
		t.Fatal("expected error")
	}
	var env *ports.EnvelopeError
	if !errors.As(err, &env) || env.Status != http.StatusUnauthorized {
		t.Errorf("provider error must surface unchanged, got %v", err)
	}
	if len(repo.sessions) != 0 {
		t.Errorf("failed login must not persist state, found %d sessions", len(repo.sessions))
	}
}

func TestSessionService_Login_PersistFailureSurfaces(t *testing.T) {
	repo := newStubSessionRepo()
	repo.saveErr = errors.New("redis down")
	identity := &stubIdentity{loginPayload: &ports.AuthPayload{User: testUser(), Token: "tok"}}
	svc := newTestSessionService(identity, repo)

	if _, err := svc.Login(context.Background(), ports.Credentials{}); err == nil {
		t.Fatal("expected error when session store fails")
	}
}

// ---------------------------------------------------------------------------
// Restore
// ---------------------------------------------------------------------------

func TestSessionService_Restore_RebuildsSession(t *testing.T) {
	repo := newStubSessionRepo()
	identity := &stubIdentity{loginPayload: &ports.AuthPayload{User: testUser(), Token: "tok"}}
	svc := newTestSessionService(identity, repo)

	result, _ := svc.Login(context.Background(), ports.Credentials{})

	sess, err := svc.Restore(context.Background(), result.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.Authenticated {
		t.Error("restored session must be authenticated")
	}
	if sess.Token != "tok" {
		t.Errorf("restored token: want %q, got %q", "tok", sess.Token)
	}
	if !sess.HasPermission(domain.PermViewOrders) {
		t.Error("restored session must carry derived permissions")
	}
}

func TestSessionService_Restore_MissingSession(t *testing.T) {
	svc := newTestSessionService(&stubIdentity{}, newStubSessionRepo())

	_, err := svc.Restore(context.Background(), "sess-UNKNOWN")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionService_Restore_CorruptStateClearsStore(t *testing.T) {
	repo := newStubSessionRepo()
	repo.sessions["sess-BAD"] = storedSession{token: "tok", user: testUser()}
	repo.loadErr = errors.New("unmarshal user: unexpected end of JSON input")
	svc := newTestSessionService(&stubIdentity{}, repo)

	_, err := svc.Restore(context.Background(), "sess-BAD")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("corrupt state must read as missing session, got %v", err)
	}

	repo.loadErr = nil
	if _, ok := repo.sessions["sess-BAD"]; ok {
		t.Error("corrupt session must be deleted from the store")
	}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestSessionService_Logout_TearsDownAndNotifiesProvider(t *testing.T) {
	repo := newStubSessionRepo()
	identity := &stubIdentity{loginPayload: &ports.AuthPayload{User: testUser(), Token: "backend-token"}}
	svc := newTestSessionService(identity, repo)

	result, _ := svc.Login(context.Background(), ports.Credentials{})

	if err := svc.Logout(context.Background(), result.SessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.logoutCalls != 1 {
		t.Errorf("provider logout calls: want 1, got %d", identity.logoutCalls)
	}
	if identity.lastLogoutTk != "backend-token" {
		t.Errorf("provider logout must receive the backend token, got %q", identity.lastLogoutTk)
	}
	if _, ok := repo.sessions[result.SessionID]; ok {
		t.Error("logout must delete the stored session")
	}
}

func TestSessionService_Logout_ProviderFailureStillTearsDown(t *testing.T) {
	repo := newStubSessionRepo()
	identity := &stubIdentity{
		loginPayload: &ports.AuthPayload{User: testUser(), Token: "tok"},
		logoutErr:    ports.NetworkError(),
	}
	svc := newTestSessionService(identity, repo)

	result, _ := svc.Login(context.Background(), ports.Credentials{})

	if err := svc.Logout(context.Background(), result.SessionID); err != nil {
		t.Fatalf("remote failure must not block local teardown: %v", err)
	}
	if _, ok := repo.sessions[result.SessionID]; ok {
		t.Error("session must be gone despite provider failure")
	}
}

func TestSessionService_Logout_UnknownSessionIsIdempotent(t *testing.T) {
	identity := &stubIdentity{}
	svc := newTestSessionService(identity, newStubSessionRepo())

	if err := svc.Logout(context.Background(), "sess-GONE"); err != nil {
		t.Fatalf("logout of unknown session must succeed: %v", err)
	}
	if identity.logoutCalls != 0 {
		t.Error("no stored token, no provider call")
	}
}

// ---------------------------------------------------------------------------
// FetchProfile
// ---------------------------------------------------------------------------

func TestSessionService_FetchProfile_RefreshesUser(t *testing.T) {
	repo := newStubSessionRepo()
	identity := &stubIdentity{loginPayload: &ports.AuthPayload{User: testUser(), Token: "tok"}}
	svc := newTestSessionService(identity, repo)

	result, _ := svc.Login(context.Background(), ports.Credentials{})

	// Backend promoted the user since login.
	promoted := testUser()
	promoted.Roles = []string{domain.RoleAdmin}
	promoted.Permissions = domain.ExpandRoles(promoted.Roles)
	identity.profileUser = promoted

	sess, err := svc.FetchProfile(context.Background(), result.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.HasRole(domain.RoleAdmin) {
		t.Errorf("refreshed session must carry new roles: %v", sess.Roles)
	}

	stored := repo.sessions[result.SessionID]
	if len(stored.user.Roles) != 1 || stored.user.Roles[0] != domain.RoleAdmin {
		t.Errorf("refreshed user must be persisted: %v", stored.user.Roles)
	}
}

func TestSessionService_FetchProfile_UnauthorizedTearsDown(t *testing.T) {
	repo := newStubSessionRepo()
	identity := &stubIdentity{loginPayload: &ports.AuthPayload{User: testUser(), Token: "tok"}}
	svc := newTestSessionService(identity, repo)

	result, _ := svc.Login(context.Background(), ports.Credentials{})

	identity.profileErr = &ports.EnvelopeError{Message: "Unauthenticated.", Status: http.StatusUnauthorized}

	_, err := svc.FetchProfile(context.Background(), result.SessionID)
	if !ports.IsUnauthorized(err) {
		t.Fatalf("401 must surface, got %v", err)
	}
	if _, ok := repo.sessions[result.SessionID]; ok {
		t.Error("401 must tear the session down")
	}
}

func TestSessionService_FetchProfile_OtherErrorsKeepSession(t *testing.T) {
	repo := newStubSessionRepo()
	identity := &stubIdentity{loginPayload: &ports.AuthPayload{User: testUser(), Token: "tok"}}
	svc := newTestSessionService(identity, repo)

	result, _ := svc.Login(context.Background(), ports.Credentials{})

	identity.profileErr = ports.NetworkError()

	_, err := svc.FetchProfile(context.Background(), result.SessionID)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := repo.sessions[result.SessionID]; !ok {
		t.Error("a network failure must not tear the session down")
	}
}

// ---------------------------------------------------------------------------
// UpdateUser
// ---------------------------------------------------------------------------

func TestSessionService_UpdateUser_ReplacesWholesale(t *testing.T) {
	repo := newStubSessionRepo()
	identity := &stubIdentity{loginPayload: &ports.AuthPayload{User: testUser(), Token: "tok"}}
	svc := newTestSessionService(identity, repo)

	result, _ := svc.Login(context.Background(), ports.Credentials{})

	updated := testUser()
	updated.Name = "Pedro Updated"
	updated.Roles = []string{domain.RoleProjectManager}
	updated.Permissions = domain.ExpandRoles(updated.Roles)

	sess, err := svc.UpdateUser(context.Background(), result.SessionID, updated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.User.Name != "Pedro Updated" {
		t.Errorf("user not replaced: %q", sess.User.Name)
	}
	if !sess.HasRole(domain.RoleProjectManager) || sess.HasRole(domain.RoleSalesOfficer) {
		t.Errorf("derived roles not recomputed: %v", sess.Roles)
	}
	if sess.Token != "tok" {
		t.Errorf("token must survive the update, got %q", sess.Token)
	}
}

func TestSessionService_UpdateUser_UnknownSession(t *testing.T) {
	svc := newTestSessionService(&stubIdentity{}, newStubSessionRepo())

	_, err := svc.UpdateUser(context.Background(), "sess-GONE", testUser())
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
