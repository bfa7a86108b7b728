package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

const defaultSessionTTL = 24 * time.Hour

// SessionRepository persists sessions in Redis under two keys per session:
// session:<sid>:token (opaque backend token) and session:<sid>:user
// (serialized user record). Both expire together.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a SessionRepository wrapping the given client.
// If ttl <= 0, defaultSessionTTL is used.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Save(ctx context.Context, sid, token string, user *domain.UserRecord) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.tokenKey(sid), token, r.ttl)
	pipe.Set(ctx, r.userKey(sid), data, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the persisted token and user record. A missing session maps to
// domain.ErrSessionNotFound; an unparsable user record is reported as an
// ordinary error so the caller can clear the corrupt state.
func (r *SessionRepository) Load(ctx context.Context, sid string) (string, *domain.UserRecord, error) {
	token, err := r.client.Get(ctx, r.tokenKey(sid)).Result()
	if err == redis.Nil {
		return "", nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("load token: %w", err)
	}

	data, err := r.client.Get(ctx, r.userKey(sid)).Result()
	if err == redis.Nil {
		return "", nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	var user domain.UserRecord
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return "", nil, fmt.Errorf("parse user: %w", err)
	}
	return token, &user, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.tokenKey(sid), r.userKey(sid)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) tokenKey(sid string) string {
	return fmt.Sprintf("session:%s:token", sid)
}

func (r *SessionRepository) userKey(sid string) string {
	return fmt.Sprintf("session:%s:user", sid)
}
