package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

// SessionRepository stores gateway tokens in redis keyed by portal session
// id. The upstream token is the only state the portal persists; it never
// appears in responses or logs.
type SessionRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(client *redis.Client, prefix string, ttl time.Duration) *SessionRepository {
	if prefix == "" {
		prefix = "portal:session:"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionRepository{client: client, prefix: prefix, ttl: ttl}
}

// Save stores the gateway token for a session.
func (r *SessionRepository) Save(ctx context.Context, sessionID, token string) error {
	if err := r.client.Set(ctx, r.prefix+sessionID, token, r.ttl).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}
	return nil
}

// Token returns the gateway token for a session, refreshing its TTL so
// active sessions stay alive.
func (r *SessionRepository) Token(ctx context.Context, sessionID string) (string, error) {
	token, err := r.client.GetEx(ctx, r.prefix+sessionID, r.ttl).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", appErrors.ErrSessionExpired
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return token, nil
}

// Delete revokes a session.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.prefix+sessionID).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke session")
	}
	return nil
}
