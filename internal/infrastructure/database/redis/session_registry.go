// internal/infrastructure/database/redis/session_registry.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/pkg/auth"
)

const sessionKeyPrefix = "session:"

// SessionRegistry keeps session ids in redis so every instance sees logouts
type SessionRegistry struct {
	rdb redis.Cmdable
}

// NewSessionRegistry creates a redis-backed auth.SessionRegistry
func NewSessionRegistry(rdb redis.Cmdable) *SessionRegistry {
	return &SessionRegistry{rdb: rdb}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (r *SessionRegistry) Create(ctx context.Context, customerID uint, ttl time.Duration) (string, error) {
	id := auth.NewSessionID()
	if err := r.rdb.Set(ctx, sessionKey(id), customerID, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return id, nil
}

func (r *SessionRegistry) Resolve(ctx context.Context, sessionID string) (uint, error) {
	val, err := r.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, auth.ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load session: %w", err)
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value: %w", err)
	}
	return uint(id), nil
}

func (r *SessionRegistry) Revoke(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
