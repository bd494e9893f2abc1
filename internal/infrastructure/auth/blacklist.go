package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist checks whether a token or a user's whole session set has
// been revoked. The database password_changed_at comparison is the
// authoritative staleness check; the blacklist is a fast path that avoids a
// tenant database lookup for recently revoked tokens.
type TokenBlacklist interface {
	// BlacklistToken revokes a single token by JTI until its expiry
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	// IsBlacklisted reports whether a token JTI has been revoked
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	// InvalidateUserTokens revokes all tokens for a user issued before now
	InvalidateUserTokens(ctx context.Context, tenantDomain, userID string) error
	// IsUserTokenInvalidated reports whether tokens issued at the given time are revoked
	IsUserTokenInvalidated(ctx context.Context, tenantDomain, userID string, issuedAt time.Time) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist backed by Redis
type RedisTokenBlacklist struct {
	client *redis.Client
	// retention bounds how long user invalidation markers live; it should
	// cover the longest refresh token lifetime.
	retention time.Duration
}

// NewRedisTokenBlacklist creates a Redis-backed token blacklist
func NewRedisTokenBlacklist(client *redis.Client, retention time.Duration) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client, retention: retention}
}

func jtiKey(jti string) string {
	return "auth:blacklist:jti:" + jti
}

func userKey(tenantDomain, userID string) string {
	return fmt.Sprintf("auth:blacklist:user:%s:%s", tenantDomain, userID)
}

// BlacklistToken revokes a single token by JTI
func (b *RedisTokenBlacklist) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, jtiKey(jti), "1", ttl).Err()
}

// IsBlacklisted reports whether a token JTI has been revoked
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, jtiKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// InvalidateUserTokens marks all tokens for a user issued before now as revoked
func (b *RedisTokenBlacklist) InvalidateUserTokens(ctx context.Context, tenantDomain, userID string) error {
	now := time.Now().Unix()
	return b.client.Set(ctx, userKey(tenantDomain, userID), now, b.retention).Err()
}

// IsUserTokenInvalidated reports whether tokens issued at the given time are revoked
func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, tenantDomain, userID string, issuedAt time.Time) (bool, error) {
	val, err := b.client.Get(ctx, userKey(tenantDomain, userID)).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return issuedAt.Unix() < val, nil
}

// NoopTokenBlacklist is used when Redis is disabled; the database
// password_changed_at check still applies.
type NoopTokenBlacklist struct{}

func (NoopTokenBlacklist) BlacklistToken(context.Context, string, time.Duration) error {
	return nil
}

func (NoopTokenBlacklist) IsBlacklisted(context.Context, string) (bool, error) {
	return false, nil
}

func (NoopTokenBlacklist) InvalidateUserTokens(context.Context, string, string) error {
	return nil
}

func (NoopTokenBlacklist) IsUserTokenInvalidated(context.Context, string, string, time.Time) (bool, error) {
	return false, nil
}
