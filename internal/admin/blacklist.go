package admin

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBlacklist revokes access tokens until their natural expiry. A nil
// receiver disables revocation, so callers can pass it through unconditionally.
type RedisBlacklist struct {
	client *redis.Client
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	if client == nil {
		return nil
	}
	return &RedisBlacklist{client: client}
}

func (b *RedisBlacklist) key(token string) string { return "blacklist:access:" + token }

// Revoke marks a token revoked for the given TTL.
func (b *RedisBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if b == nil {
		return nil
	}
	return b.client.Set(ctx, b.key(token), "1", ttl).Err()
}

// IsRevoked reports whether a token has been revoked.
func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	if b == nil {
		return false, nil
	}
	exists, err := b.client.Exists(ctx, b.key(token)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
