package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one session token per subject under a self-expiring
// key. Redis SET is atomic, so concurrent rotations for one subject
// resolve to a single winning value without application locking.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "auth:rt:",
	}
}

func (r *RedisStore) key(subject string) string {
	return r.prefix + subject
}

func (r *RedisStore) Save(ctx context.Context, subject, token string, ttl time.Duration) error {
	if subject == "" || token == "" {
		return fmt.Errorf("session: missing subject or token")
	}
	if ttl <= 0 {
		return fmt.Errorf("session: ttl must be positive")
	}
	return r.client.Set(ctx, r.key(subject), token, ttl).Err()
}

func (r *RedisStore) Verify(ctx context.Context, subject, token string) (bool, error) {
	stored, err := r.client.Get(ctx, r.key(subject)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == token, nil
}

func (r *RedisStore) Delete(ctx context.Context, subject string) error {
	return r.client.Del(ctx, r.key(subject)).Err()
}
