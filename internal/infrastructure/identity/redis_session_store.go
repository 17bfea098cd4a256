package identity

import (
	"context"
	"fmt"
	"time"

	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "presupuestos:session:"

// RedisSessionStore keeps one key per session, expiring with the token.
type RedisSessionStore struct {
	rdb *redis.Client
	now func() time.Time
}

var _ interfaces.ISessionStore = (*RedisSessionStore)(nil)

// NewRedis parses url and checks connectivity.
func NewRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, now: time.Now}
}

func (r *RedisSessionStore) Save(ctx context.Context, s entities.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, sessionKeyPrefix+s.ID, s.Identity.UID, ttl).Err()
}

func (r *RedisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
