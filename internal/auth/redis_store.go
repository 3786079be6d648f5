package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "alwaseet:token:"

// RedisStore shares tokens between adapter replicas through Redis.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr     string
	DB       int
	Password string
	TTL      time.Duration // zero keeps keys without expiry
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(opts RedisOptions, logger *zap.Logger) (*RedisStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		DB:       opts.DB,
		Password: opts.Password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisStoreFromClient(rdb, opts.TTL, logger), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{redis: rdb, ttl: ttl, logger: logger}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	tok, err := s.redis.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get token: %w", err)
	}
	return tok, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, token string) error {
	if err := s.redis.Set(ctx, redisKeyPrefix+key, token, s.ttl).Err(); err != nil {
		s.logger.Error("store.redis.set_token_failed", zap.Error(err))
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

func (s *RedisStore) HealthCheck(ctx context.Context) error {
	if s.redis == nil {
		return errors.New("redis not initialized")
	}
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Close()
}
