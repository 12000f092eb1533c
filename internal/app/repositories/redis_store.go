package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tenacity/erp/internal/config"
)

// DefaultKeyPrefix namespaces collection keys
const DefaultKeyPrefix = "tenacity_"

// RedisStore keeps each collection under one string key
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to redis using the redis config section
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisStoreFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

// Load reads the payload stored under the prefixed key
func (s *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	payload, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("load %s: %w", name, ErrCollectionNotFound)
		}
		return nil, fmt.Errorf("error loading collection %s from redis: %w", name, err)
	}
	return payload, nil
}

// Save overwrites the prefixed key without expiry
func (s *RedisStore) Save(ctx context.Context, name string, payload []byte) error {
	if err := s.client.Set(ctx, s.key(name), payload, 0).Err(); err != nil {
		return fmt.Errorf("error saving collection %s to redis: %w", name, err)
	}
	return nil
}

// Ping checks the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
