package authclient

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/redis/go-redis/v9"
)

// RedisStorage persists session entries in Redis, letting multiple
// processes observe the same session. Writes are last-writer-wins; there is
// no cross-process transaction.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage wraps an existing client. The prefix namespaces this
// app's session keys, e.g. "myapp:session".
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.storageKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "redis get failed")
	}
	return val, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.storageKey(key), value, 0).Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "redis set failed")
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.storageKey(key)).Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "redis del failed")
	}
	return nil
}

func (s *RedisStorage) storageKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
