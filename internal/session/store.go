package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// Store maps opaque session ids to the authenticated user id.
type Store interface {
	Get(ctx context.Context, sid string) (uint, error)
	Set(ctx context.Context, sid string, userID uint, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
}

type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "sess"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(sid string) string {
	return fmt.Sprintf("%s:%s", s.prefix, sid)
}

func (s *RedisStore) Get(ctx context.Context, sid string) (uint, error) {
	val, err := s.client.Get(ctx, s.key(sid)).Result()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse session value: %w", err)
	}
	return uint(id), nil
}

func (s *RedisStore) Set(ctx context.Context, sid string, userID uint, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(sid), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.key(sid)).Err()
}
