package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("reset token not found")

// ResetTokenStore holds single-use password-reset tokens. Consume must be
// atomic: with concurrent calls racing on one token, at most one may
// observe it as present.
type ResetTokenStore interface {
	Create(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Consume(ctx context.Context, token string) (uint, error)
}

type RedisResetTokenStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisResetTokenStore(client redis.UniversalClient, prefix string) *RedisResetTokenStore {
	if prefix == "" {
		prefix = "forgot-password"
	}
	return &RedisResetTokenStore{client: client, prefix: prefix}
}

func (s *RedisResetTokenStore) key(token string) string {
	return fmt.Sprintf("%s:%s", s.prefix, token)
}

func (s *RedisResetTokenStore) Create(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(token), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// Consume deletes the token and returns the user id it referenced. GETDEL
// makes lookup and deletion a single step, so a token can only ever be
// consumed once.
func (s *RedisResetTokenStore) Consume(ctx context.Context, token string) (uint, error) {
	val, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse token value: %w", err)
	}
	return uint(id), nil
}
