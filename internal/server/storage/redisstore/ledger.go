// Package redisstore keeps single-use markers for password reset tokens in Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "capsort:reset:used:"

// ledgerClient подмножество redis.Cmdable, нужное леджеру
type ledgerClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ResetLedger remembers redeemed reset token IDs until they expire.
type ResetLedger struct {
	client ledgerClient
}

// NewResetLedger wraps a Redis client
func NewResetLedger(client redis.Cmdable) *ResetLedger {
	return &ResetLedger{client: client}
}

// Consume records jti as redeemed for ttl.
// It returns false if jti had already been recorded.
func (l *ResetLedger) Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if jti == "" {
		return false, errors.New("empty token id")
	}
	if ttl <= 0 {
		// Токен уже истек, но метку все равно ставим на короткое время
		ttl = time.Second
	}

	ok, err := l.client.SetNX(ctx, keyPrefix+jti, time.Now().UTC().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}

	return ok, nil
}

// Release снимает метку с jti, чтобы токен можно было предъявить снова
func (l *ResetLedger) Release(ctx context.Context, jti string) error {
	if jti == "" {
		return errors.New("empty token id")
	}
	if err := l.client.Del(ctx, keyPrefix+jti).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
