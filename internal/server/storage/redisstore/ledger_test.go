package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis хранит ключи в памяти и повторяет семантику SETNX и DEL
type fakeRedis struct {
	err  error
	keys map[string]time.Duration
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			delete(f.keys, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) SetNX(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestResetLedger_Consume(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedis{keys: map[string]time.Duration{}}
	ledger := &ResetLedger{client: fake}

	first, err := ledger.Consume(ctx, "jti-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, time.Hour, fake.keys[keyPrefix+"jti-1"])

	first, err = ledger.Consume(ctx, "jti-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, first)

	first, err = ledger.Consume(ctx, "jti-2", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestResetLedger_Consume_Edges(t *testing.T) {
	ctx := context.Background()

	t.Run("empty jti", func(t *testing.T) {
		ledger := &ResetLedger{client: &fakeRedis{keys: map[string]time.Duration{}}}
		_, err := ledger.Consume(ctx, "", time.Hour)
		assert.Error(t, err)
	})

	t.Run("non positive ttl", func(t *testing.T) {
		fake := &fakeRedis{keys: map[string]time.Duration{}}
		ledger := &ResetLedger{client: fake}
		first, err := ledger.Consume(ctx, "jti", -time.Minute)
		require.NoError(t, err)
		assert.True(t, first)
		assert.Equal(t, time.Second, fake.keys[keyPrefix+"jti"])
	})

	t.Run("redis error", func(t *testing.T) {
		ledger := &ResetLedger{client: &fakeRedis{err: errors.New("connection refused")}}
		first, err := ledger.Consume(ctx, "jti", time.Hour)
		require.Error(t, err)
		assert.False(t, first)
	})
}

func TestResetLedger_Release(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedis{keys: map[string]time.Duration{}}
	ledger := &ResetLedger{client: fake}

	first, err := ledger.Consume(ctx, "jti-1", time.Hour)
	require.NoError(t, err)
	require.True(t, first)

	require.NoError(t, ledger.Release(ctx, "jti-1"))
	assert.NotContains(t, fake.keys, keyPrefix+"jti-1")

	// После Release токен снова принимается один раз
	first, err = ledger.Consume(ctx, "jti-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	// Повторный Release отсутствующего ключа не ошибка
	require.NoError(t, ledger.Release(ctx, "never-seen"))

	assert.Error(t, ledger.Release(ctx, ""))

	fake.err = errors.New("connection refused")
	assert.Error(t, ledger.Release(ctx, "jti-1"))
}

func TestNewResetLedger(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer func() {
		_ = client.Close()
	}()

	ledger := NewResetLedger(client)
	assert.NotNil(t, ledger.client)
}
