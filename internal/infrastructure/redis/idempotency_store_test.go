package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/ports"
	"github.com/jhoicas/Repuestos-api/pkg/config"
)

func TestReserve_PrimeraVezYReenvio(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	s := newStore(mock, nil, time.Hour)

	val, ok, err := s.Reserve(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, val)
	assert.Equal(t, time.Hour, mock.ttls["repuestos:idempotency:orders:u1:k1"])

	val, ok, err = s.Reserve(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, ports.IdempotencyPending, val)

	require.NoError(t, s.Complete(ctx, "u1", "k1", "order-1"))
	val, ok, err = s.Reserve(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "order-1", val)

	// otra clave del mismo usuario no choca
	_, ok, err = s.Reserve(ctx, "u1", "k2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRelease_PermiteReintentar(t *testing.T) {
	ctx := context.Background()
	s := newStore(newMockCmdable(), nil, 0)
	assert.Equal(t, defaultTTL, s.ttl)

	_, ok, err := s.Reserve(ctx, "u1", "k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.Release(ctx, "u1", "k1"))

	_, ok, err = s.Reserve(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReserve_ErrorDeRedis(t *testing.T) {
	mock := newMockCmdable()
	mock.failWith = errors.New("connection refused")
	s := newStore(mock, nil, time.Hour)

	_, _, err := s.Reserve(context.Background(), "u1", "k1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 2, PoolSize: 7})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 7, opts.PoolSize)

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://:secret@cache:6380/1"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 1, opts.DB)
}

type mockCmdable struct {
	data     map[string]string
	ttls     map[string]time.Duration
	failWith error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.failWith)
}

func (m *mockCmdable) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if m.failWith != nil {
		return redis.NewStatusResult("", m.failWith)
	}
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	if m.failWith != nil {
		return redis.NewStringResult("", m.failWith)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(_ context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if m.failWith != nil {
		return redis.NewBoolResult(false, m.failWith)
	}
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
