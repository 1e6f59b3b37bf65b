package cache

import (
	"context"
	"testing"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryIdempotencyStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	resp, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, resp)

	require.NoError(t, store.Put(ctx, "k1", &CachedResponse{Status: 201, Body: []byte(`{"success":true}`)}, time.Minute))
	resp, err = store.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 201, resp.Status)

	now = now.Add(2 * time.Minute)
	resp, err = store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, resp, "expired entries are dropped")
}

func TestInMemoryIdempotencyStore_Acquire(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore()

	release, err := store.Acquire(ctx, "k1", time.Minute)
	require.NoError(t, err)

	_, err = store.Acquire(ctx, "k1", time.Minute)
	assert.ErrorIs(t, err, shared.ErrRequestInProgress)

	_, err = store.Acquire(ctx, "k2", time.Minute)
	assert.NoError(t, err, "keys are independent")

	require.NoError(t, release(ctx))
	_, err = store.Acquire(ctx, "k1", time.Minute)
	assert.NoError(t, err)
}

func TestInMemoryIdempotencyStore_StaleReservation(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryIdempotencyStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	_, err := store.Acquire(ctx, "k1", time.Second)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = store.Acquire(ctx, "k1", time.Second)
	assert.NoError(t, err, "a reservation whose holder vanished expires")
}

func TestNewIdempotencyStore_Fallback(t *testing.T) {
	store := NewIdempotencyStore(context.Background(), config.RedisConfig{Enabled: false}, zap.NewNop())
	assert.IsType(t, &InMemoryIdempotencyStore{}, store)

	store = NewIdempotencyStore(context.Background(), config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}, zap.NewNop())
	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
}
