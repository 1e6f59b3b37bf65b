package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/cache"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type idempotencyFixture struct {
	router *gin.Engine
	store  cache.IdempotencyStore
	calls  atomic.Int32
	status int
	// gate, when set, blocks the handler until closed
	gate chan struct{}
	// entered is signalled once the handler starts
	entered chan struct{}
}

func newIdempotencyFixture(store cache.IdempotencyStore) *idempotencyFixture {
	f := &idempotencyFixture{store: store, status: http.StatusCreated, entered: make(chan struct{}, 4)}
	userID := uuid.New()

	r := gin.New()
	r.Use(logger.GinMiddleware(zap.NewNop()))
	r.Use(func(c *gin.Context) {
		c.Set(RequestContextKey, shared.NewRequestContext(userID, shared.RoleAdmin, nil))
		c.Next()
	})
	r.Use(Idempotency(IdempotencyConfig{Store: store, TTL: time.Hour, LockTTL: time.Minute}))
	r.POST("/pay", func(c *gin.Context) {
		n := f.calls.Add(1)
		f.entered <- struct{}{}
		if f.gate != nil {
			<-f.gate
		}
		c.JSON(f.status, gin.H{"call": n})
	})
	f.router = r
	return f
}

func (f *idempotencyFixture) post(key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency_ReplaysFirstResponse(t *testing.T) {
	f := newIdempotencyFixture(cache.NewInMemoryIdempotencyStore())

	first := f.post("key-1", `{"amount":"100"}`)
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get(IdempotentReplayHeader))

	second := f.post("key-1", `{"amount":"100"}`)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(IdempotentReplayHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestIdempotency_NoKeyAlwaysRuns(t *testing.T) {
	f := newIdempotencyFixture(cache.NewInMemoryIdempotencyStore())
	f.post("", `{}`)
	f.post("", `{}`)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestIdempotency_DifferentBodyIsRejected(t *testing.T) {
	f := newIdempotencyFixture(cache.NewInMemoryIdempotencyStore())
	f.post("key-1", `{"amount":"100"}`)

	rec := f.post("key-1", `{"amount":"999"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "IDEMPOTENCY_KEY_REUSED", decodeError(t, rec).Code)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestIdempotency_FailuresAreNotCached(t *testing.T) {
	f := newIdempotencyFixture(cache.NewInMemoryIdempotencyStore())
	f.status = http.StatusConflict
	f.post("key-1", `{}`)

	f.status = http.StatusCreated
	rec := f.post("key-1", `{}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestIdempotency_InFlightDuplicate(t *testing.T) {
	f := newIdempotencyFixture(cache.NewInMemoryIdempotencyStore())
	f.gate = make(chan struct{})

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- f.post("key-1", `{}`) }()
	<-f.entered

	dup := f.post("key-1", `{}`)
	assert.Equal(t, http.StatusConflict, dup.Code)
	assert.Equal(t, shared.CodeRequestInProgress, decodeError(t, dup).Code)

	close(f.gate)
	first := <-done
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, int32(1), f.calls.Load())
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (*cache.CachedResponse, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Acquire(context.Context, string, time.Duration) (cache.Release, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Put(context.Context, string, *cache.CachedResponse, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenStore) Close() error { return nil }

func TestIdempotency_StoreDownFailsOpen(t *testing.T) {
	f := newIdempotencyFixture(brokenStore{})
	rec := f.post("key-1", `{}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestIdempotency_KeyTooLong(t *testing.T) {
	f := newIdempotencyFixture(cache.NewInMemoryIdempotencyStore())
	rec := f.post(strings.Repeat("k", 300), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(0), f.calls.Load())
}
