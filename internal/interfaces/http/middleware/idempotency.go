package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/cache"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Idempotency headers
const (
	IdempotencyKeyHeader   = "Idempotency-Key"
	IdempotentReplayHeader = "Idempotent-Replayed"
	maxIdempotencyKeyLen   = 255
)

// IdempotencyConfig configures the replay of money-moving requests
type IdempotencyConfig struct {
	Store cache.IdempotencyStore
	// TTL is how long a completed response is replayed
	TTL time.Duration
	// LockTTL bounds how long an in-flight reservation survives a crash
	LockTTL time.Duration
}

// Idempotency replays the first successful response of a POST carrying an
// Idempotency-Key header. A duplicate that arrives while the first request
// is still running is rejected with REQUEST_IN_PROGRESS. Keys are scoped to
// the authenticated user, so Auth must run first.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Second
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			abortWithError(c, dto.ErrCodeBadRequest, "Idempotency-Key is too long")
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortWithError(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
				return
			}
			abortWithError(c, dto.ErrCodeBadRequest, "Unable to read request body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		storeKey := scopedKey(c, key)
		fingerprint := requestFingerprint(c.Request.Method, c.Request.URL.Path, body)

		if replayed := replay(c, cfg.Store, storeKey, fingerprint, log); replayed {
			return
		}

		release, err := cfg.Store.Acquire(ctx, storeKey, cfg.LockTTL)
		if err != nil {
			if errors.Is(err, shared.ErrRequestInProgress) {
				abortWithError(c, shared.CodeRequestInProgress, shared.ErrRequestInProgress.Message)
				return
			}
			// The store being down must not block payments.
			log.Warn("Idempotency store unavailable, processing without replay protection", zap.Error(err))
			c.Next()
			return
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
		}()

		// The first holder may have finished between Get and Acquire.
		if replayed := replay(c, cfg.Store, storeKey, fingerprint, log); replayed {
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		resp := &cache.CachedResponse{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.buf.Bytes(),
			Fingerprint: fingerprint,
		}
		if err := cfg.Store.Put(context.WithoutCancel(ctx), storeKey, resp, cfg.TTL); err != nil {
			log.Error("Failed to store idempotent response", zap.Error(err))
		}
	}
}

// replay answers from the store when key has a completed response
func replay(c *gin.Context, store cache.IdempotencyStore, key, fingerprint string, log *zap.Logger) bool {
	cached, err := store.Get(c.Request.Context(), key)
	if err != nil {
		log.Warn("Idempotency lookup failed", zap.Error(err))
		return false
	}
	if cached == nil {
		return false
	}
	if cached.Fingerprint != fingerprint {
		abortWithError(c, dto.ErrCodeKeyReused, "Idempotency-Key was already used for a different request")
		return true
	}
	c.Header(IdempotentReplayHeader, "true")
	c.Data(cached.Status, cached.ContentType, cached.Body)
	c.Abort()
	return true
}

func scopedKey(c *gin.Context, key string) string {
	if rc, ok := GetRequestContext(c); ok {
		return rc.UserID.String() + ":" + key
	}
	return "anonymous:" + key
}

func requestFingerprint(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// bodyRecorder copies the response body while writing it through
type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.buf.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}
