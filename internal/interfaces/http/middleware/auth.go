package middleware

import (
	"errors"
	"strings"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/auth"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth context keys and headers
const (
	RequestContextKey = "request_context"
	AuthHeaderKey     = "Authorization"
	BearerPrefix      = "Bearer "
)

// TokenVerifier validates a bearer token
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	Verifier TokenVerifier
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultAuthConfig returns the authentication configuration of the API
func DefaultAuthConfig(v TokenVerifier, log *zap.Logger) AuthConfig {
	return AuthConfig{
		Verifier:         v,
		SkipPaths:        []string{"/health", "/api/v1/health"},
		SkipPathPrefixes: []string{"/swagger"},
		Logger:           log,
	}
}

// Auth verifies the bearer token and stores the caller's
// shared.RequestContext for the handlers.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if skipPath(c.Request.URL.Path, cfg.SkipPaths, cfg.SkipPathPrefixes) {
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			rejectToken(c, cfg, auth.ErrInvalidToken, "missing authorization header")
			return
		}
		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			rejectToken(c, cfg, auth.ErrInvalidToken, "invalid authorization header format")
			return
		}

		claims, err := cfg.Verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			rejectToken(c, cfg, err, "token validation failed")
			return
		}
		rc, err := claims.RequestContext()
		if err != nil {
			rejectToken(c, cfg, err, "malformed claims")
			return
		}

		c.Set(RequestContextKey, rc)
		branch := ""
		if rc.BranchID != nil {
			branch = rc.BranchID.String()
		}
		ctx := logger.WithActor(c.Request.Context(), rc.UserID.String(), string(rc.Role), branch)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func rejectToken(c *gin.Context, cfg AuthConfig, err error, reason string) {
	cfg.Logger.Warn("Authentication failed",
		zap.Error(err),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", logger.GetRequestID(c.Request.Context())),
	)

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortWithError(c, dto.ErrCodeTokenExpired, "Token has expired")
	case errors.Is(err, auth.ErrTokenNotYetValid):
		abortWithError(c, dto.ErrCodeTokenInvalid, "Token is not yet valid")
	case errors.Is(err, auth.ErrInvalidToken):
		abortWithError(c, dto.ErrCodeTokenInvalid, "Invalid token")
	default:
		abortWithError(c, shared.CodeUnauthorized, "Authentication required")
	}
}

// GetRequestContext returns the authenticated caller
func GetRequestContext(c *gin.Context) (shared.RequestContext, bool) {
	v, ok := c.Get(RequestContextKey)
	if !ok {
		return shared.RequestContext{}, false
	}
	rc, ok := v.(shared.RequestContext)
	return rc, ok
}
