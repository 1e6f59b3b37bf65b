package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/auth"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret: "test-secret-key-at-least-32-chars",
		Issuer: "backoffice",
	})
}

func issue(t *testing.T, svc *auth.JWTService, role shared.Role, branchID *uuid.UUID, ttl time.Duration) string {
	t.Helper()
	token, _, err := svc.Issue(auth.IssueInput{UserID: uuid.New(), Role: role, BranchID: branchID, TTL: ttl})
	require.NoError(t, err)
	return token
}

func newAuthRouter(svc *auth.JWTService) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinMiddleware(zap.NewNop()))
	r.Use(Auth(DefaultAuthConfig(svc, zap.NewNop())))
	r.GET("/api/v1/whoami", func(c *gin.Context) {
		rc, ok := GetRequestContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": rc.Role, "admin": rc.IsAdmin()})
	})
	r.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return *resp.Error
}

func TestAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	branchID := uuid.New()
	r := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, svc, shared.RoleCashier, &branchID, time.Hour))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"role":"CASHIER","admin":false}`, rec.Body.String())
}

func TestAuth_Rejections(t *testing.T) {
	svc := newTestJWTService()
	other := auth.NewJWTService(config.JWTConfig{Secret: "some-other-secret-also-32-chars!!", Issuer: "backoffice"})

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing header", "", dto.ErrCodeTokenInvalid},
		{"not bearer", "Basic dXNlcjpwYXNz", dto.ErrCodeTokenInvalid},
		{"empty bearer", "Bearer ", dto.ErrCodeTokenInvalid},
		{"expired", "Bearer " + issue(t, svc, shared.RoleAdmin, nil, -time.Minute), dto.ErrCodeTokenExpired},
		{"foreign signature", "Bearer " + issue(t, other, shared.RoleAdmin, nil, time.Hour), dto.ErrCodeTokenInvalid},
	}

	r := newAuthRouter(svc)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			info := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotEmpty(t, info.RequestID)
		})
	}
}

func TestAuth_SkipsHealth(t *testing.T) {
	r := newAuthRouter(newTestJWTService())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetRequestContext_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetRequestContext(c)
	assert.False(t, ok)
}
