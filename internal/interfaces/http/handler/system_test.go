package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthRequest(t *testing.T, db Pinger) (int, HealthResponse, bool) {
	t.Helper()
	r := gin.New()
	r.GET("/health", NewSystemHandler("backoffice", "1.2.3", db).Health)

	rec := doRequest(r, http.MethodGet, "/health", nil)

	var body struct {
		Success bool           `json:"success"`
		Data    HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body.Data, body.Success
}

func TestSystemHandler_Health(t *testing.T) {
	code, resp, ok := healthRequest(t, pingerFunc(func(context.Context) error { return nil }))

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, ok)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "up", resp.Database)
	assert.Equal(t, "backoffice", resp.Name)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.NotEmpty(t, resp.GoVersion)
}

func TestSystemHandler_HealthDatabaseDown(t *testing.T) {
	code, resp, ok := healthRequest(t, pingerFunc(func(context.Context) error {
		return errors.New("connection refused")
	}))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, ok)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "down", resp.Database)
}

func TestSystemHandler_HealthWithoutDatabase(t *testing.T) {
	code, resp, _ := healthRequest(t, nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "up", resp.Database)
}
