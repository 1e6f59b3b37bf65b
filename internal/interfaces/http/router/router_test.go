package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
	assert.Empty(t, r.middleware)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("branches", "/branches").
		GET("", func(c *gin.Context) { c.String(http.StatusOK, "v2") })

	NewRouter(engine, WithAPIVersion("v2")).Register(g).Setup()

	assert.Equal(t, http.StatusOK, serve(engine, "GET", "/api/v2/branches").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, "GET", "/api/v1/branches").Code)
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("payroll", "/payroll").
		POST("/pay-salary", func(c *gin.Context) { c.Status(http.StatusCreated) })

	NewRouter(engine).
		Use(func(c *gin.Context) {
			c.Header("X-Api", "yes")
			c.Next()
		}).
		Register(g).
		Setup()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, "POST", "/api/v1/payroll/pay-salary")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "yes", w.Header().Get("X-Api"))

	w = serve(engine, "GET", "/health")
	assert.Empty(t, w.Header().Get("X-Api"), "router middleware must not leak outside the API group")
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("payables", "/payables")
		assert.Equal(t, "payables", g.Name())
		assert.Equal(t, "/payables", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g := NewDomainGroup("test", "/test").
			GET("/a", ok).
			POST("/b", ok).
			PUT("/c", ok).
			DELETE("/d", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
		}{
			{"GET", "/api/v1/test/a"},
			{"POST", "/api/v1/test/b"},
			{"PUT", "/api/v1/test/c"},
			{"DELETE", "/api/v1/test/d"},
		}
		for _, tt := range tests {
			assert.Equal(t, http.StatusOK, serve(engine, tt.method, tt.path).Code, "%s %s", tt.method, tt.path)
		}
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, "GET", "/api/v1/test/items")
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("subgroups share the parent prefix", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("employees", "/employees")
		g.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "employee") })
		g.Group("advances", "/advances").
			GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "advance") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, "GET", "/api/v1/employees/42")
		assert.Equal(t, "employee", w.Body.String())

		w = serve(engine, "GET", "/api/v1/employees/advances/42")
		assert.Equal(t, "advance", w.Body.String())
	})
}
