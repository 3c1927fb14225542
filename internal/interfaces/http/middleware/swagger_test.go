package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shelflog/backend/internal/infrastructure/config"
	"github.com/shelflog/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
)

func newSwaggerRouter(cfg config.SwaggerConfig, auth gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, auth), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return router
}

func TestSwaggerProtection(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("disabled answers 404", func(t *testing.T) {
		router := newSwaggerRouter(config.SwaggerConfig{}, nil)

		w := serveFrom(router, http.MethodGet, "/swagger/index.html", "127.0.0.1:1")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeNotFound)
	})

	t.Run("enabled without restrictions", func(t *testing.T) {
		router := newSwaggerRouter(config.SwaggerConfig{Enabled: true}, nil)

		w := serveFrom(router, http.MethodGet, "/swagger/index.html", "10.9.8.7:1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "docs", w.Body.String())
	})

	t.Run("allowlist accepts exact IP and CIDR", func(t *testing.T) {
		router := newSwaggerRouter(config.SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"127.0.0.1", "10.0.0.0/8", "not-an-ip"},
		}, nil)

		assert.Equal(t, http.StatusOK, serveFrom(router, http.MethodGet, "/swagger/index.html", "127.0.0.1:1").Code)
		assert.Equal(t, http.StatusOK, serveFrom(router, http.MethodGet, "/swagger/index.html", "10.20.30.40:1").Code)

		w := serveFrom(router, http.MethodGet, "/swagger/index.html", "192.168.1.1:1")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeForbidden)
	})

	t.Run("require auth runs the auth middleware", func(t *testing.T) {
		deny := func(c *gin.Context) {
			if c.GetHeader("Authorization") == "" {
				c.AbortWithStatus(http.StatusUnauthorized)
			}
		}
		router := newSwaggerRouter(config.SwaggerConfig{Enabled: true, RequireAuth: true}, deny)

		assert.Equal(t, http.StatusUnauthorized, serveFrom(router, http.MethodGet, "/swagger/index.html", "127.0.0.1:1").Code)

		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestIsIPAllowed(t *testing.T) {
	ips, nets := parseAllowlist([]string{"::1", "172.16.0.0/12"})

	assert.True(t, isIPAllowed(net.ParseIP("::1"), ips, nets))
	assert.True(t, isIPAllowed(net.ParseIP("172.20.1.1"), ips, nets))
	assert.False(t, isIPAllowed(net.ParseIP("8.8.8.8"), ips, nets))
	assert.False(t, isIPAllowed(nil, ips, nets))
}
