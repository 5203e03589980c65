// internal/router/router_test.go
package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/brightcart/storefront/internal/config"
)

// Every cart route must be registered. Unauthenticated requests are turned
// away by the auth middleware with 401, never by the route tree with 404.
func TestCartRoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Initialize(nil, &config.Config{Environment: "test"})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/cart"},
		{http.MethodDelete, "/api/cart"},
		{http.MethodPost, "/api/cart/items"},
		{http.MethodDelete, "/api/cart/items/0b6f3f1e-8a43-4a1e-9c58-2f3a4d5e6f70"},
	}
	for _, route := range routes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(route.method, route.path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Initialize(nil, &config.Config{Environment: "test"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
