package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/brightcart/storefront/internal/config"
)

func TestDisabledLimitersPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewLimiters(config.RateLimitConfig{})

	r := gin.New()
	r.GET("/", l.General(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestWriteTierEnforcesConfiguredBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewLimiters(config.RateLimitConfig{Enabled: true, WritesPerSecond: 2})

	r := gin.New()
	r.POST("/", l.Write(), func(c *gin.Context) { c.Status(http.StatusOK) })

	var codes []int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
