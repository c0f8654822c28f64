package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"docflow_backend/internal/models"
	"docflow_backend/test/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginAllowed(t *testing.T) {
	allowed := OriginAllowed([]string{"https://docs.example.com", "*.corp.local", " "})

	assert.True(t, allowed("https://docs.example.com"))
	assert.True(t, allowed("https://intranet.corp.local"))
	assert.True(t, allowed("http://a.b.corp.local:8080"))
	assert.False(t, allowed("https://corp.local"))
	assert.False(t, allowed("https://evil.com"))
	assert.False(t, allowed(""))

	assert.True(t, OriginAllowed([]string{"*"})("https://anything.io"))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://docs.example.com"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://docs.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://docs.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRateLimiter(t *testing.T) {
	limit, err := RateLimiter("2-M", "test-signin", nil)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/signin", limit, func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/signin", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = RateLimiter("bogus", "x", nil)
	assert.Error(t, err)
}

func TestDBMiddleware_BindsRequestContext(t *testing.T) {
	db := helpers.NewTestDB(t)

	var queryErr error
	r := gin.New()
	r.Use(DBMiddleware(db))
	r.GET("/departments", func(c *gin.Context) {
		conn, ok := DBFromContext(c)
		require.True(t, ok)
		assert.True(t, conn.Statement.Context == c.Request.Context())

		var count int64
		queryErr = conn.Model(&models.Department{}).Count(&count).Error
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/departments", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, queryErr)

	// отмененный клиентом запрос не доходит до базы
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/departments", nil).WithContext(ctx)
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.ErrorIs(t, queryErr, context.Canceled)
}
