// Package middleware_test provides behavior tests for the API middleware package.
package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jroosing/zonekeeper/internal/api/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func keyedRouter(expected string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequireAPIKey(expected))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func get(r http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ============================================================================
// RequireAPIKey Middleware Tests
// ============================================================================

func TestRequireAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		sent     string
		want     int
	}{
		{"valid key", "secret", "secret", http.StatusOK},
		{"wrong key", "secret", "nope", http.StatusUnauthorized},
		{"missing key", "secret", "", http.StatusUnauthorized},
		{"no key configured", "", "", http.StatusOK},
		{"no key configured, key sent anyway", "", "whatever", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(keyedRouter(tt.expected), tt.sent)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireAPIKey_RejectionBodyIsJSON(t *testing.T) {
	w := get(keyedRouter("secret"), "nope")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}

// ============================================================================
// SlogRequestLogger Middleware Tests
// ============================================================================

func loggedRouter(logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.SlogRequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
	r.GET("/missing", func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{}) })
	r.GET("/boom", func(c *gin.Context) { c.JSON(http.StatusInternalServerError, gin.H{}) })
	return r
}

func TestSlogRequestLogger_LevelsFollowStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	router := loggedRouter(logger)

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Actor", "alice")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "actor=alice")
	assert.Contains(t, out, "path=/boom")
}

func TestSlogRequestLogger_NilLoggerDoesNotPanic(t *testing.T) {
	router := loggedRouter(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// Actor Tests
// ============================================================================

func TestActor(t *testing.T) {
	var seen string
	r := gin.New()
	r.GET("/test", func(c *gin.Context) {
		seen = middleware.Actor(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Actor", "bob")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "bob", seen)

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, middleware.DefaultActor, seen)
}
