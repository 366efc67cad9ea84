package logger

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN", slog.LevelInfo))
	assert.Equal(t, slog.LevelDebug, parseLevel(" debug ", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, parseLevel("", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, parseLevel("bogus", slog.LevelError))
}

func TestSetOutputFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelWarn)
	defer Setup("development", "")

	Info("hidden")
	Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}

func TestFromContext(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.Equal(t, custom, FromContext(WithContext(context.Background(), custom)))
	assert.Equal(t, Default(), FromContext(context.Background()))
}

func TestGinMiddleware(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelDebug)
	defer Setup("development", "")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/missing", func(c *gin.Context) {
		c.Set("identity", "teacher")
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "path=/missing")
	assert.Contains(t, buf.String(), "status=404")
	assert.Contains(t, buf.String(), "identity=teacher")
}
