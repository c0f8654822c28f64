package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, levelFor("development", ""))
	assert.Equal(t, slog.LevelInfo, levelFor("production", ""))
	assert.Equal(t, slog.LevelWarn, levelFor("development", "warn"))
	assert.Equal(t, slog.LevelInfo, levelFor("production", "nonsense"))
}

func TestFromContext_AddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	setup("production", &buf)
	t.Cleanup(func() { setup("development", &bytes.Buffer{}) })

	ctx := WithUserID(WithRequestID(context.Background(), "req-42"), 7)
	FromContext(ctx).Info("document uploaded")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"user_id":7`)
	assert.Contains(t, out, `"service":"docflow"`)
}

func TestUserID_ZeroIsAnonymous(t *testing.T) {
	_, ok := UserID(WithUserID(context.Background(), 0))
	assert.False(t, ok)

	_, ok = UserID(context.Background())
	assert.False(t, ok)
}
