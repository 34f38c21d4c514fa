package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{Level: "debug"}.LogLevel())
	assert.Equal(t, slog.LevelWarn, Config{Level: "WARNING"}.LogLevel())
	assert.Equal(t, slog.LevelError, Config{Level: "error"}.LogLevel())
	assert.Equal(t, slog.LevelInfo, Config{Level: "bogus"}.LogLevel())
}

func TestFromContextIncludesRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(Config{Level: "debug", Format: "json", ServiceName: "caskwatch-test"}, &buf)

	id := GenerateRequestID()
	require.NotEmpty(t, id)
	ctx := WithRequestID(context.Background(), id)

	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), id)
	assert.Contains(t, buf.String(), "caskwatch-test")
}

func TestRequestIDFromContextMissing(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)
}
