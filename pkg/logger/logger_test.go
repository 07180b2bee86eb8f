package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndGetLogger(t *testing.T) {
	Init("development")
	require.NotNil(t, GetLogger())

	// Init is once-only; a second call keeps the same logger.
	first := GetLogger()
	Init("production")
	assert.Same(t, first, GetLogger())
}

func TestWithContext(t *testing.T) {
	Init("development")

	assert.NotNil(t, WithContext(nil))
	assert.NotNil(t, WithContext(context.Background()))

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	assert.NotNil(t, WithContext(ctx))

	// Logging helpers must not panic.
	Info(ctx, "info message")
	Debug(ctx, "debug message")
	Warn(ctx, "warn message")
	Error(ctx, "error message")
}
