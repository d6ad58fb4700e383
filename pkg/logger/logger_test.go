package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestInitFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "catalog.log")

	prev := slog.Default()
	err := Init(Config{Level: "info", Format: "json", Output: "file", FilePath: path, MaxSize: 1})
	require.NoError(t, err)
	t.Cleanup(func() {
		defaultLogger = nil
		slog.SetDefault(prev)
	})

	InfoContext(ContextWithRequestID(context.Background(), "abc"), "hello", "k", "v")
	Error("Command failed", "error", "boom")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"request_id":"abc"`)
	assert.Contains(t, string(data), `"msg":"Command failed"`)
	assert.Contains(t, string(data), `"level":"ERROR"`)
}

func TestInitRejectsUnknownOutput(t *testing.T) {
	assert.Error(t, Init(Config{Output: "syslog"}))
}

func TestPrinterWritesThroughProcessLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.log")

	prev := slog.Default()
	require.NoError(t, Init(Config{Level: "info", Format: "json", Output: "file", FilePath: path, MaxSize: 1}))
	t.Cleanup(func() {
		defaultLogger = nil
		slog.SetDefault(prev)
	})

	Printer{Level: slog.LevelWarn, Component: "gorm"}.Printf("%s\n[%.3fms] slow query", "repository.go:42", 250.5)
	Printer{Level: slog.LevelDebug, Component: "gorm"}.Printf("SELECT 1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"component":"gorm"`)
	assert.Contains(t, out, `repository.go:42\n[250.500ms] slow query`)
	assert.NotContains(t, out, "SELECT 1")
}
