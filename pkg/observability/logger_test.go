package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"garbage", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.input), "input %q", tt.input)
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.Info("catalog loaded")

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "catalog loaded", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WarnLevel, &buf)

	logger.Debug("dropped")
	logger.Info("dropped too")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithField("package", "pkgA@1.0.1").Info("manifest registered")

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "pkgA@1.0.1", entry["package"])
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithFields(map[string]interface{}{
		"method": "GET",
		"status": 200,
	}).Info("request handled")

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, float64(200), entry["status"])
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithError(errors.New("cycle detected")).Error("analysis failed")
	entry := lastLogLine(t, &buf)
	assert.Equal(t, "cycle detected", entry["error"])

	// nil error attaches nothing
	buf.Reset()
	logger.WithError(nil).Info("fine")
	entry = lastLogLine(t, &buf)
	_, hasError := entry["error"]
	assert.False(t, hasError)
}

func TestContext_RequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestContext_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))

	// Fallback logger when the context carries none.
	assert.NotNil(t, GetLogger(context.Background()))
}

func TestFromContext_AttachesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	ctx := WithLogger(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-456")

	FromContext(ctx).Info("hello")

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "req-456", entry["request_id"])
}
