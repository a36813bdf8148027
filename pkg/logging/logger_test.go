package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultLoggerConfig("chronos")
	cfg.Format = "json"
	cfg.Output = &buf

	logger := NewLogger(cfg)
	logger.Info("zone loaded", zap.String(FieldZone, "Europe/Berlin"))
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "zone loaded", line["msg"])
	assert.Equal(t, "Europe/Berlin", line[FieldZone])
	assert.Equal(t, "chronos", line["logger"])
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "warn", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetAndReset(t *testing.T) {
	var buf bytes.Buffer
	Set(NewLogger(LoggerConfig{Level: "debug", Output: &buf}))
	defer Set(nil)

	Named("day").Debug("probing")
	assert.Contains(t, buf.String(), "probing")
	assert.Contains(t, buf.String(), "day")

	Set(nil)
	buf.Reset()
	L().Error("dropped")
	assert.Empty(t, buf.String())
}
