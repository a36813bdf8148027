// ============================================================================
// chronos - Civil time and timezone library
// ============================================================================
//
// Package:     logging
// Description: Structured logging for chronos packages and tools
// Created:     2025-12-14
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names used by chronos log lines.
const (
	FieldComponent = "component"
	FieldZone      = "zone"
	FieldDate      = "date"
	FieldPath      = "path"
	FieldCount     = "count"
	FieldError     = "error"
)

// Library code logs through a package-level logger that is a no-op until a
// caller installs one with Set.
var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

// L returns the package-level logger.
func L() *zap.Logger {
	return current.Load()
}

// Set installs l as the package-level logger. A nil logger restores the no-op logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l)
}

// Named returns the package-level logger tagged with a component name.
func Named(component string) *zap.Logger {
	return L().With(zap.String(FieldComponent, component))
}

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (debug, info, warn, error)
	Level string

	// Output format: "json" or "console" (default: console)
	Format string

	// Output writer (default: stderr)
	Output io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "console",
	}
}

// NewLogger creates a zap logger from cfg.
func NewLogger(cfg LoggerConfig) *zap.Logger {
	level := parseLevel(cfg.Level)

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.ToLower(cfg.Format) == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(output), level)
	logger := zap.New(core)
	if cfg.ServiceName != "" {
		logger = logger.Named(cfg.ServiceName)
	}
	return logger
}

// parseLevel converts a string level to a zap level
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
