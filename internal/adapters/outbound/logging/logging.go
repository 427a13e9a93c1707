// Package logging builds the zap logger shared by the CLI and MCP server.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Environment overrides for the CLI flags.
const (
	EnvLevel  = "UIKRAFT_LOG_LEVEL"
	EnvFormat = "UIKRAFT_LOG_FORMAT"
)

// ParseLevel maps a level name to zapcore.Level. Unknown names yield warn,
// keeping CLI output quiet unless asked otherwise.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}

// New creates a logger writing to stderr. Stdout is reserved for results
// and the MCP stdio transport.
func New(level, format string) *zap.Logger {
	return NewWithSink(level, format, os.Stderr)
}

// NewWithSink creates a logger writing to w.
func NewWithSink(level, format string, w io.Writer) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var encoder zapcore.Encoder
	if strings.ToLower(format) == FormatJSON {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = timeEncoder
		encoderConfig.ConsoleSeparator = " "
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(ParseLevel(level)))
	return zap.New(core)
}

// FromEnv fills empty level and format values from the environment.
func FromEnv(level, format string) (string, string) {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	if format == "" {
		format = os.Getenv(EnvFormat)
	}
	if format == "" {
		format = FormatConsole
	}
	return level, format
}
