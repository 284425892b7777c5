// Package logging builds the zap logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps debug|info|warn|error to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// New returns a console logger writing to stderr.
func New(level string, noColor bool) (*zap.Logger, error) {
	return NewWithWriter(os.Stderr, level, noColor)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(w io.Writer, level string, noColor bool) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	enc.EncodeCaller = zapcore.ShortCallerEncoder
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if noColor {
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
