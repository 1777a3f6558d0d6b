// Package logging provides the process logger. Lines go to stderr so that
// stdout carries only the program's result.
package logging

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log level constants
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var (
	zapLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	mu      sync.RWMutex
	base    = newLogger(os.Stderr)
	current = base.Sugar()
)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "lvl",
	NameKey:        "name",
	CallerKey:      "caller",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

func newLogger(w io.Writer) *zap.Logger {
	return zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(w),
			zapLevel,
		),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)
}

// SetLevel sets the log level. Unknown levels fall back to info and are
// reported as false.
func SetLevel(level string) bool {
	switch level {
	case LevelDebug:
		zapLevel.SetLevel(zapcore.DebugLevel)
	case LevelInfo:
		zapLevel.SetLevel(zapcore.InfoLevel)
	case LevelWarn:
		zapLevel.SetLevel(zapcore.WarnLevel)
	case LevelError:
		zapLevel.SetLevel(zapcore.ErrorLevel)
	default:
		zapLevel.SetLevel(zapcore.InfoLevel)
		return false
	}
	return true
}

// Level returns the current level name.
func Level() string {
	return zapLevel.Level().String()
}

// SetOutput redirects log lines to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = newLogger(w)
	current = base.Sugar()
}

func logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// With returns a logger that adds the given key/value pairs to every line.
func With(keysAndValues ...any) *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	// The returned logger is called directly, not through the helpers below.
	return base.WithOptions(zap.AddCallerSkip(-1)).Sugar().With(keysAndValues...)
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) {
	logger().Debugf(format, args...)
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	logger().Infof(format, args...)
}

// Warnf logs at warn level.
func Warnf(format string, args ...any) {
	logger().Warnf(format, args...)
}

// Errorf logs at error level.
func Errorf(format string, args ...any) {
	logger().Errorf(format, args...)
}

// Sync flushes buffered log lines.
func Sync() error {
	return logger().Sync()
}
