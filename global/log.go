package global

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger with context-first methods.
type Logger struct {
	Sub *zap.Logger
}

var (
	logger  *Logger
	logOnce sync.Once
)

// Log returns the process logger, built once from Conf.LogLevel.
func Log() *Logger {
	logOnce.Do(func() {
		lvl, err := ParseLevel(Conf.LogLevel)
		logger = &Logger{Sub: newZap(lvl)}
		if err != nil {
			logger.Warn(context.Background(), "invalid log level, falling back to info",
				zap.String("level", Conf.LogLevel),
				zap.Error(err),
			)
		}
	})
	return logger
}

// ParseLevel returns the zap level named level, "" being info.
// On error the info level is returned alongside.
func ParseLevel(level string) (zapcore.Level, error) {
	lvl := zapcore.InfoLevel
	if level == "" {
		return lvl, nil
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, errors.Wrapf(err, "invalid log level %q", level)
	}
	return lvl, nil
}

func newZap(lvl zapcore.Level) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.TimeKey = ""
	sub, err := cfg.Build()
	if err != nil {
		// Only happens when stderr cannot be opened
		return zap.NewNop()
	}
	return sub
}

func (l *Logger) Debug(_ context.Context, msg string, fields ...zap.Field) {
	l.Sub.Debug(msg, fields...)
}

func (l *Logger) Info(_ context.Context, msg string, fields ...zap.Field) {
	l.Sub.Info(msg, fields...)
}

func (l *Logger) Warn(_ context.Context, msg string, fields ...zap.Field) {
	l.Sub.Warn(msg, fields...)
}

func (l *Logger) Error(_ context.Context, msg string, fields ...zap.Field) {
	l.Sub.Error(msg, fields...)
}

// Sync flushes buffered entries, ignoring the error returned for
// non-syncable outputs such as terminals.
func (l *Logger) Sync() {
	_ = l.Sub.Sync()
}
