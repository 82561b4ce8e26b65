/*
Package logger is the process-wide structured logging facade.

The API client, the state containers, the mock backend and both commands log
through it, so one configuration decides level, encoding and destination.
Until Init runs every call is a no-op.
*/
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"backoffice/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	global = zap.NewNop()
	level  = zap.NewAtomicLevel()
)

// Init builds the global logger. env only matters when cfg.Format is empty:
// development gets the console encoder, everything else JSON.
func Init(cfg *config.LogConfig, env string) error {
	sink, err := openSink(cfg)
	if err != nil {
		return err
	}
	level.SetLevel(parseLevel(cfg.Level))

	core := zapcore.NewCore(newEncoder(cfg.Format, env), sink, level)
	global = zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	return nil
}

func newEncoder(format, env string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder
	ec.FunctionKey = zapcore.OmitKey

	if format == "" {
		format = "json"
		if env == "development" || env == "dev" {
			format = "console"
		}
	}
	if format == "console" {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// openSink resolves log.output. A file sink rotates at 10MB and keeps a week
// of compressed backups.
func openSink(cfg *config.LogConfig) (zapcore.WriteSyncer, error) {
	switch cfg.Output {
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     7,
			Compress:   true,
		}), nil
	case "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "", "stdout":
		return zapcore.Lock(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}
}

// Replace swaps the global logger and returns a func restoring the previous
// one. A nil logger installs a no-op.
func Replace(l *zap.Logger) func() {
	prev := global
	if l == nil {
		l = zap.NewNop()
	}
	global = l
	return func() { global = prev }
}

func parseLevel(s string) zapcore.Level {
	l, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// Get returns the global logger, never nil.
func Get() *zap.Logger { return global }

// UpdateLevel changes the level of a running logger.
func UpdateLevel(s string) { level.SetLevel(parseLevel(s)) }

// Sync flushes buffered entries. Terminals and pipes reject fsync; those
// errors are not worth reporting.
func Sync() error {
	err := global.Sync()
	if err == nil || errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EBADF) {
		return nil
	}
	return err
}

func With(fields ...zap.Field) *zap.Logger { return global.With(fields...) }

func WithRequestID(requestID string) *zap.Logger {
	return global.With(zap.String("request_id", requestID))
}

// FromContext returns the global logger tagged with the request id carried
// by ctx, if any.
func FromContext(ctx context.Context) *zap.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return WithRequestID(id)
	}
	return global
}

func Debug(msg string, fields ...zap.Field) { global.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { global.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { global.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { global.Error(msg, fields...) }
