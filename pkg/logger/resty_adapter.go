/*
Package logger - resty to zap adaptation.
*/
package logger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RestyLoggerConfig tunes the HTTP client adapter.
type RestyLoggerConfig struct {
	SlowThreshold time.Duration
}

func DefaultRestyLoggerConfig() *RestyLoggerConfig {
	return &RestyLoggerConfig{SlowThreshold: 2 * time.Second}
}

// RestyLoggerAdapter satisfies resty.Logger and records one entry per request attempt.
type RestyLoggerAdapter struct {
	logger *zap.Logger
	config *RestyLoggerConfig
}

func NewRestyLoggerAdapter() *RestyLoggerAdapter {
	return NewRestyLoggerAdapterWithConfig(DefaultRestyLoggerConfig())
}

func NewRestyLoggerAdapterWithConfig(config *RestyLoggerConfig) *RestyLoggerAdapter {
	if config == nil {
		config = DefaultRestyLoggerConfig()
	}
	return &RestyLoggerAdapter{logger: Get().Named("http"), config: config}
}

func (l *RestyLoggerAdapter) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *RestyLoggerAdapter) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l *RestyLoggerAdapter) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

// RequestTrace describes one finished request attempt.
type RequestTrace struct {
	Method  string
	Path    string
	Status  int
	Attempt int
	Elapsed time.Duration
	Err     error
}

// Trace logs a request attempt: failures at warn, slow calls at warn, the rest at debug.
func (l *RestyLoggerAdapter) Trace(ctx context.Context, t RequestTrace) {
	log := l.logger
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}

	fields := []zap.Field{
		zap.String("method", t.Method),
		zap.String("path", t.Path),
		zap.Int("status", t.Status),
		zap.Int("attempt", t.Attempt),
		zap.Duration("elapsed", t.Elapsed),
	}

	switch {
	case t.Err != nil:
		log.Warn("HTTP request failed", append(fields, zap.Error(t.Err))...)
	case t.Status >= 400:
		log.Warn("HTTP request rejected", fields...)
	case l.config.SlowThreshold > 0 && t.Elapsed > l.config.SlowThreshold:
		log.Warn("Slow HTTP request", append(fields, zap.String("type", "slow_request"))...)
	default:
		log.Debug("HTTP request completed", fields...)
	}
}
