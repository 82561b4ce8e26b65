/*
Package logger - resty logger adapter tests
*/
package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestRestyLoggerAdapter tests the printf-style resty.Logger surface
func TestRestyLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer Replace(zap.New(core))()

	adapter := NewRestyLoggerAdapter()
	adapter.Debugf("retrying %s", "GET /api/categories")
	adapter.Warnf("attempt %d failed", 2)
	adapter.Errorf("giving up after %d attempts", 4)

	expected := map[string]zapcore.Level{
		"retrying GET /api/categories": zapcore.DebugLevel,
		"attempt 2 failed":             zapcore.WarnLevel,
		"giving up after 4 attempts":   zapcore.ErrorLevel,
	}
	if logs.Len() != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), logs.Len())
	}
	for _, entry := range logs.All() {
		level, ok := expected[entry.Message]
		if !ok {
			t.Errorf("unexpected message %q", entry.Message)
			continue
		}
		if entry.Level != level {
			t.Errorf("message %q logged at %s, want %s", entry.Message, entry.Level, level)
		}
	}
}

// TestRestyLoggerAdapterTrace tests level selection and request id propagation
func TestRestyLoggerAdapterTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer Replace(zap.New(core))()

	adapter := NewRestyLoggerAdapterWithConfig(&RestyLoggerConfig{SlowThreshold: 10 * time.Millisecond})
	ctx := ContextWithRequestID(context.Background(), "req-123")

	adapter.Trace(ctx, RequestTrace{Method: "GET", Path: "/api/orders/all", Status: 200, Attempt: 1, Elapsed: time.Millisecond})
	adapter.Trace(ctx, RequestTrace{Method: "GET", Path: "/api/orders/all", Status: 200, Attempt: 1, Elapsed: 50 * time.Millisecond})
	adapter.Trace(ctx, RequestTrace{Method: "POST", Path: "/api/coupons", Status: 422, Attempt: 1})
	adapter.Trace(ctx, RequestTrace{Method: "GET", Path: "/api/users/all", Attempt: 3, Err: errors.New("connection refused")})

	messages := map[string]zapcore.Level{}
	for _, entry := range logs.All() {
		messages[entry.Message] = entry.Level
		found := false
		for _, field := range entry.Context {
			if field.Key == "request_id" && field.String == "req-123" {
				found = true
			}
		}
		if !found {
			t.Errorf("entry %q is missing the request id", entry.Message)
		}
	}

	cases := []struct {
		msg   string
		level zapcore.Level
	}{
		{"HTTP request completed", zapcore.DebugLevel},
		{"Slow HTTP request", zapcore.WarnLevel},
		{"HTTP request rejected", zapcore.WarnLevel},
		{"HTTP request failed", zapcore.WarnLevel},
	}
	for _, tc := range cases {
		level, ok := messages[tc.msg]
		if !ok {
			t.Errorf("missing %q", tc.msg)
			continue
		}
		if level != tc.level {
			t.Errorf("%q logged at %s, want %s", tc.msg, level, tc.level)
		}
	}
}
