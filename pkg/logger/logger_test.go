package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStructuredMethodsForwardFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core)).With(zap.String("component", "worker"))

	l.Debug("debug line", zap.Int("n", 1))
	l.Info("worker started", zap.Duration("idle_interval", 0))
	l.Warn("warn line")
	l.Error("error line", zap.String("payload", "{"))

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	wantLevels := []zapcore.Level{zap.DebugLevel, zap.InfoLevel, zap.WarnLevel, zap.ErrorLevel}
	for i, e := range entries {
		if e.Level != wantLevels[i] {
			t.Fatalf("entry %d level = %s, want %s", i, e.Level, wantLevels[i])
		}
		if e.ContextMap()["component"] != "worker" {
			t.Fatalf("entry %d lost component field: %v", i, e.ContextMap())
		}
	}
	if entries[3].ContextMap()["payload"] != "{" {
		t.Fatalf("payload field = %v", entries[3].ContextMap())
	}
}

func TestWithContextAddsRequestFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := context.WithValue(context.Background(), RequestIdKey, "req-1")
	ctx = context.WithValue(ctx, UserIdKey, "storefront-web")

	FromZap(zap.New(core)).WithContext(ctx).Info("http request")

	fields := logs.All()[0].ContextMap()
	if fields["request_id"] != "req-1" || fields["user_id"] != "storefront-web" {
		t.Fatalf("fields = %v", fields)
	}
}

func TestNopAndNilZap(t *testing.T) {
	NewNop().Info("discarded")
	FromZap(nil).Warn("discarded")
}
