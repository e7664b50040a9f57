package logger

import (
	"context"
	"testing"
	"time"
)

func TestInitAndLogging(t *testing.T) {
	Init("development")

	if GetLogger() == nil {
		t.Fatal("expected logger to be initialized")
	}

	// Init is idempotent.
	Init("production")
	if GetLogger() == nil {
		t.Fatal("expected logger to survive repeated Init")
	}

	ctx := context.WithValue(context.Background(), "request_id", "test-request-id")

	Info(ctx, "info message")
	Debug(ctx, "debug message")
	Warn(ctx, "warn message")
	Error(ctx, "error message")
	LogRequest(ctx, "GET", "/api/v1/contractors", 200, 15*time.Millisecond, "127.0.0.1")
}

func TestWithContext(t *testing.T) {
	Init("development")

	if WithContext(nil) == nil {
		t.Error("expected base logger for nil context")
	}

	if WithContext(context.Background()) == nil {
		t.Error("expected base logger for context without request id")
	}

	ctx := context.WithValue(context.Background(), RequestIDKey, "typed-key-id")
	if WithContext(ctx) == nil {
		t.Error("expected logger enriched from typed context key")
	}
}
