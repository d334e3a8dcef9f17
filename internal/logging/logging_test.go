package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	return m
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "INFO")

	ctx := WithRequestID(context.Background(), "req-123")
	l.InfoContext(ctx, "hello", "k", "v")

	m := decodeLine(t, &buf)
	if m["request_id"] != "req-123" {
		t.Errorf("expected request_id, got %v", m)
	}
	if m["msg"] != "hello" || m["k"] != "v" {
		t.Errorf("unexpected record %v", m)
	}
	if _, ok := m["stacktrace"]; ok {
		t.Error("info records must not carry a stack trace")
	}
}

func TestNew_ErrorHasStackTrace(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "INFO").Error("boom")

	m := decodeLine(t, &buf)
	if _, ok := m["stacktrace"]; !ok {
		t.Errorf("expected stacktrace, got %v", m)
	}
	if _, ok := m["request_id"]; ok {
		t.Error("no request id without one in the context")
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "WARN")
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected nothing at INFO, got %q", buf.String())
	}
	l.With("component", "test").Warn("kept")
	m := decodeLine(t, &buf)
	if m["component"] != "test" {
		t.Errorf("WithAttrs lost: %v", m)
	}
}

func TestRequestID_Empty(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
