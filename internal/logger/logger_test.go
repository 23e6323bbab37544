package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.WarnLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestZapWritesStructuredField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZap(zap.New(core))

	log.WarnObj("comparison failed", "compare_error", map[string]any{"kind": "api_error"})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "comparison failed" {
		t.Fatalf("unexpected message %q", entries[0].Message)
	}
	if _, ok := entries[0].ContextMap()["compare_error"]; !ok {
		t.Fatalf("missing compare_error field: %#v", entries[0].ContextMap())
	}
}

func TestEnsureNil(t *testing.T) {
	if _, ok := Ensure(nil).(NopLogger); !ok {
		t.Fatal("Ensure(nil) should return NopLogger")
	}
}

type syncRecorder struct {
	NopLogger
	synced bool
}

func (s *syncRecorder) Sync() error {
	s.synced = true
	return nil
}

func TestSyncFlushesSyncers(t *testing.T) {
	rec := &syncRecorder{}
	if err := Sync(rec); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !rec.synced {
		t.Fatal("Sync did not reach the logger")
	}
	if err := Sync(NopLogger{}); err != nil {
		t.Fatalf("Sync(NopLogger) = %v", err)
	}
	if err := Sync(nil); err != nil {
		t.Fatalf("Sync(nil) = %v", err)
	}
}

func TestZapSync(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	if err := NewZap(zap.New(core)).Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
}
