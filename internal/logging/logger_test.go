package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected slog.Level
	}{
		{"debug", "DEBUG", slog.LevelDebug},
		{"lowercase", "debug", slog.LevelDebug},
		{"info", "INFO", slog.LevelInfo},
		{"warn", "WARN", slog.LevelWarn},
		{"warning", "Warning", slog.LevelWarn},
		{"error", "ERROR", slog.LevelError},
		{"padded", " error ", slog.LevelError},
		{"invalid", "LOUD", slog.LevelInfo},
		{"empty", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.value); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "error")
	if got := LevelFromEnv(); got != slog.LevelError {
		t.Errorf("expected error level, got %v", got)
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithLevel(&buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("tick", "speed", 42.5, "vy", math.NaN())

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected a single JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "tick" {
		t.Errorf("expected msg tick, got %v", rec["msg"])
	}
	if rec["speed"] != 42.5 {
		t.Errorf("expected speed 42.5, got %v", rec["speed"])
	}
	if rec["vy"] != "NaN" {
		t.Errorf("expected NaN to be logged as a string, got %v", rec["vy"])
	}
}

func TestRunIDContext(t *testing.T) {
	ctx := context.Background()
	if RunID(ctx) != "" {
		t.Error("expected empty run id")
	}

	ctx = WithRunID(ctx, "abc")
	if RunID(ctx) != "abc" {
		t.Errorf("expected run id abc, got %q", RunID(ctx))
	}

	var buf bytes.Buffer
	FromContext(ctx, NewWithLevel(&buf, slog.LevelInfo)).Info("start")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["run_id"] != "abc" {
		t.Errorf("expected run_id attribute, got %v", rec)
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
	FromContext(context.Background(), nil).Info("nothing")
}
