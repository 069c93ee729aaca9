// Package logging configures the structured logger shared by the
// simulator and the command line tools. Records are JSON on the given
// writer; the level comes from FLIGHTSIM_LOG_LEVEL.
package logging

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

const LevelEnv = "FLIGHTSIM_LOG_LEVEL"

// New returns a JSON logger writing to w at the level named by the
// environment, INFO when unset or unknown.
func New(w io.Writer) *slog.Logger {
	return NewWithLevel(w, LevelFromEnv())
}

func NewWithLevel(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceNonFinite,
	})
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LevelFromEnv parses FLIGHTSIM_LOG_LEVEL.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// JSON cannot carry NaN or Inf, and a diverging state is exactly when
// those values need to reach the log.
func replaceNonFinite(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindFloat64 {
		return a
	}
	f := a.Value.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return slog.String(a.Key, nonFiniteString(f))
	}
	return a
}

func nonFiniteString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	default:
		return "-Inf"
	}
}

type runIDKey struct{}

// WithRunID tags ctx with the id of the run being simulated.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// FromContext returns l with the run id from ctx attached, if any.
func FromContext(ctx context.Context, l *slog.Logger) *slog.Logger {
	if l == nil {
		l = Discard()
	}
	if id := RunID(ctx); id != "" {
		return l.With("run_id", id)
	}
	return l
}
