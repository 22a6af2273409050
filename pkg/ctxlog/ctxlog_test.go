package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "text", "debug")
	ctx := WithLogger(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Fatalf("expected the embedded logger back")
	}
	FromContext(ctx).Debug("lowering function", "name", "main")
	if !strings.Contains(buf.String(), "name=main") {
		t.Fatalf("expected debug record, got %q", buf.String())
	}

	if FromContext(context.Background()) != slog.Default() {
		t.Fatalf("expected slog.Default() when no logger is embedded")
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "JSON", "warn").Info("dropped")
	New(&buf, "json", "warn").Warn("kept", "kind", "TYPE_MAPPING_MISS")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, `"kind":"TYPE_MAPPING_MISS"`) {
		t.Fatalf("expected JSON output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
