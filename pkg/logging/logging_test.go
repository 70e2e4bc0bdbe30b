package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "json", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("Todo item added", "id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	if entry["msg"] != "Todo item added" || entry["id"] != float64(7) {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "text", slog.LevelDebug).Debug("List request received")

	if !strings.Contains(buf.String(), "List request received") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

// keepDefault restores the process logger when the test ends.
func keepDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetupReadsLogLevel(t *testing.T) {
	keepDefault(t)
	ctx := context.Background()

	t.Setenv("LOG_LEVEL", "debug")
	Setup()
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		t.Error("LOG_LEVEL=debug should enable debug logs")
	}

	t.Setenv("LOG_LEVEL", "")
	Setup()
	if slog.Default().Enabled(ctx, slog.LevelDebug) || !slog.Default().Enabled(ctx, slog.LevelInfo) {
		t.Error("empty LOG_LEVEL should default to info")
	}
}

func TestSetupWithLevel(t *testing.T) {
	keepDefault(t)
	ctx := context.Background()

	SetupWithLevel(slog.LevelWarn)
	if slog.Default().Enabled(ctx, slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !slog.Default().Enabled(ctx, slog.LevelWarn) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestSetupWithInstallsDefault(t *testing.T) {
	keepDefault(t)

	var buf bytes.Buffer
	logger := SetupWith(&buf, "json", "info")
	if slog.Default() != logger {
		t.Fatal("SetupWith should install the returned logger as default")
	}
	slog.Info("Server starting")
	if !strings.Contains(buf.String(), `"msg":"Server starting"`) {
		t.Errorf("expected default logger to write JSON, got %q", buf.String())
	}
}
