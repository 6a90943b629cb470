package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerWritesMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	logger := slog.New(newConsoleHandler(&buf, levelVar))
	logger.Info("uploaded asset", "project", "acme", "media_id", 456)

	out := buf.String()
	if !strings.Contains(out, "uploaded asset") {
		t.Fatalf("missing message in output: %q", out)
	}
	if !strings.Contains(out, "project=acme") {
		t.Fatalf("missing attr in output: %q", out)
	}
	if !strings.Contains(out, "media_id=456") {
		t.Fatalf("missing attr in output: %q", out)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	logger := slog.New(newConsoleHandler(&buf, levelVar))
	logger.Info("created record", "title", "Engineer at Acme, Inc.")

	if !strings.Contains(buf.String(), `title="Engineer at Acme, Inc."`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)

	logger := slog.New(newConsoleHandler(&buf, levelVar))
	logger.Info("should be dropped")
	logger.Warn("should be kept")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Fatalf("info record leaked through: %q", out)
	}
	if !strings.Contains(out, "should be kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestConsoleHandlerWithGroupAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	logger := slog.New(newConsoleHandler(&buf, levelVar)).WithGroup("sync").With("run", "abc")
	logger.Info("done")

	if !strings.Contains(buf.String(), "sync.run=abc") {
		t.Fatalf("expected grouped attr, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
