package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	New("predict").Info("hello")

	output := buf.String()
	if !strings.Contains(output, "component=predict") {
		t.Errorf("expected component=predict in output, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("expected 'hello' in output, got: %s", output)
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, " JSON", &buf)

	New("http").Info("json check")

	if !strings.Contains(buf.String(), `"component":"http"`) {
		t.Errorf("expected JSON component attribute, got: %s", buf.String())
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(ParseLevel("warn"), "text", &buf)

	New("x").Info("dropped")
	New("x").Warn("kept")

	output := buf.String()
	if strings.Contains(output, "dropped") || !strings.Contains(output, "kept") {
		t.Errorf("level filter not applied: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" info ":  slog.LevelInfo,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
