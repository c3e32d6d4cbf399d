package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{" warn ", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithHandler(slog.NewTextHandler(&buf, nil), "loader")

	logger.Info("dataset loaded", "rows", 3)
	if out := buf.String(); !strings.Contains(out, "component=loader") || !strings.Contains(out, "rows=3") {
		t.Errorf("missing component or attrs in %q", out)
	}

	buf.Reset()
	logger.WithComponent("analyzer").Info("pass complete")
	if out := buf.String(); !strings.Contains(out, "component=analyzer") {
		t.Errorf("missing overridden component in %q", out)
	}
}
