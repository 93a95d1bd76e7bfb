package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "DEBUG", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "WARN", want: slog.LevelWarn},
		{in: "ERROR", want: slog.LevelError},
		{in: "verbose", want: slog.LevelError},
		{in: "", want: slog.LevelError},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "INFO")
	log.Info("analysis complete", "url", "https://example.com")
	log.Debug("dropped")

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("output is not a single JSON record: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "analysis complete" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["url"] != "https://example.com" {
		t.Errorf("url = %v", rec["url"])
	}
	if _, ok := rec["source"]; !ok {
		t.Error("source attribute missing")
	}
}
