// ABOUTME: Tests for logger construction, levels, and formats.
// ABOUTME: Captures output in a buffer to check filtering and encoding.
package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("", "", &buf)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("expected warn level, got %s", logger.GetLevel())
	}

	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn message should be written")
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "json", &buf)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	logger.WithField("count", 3).Debug("seeded")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "seeded" {
		t.Errorf("msg = %v, want seeded", rec["msg"])
	}
	if rec["count"] != float64(3) {
		t.Errorf("count = %v, want 3", rec["count"])
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New("loud", "text", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := New("info", "xml", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nowhere")
}
