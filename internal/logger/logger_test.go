package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogger_LevelsAndJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Debug("hidden", nil)
	l.Info("batch processed", Fields{"accepted": 2})
	l.Error("record failed", Fields{"title": "x"}, errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (debug suppressed): %q", len(lines), buf.String())
	}

	var info Entry
	if err := json.Unmarshal([]byte(lines[0]), &info); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if info.Level != "INFO" || info.Message != "batch processed" {
		t.Errorf("unexpected entry: %+v", info)
	}

	var errEntry Entry
	if err := json.Unmarshal([]byte(lines[1]), &errEntry); err != nil {
		t.Fatalf("second line is not JSON: %v", err)
	}
	if errEntry.Error != "boom" {
		t.Errorf("Error field = %q, want boom", errEntry.Error)
	}
}

func TestLogger_DebugLevelPassesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Debug("visible", nil)
	l.Warn("also visible", nil)

	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Errorf("got %d lines, want 2", n)
	}
}
