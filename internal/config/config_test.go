package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Title.MinLen != 3 || c.Title.MaxLen != 200 {
		t.Errorf("title bounds = [%d, %d], want [3, 200]", c.Title.MinLen, c.Title.MaxLen)
	}
	if !c.Dates.Require {
		t.Error("dates should be required by default")
	}
	if c.Dates.MaxSkewYears != 2 {
		t.Errorf("MaxSkewYears = %d, want 2", c.Dates.MaxSkewYears)
	}
	if len(c.Denylist) == 0 {
		t.Error("default denylist is empty")
	}
	if len(c.ImagePlaceholders) == 0 {
		t.Error("default image placeholder list is empty")
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	body := []byte(`
dates:
  require: false
  max_skew_years: 3
base_url: "https://venue.example"
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if c.Dates.Require {
		t.Error("dates.require not overridden")
	}
	if c.Dates.MaxSkewYears != 3 {
		t.Errorf("MaxSkewYears = %d, want 3", c.Dates.MaxSkewYears)
	}
	if c.BaseURL != "https://venue.example" {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	// Untouched defaults survive the overlay.
	if c.Title.MaxLen != 200 {
		t.Errorf("Title.MaxLen = %d, want default 200", c.Title.MaxLen)
	}
	if len(c.Denylist) == 0 {
		t.Error("denylist lost during overlay")
	}
}

func TestLoad_InvalidBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	body := []byte("title:\n  min_len: 10\n  max_len: 5\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() accepted inverted title bounds")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() on missing file did not error")
	}
}
