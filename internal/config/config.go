package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Title bounds a candidate title must satisfy after trimming.
type Title struct {
	MinLen int `yaml:"min_len"`
	MaxLen int `yaml:"max_len"`
}

// Dates controls date policy for admission.
type Dates struct {
	// Require rejects candidates with no resolvable date. When false,
	// dateless events pass through with the dateless marker intact.
	Require bool `yaml:"require"`

	// MaxSkewYears bounds resolved dates relative to scrape time.
	MaxSkewYears int `yaml:"max_skew_years"`
}

// Config is the data-driven part of the admission pipeline: the denylist
// and pattern tables live here, not in code, so they can grow without
// code changes.
type Config struct {
	Title Title `yaml:"title"`
	Dates Dates `yaml:"dates"`

	// Denylist holds case-insensitive substrings identifying navigation
	// and boilerplate titles.
	Denylist []string `yaml:"denylist"`

	// ImagePlaceholders holds substrings identifying tracking pixels,
	// spinners, and logos; matching images are nulled, not rejected.
	ImagePlaceholders []string `yaml:"image_placeholders"`

	// BaseURL resolves relative candidate URLs. Empty means relative
	// URLs are rejected.
	BaseURL string `yaml:"base_url"`
}

// Default returns the built-in configuration. The tables collect the junk
// patterns observed across hundreds of venue scrapers.
func Default() *Config {
	return &Config{
		Title: Title{MinLen: 3, MaxLen: 200},
		Dates: Dates{Require: true, MaxSkewYears: 2},
		Denylist: []string{
			"menu",
			"login",
			"sign up",
			"sign in",
			"subscribe",
			"newsletter",
			"follow us",
			"privacy",
			"terms",
			"cookie",
			"home",
			"contact",
			"about us",
			"shop",
			"view all",
			"see all",
			"read more",
			"learn more",
			"load more",
			"buy tickets",
			"skip to content",
			"search",
			"upcoming events",
			"past events",
		},
		ImagePlaceholders: []string{
			"1x1",
			"placeholder",
			"spinner",
			"logo",
			"icon",
			"favicon",
			"blank.",
			"pixel.",
			"data:",
		},
	}
}

// Load reads a YAML config file over the defaults, so a file only needs to
// state what it changes.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if c.Title.MinLen <= 0 || c.Title.MaxLen < c.Title.MinLen {
		return nil, fmt.Errorf("invalid title bounds [%d, %d]", c.Title.MinLen, c.Title.MaxLen)
	}
	return c, nil
}
