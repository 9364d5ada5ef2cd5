package pipeline

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/hann12-34/discovr-pipeline/internal/config"
	"github.com/hann12-34/discovr-pipeline/internal/dateparse"
	"github.com/hann12-34/discovr-pipeline/internal/event"
)

// Reason is a machine-readable rejection code, surfaced in reports so
// callers can see why records were dropped instead of losing them silently.
type Reason string

const (
	ReasonEmptyTitle    Reason = "empty_title"
	ReasonTitleTooShort Reason = "title_too_short"
	ReasonTitleTooLong  Reason = "title_too_long"
	ReasonDenylisted    Reason = "denylisted_title"
	ReasonMarkupLeak    Reason = "markup_in_title"
	ReasonNoDate        Reason = "no_resolvable_date"
	ReasonBadURL        Reason = "unresolvable_url"
	ReasonDuplicate     Reason = "duplicate"
	ReasonInvalidRecord Reason = "invalid_record"
)

// markupLeakPatterns catch CSS/JS fragments that venue pages leak into
// scraped titles ("fill:#ffffff;stroke:none" and friends).
var markupLeakPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[{}<>]`),
	regexp.MustCompile(`(?i)\b(fill|stroke|display|font-family|background|color)\s*:`),
	regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b`),
	regexp.MustCompile(`(?i)\bfunction\s*\(`),
	regexp.MustCompile(`=>`),
}

// Filter applies the admission checks that decide whether a candidate is
// real content. All policy tables come from the config.
type Filter struct {
	cfg *config.Config
}

// NewFilter creates a Filter over the given config.
func NewFilter(cfg *config.Config) *Filter {
	return &Filter{cfg: cfg}
}

// Check runs the ordered admission checks. It returns the first failing
// reason, or ok=true when the candidate passes.
func (f *Filter) Check(c *event.CandidateEvent, res dateparse.Resolution) (Reason, bool) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return ReasonEmptyTitle, false
	}
	if len([]rune(title)) < f.cfg.Title.MinLen {
		return ReasonTitleTooShort, false
	}
	if len([]rune(title)) > f.cfg.Title.MaxLen {
		return ReasonTitleTooLong, false
	}

	lower := strings.ToLower(title)
	for _, token := range f.cfg.Denylist {
		if strings.Contains(lower, strings.ToLower(token)) {
			return ReasonDenylisted, false
		}
	}

	for _, pattern := range markupLeakPatterns {
		if pattern.MatchString(title) {
			return ReasonMarkupLeak, false
		}
	}

	if f.cfg.Dates.Require && res.Dateless {
		return ReasonNoDate, false
	}

	return "", true
}

// ResolveURL validates the candidate's source URL. Empty URLs are allowed
// through as empty. Relative URLs resolve against the configured base URL
// when one is set; otherwise they fail.
func (f *Filter) ResolveURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.IsAbs() {
		if u.Scheme != "http" && u.Scheme != "https" {
			return "", false
		}
		return u.String(), true
	}

	if f.cfg.BaseURL == "" {
		return "", false
	}
	base, err := url.Parse(f.cfg.BaseURL)
	if err != nil || !base.IsAbs() {
		return "", false
	}
	return base.ResolveReference(u).String(), true
}

// CleanImage nulls placeholder, tracking-pixel, and non-absolute image
// URLs. A bad image never rejects the event, it just loses the image.
func (f *Filter) CleanImage(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	for _, token := range f.cfg.ImagePlaceholders {
		if strings.Contains(lower, strings.ToLower(token)) {
			return ""
		}
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.String()
}
