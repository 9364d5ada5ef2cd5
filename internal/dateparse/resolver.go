package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Resolution is the outcome of date resolution: either a concrete UTC
// timestamp or an explicit dateless marker. Dateless is a first-class
// state, never a sentinel date.
type Resolution struct {
	Time     time.Time
	Dateless bool
}

// Dated wraps a concrete resolved timestamp.
func Dated(t time.Time) Resolution {
	return Resolution{Time: t.UTC()}
}

// NoDate is the resolution for records with no usable date signal.
var NoDate = Resolution{Dateless: true}

const (
	// DefaultMaxSkewYears bounds how far a resolved date may sit from the
	// reference time before it is treated as a parse failure. Guards
	// against year-rollover bugs producing dates years off.
	DefaultMaxSkewYears = 2

	// DefaultWindow is how many characters of surrounding text are scanned
	// for a month-name date as a last resort.
	DefaultWindow = 300
)

// machineFormats are tried verbatim before any heuristic. Covers ISO-8601
// strings and HTML datetime attribute values.
var machineFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

var (
	ordinalPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th|er|e)\b`)

	monthFirstPattern = regexp.MustCompile(`(?i)\b(` + monthAlternation() + `)\.?\s+(\d{1,2})(?:\s*,?\s*(\d{4}))?\b`)
	dayFirstPattern   = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:de\s+)?(` + monthAlternation() + `)\b\.?(?:\s*,?\s*(\d{4}))?`)

	urlISOPattern   = regexp.MustCompile(`/(20\d{2})-(\d{1,2})-(\d{1,2})(?:[/?#]|$)`)
	urlSlashPattern = regexp.MustCompile(`/(20\d{2})/(\d{1,2})/(\d{1,2})(?:[/?#]|$)`)
)

// Resolver turns the raw date representations scrapers produce into a
// canonical Resolution. All year inference and plausibility checks are
// relative to Now, which is injected so behavior is reproducible in tests.
//
// Purely numeric dates without a recognized month name (for example
// "03/04/2026") are deliberately unparseable: scrapers disagree on whether
// those are MM/DD or DD/MM, so guessing fabricates data.
type Resolver struct {
	Now          time.Time
	MaxSkewYears int
	Window       int
}

// NewResolver creates a Resolver with default skew and window bounds.
func NewResolver(now time.Time) *Resolver {
	return &Resolver{
		Now:          now.UTC(),
		MaxSkewYears: DefaultMaxSkewYears,
		Window:       DefaultWindow,
	}
}

// Resolve applies the ordered resolution strategies, first match wins:
//
//  1. machine-parseable rawDate (ISO-8601, datetime attributes)
//  2. free-text month-name patterns in rawDate (English/French)
//  3. a date embedded in the source URL path
//  4. a month-name pattern in a bounded window of surrounding text
//
// Any strategy producing a date outside the plausibility bounds counts as
// a failure for that strategy. When nothing matches, the result is NoDate;
// resolution never errors.
func (r *Resolver) Resolve(rawDate, sourceURL, context string) Resolution {
	if t, ok := r.parseMachine(rawDate); ok {
		return Dated(t)
	}
	if t, ok := r.parseFreeText(rawDate); ok {
		return Dated(t)
	}
	if t, ok := r.parseURL(sourceURL); ok {
		return Dated(t)
	}
	if t, ok := r.parseFreeText(r.window(context)); ok {
		return Dated(t)
	}
	return NoDate
}

// parseMachine tries the exact machine formats.
func (r *Resolver) parseMachine(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range machineFormats {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		t = t.UTC()
		if !r.plausible(t) {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// parseFreeText matches month-name date patterns. Ordinal suffixes
// ("21st", "3rd", French "1er") are stripped before matching.
func (r *Resolver) parseFreeText(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	raw = ordinalPattern.ReplaceAllString(raw, "$1")

	// Day-first ("3 juillet 2026", "21 March") before month-first
	// ("March 3, 2026", "déc. 25"); both require a recognized month name.
	if m := dayFirstPattern.FindStringSubmatch(raw); m != nil {
		if t, ok := r.buildDate(m[2], m[1], m[3]); ok {
			return t, true
		}
	}
	if m := monthFirstPattern.FindStringSubmatch(raw); m != nil {
		if t, ok := r.buildDate(m[1], m[2], m[3]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseURL extracts /YYYY-MM-DD/ or /YYYY/MM/DD/ path segments.
func (r *Resolver) parseURL(sourceURL string) (time.Time, bool) {
	if sourceURL == "" {
		return time.Time{}, false
	}
	for _, pattern := range []*regexp.Regexp{urlISOPattern, urlSlashPattern} {
		m := pattern.FindStringSubmatch(sourceURL)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if t, ok := r.calendarDate(year, time.Month(month), day); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// buildDate assembles a date from matched month/day/year tokens, inferring
// the nearest future year when the year is absent.
func (r *Resolver) buildDate(monthToken, dayToken, yearToken string) (time.Time, bool) {
	month, ok := lookupMonth(monthToken)
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayToken)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	if yearToken != "" {
		year, err := strconv.Atoi(yearToken)
		if err != nil {
			return time.Time{}, false
		}
		return r.calendarDate(year, month, day)
	}

	// No year: nearest future occurrence. A month/day already past in the
	// reference year rolls to next year; today and later stay put.
	year := r.Now.Year()
	today := time.Date(r.Now.Year(), r.Now.Month(), r.Now.Day(), 0, 0, 0, 0, time.UTC)
	candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		candidate = time.Date(year+1, month, day, 0, 0, 0, 0, time.UTC)
	}
	return r.checkCalendar(candidate, month, day)
}

// calendarDate validates an explicit year/month/day triple.
func (r *Resolver) calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return r.checkCalendar(t, month, day)
}

// checkCalendar rejects dates that time.Date normalized away (Feb 30) and
// dates outside the plausibility bounds.
func (r *Resolver) checkCalendar(t time.Time, month time.Month, day int) (time.Time, bool) {
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	if !r.plausible(t) {
		return time.Time{}, false
	}
	return t, true
}

// plausible bounds a resolved date to MaxSkewYears either side of Now.
func (r *Resolver) plausible(t time.Time) bool {
	skew := r.MaxSkewYears
	if skew <= 0 {
		skew = DefaultMaxSkewYears
	}
	return t.After(r.Now.AddDate(-skew, 0, 0)) && t.Before(r.Now.AddDate(skew, 0, 0))
}

// window truncates surrounding text to the scan window.
func (r *Resolver) window(context string) string {
	limit := r.Window
	if limit <= 0 {
		limit = DefaultWindow
	}
	runes := []rune(context)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes)
}
