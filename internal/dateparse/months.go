package dateparse

import (
	"sort"
	"strings"
	"time"
)

// monthNames maps recognized month tokens (English and French, full and
// abbreviated, accented and unaccented) to calendar months. French names
// show up constantly in Montreal venue listings.
var monthNames = map[string]time.Month{
	// English
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,

	// French
	"janvier": time.January,
	"février": time.February, "fevrier": time.February, "fév": time.February, "fev": time.February,
	"mars":  time.March,
	"avril": time.April, "avr": time.April,
	"mai":      time.May,
	"juin":     time.June,
	"juillet":  time.July, "juil": time.July,
	"août": time.August, "aout": time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"décembre":  time.December, "decembre": time.December, "déc": time.December,
}

// monthAlternation returns the month tokens as a regexp alternation,
// longest first so full names win over their abbreviations.
func monthAlternation() string {
	names := make([]string, 0, len(monthNames))
	for name := range monthNames {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return strings.Join(names, "|")
}

// lookupMonth resolves a matched month token, tolerating trailing periods
// from abbreviations like "Jan." or "févr.".
func lookupMonth(token string) (time.Month, bool) {
	token = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(token)), ".")
	m, ok := monthNames[token]
	return m, ok
}
