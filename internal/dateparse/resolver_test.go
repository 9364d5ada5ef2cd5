package dateparse

import (
	"testing"
	"time"
)

// Fixed reference time for reproducible year inference: 2025-06-15.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testResolver() *Resolver {
	return NewResolver(testNow)
}

func TestResolve_MachineDates(t *testing.T) {
	tests := []struct {
		name    string
		rawDate string
		want    time.Time
	}{
		{
			name:    "ISO date",
			rawDate: "2025-11-08",
			want:    time.Date(2025, time.November, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "RFC3339 datetime attribute",
			rawDate: "2026-03-04T19:30:00-05:00",
			want:    time.Date(2026, time.March, 5, 0, 30, 0, 0, time.UTC),
		},
		{
			name:    "Datetime attribute without zone",
			rawDate: "2026-03-04T19:30",
			want:    time.Date(2026, time.March, 4, 19, 30, 0, 0, time.UTC),
		},
		{
			name:    "Slash ISO order",
			rawDate: "2026/03/04",
			want:    time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
		},
	}

	r := testResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.rawDate, "", "")
			if got.Dateless {
				t.Fatalf("Resolve(%q) = dateless, want %v", tt.rawDate, tt.want)
			}
			if !got.Time.Equal(tt.want) {
				t.Errorf("Resolve(%q) = %v, want %v", tt.rawDate, got.Time, tt.want)
			}
		})
	}
}

func TestResolve_FreeText(t *testing.T) {
	tests := []struct {
		name    string
		rawDate string
		want    time.Time
	}{
		{
			name:    "Month day before reference rolls to next year",
			rawDate: "March 3",
			want:    time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Month day after reference stays in current year",
			rawDate: "December 25",
			want:    time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Abbreviated month with explicit year",
			rawDate: "Nov 8, 2025",
			want:    time.Date(2025, time.November, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Ordinal suffix stripped",
			rawDate: "March 21st, 2026",
			want:    time.Date(2026, time.March, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Day before month",
			rawDate: "21 March 2026",
			want:    time.Date(2026, time.March, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "French month",
			rawDate: "3 juillet 2026",
			want:    time.Date(2026, time.July, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "French accented month without year",
			rawDate: "5 février",
			want:    time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "French first-of-month ordinal",
			rawDate: "1er août 2025",
			want:    time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Weekday noise around date",
			rawDate: "Saturday, March 7, 2026",
			want:    time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC),
		},
	}

	r := testResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.rawDate, "", "")
			if got.Dateless {
				t.Fatalf("Resolve(%q) = dateless, want %v", tt.rawDate, tt.want)
			}
			if !got.Time.Equal(tt.want) {
				t.Errorf("Resolve(%q) = %v, want %v", tt.rawDate, got.Time, tt.want)
			}
		})
	}
}

func TestResolve_URLDates(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want time.Time
	}{
		{
			name: "Hyphenated path segment",
			url:  "https://venue.example/events/2026-03-04/jazz-night",
			want: time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Slash-separated path",
			url:  "https://venue.example/2025/11/08/opening",
			want: time.Date(2025, time.November, 8, 0, 0, 0, 0, time.UTC),
		},
	}

	r := testResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve("", tt.url, "")
			if got.Dateless {
				t.Fatalf("Resolve(url=%q) = dateless, want %v", tt.url, tt.want)
			}
			if !got.Time.Equal(tt.want) {
				t.Errorf("Resolve(url=%q) = %v, want %v", tt.url, got.Time, tt.want)
			}
		})
	}
}

func TestResolve_ContextWindow(t *testing.T) {
	r := testResolver()

	context := "Doors at 8pm. Join us on November 8, 2025 for an unforgettable night of live music."
	got := r.Resolve("", "", context)
	if got.Dateless {
		t.Fatal("Resolve with dated context = dateless")
	}
	want := time.Date(2025, time.November, 8, 0, 0, 0, 0, time.UTC)
	if !got.Time.Equal(want) {
		t.Errorf("Resolve(context) = %v, want %v", got.Time, want)
	}

	// A date beyond the scan window must not be picked up.
	far := string(make([]rune, DefaultWindow)) + " November 8, 2025"
	if got := r.Resolve("", "", far); !got.Dateless {
		t.Errorf("Resolve picked up date beyond window: %v", got.Time)
	}
}

func TestResolve_Unparseable(t *testing.T) {
	tests := []struct {
		name    string
		rawDate string
	}{
		{name: "Empty", rawDate: ""},
		{name: "TBA text", rawDate: "Coming Soon"},
		{name: "Numeric only without month name", rawDate: "03/04/2026"},
		{name: "Numeric dashes", rawDate: "3-4-2026"},
		{name: "Garbage", rawDate: "every friday night"},
	}

	r := testResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.rawDate, "", "")
			if !got.Dateless {
				t.Errorf("Resolve(%q) = %v, want dateless", tt.rawDate, got.Time)
			}
		})
	}
}

func TestResolve_PlausibilityBounds(t *testing.T) {
	tests := []struct {
		name    string
		rawDate string
	}{
		{name: "Years in the past", rawDate: "2019-01-01"},
		{name: "Years in the future", rawDate: "2031-01-01"},
		{name: "Free text years out", rawDate: "March 3, 2031"},
	}

	r := testResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.rawDate, "", "")
			if !got.Dateless {
				t.Errorf("Resolve(%q) = %v, want dateless (implausible)", tt.rawDate, got.Time)
			}
		})
	}
}

func TestResolve_InvalidCalendarDay(t *testing.T) {
	r := testResolver()
	if got := r.Resolve("February 30, 2026", "", ""); !got.Dateless {
		t.Errorf("Resolve(Feb 30) = %v, want dateless", got.Time)
	}
}

func TestResolve_StrategyOrder(t *testing.T) {
	r := testResolver()

	// rawDate wins over the URL date.
	got := r.Resolve("2025-12-01", "https://venue.example/2026-01-15/show", "")
	if got.Dateless || got.Time.Month() != time.December {
		t.Errorf("rawDate should win over URL date, got %v", got.Time)
	}

	// URL wins over context.
	got = r.Resolve("", "https://venue.example/2026-01-15/show", "doors open March 3")
	if got.Dateless || got.Time.Month() != time.January {
		t.Errorf("URL date should win over context, got %v", got.Time)
	}
}
