package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/hann12-34/discovr-pipeline/internal/event"
)

// GenerateICS renders normalized events as an iCalendar feed. Events are
// all-day entries on their resolved calendar day. Dateless events are
// skipped entirely: a calendar entry with an invented date is worse than
// no entry.
func GenerateICS(events []*event.NormalizedEvent) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//discovr//discovr-pipeline//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := time.Now().UTC().Format("20060102T150405Z")

	for _, evt := range events {
		if evt == nil || evt.Dateless {
			continue
		}
		writeEvent(&ics, evt, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, evt *event.NormalizedEvent, stamp string) {
	day := evt.StartDate.UTC()

	ics.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(ics, "UID:%s@discovr\r\n", evt.ID)
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", stamp)
	fmt.Fprintf(ics, "DTSTART;VALUE=DATE:%s\r\n", day.Format("20060102"))
	fmt.Fprintf(ics, "DTEND;VALUE=DATE:%s\r\n", day.AddDate(0, 0, 1).Format("20060102"))
	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(evt.Title))

	if location := formatLocation(&evt.Venue); location != "" {
		fmt.Fprintf(ics, "LOCATION:%s\r\n", escapeICS(location))
	}
	if evt.SourceURL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", evt.SourceURL)
	}

	ics.WriteString("END:VEVENT\r\n")
}

func formatLocation(v *event.Venue) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{v.Name, v.Address, v.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// escapeICS escapes text per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
