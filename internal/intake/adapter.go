package intake

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/hann12-34/discovr-pipeline/internal/event"
)

// Producers never agreed on field names or shapes, so the adapter probes
// every spelling seen in the wild and normalizes everything into
// CandidateEvent before the pipeline runs. Shape variance stops here.

var (
	titleKeys   = []string{"title", "name", "headline"}
	dateKeys    = []string{"rawDate", "raw_date", "date", "dateText", "date_text", "startDate", "start_date", "datetime", "when"}
	urlKeys     = []string{"url", "sourceUrl", "source_url", "eventUrl", "event_url", "link", "href"}
	imageKeys   = []string{"imageUrl", "image_url", "image", "img", "thumbnail"}
	descKeys    = []string{"description", "summary", "details"}
	catKeys     = []string{"category", "type", "genre"}
	sourceKeys  = []string{"source", "scraper", "provider"}
	contextKeys = []string{"context", "text", "raw"}
)

// DecodeBatch reads a JSON array of loosely-typed producer records and
// adapts each into a CandidateEvent. Records that are not objects become
// nil entries so the pipeline can count them as invalid instead of the
// whole batch failing.
func DecodeBatch(r io.Reader) ([]*event.CandidateEvent, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding batch: %w", err)
	}

	batch := make([]*event.CandidateEvent, 0, len(raw))
	for _, msg := range raw {
		var m map[string]any
		if err := json.Unmarshal(msg, &m); err != nil || m == nil {
			batch = append(batch, nil)
			continue
		}
		batch = append(batch, FromMap(m))
	}
	return batch, nil
}

// FromMap adapts one duck-typed producer record.
func FromMap(m map[string]any) *event.CandidateEvent {
	return &event.CandidateEvent{
		Title:       CleanTitle(stringField(m, titleKeys...)),
		RawDate:     stringField(m, dateKeys...),
		URL:         stringField(m, urlKeys...),
		Venue:       venueField(m),
		ImageURL:    stringField(m, imageKeys...),
		Description: stringField(m, descKeys...),
		Category:    stringField(m, catKeys...),
		Source:      stringField(m, sourceKeys...),
		Context:     stringField(m, contextKeys...),
	}
}

// venueField accepts the two venue shapes producers emit: a bare name
// string, or a structured object. String venues are promoted to {name}.
func venueField(m map[string]any) event.Venue {
	switch v := m["venue"].(type) {
	case string:
		return event.Venue{Name: strings.TrimSpace(v)}
	case map[string]any:
		venue := event.Venue{
			Name:    stringField(v, "name", "venueName", "venue_name"),
			Address: stringField(v, "address", "location"),
			City:    stringField(v, "city"),
		}
		venue.Latitude, venue.Longitude = coordinates(v)
		return venue
	}
	// Some producers flatten the venue name onto the event itself.
	return event.Venue{Name: stringField(m, "venueName", "venue_name")}
}

// coordinates handles both {latitude, longitude} pairs and GeoJSON-style
// [lng, lat] arrays.
func coordinates(v map[string]any) (lat, lng float64) {
	lat = numberField(v, "latitude", "lat")
	lng = numberField(v, "longitude", "lng", "lon")
	if lat != 0 || lng != 0 {
		return lat, lng
	}
	if coords, ok := v["coordinates"].([]any); ok && len(coords) == 2 {
		x, xok := coords[0].(float64)
		y, yok := coords[1].(float64)
		if xok && yok {
			return y, x
		}
	}
	return 0, 0
}

var titleSpacePattern = regexp.MustCompile(`\s+`)

// CleanTitle strips the listing noise scrapers drag in with titles: only
// the first line survives, em-dash and pipe suffixes (usually venue or
// ticketing chrome) are cut, and whitespace is collapsed.
func CleanTitle(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	if before, _, found := strings.Cut(s, " — "); found {
		s = before
	}
	if before, _, found := strings.Cut(s, " | "); found {
		s = before
	}
	return strings.TrimSpace(titleSpacePattern.ReplaceAllString(s, " "))
}

func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key].(string); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func numberField(m map[string]any, keys ...string) float64 {
	for _, key := range keys {
		if v, ok := m[key].(float64); ok {
			return v
		}
	}
	return 0
}
