package event

import (
	"crypto/sha1"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DatelessDayToken is the day component used in identity keys for events
// without a resolvable date. It keeps dateless events from ever colliding
// with events on a real calendar day.
const DatelessDayToken = "dateless"

// Venue describes where an event takes place. Producers sometimes emit a
// bare venue name; the intake adapter promotes those to a Venue with only
// Name set.
type Venue struct {
	Name      string  `json:"name"`
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// CandidateEvent is a raw, untrusted event record as produced by any
// scraper. Every field may be empty, noisy, or inconsistently formatted.
type CandidateEvent struct {
	Title       string `json:"title"`
	RawDate     string `json:"raw_date,omitempty"`
	URL         string `json:"url,omitempty"`
	Venue       Venue  `json:"venue"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Source      string `json:"source,omitempty"`

	// Context holds the surrounding text block of the listing, used as a
	// last-resort date signal when RawDate is empty.
	Context string `json:"context,omitempty"`
}

// NormalizedEvent is a validated, canonicalized event ready for upsert into
// the document store. Only NormalizedEvents cross the pipeline boundary.
type NormalizedEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date,omitzero"`
	Dateless  bool      `json:"dateless,omitempty"`
	Venue     Venue     `json:"venue"`
	SourceURL string    `json:"source_url,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Category  string    `json:"category,omitempty"`
	Source    string    `json:"source,omitempty"`
}

// Day returns the identity day token for the event: the calendar day in
// YYYY-MM-DD form, or DatelessDayToken when no date resolved.
func (e *NormalizedEvent) Day() string {
	if e.Dateless {
		return DatelessDayToken
	}
	return e.StartDate.UTC().Format("2006-01-02")
}

var (
	punctPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// NormalizeKey canonicalizes free text for identity comparison: lowercase,
// punctuation stripped, whitespace collapsed. "Live Jazz Night!" and
// "live  jazz night" normalize to the same key.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = punctPattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// GenerateID creates a deterministic ID from the event's identity fields.
// Producers do not guarantee unique IDs, so identity is content-derived:
// the same title on the same day at the same venue always hashes the same.
func GenerateID(titleKey, day, venueKey string) string {
	h := sha1.New()
	h.Write([]byte(titleKey + "|" + day + "|" + venueKey))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Identity returns the dedup key shared by duplicate events: normalized
// title plus calendar day plus normalized venue name.
func (e *NormalizedEvent) Identity() string {
	return NormalizeKey(e.Title) + "|" + e.Day() + "|" + NormalizeKey(e.Venue.Name)
}

// NewNormalized builds a NormalizedEvent from an admitted candidate. The
// caller supplies the resolved start date (zero time plus dateless=true when
// resolution failed) and already-validated URLs.
func NewNormalized(c *CandidateEvent, start time.Time, dateless bool, sourceURL, imageURL string) *NormalizedEvent {
	e := &NormalizedEvent{
		Title:     strings.TrimSpace(c.Title),
		StartDate: start,
		Dateless:  dateless,
		Venue:     c.Venue,
		SourceURL: sourceURL,
		ImageURL:  imageURL,
		Category:  c.Category,
		Source:    c.Source,
	}
	e.ID = GenerateID(NormalizeKey(e.Title), e.Day(), NormalizeKey(e.Venue.Name))
	return e
}
