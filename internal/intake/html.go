package intake

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hann12-34/discovr-pipeline/internal/event"
)

const (
	// containerSelector matches the event-card patterns venue sites
	// converge on. Broad on purpose; the admission filter owns rejection.
	containerSelector = "article, .event, [class*=event], .show, [class*=show], .listing, [class*=listing], .card, li[class*=item]"

	// maxContainers caps how many containers one page may yield.
	maxContainers = 200

	// contextLimit bounds the surrounding-text block attached to each
	// candidate for last-resort date scanning.
	contextLimit = 300
)

var titleSelectors = []string{
	"h1", "h2", "h3", "h4", "h5",
	".title", "[class*=title]",
	".name", "[class*=name]",
	"strong", "a",
}

var dateSelectors = []string{
	"time", ".date", "[class*=date]", ".when", ".schedule", "[class*=time]",
}

var imageAttrs = []string{"src", "data-src", "data-lazy-src", "data-original"}

// ExtractHTML pulls candidate events out of an arbitrary listing page.
// Every container matching the generic card patterns becomes one
// candidate; junk containers are expected and left for the pipeline to
// reject. venueName is attached as the venue for every candidate, since a
// single listing page belongs to one venue.
func ExtractHTML(r io.Reader, pageURL, venueName string) ([]*event.CandidateEvent, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	candidates := make([]*event.CandidateEvent, 0)
	doc.Find(containerSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxContainers {
			return false
		}
		if c := extractContainer(sel, base, venueName); c != nil {
			candidates = append(candidates, c)
		}
		return true
	})

	return candidates, nil
}

// extractContainer builds one candidate from a listing card. Returns nil
// when the container has no title at all.
func extractContainer(sel *goquery.Selection, base *url.URL, venueName string) *event.CandidateEvent {
	title := extractTitle(sel)
	if title == "" {
		return nil
	}

	c := &event.CandidateEvent{
		Title:   title,
		RawDate: extractDate(sel),
		Venue:   event.Venue{Name: venueName},
		Source:  venueName,
		Context: collapseText(sel.Text(), contextLimit),
	}

	if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
		c.URL = resolveRef(base, href)
	}
	c.ImageURL = extractImage(sel, base)

	return c
}

// extractTitle tries the common title patterns in order, first reasonable
// text wins.
func extractTitle(sel *goquery.Selection) string {
	for _, selector := range titleSelectors {
		text := CleanTitle(sel.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// extractDate prefers machine-readable datetime attributes over visible
// date text.
func extractDate(sel *goquery.Selection) string {
	if dt, ok := sel.Find("[datetime]").First().Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
		return strings.TrimSpace(dt)
	}
	for _, selector := range dateSelectors {
		text := strings.TrimSpace(sel.Find(selector).First().Text())
		if len(text) >= 4 {
			return collapseText(text, 100)
		}
	}
	return ""
}

// extractImage probes the lazy-loading attribute variants.
func extractImage(sel *goquery.Selection, base *url.URL) string {
	img := sel.Find("img").First()
	for _, attr := range imageAttrs {
		if src, ok := img.Attr(attr); ok && strings.TrimSpace(src) != "" {
			return resolveRef(base, strings.TrimSpace(src))
		}
	}
	return ""
}

func resolveRef(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

func collapseText(s string, limit int) string {
	s = strings.TrimSpace(titleSpacePattern.ReplaceAllString(s, " "))
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
