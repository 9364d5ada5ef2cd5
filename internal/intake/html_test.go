package intake

import (
	"strings"
	"testing"
)

const listingPage = `<!DOCTYPE html>
<html><body>
<nav><a href="/">Home</a></nav>
<article class="event-card">
  <h3>Live Jazz Night</h3>
  <time datetime="2025-11-08T20:00:00-05:00">Nov 8</time>
  <a href="/shows/jazz-night">Details</a>
  <img data-src="/img/jazz.jpg" alt="">
</article>
<article class="event-card">
  <h3>Winter Warmup Concert</h3>
  <span class="date">Jan 5, 2026</span>
  <a href="https://tickets.example/winter-warmup">Tickets</a>
</article>
<div class="listing">
  <strong>Acoustic Sundays</strong>
</div>
</body></html>`

func TestExtractHTML(t *testing.T) {
	candidates, err := ExtractHTML(strings.NewReader(listingPage), "https://bluenote.example/events", "Blue Note")
	if err != nil {
		t.Fatalf("ExtractHTML() error: %v", err)
	}
	if len(candidates) < 3 {
		t.Fatalf("got %d candidates, want at least 3", len(candidates))
	}

	byTitle := make(map[string]int)
	for i, c := range candidates {
		if _, seen := byTitle[c.Title]; !seen {
			byTitle[c.Title] = i
		}
	}

	jazz := candidates[byTitle["Live Jazz Night"]]
	if jazz.RawDate != "2025-11-08T20:00:00-05:00" {
		t.Errorf("datetime attribute not preferred: %q", jazz.RawDate)
	}
	if jazz.URL != "https://bluenote.example/shows/jazz-night" {
		t.Errorf("relative link not resolved: %q", jazz.URL)
	}
	if jazz.ImageURL != "https://bluenote.example/img/jazz.jpg" {
		t.Errorf("lazy image attribute not resolved: %q", jazz.ImageURL)
	}
	if jazz.Venue.Name != "Blue Note" {
		t.Errorf("venue name not attached: %+v", jazz.Venue)
	}

	winter := candidates[byTitle["Winter Warmup Concert"]]
	if winter.RawDate != "Jan 5, 2026" {
		t.Errorf("visible date text not extracted: %q", winter.RawDate)
	}
	if winter.URL != "https://tickets.example/winter-warmup" {
		t.Errorf("absolute link mangled: %q", winter.URL)
	}

	if _, ok := byTitle["Acoustic Sundays"]; !ok {
		t.Error("strong-tag title not extracted from listing div")
	}
}

func TestExtractHTML_EmptyPage(t *testing.T) {
	candidates, err := ExtractHTML(strings.NewReader("<html><body><p>nothing here</p></body></html>"), "https://venue.example", "Venue")
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 0 {
		t.Errorf("got %d candidates from empty page", len(candidates))
	}
}

func TestExtractHTML_BadPageURL(t *testing.T) {
	if _, err := ExtractHTML(strings.NewReader(listingPage), "://not-a-url", "Venue"); err == nil {
		t.Error("ExtractHTML accepted an unparseable page URL")
	}
}
