package pipeline

import "github.com/hann12-34/discovr-pipeline/internal/event"

// Deduplicator collapses near-duplicate events within one batch. It is
// always an explicit per-batch instance, never shared across batches:
// cross-batch deduplication belongs to the persistence layer's upsert.
type Deduplicator struct {
	identities map[string]struct{}
	urls       map[string]struct{}
}

// NewDeduplicator creates an empty per-batch dedup set.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		identities: make(map[string]struct{}),
		urls:       make(map[string]struct{}),
	}
}

// Seen reports whether an equivalent event was already admitted, and if
// not, registers this one. Two events match on either key:
//
//   - normalized title + calendar day + normalized venue name
//   - byte-identical source URL
//
// First-seen wins; later duplicates are dropped without field merging.
func (d *Deduplicator) Seen(e *event.NormalizedEvent) bool {
	identity := e.Identity()
	if _, ok := d.identities[identity]; ok {
		return true
	}
	if e.SourceURL != "" {
		if _, ok := d.urls[e.SourceURL]; ok {
			return true
		}
	}

	d.identities[identity] = struct{}{}
	if e.SourceURL != "" {
		d.urls[e.SourceURL] = struct{}{}
	}
	return false
}
