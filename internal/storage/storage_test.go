package storage

import (
	"testing"
	"time"

	"github.com/hann12-34/discovr-pipeline/internal/event"
)

func testEvent(title string) *event.NormalizedEvent {
	return event.NewNormalized(&event.CandidateEvent{
		Title: title,
		Venue: event.Venue{Name: "Blue Note"},
	}, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), false, "", "")
}

func TestStore_LoadEmpty(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	events, err := s.Load()
	if err != nil {
		t.Fatalf("Load() on empty store: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("empty store has %d events", len(events))
	}
}

func TestStore_UpsertRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	first := testEvent("Live Jazz Night")
	added, updated, err := s.Upsert([]*event.NormalizedEvent{first, testEvent("Another Show")})
	if err != nil {
		t.Fatal(err)
	}
	if added != 2 || updated != 0 {
		t.Errorf("first upsert: added=%d updated=%d, want 2/0", added, updated)
	}

	// Re-upserting the same content-derived IDs updates instead of adding.
	added, updated, err = s.Upsert([]*event.NormalizedEvent{testEvent("Live Jazz Night")})
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 || updated != 1 {
		t.Errorf("second upsert: added=%d updated=%d, want 0/1", added, updated)
	}

	events, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("store has %d events, want 2", len(events))
	}
	if _, ok := events[first.ID]; !ok {
		t.Error("event not retrievable by ID")
	}
}

func TestStore_SkipsNilAndEmptyID(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	added, updated, err := s.Upsert([]*event.NormalizedEvent{nil, {Title: "no id"}})
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 || updated != 0 {
		t.Errorf("added=%d updated=%d, want 0/0", added, updated)
	}
}
