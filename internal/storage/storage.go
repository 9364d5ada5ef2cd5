package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hann12-34/discovr-pipeline/internal/event"
)

// Store persists normalized events as a JSON document keyed by event ID.
// It plays the persistence collaborator's role: upsert-by-ID is what makes
// cross-run deduplication work, since content-derived IDs are stable.
type Store struct {
	dataDir string
}

// New creates a Store rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dataDir, "events.json")
}

// Load reads the stored event set. A missing file is an empty set, not an
// error.
func (s *Store) Load() (map[string]*event.NormalizedEvent, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]*event.NormalizedEvent), nil
		}
		return nil, fmt.Errorf("reading event store: %w", err)
	}

	events := make(map[string]*event.NormalizedEvent)
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parsing event store: %w", err)
	}
	return events, nil
}

// Save writes the full event set.
func (s *Store) Save(events map[string]*event.NormalizedEvent) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling event store: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("writing event store: %w", err)
	}
	return nil
}

// Upsert merges a batch of normalized events into the store by ID and
// reports how many were new versus overwritten.
func (s *Store) Upsert(batch []*event.NormalizedEvent) (added, updated int, err error) {
	events, err := s.Load()
	if err != nil {
		return 0, 0, err
	}

	for _, evt := range batch {
		if evt == nil || evt.ID == "" {
			continue
		}
		if _, exists := events[evt.ID]; exists {
			updated++
		} else {
			added++
		}
		events[evt.ID] = evt
	}

	if err := s.Save(events); err != nil {
		return 0, 0, err
	}
	return added, updated, nil
}
