// Package storage persists normalized events as a JSON document keyed by
// event ID, giving the CLI upsert-by-ID semantics across scrape runs.
package storage
