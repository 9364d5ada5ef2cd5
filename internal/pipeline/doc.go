// Package pipeline is the admission core every scraper's output funnels
// through: date resolution, structural and content validity checks with
// named rejection reasons, and per-batch deduplication on fuzzy
// (title, day, venue) identity or exact source URL.
//
// The pipeline is pure, synchronous, in-memory data transformation. It is
// safe to share one Pipeline across concurrent scraper drivers because the
// deduplication set is scoped to a single Run invocation.
package pipeline
