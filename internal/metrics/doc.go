// Package metrics publishes the pipeline's per-batch counts (in, accepted,
// rejected by reason, deduplicated) as Prometheus collectors with an
// optional HTTP listener.
package metrics
