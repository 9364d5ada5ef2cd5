// Package fetch provides the retrying HTTP client used to download listing
// pages for HTML intake. All timeout policy lives here, at the network
// boundary, not in the pipeline.
package fetch
