// Package cli implements the discovr-pipeline command line interface:
// batch processing of producer JSON, one-shot listing-page fetches, and
// the text/JSON batch reports.
package cli
