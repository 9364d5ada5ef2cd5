// Package dateparse resolves the dozens of inconsistent date formats that
// event scrapers produce into a single canonical form.
//
// Resolution is ordered, first match wins: machine dates, then free-text
// month-name patterns (English and French), then URL-embedded dates, then a
// bounded scan of surrounding text. When nothing matches, the record is
// explicitly dateless; the resolver never invents a date and never returns
// an error for bad input.
package dateparse
