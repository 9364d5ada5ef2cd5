// Package event defines the candidate and normalized event models shared by
// the admission pipeline.
//
// CandidateEvents are raw, untrusted records emitted by scrapers; they live
// only for one pipeline pass. NormalizedEvents are the trusted output, each
// carrying a deterministic SHA1-based ID derived from its normalized title,
// calendar day, and venue name so that repeated runs over the same listings
// produce the same IDs.
package event
