// Package intake adapts heterogeneous scraper output into CandidateEvents.
//
// The JSON adapter absorbs the shape variance of hundreds of independent
// producers (venue as string vs. object, a dozen spellings per field) so
// none of it leaks into the pipeline core. The HTML adapter extracts
// candidates from any listing page with generic selectors; it carries no
// venue-specific knowledge and applies no policy, leaving all filtering to
// the pipeline.
package intake
