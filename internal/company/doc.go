// Package company defines the record shape shared by the scraper, the
// registry resolver, and the table writers.
//
// A Record carries the display name exactly as collected plus derived fields
// (canonical keys, registry identifiers). Enrichment always returns new
// values; the display name is never rewritten.
package company
