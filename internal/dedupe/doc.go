// Package dedupe keeps one representative per canonical key.
//
// Items are grouped by a caller-supplied key. Within a group the survivor is
// the member with the smallest ordering value, ties going to the earliest
// input position; surviving groups are emitted in first-seen order. An empty
// key never groups: each such item is its own singleton, so an unusable key
// can never become a catch-all bucket.
//
// Deduplicate verifies its own post-condition and reports a violation as
// ErrDuplicateKey, which callers should treat as an internal logic error.
package dedupe
