// Package lookupcache persists raw registry search responses in SQLite so
// repeated lookup runs do not hit the API again.
//
// The database lives in the configured cache directory and is guarded by an
// advisory lock file: a second process opening the same cache gets ErrLocked
// instead of racing the first. Only response payloads are stored, keyed by
// query text and result limit; nothing about match decisions is kept.
package lookupcache
