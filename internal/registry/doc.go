// Package registry resolves company names against the public French company
// registry search API (recherche-entreprises.api.gouv.fr) and builds INPI
// search links.
//
// Client issues paced, cached searches. Matcher decides which candidate, if
// any, a name refers to: the "first" policy keeps the API's first result,
// while "similarity" compares strict name keys and applies a configurable
// acceptance threshold. Resolver runs a batch of records through both and
// records per-row failures instead of aborting the batch.
package registry
