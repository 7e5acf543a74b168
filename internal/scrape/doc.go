// Package scrape collects company cards from a directory site's category
// listings.
//
// Client fetches pages politely (browser User-Agent, one request per page, a
// rate limiter between pages, no retries). ExtractCards finds each card by its
// "read more" link and climbs to the enclosing block that carries a heading.
// Scraper ties the two together per category and drops exact duplicate cards.
package scrape
