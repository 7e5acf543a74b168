package registry

import (
	"net/url"
	"strings"

	"companyscout/internal/company"
)

// DefaultINPIBaseURL is the INPI data portal search page.
const DefaultINPIBaseURL = "https://data.inpi.fr/search"

// INPISearchURL returns the INPI search page for name, or "" for a blank name.
// Spaces are encoded as '+'.
func INPISearchURL(base, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultINPIBaseURL
	}
	return base + "?q=" + url.QueryEscape(name)
}

// WithINPILinks returns copies of records carrying their INPI search URL.
func WithINPILinks(base string, records []company.Record) []company.Record {
	out := make([]company.Record, len(records))
	for i, rec := range records {
		rec.INPIURL = INPISearchURL(base, rec.Name)
		out[i] = rec
	}
	return out
}
