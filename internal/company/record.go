package company

import (
	"strconv"

	"companyscout/internal/dedupe"
	"companyscout/internal/namekey"
)

// Record is one company mention collected from a source.
type Record struct {
	Name      string
	Tagline   string
	DetailURL string
	Category  string
	ListPage  int

	// NameKey is the plain normalized name; NameKeyStrict is the deduplication key.
	NameKey       string
	NameKeyStrict string

	Registry Registration
	INPIURL  string
}

// Registration holds the registry fields attached by a lookup.
type Registration struct {
	SIREN        string
	SIRET        string
	Denomination string
	NAF          string
	APIScore     string
	MatchScore   float64
	Matched      bool
	Error        string
}

// WithKeys returns a copy of r carrying both canonical keys.
func (r Record) WithKeys(n namekey.Normalizer) Record {
	r.NameKey = n.Normalize(r.Name)
	r.NameKeyStrict = n.NormalizeStrict(r.Name)
	return r
}

// Enrich returns copies of records with canonical keys attached.
func Enrich(records []Record, n namekey.Normalizer) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = rec.WithKeys(n)
	}
	return out
}

// Dedupe keeps one record per strict key, preferring the lowest list page.
// Records must already carry keys (see Enrich).
func Dedupe(records []Record) ([]Record, error) {
	return dedupe.Deduplicate(records, strictKey, listPage)
}

// Groups exposes the duplicate groups Dedupe would collapse.
func Groups(records []Record) []dedupe.Group[Record] {
	return dedupe.GroupBy(records, strictKey, listPage)
}

func strictKey(r Record) string { return r.NameKeyStrict }

func listPage(r Record) int { return r.ListPage }

// Listing table columns, in output order.
const (
	ColName          = "startup_name"
	ColTagline       = "tagline"
	ColDetailURL     = "detail_url"
	ColCategory      = "category"
	ColListPage      = "list_page"
	ColNameKey       = "name_clean"
	ColNameKeyStrict = "name_clean_v2"
)

// ListingHeader returns the columns written for scraped listings.
func ListingHeader() []string {
	return []string{ColName, ColTagline, ColDetailURL, ColCategory, ColListPage, ColNameKey, ColNameKeyStrict}
}

// ListingRow renders r in ListingHeader order.
func (r Record) ListingRow() []string {
	return []string{
		r.Name,
		r.Tagline,
		r.DetailURL,
		r.Category,
		strconv.Itoa(r.ListPage),
		r.NameKey,
		r.NameKeyStrict,
	}
}

// Registry lookup table columns, in output order.
const (
	ColSIREN        = "siren"
	ColSIRET        = "siret"
	ColDenomination = "denomination"
	ColNAF          = "naf"
	ColAPIScore     = "score_api"
	ColMatchScore   = "match_score"
	ColError        = "error"
	ColINPIURL      = "inpi_search_url"
)

// LookupHeader returns the columns written for registry lookups.
func LookupHeader() []string {
	return []string{ColName, ColSIREN, ColSIRET, ColDenomination, ColNAF, ColAPIScore, ColMatchScore, ColError}
}

// LookupRow renders r in LookupHeader order. The match score is blank when
// nothing was matched.
func (r Record) LookupRow() []string {
	score := ""
	if r.Registry.Matched {
		score = strconv.FormatFloat(r.Registry.MatchScore, 'f', 3, 64)
	}
	return []string{
		r.Name,
		r.Registry.SIREN,
		r.Registry.SIRET,
		r.Registry.Denomination,
		r.Registry.NAF,
		r.Registry.APIScore,
		score,
		r.Registry.Error,
	}
}
