package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"companyscout/internal/company"
	"companyscout/internal/testsupport"
)

const listingPage = `<html><body>
<div class="company"><h2>S'Tile SAS</h2><p>Solar tiles</p><a href="/companies/stile.html">Read more</a></div>
<div class="company"><h2>Acme SAS</h2><p>Heat pumps</p><a href="/companies/acme.html">Read more</a></div>
<div class="company"><h2>STILE</h2><p>Solar tiles again</p><a href="/companies/stile-2.html">Read more</a></div>
</body></html>`

func TestScrapeWritesRawAndCompanyTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/companies/categories/solar.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	env := setupCLITestEnv(t, testsupport.WithScrapeURL(srv.URL+"/"))
	out, _, err := runCLI(t, []string{"scrape", "--category-slug", "solar", "--category-name", "Solar energy"}, env.configPath)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	requireContains(t, out, "Rows scraped:         3")
	requireContains(t, out, "Unique companies:     2")
	requireContains(t, out, "Remaining duplicates: 0")

	matches, err := filepath.Glob(filepath.Join(env.outputDir, "*_solar_companies.csv"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one companies table, got %v (%v)", matches, err)
	}
	companies := readCSV(t, matches[0])
	if companies.Len() != 2 {
		t.Fatalf("companies rows = %d, want 2", companies.Len())
	}
	if got := companies.Value(0, company.ColName); got != "S'Tile SAS" {
		t.Fatalf("first company = %q", got)
	}
	if got := companies.Value(0, company.ColNameKeyStrict); got != "STILE" {
		t.Fatalf("strict key = %q", got)
	}
	if got := companies.Value(1, company.ColCategory); got != "Solar energy" {
		t.Fatalf("category = %q", got)
	}

	raw := readCSV(t, strings.TrimSuffix(matches[0], "_companies.csv")+".csv")
	if raw.Len() != 3 {
		t.Fatalf("raw rows = %d, want 3", raw.Len())
	}
}

func TestScrapeRequiresSlug(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"scrape"}, env.configPath); err == nil {
		t.Fatal("expected missing slug error")
	}
}

func TestNormalizePreview(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "names.csv")
	writeCSV(t, input, []string{company.ColName}, []string{"Acme SAS"}, []string{"ACME Group"}, []string{"Société Générale"})

	output := filepath.Join(env.baseDir, "keys.csv")
	out, _, err := runCLI(t, []string{"normalize", "--input", input, "--head", "2", "--output", output}, env.configPath)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	requireContains(t, out, "ACME GROUP")
	requireContains(t, out, "Similarity of rows 1 and 2: 0.571 (strict 1.000)")
	if strings.Contains(out, "SOCIETE GENERALE") {
		t.Fatalf("preview should stop after two rows:\n%s", out)
	}

	keys := readCSV(t, output)
	if got := keys.Value(2, company.ColNameKey); got != "SOCIETE GENERALE" {
		t.Fatalf("name_clean = %q", got)
	}
}

func TestNormalizeUnknownColumn(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "names.csv")
	writeCSV(t, input, []string{"name"}, []string{"Acme"})

	if _, _, err := runCLI(t, []string{"normalize", "--input", input}, env.configPath); err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestSimilarityCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"similarity", "S'Tile SAS", "STILE"}, env.configPath)
	if err != nil {
		t.Fatalf("similarity: %v", err)
	}
	requireContains(t, out, "1.000")
	requireContains(t, out, "Same company key: yes")
}

func TestDedupeCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "listing.csv")
	writeCSV(t, input,
		[]string{company.ColName, company.ColListPage},
		[]string{"Acme Group", "3"},
		[]string{"Borealis", "1"},
		[]string{"ACME SAS", "1"},
	)

	out, _, err := runCLI(t, []string{"dedupe", "--input", input}, env.configPath)
	if err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	requireContains(t, out, "Rows: 3, unique companies: 2, collapsed: 1")
	requireContains(t, out, "ACME SAS")

	result := readCSV(t, filepath.Join(env.baseDir, "listing_dedup.csv"))
	if result.Len() != 2 {
		t.Fatalf("rows = %d, want 2", result.Len())
	}
	if got := result.Value(0, company.ColName); got != "ACME SAS" {
		t.Fatalf("survivor = %q, want ACME SAS", got)
	}
}

func TestDedupeWithoutOrderColumnKeepsFirstRow(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "names.csv")
	output := filepath.Join(env.baseDir, "unique.csv")
	writeCSV(t, input, []string{"company"}, []string{"Acme Group"}, []string{"ACME SAS"})

	if _, _, err := runCLI(t, []string{"dedupe", "--input", input, "--output", output, "--column", "company"}, env.configPath); err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	result := readCSV(t, output)
	if result.Len() != 1 || result.Value(0, "company") != "Acme Group" {
		t.Fatalf("unexpected result: %+v", result.Rows)
	}
}

const acmeResponse = `{"results":[{"siren":"123456789","nom_complet":"ACME","nom_raison_sociale":"ACME",
"activite_principale":"72.19Z","score":0.9,"siege":{"siret":"12345678900012"}}],"total_results":1}`

func newRegistryServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("q") {
		case "Acme SAS":
			_, _ = w.Write([]byte(acmeResponse))
		case "Broken Co":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"erreur":"bad query"}`))
		default:
			_, _ = w.Write([]byte(`{"results":[],"total_results":0}`))
		}
	}))
}

func TestLookupCommandUsesPersistentCache(t *testing.T) {
	var hits atomic.Int32
	srv := newRegistryServer(t, &hits)
	defer srv.Close()

	env := setupCLITestEnv(t, testsupport.WithRegistryURL(srv.URL+"/search"))
	input := filepath.Join(env.baseDir, "companies.csv")
	writeCSV(t, input, []string{company.ColName}, []string{"Acme SAS"}, []string{"Unknown Co"}, []string{""}, []string{"Broken Co"})

	out, _, err := runCLI(t, []string{"lookup", "--input", input}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "Names: 4, matched: 1, errors: 1 (policy first)")
	if got := hits.Load(); got != 3 {
		t.Fatalf("registry hits = %d, want 3", got)
	}

	result := readCSV(t, filepath.Join(env.baseDir, "companies_siren.csv"))
	if got := result.Value(0, company.ColSIREN); got != "123456789" {
		t.Fatalf("siren = %q", got)
	}
	if got := result.Value(0, company.ColSIRET); got != "12345678900012" {
		t.Fatalf("siret = %q", got)
	}
	if got := result.Value(0, company.ColINPIURL); got != "https://data.inpi.fr/search?q=Acme+SAS" {
		t.Fatalf("inpi url = %q", got)
	}
	if got := result.Value(1, company.ColSIREN); got != "" {
		t.Fatalf("unmatched siren = %q", got)
	}
	if result.Value(3, company.ColError) == "" {
		t.Fatal("expected an error for the rejected query")
	}

	if _, _, err := runCLI(t, []string{"lookup", "--input", input}, env.configPath); err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if got := hits.Load(); got != 4 {
		t.Fatalf("registry hits after cached run = %d, want 4 (only the failed name again)", got)
	}

	out, _, err = runCLI(t, []string{"cache", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Entries: 2")

	out, _, err = runCLI(t, []string{"cache", "purge"}, env.configPath)
	if err != nil {
		t.Fatalf("cache purge: %v", err)
	}
	requireContains(t, out, "Removed 2 cached responses")
}

func TestLookupIgnoresMalformedListPage(t *testing.T) {
	var hits atomic.Int32
	srv := newRegistryServer(t, &hits)
	defer srv.Close()

	env := setupCLITestEnv(t, testsupport.WithRegistryURL(srv.URL+"/search"))
	input := filepath.Join(env.baseDir, "companies.csv")
	writeCSV(t, input, []string{company.ColName, company.ColListPage}, []string{"Acme SAS", "n/a"})

	out, _, err := runCLI(t, []string{"lookup", "--input", input, "--no-cache"}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "Names: 1, matched: 1, errors: 0")
}

func TestLookupSimilarityPolicyWithoutCache(t *testing.T) {
	var hits atomic.Int32
	srv := newRegistryServer(t, &hits)
	defer srv.Close()

	env := setupCLITestEnv(t, testsupport.WithRegistryURL(srv.URL+"/search"))
	input := filepath.Join(env.baseDir, "companies.csv")
	output := filepath.Join(env.baseDir, "resolved.csv")
	writeCSV(t, input, []string{company.ColName}, []string{"Acme SAS"})

	args := []string{"lookup", "--input", input, "--output", output, "--policy", "similarity", "--min-score", "0.8", "--no-cache", "--links=false"}
	out, _, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "matched: 1")

	result := readCSV(t, output)
	if result.Index(company.ColINPIURL) >= 0 {
		t.Fatal("links column should be omitted")
	}
	if got := result.Value(0, company.ColMatchScore); got != "1.000" {
		t.Fatalf("match score = %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(env.cacheDir, "*.db"))
	if len(matches) != 0 {
		t.Fatalf("cache should not be opened with --no-cache: %v", matches)
	}
}

func TestLookupRejectsUnknownPolicy(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "companies.csv")
	writeCSV(t, input, []string{company.ColName}, []string{"Acme"})

	if _, _, err := runCLI(t, []string{"lookup", "--input", input, "--policy", "fuzzy"}, env.configPath); err == nil {
		t.Fatal("expected policy error")
	}
}

func TestLinksCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "companies.csv")
	writeCSV(t, input, []string{company.ColName, "tagline"}, []string{"Acme SAS", "Heat"}, []string{"", "none"})

	out, _, err := runCLI(t, []string{"links", "--input", input}, env.configPath)
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	requireContains(t, out, "Linked 1 of 2 rows")

	result := readCSV(t, filepath.Join(env.baseDir, "companies_inpi.csv"))
	if got := result.Value(0, company.ColINPIURL); got != "https://data.inpi.fr/search?q=Acme+SAS" {
		t.Fatalf("inpi url = %q", got)
	}
	if got := result.Value(1, company.ColINPIURL); got != "" {
		t.Fatalf("blank name url = %q", got)
	}
	if got := result.Value(0, "tagline"); got != "Heat" {
		t.Fatalf("existing columns must survive, got %q", got)
	}
}
