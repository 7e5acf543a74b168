package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"companyscout/internal/company"
	"companyscout/internal/dedupe"
	"companyscout/internal/logging"
	"companyscout/internal/services"
	"companyscout/internal/textutil"
)

// Scraper walks the listing pages of one site.
type Scraper struct {
	base    *url.URL
	fetcher Fetcher
	logger  *slog.Logger
}

// New creates a scraper for the site at baseURL.
func New(baseURL string, fetcher Fetcher, logger *slog.Logger) (*Scraper, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, services.Wrap(services.ErrConfiguration, "scrape", "parse base url", baseURL, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if fetcher == nil {
		return nil, services.Wrap(services.ErrConfiguration, "scrape", "init", "fetcher required", nil)
	}
	return &Scraper{
		base:    base,
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "scraper"),
	}, nil
}

// Base returns the site root the scraper resolves links against.
func (s *Scraper) Base() *url.URL {
	copied := *s.base
	return &copied
}

// CategoryURL returns the listing URL for page of a category. Page 1 has no
// query string.
func CategoryURL(base *url.URL, slug string, page int) string {
	ref := &url.URL{Path: "companies/categories/" + url.PathEscape(slug) + ".html"}
	if page > 1 {
		ref.RawQuery = "page=" + strconv.Itoa(page)
	}
	return base.ResolveReference(ref).String()
}

// ScrapeCategory fetches pages 1..maxPage of a category and returns one record
// per card. The category name falls back to the slug. Cards repeated with the
// same name and detail URL are kept once, at their first occurrence.
func (s *Scraper) ScrapeCategory(ctx context.Context, slug, name string, maxPage int) ([]company.Record, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, services.Wrap(services.ErrValidation, "scrape", "category", "slug required", nil)
	}
	if maxPage < 1 {
		return nil, services.Wrap(services.ErrValidation, "scrape", "category", fmt.Sprintf("max page must be >= 1, got %d", maxPage), nil)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = slug
	}

	ctx = services.WithCategory(services.WithStage(ctx, "scrape"), slug)
	logger := logging.WithContext(ctx, s.logger)

	var records []company.Record
	for page := 1; page <= maxPage; page++ {
		pageURL := CategoryURL(s.base, slug, page)
		doc, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		cards := ExtractCards(doc, s.base)
		logger.Info("listing page scraped",
			logging.Int("page", page),
			logging.String("url", pageURL),
			logging.Int("cards", len(cards)),
		)
		if len(cards) == 0 {
			logging.WarnWithContext(logger, "no cards found on listing page", "empty_listing_page",
				logging.Int("page", page),
				logging.String(logging.FieldErrorHint, "check the category slug or whether the site layout changed"),
				logging.String(logging.FieldImpact, "page contributes no companies"),
			)
		}
		for _, card := range cards {
			records = append(records, company.Record{
				Name:      card.Name,
				Tagline:   card.Tagline,
				DetailURL: card.DetailURL,
				Category:  name,
				ListPage:  page,
			})
		}
	}

	unique, err := dedupe.Deduplicate(records, cardKey, firstSeen)
	if err != nil {
		return nil, err
	}
	if dropped := len(records) - len(unique); dropped > 0 {
		logger.Debug("repeated cards dropped", logging.Int("dropped", dropped))
	}
	return unique, nil
}

func cardKey(r company.Record) string { return r.Name + "\x00" + r.DetailURL }

// firstSeen gives every card the same rank so ties keep the earliest input.
func firstSeen(company.Record) int { return 0 }

// OutputPaths returns the raw and deduplicated table paths for a category,
// named <site>_<slug>.csv and <site>_<slug>_companies.csv.
func OutputPaths(dir string, base *url.URL, slug string) (raw, companies string) {
	stem := SitePrefix(base) + "_" + textutil.SanitizeToken(slug)
	return filepath.Join(dir, stem+".csv"), filepath.Join(dir, stem+"_companies.csv")
}

// SitePrefix names a site after its host without the www. prefix and the
// top-level domain: https://www.frenchcleantech.com/ -> frenchcleantech.
func SitePrefix(base *url.URL) string {
	if base == nil {
		return "unknown"
	}
	host := strings.TrimPrefix(strings.ToLower(base.Hostname()), "www.")
	if idx := strings.LastIndexByte(host, '.'); idx > 0 && !isNumeric(host[idx+1:]) {
		host = host[:idx]
	}
	return textutil.SanitizeToken(host)
}

func isNumeric(value string) bool {
	_, err := strconv.Atoi(value)
	return err == nil
}
