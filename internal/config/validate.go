package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScrape(); err != nil {
		return err
	}
	if err := c.validateRegistry(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScrape() error {
	if err := validateHTTPURL("scrape.base_url", c.Scrape.BaseURL); err != nil {
		return err
	}
	if c.Scrape.MaxPages <= 0 {
		return errors.New("scrape.max_pages must be positive")
	}
	return ensurePositiveMap(map[string]int{
		"scrape.timeout_seconds": c.Scrape.TimeoutSeconds,
	})
}

func (c *Config) validateRegistry() error {
	if err := validateHTTPURL("registry.base_url", c.Registry.BaseURL); err != nil {
		return err
	}
	if err := validateHTTPURL("registry.inpi_base_url", c.Registry.INPIBaseURL); err != nil {
		return err
	}
	if c.Registry.Limit > defaultRegistryMaxLimit {
		return fmt.Errorf("registry.limit must be at most %d", defaultRegistryMaxLimit)
	}
	switch c.Registry.MatchPolicy {
	case "first", "similarity":
	default:
		return fmt.Errorf("registry.match_policy must be \"first\" or \"similarity\", got %q", c.Registry.MatchPolicy)
	}
	if c.Registry.MinScore < 0 || c.Registry.MinScore > 1 {
		return errors.New("registry.min_score must be between 0 and 1")
	}
	return ensurePositiveMap(map[string]int{
		"registry.timeout_seconds": c.Registry.TimeoutSeconds,
		"registry.cache_ttl_hours": c.Registry.CacheTTLHours,
	})
}

func (c *Config) validateMatching() error {
	if c.Matching.MergeOrphanLen < 0 {
		return errors.New("matching.merge_orphan_len must be >= 0")
	}
	if c.Matching.MergeOrphanLen > 0 && c.Matching.MergeMaxNextLen <= 0 {
		return errors.New("matching.merge_max_next_len must be positive when merging is enabled")
	}
	return nil
}

func validateHTTPURL(field, value string) error {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", field, value)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
