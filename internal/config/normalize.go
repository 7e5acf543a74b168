package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScrape()
	c.normalizeRegistry()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScrape() {
	c.Scrape.BaseURL = strings.TrimSpace(c.Scrape.BaseURL)
	if c.Scrape.BaseURL == "" {
		c.Scrape.BaseURL = defaultScrapeBaseURL
	}
	if !strings.HasSuffix(c.Scrape.BaseURL, "/") {
		c.Scrape.BaseURL += "/"
	}
	c.Scrape.UserAgent = strings.TrimSpace(c.Scrape.UserAgent)
	if c.Scrape.UserAgent == "" {
		c.Scrape.UserAgent = defaultScrapeUserAgent
	}
	if c.Scrape.TimeoutSeconds <= 0 {
		c.Scrape.TimeoutSeconds = defaultScrapeTimeoutSeconds
	}
	if c.Scrape.DelayMillis < 0 {
		c.Scrape.DelayMillis = 0
	}
}

func (c *Config) normalizeRegistry() {
	if value, ok := os.LookupEnv("COMPANYSCOUT_REGISTRY_URL"); ok && strings.TrimSpace(value) != "" {
		c.Registry.BaseURL = value
	}
	c.Registry.BaseURL = strings.TrimSpace(c.Registry.BaseURL)
	if c.Registry.BaseURL == "" {
		c.Registry.BaseURL = defaultRegistryBaseURL
	}
	c.Registry.UserAgent = strings.TrimSpace(c.Registry.UserAgent)
	if c.Registry.UserAgent == "" {
		c.Registry.UserAgent = defaultRegistryUserAgent
	}
	if c.Registry.TimeoutSeconds <= 0 {
		c.Registry.TimeoutSeconds = defaultRegistryTimeout
	}
	if c.Registry.DelayMillis < 0 {
		c.Registry.DelayMillis = 0
	}
	if c.Registry.Limit <= 0 {
		c.Registry.Limit = defaultRegistryLimit
	}
	c.Registry.MatchPolicy = strings.ToLower(strings.TrimSpace(c.Registry.MatchPolicy))
	if c.Registry.MatchPolicy == "" {
		c.Registry.MatchPolicy = defaultMatchPolicy
	}
	if c.Registry.CacheTTLHours <= 0 {
		c.Registry.CacheTTLHours = defaultRegistryCacheTTL
	}
	c.Registry.INPIBaseURL = strings.TrimSpace(c.Registry.INPIBaseURL)
	if c.Registry.INPIBaseURL == "" {
		c.Registry.INPIBaseURL = defaultINPIBaseURL
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format != "json" {
		c.Logging.Format = defaultLogFormat
	}
	if value, ok := os.LookupEnv("COMPANYSCOUT_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
