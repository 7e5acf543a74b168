package config

import "companyscout/internal/namekey"

const (
	defaultConfigPath           = "~/.config/companyscout/config.toml"
	defaultOutputDir            = "data/raw"
	defaultLogDir               = "~/.local/share/companyscout/logs"
	defaultScrapeBaseURL        = "https://www.frenchcleantech.com/"
	defaultScrapeUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"
	defaultScrapeDelayMillis    = 600
	defaultScrapeTimeoutSeconds = 30
	defaultScrapeMaxPages       = 1
	defaultRegistryBaseURL      = "https://recherche-entreprises.api.gouv.fr/search"
	defaultRegistryUserAgent    = "startup-patents-survival/1.0"
	defaultRegistryDelayMillis  = 250
	defaultRegistryTimeout      = 30
	defaultRegistryLimit        = 5
	defaultRegistryMaxLimit     = 25
	defaultMatchPolicy          = "first"
	defaultRegistryCacheTTL     = 24 * 7
	defaultINPIBaseURL          = "https://data.inpi.fr/search"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogRetentionDays     = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			CacheDir:  defaultCacheDir(),
			LogDir:    defaultLogDir,
		},
		Scrape: Scrape{
			BaseURL:        defaultScrapeBaseURL,
			UserAgent:      defaultScrapeUserAgent,
			DelayMillis:    defaultScrapeDelayMillis,
			TimeoutSeconds: defaultScrapeTimeoutSeconds,
			MaxPages:       defaultScrapeMaxPages,
		},
		Registry: Registry{
			BaseURL:        defaultRegistryBaseURL,
			UserAgent:      defaultRegistryUserAgent,
			DelayMillis:    defaultRegistryDelayMillis,
			TimeoutSeconds: defaultRegistryTimeout,
			Limit:          defaultRegistryLimit,
			MatchPolicy:    defaultMatchPolicy,
			CacheEnabled:   true,
			CacheTTLHours:  defaultRegistryCacheTTL,
			INPIBaseURL:    defaultINPIBaseURL,
		},
		Matching: Matching{
			MergeOrphanLen:  namekey.DefaultMergeRule.OrphanLen,
			MergeMaxNextLen: namekey.DefaultMergeRule.MaxNextLen,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
