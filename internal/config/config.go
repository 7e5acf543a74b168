package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"companyscout/internal/namekey"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	CacheDir  string `toml:"cache_dir"`
	LogDir    string `toml:"log_dir"`
}

// Scrape contains configuration for the listing scraper.
type Scrape struct {
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	DelayMillis    int    `toml:"delay_ms"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxPages       int    `toml:"max_pages"`
}

// Registry contains configuration for the company-registry search API.
type Registry struct {
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	DelayMillis    int    `toml:"delay_ms"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Limit          int    `toml:"limit"`
	// MatchPolicy is "first" (take the first API result) or "similarity"
	// (best strict-key similarity at or above MinScore).
	MatchPolicy string `toml:"match_policy"`
	// MinScore is the acceptance threshold for the similarity policy. The
	// default of 0 accepts the best candidate whatever its score.
	MinScore      float64 `toml:"min_score"`
	CacheEnabled  bool    `toml:"cache_enabled"`
	CacheTTLHours int     `toml:"cache_ttl_hours"`
	INPIBaseURL   string  `toml:"inpi_base_url"`
}

// Matching contains the token-merge thresholds for strict keys.
type Matching struct {
	MergeOrphanLen  int `toml:"merge_orphan_len"`
	MergeMaxNextLen int `toml:"merge_max_next_len"`
}

// Output contains configuration for written tables.
type Output struct {
	XLSX bool `toml:"xlsx"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// RetentionDays prunes per-run log files older than this many days. Zero
	// keeps every file.
	RetentionDays int `toml:"retention_days"`
}

// Config encapsulates all configuration values for companyscout.
//
// Configuration sections by subsystem:
//   - Paths: output, cache, and log directories
//   - Scrape: listing site, pacing, and page limits
//   - Registry: search API, pacing, match policy, and response cache
//   - Matching: token-merge thresholds for deduplication keys
//   - Output: optional XLSX copies of written tables
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Scrape   Scrape   `toml:"scrape"`
	Registry Registry `toml:"registry"`
	Matching Matching `toml:"matching"`
	Output   Output   `toml:"output"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("companyscout.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output and log directories, plus the cache
// directory when the registry cache is enabled.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Registry.CacheEnabled && strings.TrimSpace(c.Paths.CacheDir) != "" {
		if err := os.MkdirAll(c.Paths.CacheDir, 0o755); err != nil {
			return fmt.Errorf("create cache directory %q: %w", c.Paths.CacheDir, err)
		}
	}
	return nil
}

// Normalizer returns the name normalizer configured by [matching].
func (c *Config) Normalizer() namekey.Normalizer {
	return namekey.Normalizer{Merge: namekey.MergeRule{
		OrphanLen:  c.Matching.MergeOrphanLen,
		MaxNextLen: c.Matching.MergeMaxNextLen,
	}}
}

// ScrapeDelay returns the pause between listing page requests.
func (c *Config) ScrapeDelay() time.Duration {
	return time.Duration(c.Scrape.DelayMillis) * time.Millisecond
}

// RegistryDelay returns the pause between registry requests.
func (c *Config) RegistryDelay() time.Duration {
	return time.Duration(c.Registry.DelayMillis) * time.Millisecond
}

// RegistryCacheTTL returns how long cached registry responses stay valid.
func (c *Config) RegistryCacheTTL() time.Duration {
	return time.Duration(c.Registry.CacheTTLHours) * time.Hour
}

// CachePath returns the registry response cache database path.
func (c *Config) CachePath() string {
	return filepath.Join(c.Paths.CacheDir, "registry.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "companyscout")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/companyscout"
	}
	return filepath.Join(home, ".cache", "companyscout")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
