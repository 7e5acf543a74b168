package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"companyscout/internal/config"
)

// unreachableURL points at a port nothing listens on so stray requests fail fast.
const unreachableURL = "http://127.0.0.1:1/"

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Network endpoints default to an unreachable address, pacing is disabled, and
// logging is limited to errors.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Scrape.BaseURL = unreachableURL
	cfgVal.Scrape.DelayMillis = 0
	cfgVal.Scrape.TimeoutSeconds = 5
	cfgVal.Registry.BaseURL = unreachableURL + "search"
	cfgVal.Registry.DelayMillis = 0
	cfgVal.Registry.TimeoutSeconds = 5
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithScrapeURL points the listing scraper at baseURL.
func WithScrapeURL(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scrape.BaseURL = baseURL
	}
}

// WithRegistryURL points the registry client at the search endpoint.
func WithRegistryURL(searchURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Registry.BaseURL = searchURL
	}
}

// WithIsolatedHome points HOME and XDG_CACHE_HOME into the temp directory and
// clears the environment overrides config.Load honours.
func WithIsolatedHome() ConfigOption {
	return func(b *configBuilder) {
		home := filepath.Join(b.baseDir, "home")
		if err := os.MkdirAll(home, 0o755); err != nil {
			b.t.Fatalf("mkdir home: %v", err)
		}
		b.t.Setenv("HOME", home)
		b.t.Setenv("XDG_CACHE_HOME", filepath.Join(b.baseDir, "xdg-cache"))
		b.t.Setenv("COMPANYSCOUT_REGISTRY_URL", "")
		b.t.Setenv("COMPANYSCOUT_LOG_LEVEL", "")
	}
}

// WriteConfig encodes cfg as TOML into the config's base directory and returns
// the file path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
