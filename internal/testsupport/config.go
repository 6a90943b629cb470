package testsupport

import (
	"path/filepath"
	"testing"

	"portfolioctl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Pacing delays are zeroed so tests run without sleeping.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MediaRoot = filepath.Join(base, "media")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.IndexPath = filepath.Join(base, "media-index.db")
	cfg.API.BaseURL = "http://127.0.0.1:0"
	cfg.API.Token = "test-token"
	cfg.Pacing.RequestsPerSecond = 1000
	cfg.Pacing.Burst = 1000
	cfg.Pacing.LookupDelayMS = 0
	cfg.Pacing.UploadDelayMS = 0
	cfg.Pacing.RecordDelayMS = 0
	cfg.Pacing.ProjectDelayMS = 0

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithBaseURL points the config at a test server.
func WithBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.API.BaseURL = url
	}
}

// WithStrategy selects the resolver strategy on the test config.
func WithStrategy(strategy string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Resolver.Strategy = strategy
	}
}
