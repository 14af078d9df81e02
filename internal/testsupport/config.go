package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/CloudCante/Tracking-TOO/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test. It
// defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.API.BaseURL = "http://127.0.0.1:0/api/v1/sql-portal"
	cfg.Export.OutputFile = filepath.Join(base, "raw_timestamps.csv")
	cfg.Export.InputFile = filepath.Join(base, "numbers.csv")
	cfg.Cache.Dir = filepath.Join(base, "cache")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithCacheEnabled turns the serial-history cache on.
func WithCacheEnabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Cache.Enabled = true
	}
}
