// Package testsupport provides helpers shared by package tests: canned
// configurations rooted in per-test temp directories and fixture photos.
package testsupport

import (
	"path/filepath"
	"testing"

	"fieldlens/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Vision.APIKey = "test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Sort.SourceDirs = []string{filepath.Join(base, "photos")}
	cfg.Sort.DamagedDir = filepath.Join(base, "sorted", "damaged")
	cfg.Sort.CleanDir = filepath.Join(base, "sorted", "clean")
	cfg.Analyze.SourceDirs = cfg.Sort.SourceDirs
	cfg.Analyze.ResultsFile = filepath.Join(base, "data", "analysis_results.json")
	cfg.Review.Bind = "127.0.0.1:0"
	cfg.Review.DataFile = filepath.Join(base, "data", "inspection_data.json")
	cfg.Review.BackupDir = filepath.Join(base, "data", "backups")
	cfg.Review.FilesRoot = base

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAPIKey sets the vision API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Vision.APIKey = key
	}
}

// WithWorkers sets the batch worker count on the test config.
func WithWorkers(workers int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Batch.Workers = workers
	}
}
