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
	c.normalizeVision()
	c.normalizeBatch()
	if err := c.normalizePipelines(); err != nil {
		return err
	}
	if err := c.normalizeReview(); err != nil {
		return err
	}
	c.normalizeReport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVision() {
	c.Vision.APIKey = strings.TrimSpace(c.Vision.APIKey)
	if c.Vision.APIKey == "" {
		if value, ok := os.LookupEnv("FIELDLENS_API_KEY"); ok {
			c.Vision.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.Vision.APIKey = strings.TrimSpace(value)
		}
	}
	c.Vision.BaseURL = strings.TrimSpace(c.Vision.BaseURL)
	if c.Vision.BaseURL == "" {
		c.Vision.BaseURL = defaultVisionBaseURL
	}
	c.Vision.Model = strings.TrimSpace(c.Vision.Model)
	if c.Vision.Model == "" {
		c.Vision.Model = defaultVisionModel
	}
	c.Vision.Referer = strings.TrimSpace(c.Vision.Referer)
	c.Vision.Title = strings.TrimSpace(c.Vision.Title)
	if c.Vision.TimeoutSeconds <= 0 {
		c.Vision.TimeoutSeconds = defaultVisionTimeout
	}
}

func (c *Config) normalizeBatch() {
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = defaultBatchWorkers
	}
	if c.Batch.RequestsPerSecond < 0 {
		c.Batch.RequestsPerSecond = 0
	}
	if c.Batch.MaxImageMiB <= 0 {
		c.Batch.MaxImageMiB = defaultMaxImageMiB
	}
}

func (c *Config) normalizePipelines() error {
	var err error
	if c.Sort.SourceDirs, err = expandPaths("sort.source_dirs", c.Sort.SourceDirs); err != nil {
		return err
	}
	if strings.TrimSpace(c.Sort.DamagedDir) == "" {
		c.Sort.DamagedDir = defaultDamagedDir
	}
	if c.Sort.DamagedDir, err = expandPath(c.Sort.DamagedDir); err != nil {
		return fmt.Errorf("sort.damaged_dir: %w", err)
	}
	if strings.TrimSpace(c.Sort.CleanDir) == "" {
		c.Sort.CleanDir = defaultCleanDir
	}
	if c.Sort.CleanDir, err = expandPath(c.Sort.CleanDir); err != nil {
		return fmt.Errorf("sort.clean_dir: %w", err)
	}
	if c.Analyze.SourceDirs, err = expandPaths("analyze.source_dirs", c.Analyze.SourceDirs); err != nil {
		return err
	}
	if strings.TrimSpace(c.Analyze.ResultsFile) == "" {
		c.Analyze.ResultsFile = defaultResultsFile
	}
	if c.Analyze.ResultsFile, err = expandPath(c.Analyze.ResultsFile); err != nil {
		return fmt.Errorf("analyze.results_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeReview() error {
	var err error
	c.Review.Bind = strings.TrimSpace(c.Review.Bind)
	if c.Review.Bind == "" {
		c.Review.Bind = defaultReviewBind
	}
	if strings.TrimSpace(c.Review.DataFile) == "" {
		c.Review.DataFile = defaultReviewDataFile
	}
	if c.Review.DataFile, err = expandPath(c.Review.DataFile); err != nil {
		return fmt.Errorf("review.data_file: %w", err)
	}
	if strings.TrimSpace(c.Review.BackupDir) == "" {
		c.Review.BackupDir = defaultReviewBackups
	}
	if c.Review.BackupDir, err = expandPath(c.Review.BackupDir); err != nil {
		return fmt.Errorf("review.backup_dir: %w", err)
	}
	if strings.TrimSpace(c.Review.FilesRoot) == "" {
		c.Review.FilesRoot = "."
	}
	if c.Review.FilesRoot, err = expandPath(c.Review.FilesRoot); err != nil {
		return fmt.Errorf("review.files_root: %w", err)
	}
	return nil
}

func (c *Config) normalizeReport() {
	c.Report.Title = strings.TrimSpace(c.Report.Title)
	if c.Report.Title == "" {
		c.Report.Title = defaultReportTitle
	}
	if strings.TrimSpace(c.Report.OutputFile) == "" {
		c.Report.OutputFile = defaultReportOutput
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func expandPaths(field string, values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		out = append(out, expanded)
	}
	return out, nil
}
