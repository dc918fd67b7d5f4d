package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is structurally usable. Credential
// presence is checked separately by RequireAPIKey so read-only commands can
// run without a key.
func (c *Config) Validate() error {
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateSort(); err != nil {
		return err
	}
	if err := c.validateVision(); err != nil {
		return err
	}
	if c.Review.Bind == "" {
		return errors.New("review.bind must be set")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers <= 0 {
		return errors.New("batch.workers must be positive")
	}
	if c.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers is %d; values above 64 will trip remote rate limits", c.Batch.Workers)
	}
	if c.Batch.MaxImageMiB <= 0 {
		return errors.New("batch.max_image_mib must be positive")
	}
	return nil
}

func (c *Config) validateSort() error {
	if c.Sort.DamagedDir == c.Sort.CleanDir {
		return errors.New("sort.damaged_dir and sort.clean_dir must differ")
	}
	return nil
}

func (c *Config) validateVision() error {
	if c.Vision.BaseURL == "" {
		return errors.New("vision.base_url must be set")
	}
	if c.Vision.Model == "" {
		return errors.New("vision.model must be set")
	}
	if c.Vision.TimeoutSeconds <= 0 {
		return errors.New("vision.timeout_seconds must be positive")
	}
	return nil
}
