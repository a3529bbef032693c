package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Sampling.validate(); err != nil {
		return fmt.Errorf("sampling: %w", err)
	}

	return nil
}

func (c *StorageConfig) validate() error {
	if c.IsProduction() {
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint is required in production")
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			return fmt.Errorf("access_key and secret_key are required in production")
		}
	}
	if c.Bucket == "" {
		return fmt.Errorf("bucket must not be empty")
	}
	if c.MediaPath == "" {
		return fmt.Errorf("media_path must not be empty")
	}
	if c.SignedURLExpiry <= 0 {
		return fmt.Errorf("signed_url_expiry must be > 0 (got %v)", c.SignedURLExpiry)
	}
	return nil
}

func (c *SamplingConfig) validate() error {
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be > 0 (got %d)", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be >= default_limit (got %d < %d)", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}
