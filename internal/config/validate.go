package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Blob drivers.
const (
	BlobDriverMemory = "memory"
	BlobDriverS3     = "s3"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %s)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be in [%d, %d] (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Lock.TTL < 0 {
		return fmt.Errorf("lock.ttl must be >= 0 (got %s)", c.Lock.TTL)
	}

	if err := c.Audit.validate(); err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	if err := c.Upload.validate(); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	if err := c.Blob.validate(); err != nil {
		return fmt.Errorf("blob: %w", err)
	}

	if c.RateLimit.AuthPerMinute < 0 {
		return fmt.Errorf("rate_limit.auth_per_minute must be >= 0 (got %d)", c.RateLimit.AuthPerMinute)
	}
	if c.RateLimit.AuthPerMinute > 0 && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}

	if c.Server.APIPrefix != "" && !strings.HasPrefix(c.Server.APIPrefix, "/") {
		return fmt.Errorf("server.api_prefix must start with / (got %q)", c.Server.APIPrefix)
	}

	return nil
}

func (a AuditConfig) validate() error {
	if a.DefaultPageSize < 1 {
		return fmt.Errorf("default_page_size must be >= 1 (got %d)", a.DefaultPageSize)
	}
	if a.MaxPageSize < a.DefaultPageSize {
		return fmt.Errorf("max_page_size must be >= default_page_size (got %d < %d)", a.MaxPageSize, a.DefaultPageSize)
	}
	return nil
}

func (u UploadConfig) validate() error {
	if u.MaxFileBytes <= 0 {
		return fmt.Errorf("max_file_bytes must be > 0 (got %d)", u.MaxFileBytes)
	}
	if u.MaxRequestBytes < u.MaxFileBytes {
		return fmt.Errorf("max_request_bytes must be >= max_file_bytes")
	}
	if len(u.AllowedMIMETypes()) == 0 {
		return fmt.Errorf("allowed_mime_types must not be empty")
	}
	for _, m := range u.AllowedMIMETypes() {
		if !strings.HasPrefix(m, "image/") {
			return fmt.Errorf("allowed_mime_types: %q is not an image type", m)
		}
	}
	if u.FetchParallel < 1 {
		return fmt.Errorf("fetch_parallel must be >= 1 (got %d)", u.FetchParallel)
	}
	return nil
}

func (b BlobConfig) validate() error {
	switch b.Driver {
	case BlobDriverMemory:
		return nil
	case BlobDriverS3:
		if b.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required for driver %q", BlobDriverS3)
		}
		if (b.S3.AccessKeyID == "") != (b.S3.SecretAccessKey == "") {
			return fmt.Errorf("s3.access_key_id and s3.secret_access_key must be set together")
		}
		return nil
	default:
		return fmt.Errorf("unknown driver %q", b.Driver)
	}
}
