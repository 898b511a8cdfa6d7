package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks cross-field constraints after all sources are merged and
// normalizes case-insensitive values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.RequestTimeout < 0 {
		return errors.New("request timeout must not be negative")
	}
	if c.UploadTimeout < 0 {
		return errors.New("upload timeout must not be negative")
	}
	if c.UploadConcurrency < 1 {
		c.UploadConcurrency = 1
	}

	c.PresignMode = strings.ToLower(c.PresignMode)
	switch c.PresignMode {
	case PresignOrigin:
	case PresignS3, PresignMinio:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("presign mode %q requires a storage bucket", c.PresignMode)
		}
		if c.PresignMode == PresignMinio && c.Storage.Endpoint == "" {
			return errors.New("presign mode \"minio\" requires a storage endpoint")
		}
	default:
		return fmt.Errorf("unknown presign mode %q", c.PresignMode)
	}

	c.PresignMethod = strings.ToUpper(c.PresignMethod)
	if c.PresignMethod != "POST" && c.PresignMethod != "GET" {
		return fmt.Errorf("presign method must be POST or GET, got %q", c.PresignMethod)
	}
	return nil
}
