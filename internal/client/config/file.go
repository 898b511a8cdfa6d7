package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for config file decoding. Pointer
// fields distinguish "absent" from "zero" so a file only overrides what it
// names. Durations use timex.Duration ("30s" or integer nanoseconds).
type FileConfig struct {
	BaseURL           *string         `json:"base_url" yaml:"base_url"`
	RequestTimeout    *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	UploadTimeout     *timex.Duration `json:"upload_timeout" yaml:"upload_timeout"`
	SessionDB         *string         `json:"session_db" yaml:"session_db"`
	LogLevel          *string         `json:"log_level" yaml:"log_level"`
	LogFormat         *string         `json:"log_format" yaml:"log_format"`
	PresignMode       *string         `json:"presign_mode" yaml:"presign_mode"`
	PresignMethod     *string         `json:"presign_method" yaml:"presign_method"`
	UploadConcurrency *int            `json:"upload_concurrency" yaml:"upload_concurrency"`
	Storage           *FileStorage    `json:"storage" yaml:"storage"`
}

type FileStorage struct {
	Endpoint  *string         `json:"endpoint" yaml:"endpoint"`
	Region    *string         `json:"region" yaml:"region"`
	Bucket    *string         `json:"bucket" yaml:"bucket"`
	AccessKey *string         `json:"access_key" yaml:"access_key"`
	SecretKey *string         `json:"secret_key" yaml:"secret_key"`
	UseSSL    *bool           `json:"use_ssl" yaml:"use_ssl"`
	KeyPrefix *string         `json:"key_prefix" yaml:"key_prefix"`
	Expiry    *timex.Duration `json:"expiry" yaml:"expiry"`
}

// parseFile overlays cfg with values from the file named by -c or -config.
// The format follows the extension: .yaml/.yml is YAML, anything else JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.BaseURL, fc.BaseURL)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.UploadTimeout != nil {
		cfg.UploadTimeout = fc.UploadTimeout.Duration
	}
	setString(&cfg.SessionDB, fc.SessionDB)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.PresignMode, fc.PresignMode)
	setString(&cfg.PresignMethod, fc.PresignMethod)
	if fc.UploadConcurrency != nil {
		cfg.UploadConcurrency = *fc.UploadConcurrency
	}

	s := fc.Storage
	if s == nil {
		return
	}
	setString(&cfg.Storage.Endpoint, s.Endpoint)
	setString(&cfg.Storage.Region, s.Region)
	setString(&cfg.Storage.Bucket, s.Bucket)
	setString(&cfg.Storage.AccessKey, s.AccessKey)
	setString(&cfg.Storage.SecretKey, s.SecretKey)
	if s.UseSSL != nil {
		cfg.Storage.UseSSL = *s.UseSSL
	}
	setString(&cfg.Storage.KeyPrefix, s.KeyPrefix)
	if s.Expiry != nil {
		cfg.Storage.Expiry = s.Expiry.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
