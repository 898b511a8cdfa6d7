package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "STOREFRONT_"

// DotEnvFile is read when present. Real environment variables win over it.
var DotEnvFile = ".env"

// parseEnv overlays cfg with STOREFRONT_* variables.
//
// Durations accept Go syntax ("45s") or a bare integer meaning seconds.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	dotenv, err := godotenv.Read(DotEnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", DotEnvFile, err)
	}

	get := func(name string) (string, bool) {
		key := EnvPrefix + name
		if lookup != nil {
			if v, ok := lookup(key); ok {
				return v, true
			}
		}
		v, ok := dotenv[key]
		return v, ok
	}

	strs := map[string]*string{
		"BASE_URL":           &cfg.BaseURL,
		"SESSION_DB":         &cfg.SessionDB,
		"LOG_LEVEL":          &cfg.LogLevel,
		"LOG_FORMAT":         &cfg.LogFormat,
		"PRESIGN_MODE":       &cfg.PresignMode,
		"PRESIGN_METHOD":     &cfg.PresignMethod,
		"STORAGE_ENDPOINT":   &cfg.Storage.Endpoint,
		"STORAGE_REGION":     &cfg.Storage.Region,
		"STORAGE_BUCKET":     &cfg.Storage.Bucket,
		"STORAGE_ACCESS_KEY": &cfg.Storage.AccessKey,
		"STORAGE_SECRET_KEY": &cfg.Storage.SecretKey,
		"STORAGE_KEY_PREFIX": &cfg.Storage.KeyPrefix,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	durs := map[string]*time.Duration{
		"REQUEST_TIMEOUT": &cfg.RequestTimeout,
		"UPLOAD_TIMEOUT":  &cfg.UploadTimeout,
		"STORAGE_EXPIRY":  &cfg.Storage.Expiry,
	}
	for name, dst := range durs {
		v, ok := get(name)
		if !ok {
			continue
		}
		d, err := parseEnvDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = d
	}

	if v, ok := get("UPLOAD_CONCURRENCY"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sUPLOAD_CONCURRENCY: %w", EnvPrefix, err)
		}
		cfg.UploadConcurrency = n
	}
	if v, ok := get("STORAGE_USE_SSL"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sSTORAGE_USE_SSL: %w", EnvPrefix, err)
		}
		cfg.Storage.UseSSL = b
	}
	return nil
}

func parseEnvDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
