package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func isolateDotEnv(t *testing.T) {
	t.Helper()
	old := DotEnvFile
	DotEnvFile = filepath.Join(t.TempDir(), "absent.env")
	t.Cleanup(func() { DotEnvFile = old })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.BaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 10*time.Minute, c.UploadTimeout)
	assert.Equal(t, PresignOrigin, c.PresignMode)
	assert.Equal(t, "POST", c.PresignMethod)
	assert.Equal(t, 4, c.UploadConcurrency)
	assert.Equal(t, 15*time.Minute, c.Storage.Expiry)
}

func TestLoad_UsesDefaultsWithoutSources(t *testing.T) {
	isolateDotEnv(t)

	cfg, err := Load(nil, noEnv)
	require.NoError(t, err)
	require.NotNil(t, cfg, "Load must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoad_Precedence(t *testing.T) {
	isolateDotEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://file:1\nrequest_timeout: 5s\nlog_level: info\n"), 0o600))

	env := map[string]string{
		"STOREFRONT_BASE_URL":  "http://env:2",
		"STOREFRONT_LOG_LEVEL": "debug",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg, err := Load([]string{"-c", path, "-a", "http://flag:3/", "shop"}, lookup)
	require.NoError(t, err)

	assert.Equal(t, "http://flag:3", cfg.BaseURL, "flag beats env and file; trailing slash trimmed")
	assert.Equal(t, "debug", cfg.LogLevel, "env beats file")
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout, "file beats defaults")
}

func TestLoad_SubSecondTimeoutsSurviveWithoutFlag(t *testing.T) {
	isolateDotEnv(t)

	t.Run("env", func(t *testing.T) {
		env := map[string]string{
			"STOREFRONT_REQUEST_TIMEOUT": "1500ms",
			"STOREFRONT_UPLOAD_TIMEOUT":  "90s",
		}
		lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

		cfg, err := Load([]string{"addresses"}, lookup)
		require.NoError(t, err)
		assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
		assert.Equal(t, 90*time.Second, cfg.UploadTimeout)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"request_timeout":"500ms","upload_timeout":"2m"}`), 0o600))

		cfg, err := Load([]string{"-c", path}, noEnv)
		require.NoError(t, err)
		assert.Equal(t, 500*time.Millisecond, cfg.RequestTimeout)
		assert.Equal(t, 2*time.Minute, cfg.UploadTimeout)
	})

	t.Run("flag still wins", func(t *testing.T) {
		lookup := func(k string) (string, bool) {
			if k == "STOREFRONT_REQUEST_TIMEOUT" {
				return "500ms", true
			}
			return "", false
		}
		cfg, err := Load([]string{"-t", "3"}, lookup)
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults ok", mutate: func(*Config) {}},
		{name: "bad base url", mutate: func(c *Config) { c.BaseURL = "not a url" }, wantErr: "invalid base url"},
		{name: "unknown mode", mutate: func(c *Config) { c.PresignMode = "gcs" }, wantErr: "unknown presign mode"},
		{name: "s3 without bucket", mutate: func(c *Config) { c.PresignMode = "S3" }, wantErr: "requires a storage bucket"},
		{name: "minio without endpoint", mutate: func(c *Config) {
			c.PresignMode = PresignMinio
			c.Storage.Bucket = "mall"
		}, wantErr: "requires a storage endpoint"},
		{name: "bad method", mutate: func(c *Config) { c.PresignMethod = "put" }, wantErr: "POST or GET"},
		{name: "negative timeout", mutate: func(c *Config) { c.RequestTimeout = -time.Second }, wantErr: "must not be negative"},
		{name: "negative upload timeout", mutate: func(c *Config) { c.UploadTimeout = -time.Second }, wantErr: "upload timeout must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NormalizesCase(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.PresignMode = "MINIO"
	c.PresignMethod = "get"
	c.Storage.Bucket = "mall"
	c.Storage.Endpoint = "127.0.0.1:9000"
	c.UploadConcurrency = 0

	require.NoError(t, c.Validate())
	assert.Equal(t, PresignMinio, c.PresignMode)
	assert.Equal(t, "GET", c.PresignMethod)
	assert.Equal(t, 1, c.UploadConcurrency)
}
