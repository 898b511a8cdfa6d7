package config

import (
	"os"
	"time"
)

// Presign modes select where upload URLs come from.
const (
	PresignOrigin = "origin"
	PresignS3     = "s3"
	PresignMinio  = "minio"
)

// Storage holds object-storage settings used only by the local presigners
// (PresignS3 and PresignMinio). The origin presigner ignores it.
type Storage struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	KeyPrefix string
	Expiry    time.Duration
}

// Config holds runtime settings for the storefront CLI.
//
// Units: RequestTimeout, UploadTimeout and Storage.Expiry are time.Duration
// values. UploadTimeout bounds one storage PUT; zero leaves it to the
// caller's context.
type Config struct {
	BaseURL           string
	RequestTimeout    time.Duration
	UploadTimeout     time.Duration
	SessionDB         string
	LogLevel          string
	LogFormat         string
	PresignMode       string
	PresignMethod     string
	UploadConcurrency int
	Storage           Storage
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.UploadTimeout = 10 * time.Minute
	c.SessionDB = "storefront/session.db"
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.PresignMode = PresignOrigin
	c.PresignMethod = "POST"
	c.UploadConcurrency = 4
	c.Storage = Storage{
		Region:    "ap-northeast-2",
		UseSSL:    true,
		KeyPrefix: "products",
		Expiry:    15 * time.Minute,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given), the environment and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.LookupEnv)
}

// Load is LoadConfig with explicit arguments and environment lookup.
func Load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
