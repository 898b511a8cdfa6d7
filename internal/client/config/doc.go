// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are YAML, anything else is JSON.
//  3. STOREFRONT_* environment variables, with an optional .env file in the
//     working directory filling in whatever the real environment lacks.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the storefront backend
//	-t int      request timeout (seconds)
//	-s string   path to the local session database
//	-l string   log level
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	base_url: https://mall.example.com
//	request_timeout: 30s
//	presign_mode: minio
//	storage:
//	  endpoint: 127.0.0.1:9000
//	  bucket: mall
//	  use_ssl: false
package config
