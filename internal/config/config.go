// Package config provides configuration types, loading, and validation for
// zonekeeper.
//
// Configuration is a single JSON file; every value has a sensible default so
// an empty file (or no file at all) yields a working local setup.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Load reads the configuration from path. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveConfigPath picks the config path from the flag value or the
// ZONEKEEPER_CONFIG environment variable.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("ZONEKEEPER_CONFIG")
}

// Validate validates and normalizes the configuration, applying defaults
// for unset values.
func (cfg *Config) Validate() error {
	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = 8080
	}
	if cfg.API.Port < 0 || cfg.API.Port > 65535 {
		return errors.New("api.port must be 1..65535")
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "zonekeeper.db"
	}

	if cfg.DNS.NS1 == "" {
		cfg.DNS.NS1 = "ns1.example.com"
	}
	if cfg.DNS.Hostmaster == "" {
		cfg.DNS.Hostmaster = "hostmaster.example.com"
	}
	if cfg.DNS.TTL <= 0 {
		cfg.DNS.TTL = 3600
	}
	if cfg.DNS.SOARefresh <= 0 {
		cfg.DNS.SOARefresh = 28800
	}
	if cfg.DNS.SOARetry <= 0 {
		cfg.DNS.SOARetry = 7200
	}
	if cfg.DNS.SOAExpire <= 0 {
		cfg.DNS.SOAExpire = 604800
	}
	if cfg.DNS.SOAMinimum <= 0 {
		cfg.DNS.SOAMinimum = 86400
	}

	switch cfg.Records.ConflictPolicy {
	case "":
		cfg.Records.ConflictPolicy = ConflictLastWriterWins
	case ConflictLastWriterWins, ConflictOnlyLatest:
	default:
		return fmt.Errorf("records.conflict_policy must be %q or %q",
			ConflictLastWriterWins, ConflictOnlyLatest)
	}

	if cfg.DNSSEC.Enabled {
		if cfg.DNSSEC.APIURL == "" {
			return errors.New("dnssec.api_url is required when dnssec is enabled")
		}
		if cfg.DNSSEC.ServerID == "" {
			cfg.DNSSEC.ServerID = "localhost"
		}
	}
	if cfg.DNSSEC.Timeout == "" {
		cfg.DNSSEC.Timeout = "5s"
	}
	if _, err := time.ParseDuration(cfg.DNSSEC.Timeout); err != nil {
		return fmt.Errorf("dnssec.timeout is not a duration: %w", err)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	return nil
}

// DNSSECTimeout returns the parsed DNSSEC API timeout.
func (cfg *Config) DNSSECTimeout() time.Duration {
	d, err := time.ParseDuration(cfg.DNSSEC.Timeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}
