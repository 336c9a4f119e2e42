// Package config loads proxy configuration from an optional YAML file with
// environment variable overrides. OAuth credentials are required and validated
// at startup so a misconfiguration fails fast instead of surfacing later as a
// provider exchange error.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAuthBaseURL = "https://zoom.us"
	DefaultAPIBaseURL  = "https://api.zoom.us/v2"
	DefaultDBPath      = "zmail-proxy.db"
	DefaultHost        = "127.0.0.1"
	DefaultPort        = "8080"
)

// SeedConfig controls the test-data generation script.
type SeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mailbox string `yaml:"mailbox"`
	ToEmail string `yaml:"to_email"`
}

// Config holds all process configuration. Business logic never reads the
// environment directly; everything flows through this struct.
type Config struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`

	// AuthBaseURL hosts the OAuth token endpoint (<base>/oauth/token).
	AuthBaseURL string `yaml:"auth_base_url"`
	// APIBaseURL is the provider REST API root, e.g. https://api.zoom.us/v2.
	APIBaseURL string `yaml:"api_base_url"`

	DBPath string `yaml:"db_path"`
	Host   string `yaml:"host"`
	Port   string `yaml:"port"`

	Seed SeedConfig `yaml:"seed"`
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist), applies environment overrides, then fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.ClientID, "ZMAIL_CLIENT_ID")
	setFromEnv(&cfg.ClientSecret, "ZMAIL_CLIENT_SECRET")
	setFromEnv(&cfg.RedirectURI, "ZMAIL_REDIRECT_URI")
	setFromEnv(&cfg.AuthBaseURL, "ZMAIL_AUTH_BASE_URL")
	setFromEnv(&cfg.APIBaseURL, "ZMAIL_API_BASE_URL")
	setFromEnv(&cfg.DBPath, "ZMAIL_DB_PATH")
	setFromEnv(&cfg.Host, "HOST")
	setFromEnv(&cfg.Port, "PORT")
	if os.Getenv("ZMAIL_SEED") == "true" {
		cfg.Seed.Enabled = true
	}
	setFromEnv(&cfg.Seed.Mailbox, "ZMAIL_SEED_MAILBOX")
	setFromEnv(&cfg.Seed.ToEmail, "ZMAIL_SEED_TO_EMAIL")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = DefaultAuthBaseURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
}

// Validate checks the fields the OAuth flows cannot run without.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("config: client_id is required (ZMAIL_CLIENT_ID)")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("config: client_secret is required (ZMAIL_CLIENT_SECRET)")
	}
	if c.RedirectURI == "" {
		return fmt.Errorf("config: redirect_uri is required (ZMAIL_REDIRECT_URI)")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
