// ABOUTME: Configuration loader for the candidate portal client
// ABOUTME: Merges flags, CANDIDATE_* env vars, an optional .env file and defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "CANDIDATE"

// DefaultAPIURL is the hosted TalentID backend
const DefaultAPIURL = "https://talentid-backend-v2.vercel.app"

// AppName names the per-user config directory
const AppName = "candidate"

// Config holds the client configuration.
type Config struct {
	// APIURL serves the company endpoints.
	APIURL string `mapstructure:"api_url"`
	// AuthAPIURL serves /api/candidate/*; defaults to APIURL.
	AuthAPIURL  string `mapstructure:"auth_api_url"`
	ProfilePath string `mapstructure:"profile_path"`
	LogoutPath  string `mapstructure:"logout_path"`

	Timeout        time.Duration `mapstructure:"timeout"`
	CareerCacheTTL time.Duration `mapstructure:"career_cache_ttl"`

	// ConfigDir holds the session file, recent companies and debug.log.
	ConfigDir string `mapstructure:"config_dir"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// flagKeys maps persistent flag names onto config keys
var flagKeys = map[string]string{
	"api-url":      "api_url",
	"auth-api-url": "auth_api_url",
	"config-dir":   "config_dir",
	"log-level":    "log_level",
	"log-format":   "log_format",
	"timeout":      "timeout",
}

// Load reads .env files (if present), then builds and validates Config from
// flags, the environment and defaults via Viper. Precedence is
// flag > env > .env > default. flags may be nil.
func Load(flags *pflag.FlagSet, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: reading %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("auth_api_url", "")
	v.SetDefault("profile_path", "/api/candidate/get-candidate-details")
	v.SetDefault("logout_path", "/api/candidate/logout")
	v.SetDefault("timeout", "30s")
	v.SetDefault("career_cache_ttl", "5m")
	v.SetDefault("config_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: binding --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	api, err := validURL("api_url", c.APIURL)
	if err != nil {
		return err
	}
	c.APIURL = api

	if c.AuthAPIURL == "" {
		c.AuthAPIURL = c.APIURL
	} else {
		auth, err := validURL("auth_api_url", c.AuthAPIURL)
		if err != nil {
			return err
		}
		c.AuthAPIURL = auth
	}

	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	if c.CareerCacheTTL < 0 {
		return errors.New("config: career_cache_ttl must not be negative")
	}

	for _, p := range []*string{&c.ProfilePath, &c.LogoutPath} {
		if *p != "" && !strings.HasPrefix(*p, "/") {
			*p = "/" + *p
		}
	}

	if c.ConfigDir == "" {
		c.ConfigDir = DefaultConfigDir()
	}
	return nil
}

// SessionFile is where the persisted session lives
func (c *Config) SessionFile() string {
	if c.ConfigDir == "" {
		return ""
	}
	return filepath.Join(c.ConfigDir, "session.json")
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/candidate, falling back to ~/.config/candidate
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

func validURL(key, raw string) (string, error) {
	raw = strings.TrimRight(ensureScheme(strings.TrimSpace(raw)), "/")
	if raw == "" {
		return "", fmt.Errorf("config: %s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("config: %s: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("config: %s must use http or https, got %q", key, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("config: %s has no host", key)
	}
	return raw, nil
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
