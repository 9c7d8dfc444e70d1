// Package config loads server settings from defaults, an optional YAML file
// and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider names accepted by PROVIDER.
const (
	ProviderUpstream = "upstream"
	ProviderGitHub   = "github"
)

// Config holds everything cmd/api needs to start.
type Config struct {
	Port           string   `yaml:"port"`
	APIHost        string   `yaml:"api_host"`
	Provider       string   `yaml:"provider"`
	GitHubToken    string   `yaml:"github_token"`
	DatabaseURL    string   `yaml:"database_url"`
	BaseURL        string   `yaml:"base_url"`
	Timezone       string   `yaml:"timezone"`
	LogLevel       string   `yaml:"log_level"`
	LogFormat      string   `yaml:"log_format"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// CacheMaxAge is sent as Cache-Control max-age on rendered graphs.
	CacheMaxAge time.Duration `yaml:"cache_max_age"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Port:           "8080",
		APIHost:        "https://github-contributions-api.jogruber.de",
		Provider:       ProviderUpstream,
		BaseURL:        "http://localhost:8080",
		Timezone:       "UTC",
		LogLevel:       "info",
		LogFormat:      "json",
		AllowedOrigins: []string{"*"},
		CacheMaxAge:    time.Hour,
	}
}

// Load reads path (if it exists) over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("設定ファイルのパースに失敗しました: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("PORT", &c.Port)
	setString("API_HOST", &c.APIHost)
	setString("PROVIDER", &c.Provider)
	setString("GITHUB_TOKEN", &c.GitHubToken)
	setString("DATABASE_URL", &c.DatabaseURL)
	setString("BASE_URL", &c.BaseURL)
	setString("TIMEZONE", &c.Timezone)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FORMAT", &c.LogFormat)

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowedOrigins = origins
	}

	if v := strings.TrimSpace(os.Getenv("CACHE_MAX_AGE")); v != "" {
		d, err := parseMaxAge(v)
		if err != nil {
			return fmt.Errorf("CACHE_MAX_AGE が不正です (%q): %w", v, err)
		}
		c.CacheMaxAge = d
	}
	return nil
}

// parseMaxAge accepts a Go duration ("30m") or a plain number of seconds.
func parseMaxAge(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Validate checks the fields that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderUpstream:
		if c.APIHost == "" {
			return fmt.Errorf("provider %q には API_HOST が必要です", c.Provider)
		}
	case ProviderGitHub:
		if c.GitHubToken == "" {
			return fmt.Errorf("provider %q には GITHUB_TOKEN が必要です", c.Provider)
		}
	default:
		return fmt.Errorf("未知のプロバイダーです: %q", c.Provider)
	}
	if c.CacheMaxAge < 0 {
		return fmt.Errorf("CACHE_MAX_AGE は 0 以上である必要があります")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
