// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
type Config struct {
	GitHub GitHubConfig
	Cache  CacheConfig
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	// Token is optional: the public events feed and the search API both
	// answer unauthenticated requests, just with tighter rate limits.
	Token  string
	Domain string
}

// CacheConfig holds local cache specific configuration.
type CacheConfig struct {
	// Path is the sqlite database file; empty means the default under the
	// user's home directory.
	Path string

	// TTLMinutes is how long cached activity is served before refetching.
	TTLMinutes int
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// Initialize Viper for environment variables
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")
	v.BindEnv("ghrecap.db", "GHRECAP_DB")
	v.BindEnv("ghrecap.cache_ttl", "GHRECAP_CACHE_TTL")

	v.SetDefault("github.domain", "github.com")
	v.SetDefault("ghrecap.cache_ttl", 30)

	config := &Config{
		GitHub: GitHubConfig{
			Token:  v.GetString("github.token"),
			Domain: v.GetString("github.domain"),
		},
		Cache: CacheConfig{
			Path:       v.GetString("ghrecap.db"),
			TTLMinutes: v.GetInt("ghrecap.cache_ttl"),
		},
	}

	if config.Cache.Path == "" {
		path, err := defaultCachePath()
		if err != nil {
			return nil, err
		}
		config.Cache.Path = path
	}

	return config, nil
}

// defaultCachePath places the cache database under ~/.ghrecap.
func defaultCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ghrecap", "cache.db"), nil
}
