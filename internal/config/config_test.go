package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name       string
		domain     string
		token      string
		wantDomain string
	}{
		{
			name:       "Explicit github.com",
			domain:     "github.com",
			token:      "test-token",
			wantDomain: "github.com",
		},
		{
			name:       "Custom GitHub domain",
			domain:     "github.example.com",
			token:      "test-token",
			wantDomain: "github.example.com",
		},
		{
			name:       "Empty domain defaults to github.com",
			domain:     "",
			token:      "test-token",
			wantDomain: "github.com",
		},
		{
			name:       "Missing token is allowed",
			domain:     "github.com",
			token:      "",
			wantDomain: "github.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_DOMAIN", tt.domain)
			t.Setenv("GITHUB_TOKEN", tt.token)

			config, err := LoadConfig()
			require.NoError(t, err)
			require.NotNil(t, config)

			assert.Equal(t, tt.wantDomain, config.GitHub.Domain)
			assert.Equal(t, tt.token, config.GitHub.Token)
		})
	}
}

func TestLoadConfigCachePath(t *testing.T) {
	t.Run("Explicit path from environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "activity.db")
		t.Setenv("GHRECAP_DB", path)

		config, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, path, config.Cache.Path)
	})

	t.Run("Default path under home directory", func(t *testing.T) {
		t.Setenv("GHRECAP_DB", "")

		config, err := LoadConfig()
		require.NoError(t, err)

		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".ghrecap", "cache.db"), config.Cache.Path)
	})
}

func TestLoadConfigCacheTTL(t *testing.T) {
	t.Run("Default TTL", func(t *testing.T) {
		t.Setenv("GHRECAP_CACHE_TTL", "")

		config, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 30, config.Cache.TTLMinutes)
	})

	t.Run("Explicit TTL", func(t *testing.T) {
		t.Setenv("GHRECAP_CACHE_TTL", "5")

		config, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 5, config.Cache.TTLMinutes)
	})
}
