// Package config loads and validates startup configuration for the server.
//
// Credentials come from the environment, optionally seeded by a TOML file.
// Validation happens once at startup so a missing credential fails the
// process before the first tool call, not on first use.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/oO/spotify-mcp-server/internal/errors"
)

const (
	// Env vars consumed by Load. SPOTIFY_ID and SPOTIFY_SECRET follow the
	// naming the Spotify SDK documents for its examples.
	EnvVarClientID      = "SPOTIFY_ID"
	EnvVarClientSecret  = "SPOTIFY_SECRET"
	EnvVarRedirectURI   = "SPOTIFY_REDIRECT_URI"
	EnvVarAccessToken   = "SPOTIFY_ACCESS_TOKEN"
	EnvVarRefreshToken  = "SPOTIFY_REFRESH_TOKEN"
	EnvVarGetSongBPMKey = "GETSONGBPM_API_KEY"

	// DefaultRedirectURI matches the redirect registered for local use.
	DefaultRedirectURI = "http://localhost:8080/callback"
)

// Config holds everything the server needs to talk to external services.
type Config struct {
	ClientID      string `toml:"client_id"`
	ClientSecret  string `toml:"client_secret"`
	RedirectURI   string `toml:"redirect_uri"`
	AccessToken   string `toml:"access_token"`
	RefreshToken  string `toml:"refresh_token"`
	GetSongBPMKey string `toml:"getsongbpm_api_key"`
}

// Load builds a Config from the optional TOML file at path, then applies
// environment variable overrides. An empty path means environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	path = strings.TrimSpace(path)
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", apperrors.ErrConfigLoadFailed, path, err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", apperrors.ErrConfigLoadFailed, path, err)
		}
	}

	applyEnv(cfg)

	if cfg.RedirectURI == "" {
		cfg.RedirectURI = DefaultRedirectURI
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		env  string
		dest *string
	}{
		{EnvVarClientID, &cfg.ClientID},
		{EnvVarClientSecret, &cfg.ClientSecret},
		{EnvVarRedirectURI, &cfg.RedirectURI},
		{EnvVarAccessToken, &cfg.AccessToken},
		{EnvVarRefreshToken, &cfg.RefreshToken},
		{EnvVarGetSongBPMKey, &cfg.GetSongBPMKey},
	}

	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.dest = v
		}
	}
}

// Validate checks that the configuration can produce an authenticated client.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("%w: %s is required", apperrors.ErrConfigLoadFailed, EnvVarClientID)
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return fmt.Errorf("%w: %s is required", apperrors.ErrConfigLoadFailed, EnvVarClientSecret)
	}
	if strings.TrimSpace(c.AccessToken) == "" && strings.TrimSpace(c.RefreshToken) == "" {
		return fmt.Errorf(
			"%w: at least one of %s or %s is required",
			apperrors.ErrConfigLoadFailed, EnvVarAccessToken, EnvVarRefreshToken,
		)
	}

	return nil
}

// TempoLookupEnabled reports whether the secondary tempo/key lookup service
// can be used.
func (c *Config) TempoLookupEnabled() bool {
	return strings.TrimSpace(c.GetSongBPMKey) != ""
}
