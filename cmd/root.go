package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/oO/spotify-mcp-server/internal/config"
	"github.com/oO/spotify-mcp-server/internal/flags"
	"github.com/oO/spotify-mcp-server/internal/session"
	"github.com/oO/spotify-mcp-server/internal/tempo"
	"github.com/oO/spotify-mcp-server/internal/tools"
)

const serverName = "spotify-mcp-server"

var version = "dev" // Set at build time using -ldflags

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   serverName,
		Short: "MCP server exposing Spotify search, playback and playlist tools over stdio.",
		Long: `Runs a Model Context Protocol server on stdin/stdout that lets an MCP host
search the Spotify catalog, control playback, inspect the queue and audio
features, and manage playlists and the user's saved library.

Credentials are read from SPOTIFY_ID, SPOTIFY_SECRET and token env vars, or
from an optional TOML config file.`,
		SilenceUsage: true,
		Version:      version,
		RunE:         run,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	return rootCmd
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := configureLogger()
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	sess := session.New(cfg, logger)

	var tempoClient *tempo.Client
	if cfg.TempoLookupEnabled() {
		tempoClient = tempo.New(cfg.GetSongBPMKey, logger)
	} else {
		logger.Debug("tempo lookup disabled, no GetSongBPM API key configured")
	}

	registry := tools.New(sess, tempoClient, logger)

	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)
	registry.Register(s)

	logger.Info("serving MCP over stdio", "version", version)

	return server.ServeStdio(s)
}

// configureLogger builds the server logger. Stdout carries the MCP transport,
// so logs go to the configured file or nowhere at all.
func configureLogger() (hclog.Logger, error) {
	logOutput := io.Discard

	if flags.LogPath != "" {
		f, err := os.OpenFile(flags.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", flags.LogPath, err)
		}
		logOutput = f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   serverName,
		Level:  hclog.LevelFromString(logLevel()),
		Output: logOutput,
	})

	return logger, nil
}

func logLevel() string {
	switch flags.LogLevel {
	case "trace", "debug", "info", "warn", "error", "off":
		return flags.LogLevel
	default:
		return "info"
	}
}
