package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oO/spotify-mcp-server/internal/flags"
)

func TestNewRootCmdRegistersGlobalFlags(t *testing.T) {
	rootCmd := NewRootCmd()

	for _, name := range []string{flags.FlagNameConfigFile, flags.FlagNameLogPath, flags.FlagNameLogLevel} {
		require.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %q", name)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  string
	}{
		{name: "known level passes through", level: "debug", want: "debug"},
		{name: "off is accepted", level: "off", want: "off"},
		{name: "unknown level defaults to info", level: "loud", want: "info"},
		{name: "empty defaults to info", level: "", want: "info"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orig := flags.LogLevel
			t.Cleanup(func() { flags.LogLevel = orig })

			flags.LogLevel = tc.level
			require.Equal(t, tc.want, logLevel())
		})
	}
}
