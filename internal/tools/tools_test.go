package tools

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"

	"github.com/oO/spotify-mcp-server/internal/config"
	"github.com/oO/spotify-mcp-server/internal/session"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	sess := session.New(&config.Config{}, hclog.NewNullLogger())
	return New(sess, nil, hclog.NewNullLogger())
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestValidatedRejectsSchemaViolations(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	handler := r.validated(searchTool(), r.handleSearch)

	t.Run("missing operation", func(t *testing.T) {
		t.Parallel()

		result, err := handler(context.Background(), callRequest(map[string]any{}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		require.Contains(t, textOf(t, result), "Invalid arguments")
	})

	t.Run("operation outside the enum", func(t *testing.T) {
		t.Parallel()

		result, err := handler(context.Background(), callRequest(map[string]any{"operation": "explode"}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		require.Contains(t, textOf(t, result), "Invalid arguments")
	})

	t.Run("valid arguments pass through to the handler", func(t *testing.T) {
		t.Parallel()

		result, err := handler(context.Background(), callRequest(map[string]any{"operation": "search"}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		require.Contains(t, textOf(t, result), "'query' argument is required")
	})
}

func TestSearchValidation(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{
			name: "search requires query",
			args: map[string]any{"operation": "search", "type": "track"},
			want: "The 'query' argument is required for the search operation.",
		},
		{
			name: "search requires a known type",
			args: map[string]any{"operation": "search", "query": "daft punk", "type": "podcast"},
			want: "The 'type' argument must be one of: track, album, artist, playlist.",
		},
		{
			name: "playlist_tracks requires playlist_id",
			args: map[string]any{"operation": "playlist_tracks"},
			want: "The 'playlist_id' argument is required for the playlist_tracks operation.",
		},
		{
			name: "unknown operation",
			args: map[string]any{"operation": "teleport"},
			want: "Unknown operation: teleport",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := r.handleSearch(context.Background(), callRequest(tc.args))
			require.NoError(t, err)
			require.True(t, result.IsError)
			require.Equal(t, tc.want, textOf(t, result))
		})
	}
}

func TestFormatSearchResults(t *testing.T) {
	t.Parallel()

	t.Run("empty result sets report a message, never an empty string", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			typ  string
			want string
		}{
			{typ: "track", want: `No track results found for "zzz".`},
			{typ: "album", want: `No album results found for "zzz".`},
			{typ: "artist", want: `No artist results found for "zzz".`},
			{typ: "playlist", want: `No playlist results found for "zzz".`},
		}

		for _, tc := range tests {
			t.Run(tc.typ, func(t *testing.T) {
				t.Parallel()
				require.Equal(t, tc.want, formatSearchResults(tc.typ, "zzz", &spotify.SearchResult{}))
			})
		}
	})

	t.Run("track hits render a header and numbered lines", func(t *testing.T) {
		t.Parallel()

		results := &spotify.SearchResult{
			Tracks: &spotify.FullTrackPage{
				Tracks: []spotify.FullTrack{{
					SimpleTrack: spotify.SimpleTrack{
						ID:       "t1",
						Name:     "Harder Better Faster Stronger",
						Artists:  []spotify.SimpleArtist{{Name: "Daft Punk"}},
						Duration: 224000,
					},
					Album: spotify.SimpleAlbum{Name: "Discovery"},
				}},
			},
		}

		got := formatSearchResults("track", "daft punk", results)
		require.Contains(t, got, `# Track results for "daft punk"`)
		require.Contains(t, got, "1. Harder Better Faster Stronger — Daft Punk (Discovery, 3:44) [t1]")
	})
}

func TestAlbumsValidation(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{
			name: "albums requires album_ids",
			args: map[string]any{"operation": "albums"},
			want: "The 'album_ids' argument must contain at least one album ID.",
		},
		{
			name: "save_album requires album_ids",
			args: map[string]any{"operation": "save_album", "album_ids": []any{}},
			want: "The 'album_ids' argument must contain at least one album ID.",
		},
		{
			name: "unknown operation",
			args: map[string]any{"operation": "burn"},
			want: "Unknown operation: burn",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := r.handleAlbums(context.Background(), callRequest(tc.args))
			require.NoError(t, err)
			require.True(t, result.IsError)
			require.Equal(t, tc.want, textOf(t, result))
		})
	}
}

func TestPlaybackValidation(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{
			name: "play requires uri or type plus id",
			args: map[string]any{"operation": "play"},
			want: "provide either 'uri' or both 'type' and 'id'",
		},
		{
			name: "play rejects unsupported type",
			args: map[string]any{"operation": "play", "type": "show", "id": "s1"},
			want: "type must be one of track, album, artist, playlist",
		},
		{
			name: "queue rejects non-track URIs",
			args: map[string]any{"operation": "queue", "uri": "spotify:album:a1"},
			want: "Only tracks can be queued",
		},
		{
			name: "create_playlist requires name",
			args: map[string]any{"operation": "create_playlist"},
			want: "The 'name' argument is required for the create_playlist operation.",
		},
		{
			name: "add_to_playlist requires playlist_id",
			args: map[string]any{"operation": "add_to_playlist", "track_ids": []any{"t1"}},
			want: "The 'playlist_id' argument is required for the add_to_playlist operation.",
		},
		{
			name: "add_to_playlist requires track_ids",
			args: map[string]any{"operation": "add_to_playlist", "playlist_id": "p1"},
			want: "The 'track_ids' argument must contain at least one track ID.",
		},
		{
			name: "unknown operation",
			args: map[string]any{"operation": "rewind"},
			want: "Unknown operation: rewind",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := r.handlePlayback(context.Background(), callRequest(tc.args))
			require.NoError(t, err)
			require.True(t, result.IsError)
			require.Contains(t, textOf(t, result), tc.want)
		})
	}
}

func TestUnauthenticatedSessionSurfacesErrorPayload(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	result, err := r.handlePlayback(context.Background(), callRequest(map[string]any{
		"operation": "pause",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, textOf(t, result), "Error pausing playback")
	require.Contains(t, textOf(t, result), "not authenticated")
}

func TestArgumentCoercion(t *testing.T) {
	t.Parallel()

	t.Run("intArg accepts JSON number shapes", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, 25, intArg(callRequest(map[string]any{"limit": float64(25)}), "limit", 10))
		require.Equal(t, 25, intArg(callRequest(map[string]any{"limit": "25"}), "limit", 10))
		require.Equal(t, 10, intArg(callRequest(map[string]any{"limit": "nope"}), "limit", 10))
		require.Equal(t, 10, intArg(callRequest(map[string]any{}), "limit", 10))
	})

	t.Run("boolArg accepts strings", func(t *testing.T) {
		t.Parallel()

		require.True(t, boolArg(callRequest(map[string]any{"public": true}), "public", false))
		require.True(t, boolArg(callRequest(map[string]any{"public": "true"}), "public", false))
		require.False(t, boolArg(callRequest(map[string]any{}), "public", false))
	})

	t.Run("stringSliceArg handles loosely typed arrays", func(t *testing.T) {
		t.Parallel()

		got := stringSliceArg(callRequest(map[string]any{"track_ids": []any{"t1", "", "t2", 3}}), "track_ids")
		require.Equal(t, []string{"t1", "t2"}, got)

		require.Nil(t, stringSliceArg(callRequest(map[string]any{}), "track_ids"))
	})
}
