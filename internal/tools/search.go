package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/zmb3/spotify/v2"

	"github.com/oO/spotify-mcp-server/internal/format"
)

var searchTypes = map[string]spotify.SearchType{
	"track":    spotify.SearchTypeTrack,
	"album":    spotify.SearchTypeAlbum,
	"artist":   spotify.SearchTypeArtist,
	"playlist": spotify.SearchTypePlaylist,
}

func searchTool() mcp.Tool {
	return mcp.NewTool("spotify_search",
		mcp.WithDescription("Search the Spotify catalog and browse your playlists, saved tracks, and listening history."),
		mcp.WithString("operation",
			mcp.Required(),
			mcp.Description("What to look up"),
			mcp.Enum("search", "playlists", "playlist_tracks", "saved_tracks", "recently_played"),
		),
		mcp.WithString("query", mcp.Description("Search query (search operation)")),
		mcp.WithString("type",
			mcp.Description("Result type for the search operation"),
			mcp.Enum("track", "album", "artist", "playlist"),
		),
		mcp.WithString("playlist_id", mcp.Description("Playlist ID (playlist_tracks operation)")),
		mcp.WithNumber("limit", mcp.Description("Number of results to return (1-50)")),
		mcp.WithNumber("offset", mcp.Description("Pagination offset, default 0 (ignored for recently_played)")),
	)
}

func (r *Registry) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op := req.GetString("operation", "")
	switch op {
	case "search":
		return r.searchCatalog(ctx, req)
	case "playlists":
		return r.listPlaylists(ctx, req)
	case "playlist_tracks":
		return r.playlistTracks(ctx, req)
	case "saved_tracks":
		return r.savedTracks(ctx, req)
	case "recently_played":
		return r.recentlyPlayed(ctx, req)
	default:
		return unknownOperation(op), nil
	}
}

func (r *Registry) searchCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strings.TrimSpace(req.GetString("query", ""))
	if query == "" {
		return mcp.NewToolResultError("The 'query' argument is required for the search operation."), nil
	}

	typ := req.GetString("type", "")
	searchType, ok := searchTypes[typ]
	if !ok {
		return mcp.NewToolResultError("The 'type' argument must be one of: track, album, artist, playlist."), nil
	}

	limit := clampLimit(intArg(req, "limit", 10), 10)
	offset := intArg(req, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		results, err := client.Search(ctx, query, searchType, spotify.Limit(limit), spotify.Offset(offset))
		if err != nil {
			return err
		}
		text = formatSearchResults(typ, query, results)
		return nil
	})
	if err != nil {
		return apiError("searching Spotify", err), nil
	}

	return mcp.NewToolResultText(text), nil
}

func formatSearchResults(typ, query string, results *spotify.SearchResult) string {
	var lines []string

	switch typ {
	case "track":
		if results.Tracks != nil {
			for i := range results.Tracks.Tracks {
				lines = append(lines, fullTrackLine(i+1, &results.Tracks.Tracks[i]))
			}
		}
	case "album":
		if results.Albums != nil {
			for i := range results.Albums.Albums {
				lines = append(lines, albumLine(i+1, &results.Albums.Albums[i]))
			}
		}
	case "artist":
		if results.Artists != nil {
			for i := range results.Artists.Artists {
				lines = append(lines, artistLine(i+1, &results.Artists.Artists[i]))
			}
		}
	case "playlist":
		if results.Playlists != nil {
			for i := range results.Playlists.Playlists {
				lines = append(lines, playlistLine(i+1, &results.Playlists.Playlists[i]))
			}
		}
	}

	if len(lines) == 0 {
		return fmt.Sprintf("No %s results found for %q.", typ, query)
	}

	header := fmt.Sprintf("# %s results for %q", strings.ToUpper(typ[:1])+typ[1:], query)
	return header + "\n\n" + strings.Join(lines, "\n")
}

func (r *Registry) listPlaylists(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := clampLimit(intArg(req, "limit", 50), 50)
	offset := intArg(req, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		page, err := client.CurrentUsersPlaylists(ctx, spotify.Limit(limit), spotify.Offset(offset))
		if err != nil {
			return err
		}

		if len(page.Playlists) == 0 {
			text = "You have no playlists."
			return nil
		}

		lines := []string{
			"# Your playlists",
			format.PageHeader(offset, len(page.Playlists), int(page.Total)),
			"",
		}
		for i := range page.Playlists {
			lines = append(lines, playlistLine(offset+i+1, &page.Playlists[i]))
		}
		text = strings.Join(lines, "\n")
		return nil
	})
	if err != nil {
		return apiError("fetching your playlists", err), nil
	}

	return mcp.NewToolResultText(text), nil
}

func (r *Registry) playlistTracks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	playlistID := strings.TrimSpace(req.GetString("playlist_id", ""))
	if playlistID == "" {
		return mcp.NewToolResultError("The 'playlist_id' argument is required for the playlist_tracks operation."), nil
	}

	limit := clampLimit(intArg(req, "limit", 50), 50)
	offset := intArg(req, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		playlist, err := client.GetPlaylist(ctx, spotify.ID(playlistID))
		if err != nil {
			return err
		}

		page, err := client.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(limit), spotify.Offset(offset))
		if err != nil {
			return err
		}

		lines := []string{
			fmt.Sprintf("# %s — by %s", playlist.Name, ownerName(playlist.Owner)),
		}
		if playlist.Description != "" {
			lines = append(lines, playlist.Description)
		}
		lines = append(lines, format.PageHeader(offset, len(page.Items), int(page.Total)), "")

		for i := range page.Items {
			lines = append(lines, playlistItemLine(offset+i+1, &page.Items[i]))
		}
		text = strings.Join(lines, "\n")
		return nil
	})
	if err != nil {
		return apiError("fetching playlist tracks", err), nil
	}

	return mcp.NewToolResultText(text), nil
}

// playlistItemLine handles the union shape of playlist entries: a track, an
// episode, or nothing at all (removed/local items).
func playlistItemLine(n int, item *spotify.PlaylistItem) string {
	switch {
	case item.Track.Track != nil:
		return fullTrackLine(n, item.Track.Track)
	case item.Track.Episode != nil:
		return fmt.Sprintf("%d. %s (episode) [%s]", n, item.Track.Episode.Name, item.Track.Episode.ID)
	default:
		return fmt.Sprintf("%d. [Removed track]", n)
	}
}

func (r *Registry) savedTracks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := clampLimit(intArg(req, "limit", 50), 50)
	offset := intArg(req, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		page, err := client.CurrentUsersTracks(ctx, spotify.Limit(limit), spotify.Offset(offset))
		if err != nil {
			return err
		}

		if len(page.Tracks) == 0 {
			text = "You have no saved tracks."
			return nil
		}

		lines := []string{
			"# Your saved tracks",
			format.PageHeader(offset, len(page.Tracks), int(page.Total)),
			"",
		}
		for i := range page.Tracks {
			lines = append(lines, fullTrackLine(offset+i+1, &page.Tracks[i].FullTrack))
		}
		text = strings.Join(lines, "\n")
		return nil
	})
	if err != nil {
		return apiError("fetching saved tracks", err), nil
	}

	return mcp.NewToolResultText(text), nil
}

func (r *Registry) recentlyPlayed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := clampLimit(intArg(req, "limit", 50), 50)

	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		items, err := client.PlayerRecentlyPlayedOpt(ctx, &spotify.RecentlyPlayedOptions{Limit: spotify.Numeric(limit)})
		if err != nil {
			return err
		}

		if len(items) == 0 {
			text = "No recently played tracks."
			return nil
		}

		lines := []string{"# Recently played", ""}
		for i := range items {
			lines = append(lines, simpleTrackLine(i+1, &items[i].Track))
		}
		text = strings.Join(lines, "\n")
		return nil
	})
	if err != nil {
		return apiError("fetching recently played tracks", err), nil
	}

	return mcp.NewToolResultText(text), nil
}
