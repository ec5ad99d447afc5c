package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/zmb3/spotify/v2"
)

func playbackTool() mcp.Tool {
	return mcp.NewTool("spotify_playback",
		mcp.WithDescription("Control playback and manage playlists: play, pause, skip, queue tracks, create playlists, and add tracks to them."),
		mcp.WithString("operation",
			mcp.Required(),
			mcp.Description("Playback operation to perform"),
			mcp.Enum("play", "pause", "resume", "skip_next", "skip_previous", "queue", "create_playlist", "add_to_playlist"),
		),
		mcp.WithString("uri", mcp.Description("Spotify URI to play or queue, e.g. spotify:track:<id>")),
		mcp.WithString("type",
			mcp.Description("Resource type used with 'id' when no URI is given"),
			mcp.Enum("track", "album", "artist", "playlist"),
		),
		mcp.WithString("id", mcp.Description("Resource ID used with 'type' when no URI is given")),
		mcp.WithString("name", mcp.Description("Playlist name (create_playlist operation)")),
		mcp.WithString("description", mcp.Description("Playlist description (create_playlist operation)")),
		mcp.WithBoolean("public", mcp.Description("Whether the created playlist is public, default false")),
		mcp.WithString("playlist_id", mcp.Description("Playlist ID (add_to_playlist operation)")),
		mcp.WithArray("track_ids",
			mcp.Description("Track IDs to add (add_to_playlist operation)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithNumber("position", mcp.Description("Zero-based insertion position for add_to_playlist; appends when omitted")),
	)
}

func (r *Registry) handlePlayback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op := req.GetString("operation", "")
	switch op {
	case "play":
		return r.play(ctx, req)
	case "pause":
		return r.simplePlayerOp(ctx, "pausing playback", "Playback paused.",
			func(ctx context.Context, client *spotify.Client) error { return client.Pause(ctx) })
	case "resume":
		return r.simplePlayerOp(ctx, "resuming playback", "Playback resumed.",
			func(ctx context.Context, client *spotify.Client) error { return client.Play(ctx) })
	case "skip_next":
		return r.simplePlayerOp(ctx, "skipping to the next track", "Skipped to the next track.",
			func(ctx context.Context, client *spotify.Client) error { return client.Next(ctx) })
	case "skip_previous":
		return r.simplePlayerOp(ctx, "skipping to the previous track", "Skipped to the previous track.",
			func(ctx context.Context, client *spotify.Client) error { return client.Previous(ctx) })
	case "queue":
		return r.queueTrack(ctx, req)
	case "create_playlist":
		return r.createPlaylist(ctx, req)
	case "add_to_playlist":
		return r.addToPlaylist(ctx, req)
	default:
		return unknownOperation(op), nil
	}
}

func (r *Registry) simplePlayerOp(ctx context.Context, action, success string, op func(context.Context, *spotify.Client) error) (*mcp.CallToolResult, error) {
	if err := r.session.WithClient(ctx, op); err != nil {
		return apiError(action, err), nil
	}
	return mcp.NewToolResultText(success), nil
}

func (r *Registry) play(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uri, err := playbackURI(
		strings.TrimSpace(req.GetString("uri", "")),
		req.GetString("type", ""),
		strings.TrimSpace(req.GetString("id", "")),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := &spotify.PlayOptions{}
	if _, ok := trackIDFromURI(uri); ok {
		opts.URIs = []spotify.URI{uri}
	} else {
		opts.PlaybackContext = &uri
	}

	err = r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		return client.PlayOpt(ctx, opts)
	})
	if err != nil {
		return apiError("starting playback", err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Started playback of %s.", uri)), nil
}

func (r *Registry) queueTrack(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uri, err := playbackURI(
		strings.TrimSpace(req.GetString("uri", "")),
		req.GetString("type", ""),
		strings.TrimSpace(req.GetString("id", "")),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	trackID, ok := trackIDFromURI(uri)
	if !ok {
		return mcp.NewToolResultError("Only tracks can be queued; provide a spotify:track:<id> URI or type 'track'."), nil
	}

	err = r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		return client.QueueSong(ctx, trackID)
	})
	if err != nil {
		return apiError("adding to the queue", err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Added track %s to the queue.", trackID)), nil
}

func (r *Registry) createPlaylist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("The 'name' argument is required for the create_playlist operation."), nil
	}

	description := req.GetString("description", "")
	public := boolArg(req, "public", false)

	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		user, err := client.CurrentUser(ctx)
		if err != nil {
			return err
		}

		playlist, err := client.CreatePlaylistForUser(ctx, user.ID, name, description, public, false)
		if err != nil {
			return err
		}

		visibility := "private"
		if public {
			visibility = "public"
		}
		text = fmt.Sprintf("Created %s playlist %q [%s].", visibility, playlist.Name, playlist.ID)
		return nil
	})
	if err != nil {
		return apiError("creating the playlist", err), nil
	}

	return mcp.NewToolResultText(text), nil
}

func (r *Registry) addToPlaylist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	playlistID := strings.TrimSpace(req.GetString("playlist_id", ""))
	if playlistID == "" {
		return mcp.NewToolResultError("The 'playlist_id' argument is required for the add_to_playlist operation."), nil
	}

	trackIDs := stringSliceArg(req, "track_ids")
	if len(trackIDs) == 0 {
		return mcp.NewToolResultError("The 'track_ids' argument must contain at least one track ID."), nil
	}

	position := intArg(req, "position", -1)

	if position >= 0 {
		// Positional insert goes through the raw endpoint; the SDK's add
		// method is append-only.
		if _, err := r.session.InsertPlaylistTracks(ctx, spotify.ID(playlistID), trackURIs(trackIDs), position); err != nil {
			return apiError("adding tracks to the playlist", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Inserted %d track(s) into playlist %s at position %d.", len(trackIDs), playlistID, position)), nil
	}

	ids := make([]spotify.ID, 0, len(trackIDs))
	for _, id := range trackIDs {
		ids = append(ids, spotify.ID(id))
	}

	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		_, err := client.AddTracksToPlaylist(ctx, spotify.ID(playlistID), ids...)
		return err
	})
	if err != nil {
		return apiError("adding tracks to the playlist", err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Added %d track(s) to playlist %s.", len(trackIDs), playlistID)), nil
}
