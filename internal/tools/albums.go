package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/zmb3/spotify/v2"

	"github.com/oO/spotify-mcp-server/internal/format"
)

func albumsTool() mcp.Tool {
	return mcp.NewTool("spotify_albums",
		mcp.WithDescription("Look up albums, list their tracks, and manage the albums saved in your library."),
		mcp.WithString("operation",
			mcp.Required(),
			mcp.Description("Album operation to perform"),
			mcp.Enum("albums", "album_tracks", "save_album", "remove_album", "check_saved", "saved_albums"),
		),
		mcp.WithArray("album_ids",
			mcp.Description("Album IDs to operate on (maximum 20)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithNumber("limit", mcp.Description("Number of results to return (1-50, saved_albums only)")),
		mcp.WithNumber("offset", mcp.Description("Pagination offset, default 0 (saved_albums only)")),
	)
}

func (r *Registry) handleAlbums(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op := req.GetString("operation", "")

	if op == "saved_albums" {
		return r.savedAlbums(ctx, req)
	}

	ids := albumIDArgs(stringSliceArg(req, "album_ids"))
	if len(ids) == 0 {
		return mcp.NewToolResultError("The 'album_ids' argument must contain at least one album ID."), nil
	}

	switch op {
	case "albums":
		return r.albumDetails(ctx, ids)
	case "album_tracks":
		return r.albumTracks(ctx, ids)
	case "save_album":
		return r.saveAlbums(ctx, ids)
	case "remove_album":
		return r.removeAlbums(ctx, ids)
	case "check_saved":
		return r.checkSavedAlbums(ctx, ids)
	default:
		return unknownOperation(op), nil
	}
}

func (r *Registry) albumDetails(ctx context.Context, ids []spotify.ID) (*mcp.CallToolResult, error) {
	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		albums, err := client.GetAlbums(ctx, ids)
		if err != nil {
			return err
		}

		lines := []string{"# Albums", ""}
		n := 0
		for _, album := range albums {
			if album == nil {
				continue
			}
			n++
			lines = append(lines, fmt.Sprintf("%d. %s — %s (%d tracks, released %s) [%s]",
				n, album.Name, format.Artists(album.Artists), int(album.TotalTracks), album.ReleaseDate, album.ID))
		}
		if n == 0 {
			text = "No albums found for the given IDs."
			return nil
		}
		text = strings.Join(lines, "\n")
		return nil
	})
	if err != nil {
		return apiError("fetching albums", err), nil
	}

	return mcp.NewToolResultText(text), nil
}

func (r *Registry) albumTracks(ctx context.Context, ids []spotify.ID) (*mcp.CallToolResult, error) {
	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		albums, err := client.GetAlbums(ctx, ids)
		if err != nil {
			return err
		}

		var sections []string
		for _, album := range albums {
			if album == nil {
				continue
			}

			lines := []string{fmt.Sprintf("# %s — %s", album.Name, format.Artists(album.Artists))}
			for i := range album.Tracks.Tracks {
				lines = append(lines, simpleTrackLine(i+1, &album.Tracks.Tracks[i]))
			}
			sections = append(sections, strings.Join(lines, "\n"))
		}
		if len(sections) == 0 {
			text = "No albums found for the given IDs."
			return nil
		}
		text = strings.Join(sections, "\n\n")
		return nil
	})
	if err != nil {
		return apiError("fetching album tracks", err), nil
	}

	return mcp.NewToolResultText(text), nil
}

func (r *Registry) saveAlbums(ctx context.Context, ids []spotify.ID) (*mcp.CallToolResult, error) {
	if err := r.session.SaveAlbums(ctx, ids); err != nil {
		return apiError("saving albums", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Saved %d album(s) to your library.", len(ids))), nil
}

func (r *Registry) removeAlbums(ctx context.Context, ids []spotify.ID) (*mcp.CallToolResult, error) {
	if err := r.session.RemoveAlbums(ctx, ids); err != nil {
		return apiError("removing albums", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed %d album(s) from your library.", len(ids))), nil
}

func (r *Registry) checkSavedAlbums(ctx context.Context, ids []spotify.ID) (*mcp.CallToolResult, error) {
	saved, err := r.session.AlbumsSaved(ctx, ids)
	if err != nil {
		return apiError("checking saved albums", err), nil
	}

	lines := make([]string, 0, len(ids))
	for i, id := range ids {
		status := "not saved"
		if i < len(saved) && saved[i] {
			status = "saved"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", id, status))
	}

	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (r *Registry) savedAlbums(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := clampLimit(intArg(req, "limit", 50), 50)
	offset := intArg(req, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		page, err := client.CurrentUsersAlbums(ctx, spotify.Limit(limit), spotify.Offset(offset))
		if err != nil {
			return err
		}

		if len(page.Albums) == 0 {
			text = "You have no saved albums."
			return nil
		}

		lines := []string{
			"# Your saved albums",
			format.PageHeader(offset, len(page.Albums), int(page.Total)),
			"",
		}
		for i := range page.Albums {
			lines = append(lines, albumLine(offset+i+1, &page.Albums[i].SimpleAlbum))
		}
		text = strings.Join(lines, "\n")
		return nil
	})
	if err != nil {
		return apiError("fetching saved albums", err), nil
	}

	return mcp.NewToolResultText(text), nil
}
