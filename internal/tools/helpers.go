package tools

import (
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"

	apperrors "github.com/oO/spotify-mcp-server/internal/errors"
	"github.com/oO/spotify-mcp-server/internal/format"
)

// maxAlbumIDs is the Web API's per-request ceiling for album operations.
const maxAlbumIDs = 20

const trackURIPrefix = "spotify:track:"

// clampLimit keeps a page size inside Spotify's 1-50 window, substituting
// def when the caller passed nothing usable.
func clampLimit(v, def int) int {
	if v <= 0 {
		return def
	}
	if v > 50 {
		return 50
	}
	return v
}

// albumIDArgs converts raw album ID strings into spotify IDs, truncated to
// the first maxAlbumIDs entries.
func albumIDArgs(raw []string) []spotify.ID {
	if len(raw) > maxAlbumIDs {
		raw = raw[:maxAlbumIDs]
	}

	ids := make([]spotify.ID, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			ids = append(ids, spotify.ID(s))
		}
	}
	return ids
}

// playbackURI resolves the uri / type+id argument pair into a Spotify URI.
func playbackURI(uri, typ, id string) (spotify.URI, error) {
	if uri != "" {
		return spotify.URI(uri), nil
	}

	if typ != "" && id != "" {
		switch typ {
		case "track", "album", "artist", "playlist":
			return spotify.URI("spotify:" + typ + ":" + id), nil
		default:
			return "", fmt.Errorf("%w: type must be one of track, album, artist, playlist", apperrors.ErrInvalidArgument)
		}
	}

	return "", fmt.Errorf("%w: provide either 'uri' or both 'type' and 'id'", apperrors.ErrMissingArgument)
}

// trackIDFromURI extracts the track ID from a spotify:track:<id> URI.
func trackIDFromURI(uri spotify.URI) (spotify.ID, bool) {
	s := string(uri)
	if !strings.HasPrefix(s, trackURIPrefix) || len(s) == len(trackURIPrefix) {
		return "", false
	}
	return spotify.ID(s[len(trackURIPrefix):]), true
}

// trackURIs converts track IDs to URIs, preserving input order.
func trackURIs(ids []string) []string {
	uris := make([]string, 0, len(ids))
	for _, id := range ids {
		uris = append(uris, trackURIPrefix+id)
	}
	return uris
}

// Line formatters shared across tools.

func fullTrackLine(n int, t *spotify.FullTrack) string {
	return fmt.Sprintf("%d. %s — %s (%s, %s) [%s]",
		n, t.Name, format.Artists(t.Artists), t.Album.Name, format.Duration(int(t.Duration)), t.ID)
}

func simpleTrackLine(n int, t *spotify.SimpleTrack) string {
	return fmt.Sprintf("%d. %s — %s (%s) [%s]",
		n, t.Name, format.Artists(t.Artists), format.Duration(int(t.Duration)), t.ID)
}

func albumLine(n int, a *spotify.SimpleAlbum) string {
	return fmt.Sprintf("%d. %s — %s (%d tracks) [%s]",
		n, a.Name, format.Artists(a.Artists), int(a.TotalTracks), a.ID)
}

func artistLine(n int, a *spotify.FullArtist) string {
	return fmt.Sprintf("%d. %s [%s]", n, a.Name, a.ID)
}

func playlistLine(n int, p *spotify.SimplePlaylist) string {
	return fmt.Sprintf("%d. %s — by %s (%d tracks) [%s]",
		n, p.Name, ownerName(p.Owner), int(p.Tracks.Total), p.ID)
}

func ownerName(owner spotify.User) string {
	if owner.DisplayName != "" {
		return owner.DisplayName
	}
	return owner.ID
}

func trackSummary(t *spotify.FullTrack) string {
	return fmt.Sprintf("%s — %s", t.Name, format.Artists(t.Artists))
}
