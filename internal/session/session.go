// Package session owns the authenticated Spotify client.
//
// It is the single pass-through between tool handlers and the Spotify SDK:
// handlers hand it a callback, it hands them a ready client. Token refresh is
// delegated to oauth2, and there are no retries or backoff — a deliberate
// simplification for a single-user local tool.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"github.com/oO/spotify-mcp-server/internal/config"
	apperrors "github.com/oO/spotify-mcp-server/internal/errors"
)

const webAPIBaseURL = "https://api.spotify.com/v1"

// Session lazily builds and caches the authenticated Spotify client.
type Session struct {
	cfg    *config.Config
	logger hclog.Logger

	mu         sync.Mutex
	client     *spotify.Client
	httpClient *http.Client

	baseURL string
}

// New returns an unauthenticated session. The client is built on first use.
func New(cfg *config.Config, logger hclog.Logger) *Session {
	return &Session{
		cfg:     cfg,
		logger:  logger.Named("session"),
		baseURL: webAPIBaseURL,
	}
}

// WithClient obtains a ready client and runs fn against it. Errors from fn
// surface unchanged so each tool can format them for its own context.
func (s *Session) WithClient(ctx context.Context, fn func(context.Context, *spotify.Client) error) error {
	client, err := s.ensureClient()
	if err != nil {
		return err
	}
	return fn(ctx, client)
}

func (s *Session) ensureClient() (*spotify.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	token, err := s.token()
	if err != nil {
		return nil, err
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(s.cfg.ClientID),
		spotifyauth.WithClientSecret(s.cfg.ClientSecret),
		spotifyauth.WithRedirectURL(s.cfg.RedirectURI),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserReadPlaybackState,
			spotifyauth.ScopeUserModifyPlaybackState,
			spotifyauth.ScopeUserReadCurrentlyPlaying,
			spotifyauth.ScopeUserReadRecentlyPlayed,
			spotifyauth.ScopeUserLibraryRead,
			spotifyauth.ScopeUserLibraryModify,
			spotifyauth.ScopePlaylistReadPrivate,
			spotifyauth.ScopePlaylistModifyPrivate,
			spotifyauth.ScopePlaylistModifyPublic,
		),
	)

	// The oauth2 transport outlives any single request, so refresh is bound
	// to the process lifetime rather than a per-call context.
	s.httpClient = auth.Client(context.Background(), token)
	s.client = spotify.New(s.httpClient)

	s.logger.Debug("spotify client initialised", "refresh_token", s.cfg.RefreshToken != "")

	return s.client, nil
}

// token assembles the seed oauth2 token from configuration. A configured
// refresh token takes priority: marking it expired forces a fresh access
// token on first use.
func (s *Session) token() (*oauth2.Token, error) {
	if s.cfg.RefreshToken != "" {
		return &oauth2.Token{
			TokenType:    "Bearer",
			AccessToken:  s.cfg.AccessToken,
			RefreshToken: s.cfg.RefreshToken,
			Expiry:       time.Now().Add(-time.Minute),
		}, nil
	}

	if s.cfg.AccessToken != "" {
		return &oauth2.Token{
			TokenType:   "Bearer",
			AccessToken: s.cfg.AccessToken,
		}, nil
	}

	return nil, apperrors.ErrNotAuthenticated
}

// do performs an authenticated request against a Web API endpoint the SDK has
// no binding for, decoding the response into result when non-nil.
func (s *Session) do(ctx context.Context, method, path string, query url.Values, result any) error {
	if _, err := s.ensureClient(); err != nil {
		return err
	}

	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("spotify API error (status %d): %s", resp.StatusCode, msg)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func idsParam(ids []spotify.ID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, ",")
}

// SaveAlbums adds albums to the user's library. The SDK has no binding for
// the album library endpoints, so these three go over the wire directly.
func (s *Session) SaveAlbums(ctx context.Context, ids []spotify.ID) error {
	query := url.Values{"ids": {idsParam(ids)}}
	return s.do(ctx, http.MethodPut, "/me/albums", query, nil)
}

// RemoveAlbums removes albums from the user's library.
func (s *Session) RemoveAlbums(ctx context.Context, ids []spotify.ID) error {
	query := url.Values{"ids": {idsParam(ids)}}
	return s.do(ctx, http.MethodDelete, "/me/albums", query, nil)
}

// AlbumsSaved reports, per input ID and in input order, whether each album is
// in the user's library.
func (s *Session) AlbumsSaved(ctx context.Context, ids []spotify.ID) ([]bool, error) {
	query := url.Values{"ids": {idsParam(ids)}}

	var saved []bool
	if err := s.do(ctx, http.MethodGet, "/me/albums/contains", query, &saved); err != nil {
		return nil, err
	}

	return saved, nil
}

// InsertPlaylistTracks adds track URIs to a playlist at the given position.
// The SDK's add method is append-only, so positional inserts use the raw
// endpoint. Returns the new playlist snapshot ID.
func (s *Session) InsertPlaylistTracks(ctx context.Context, playlistID spotify.ID, uris []string, position int) (string, error) {
	query := url.Values{
		"uris":     {strings.Join(uris, ",")},
		"position": {fmt.Sprintf("%d", position)},
	}

	var result struct {
		SnapshotID string `json:"snapshot_id"`
	}
	path := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	if err := s.do(ctx, http.MethodPost, path, query, &result); err != nil {
		return "", err
	}

	return result.SnapshotID, nil
}
