package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"

	"github.com/oO/spotify-mcp-server/internal/config"
	apperrors "github.com/oO/spotify-mcp-server/internal/errors"
)

func testSession(t *testing.T, handler http.HandlerFunc) *Session {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := New(&config.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		AccessToken:  "token",
	}, hclog.NewNullLogger())

	// Point the raw endpoints at the fake and skip the oauth2 transport.
	s.baseURL = srv.URL
	s.httpClient = srv.Client()
	s.client = spotify.New(srv.Client())

	return s
}

func TestToken_RefreshTokenForcesExpiry(t *testing.T) {
	t.Parallel()

	s := New(&config.Config{RefreshToken: "refresh"}, hclog.NewNullLogger())

	tok, err := s.token()
	require.NoError(t, err)
	require.Equal(t, "refresh", tok.RefreshToken)
	require.False(t, tok.Valid(), "seed token must be expired so the first call refreshes")
}

func TestToken_AccessTokenOnly(t *testing.T) {
	t.Parallel()

	s := New(&config.Config{AccessToken: "access"}, hclog.NewNullLogger())

	tok, err := s.token()
	require.NoError(t, err)
	require.Equal(t, "access", tok.AccessToken)
	require.True(t, tok.Valid())
}

func TestToken_NoCredentials(t *testing.T) {
	t.Parallel()

	s := New(&config.Config{}, hclog.NewNullLogger())

	_, err := s.token()
	require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestAlbumsSaved(t *testing.T) {
	t.Parallel()

	var gotPath, gotIDs string
	s := testSession(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotIDs = r.URL.Query().Get("ids")
		_, _ = w.Write([]byte(`[true, false]`))
	})

	saved, err := s.AlbumsSaved(context.Background(), []spotify.ID{"a1", "a2"})
	require.NoError(t, err)
	require.Equal(t, "/me/albums/contains", gotPath)
	require.Equal(t, "a1,a2", gotIDs)
	require.Equal(t, []bool{true, false}, saved)
}

func TestSaveAndRemoveAlbums(t *testing.T) {
	t.Parallel()

	var gotMethods []string
	s := testSession(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, r.Method)
		require.Equal(t, "/me/albums", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, s.SaveAlbums(context.Background(), []spotify.ID{"a1"}))
	require.NoError(t, s.RemoveAlbums(context.Background(), []spotify.ID{"a1"}))
	require.Equal(t, []string{http.MethodPut, http.MethodDelete}, gotMethods)
}

func TestInsertPlaylistTracks(t *testing.T) {
	t.Parallel()

	s := testSession(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/playlists/pl1/tracks", r.URL.Path)
		require.Equal(t, "spotify:track:t1,spotify:track:t2", r.URL.Query().Get("uris"))
		require.Equal(t, "3", r.URL.Query().Get("position"))
		_, _ = w.Write([]byte(`{"snapshot_id": "snap-1"}`))
	})

	snapshot, err := s.InsertPlaylistTracks(
		context.Background(),
		"pl1",
		[]string{"spotify:track:t1", "spotify:track:t2"},
		3,
	)
	require.NoError(t, err)
	require.Equal(t, "snap-1", snapshot)
}

func TestDo_ErrorStatusIncludesBody(t *testing.T) {
	t.Parallel()

	s := testSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"status":403,"message":"Insufficient client scope"}}`))
	})

	err := s.SaveAlbums(context.Background(), []spotify.ID{"a1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 403")
	require.Contains(t, err.Error(), "Insufficient client scope")
}
