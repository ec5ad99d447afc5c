// Package tempo looks up tempo and key metadata from the GetSongBPM API.
//
// This is the optional secondary lookup service: a plain HTTP fetch with a
// timeout and no retry or backoff. Without an API key the client is simply
// never constructed.
package tempo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"
)

const defaultBaseURL = "https://api.getsong.co"

// Result holds the subset of GetSongBPM fields the tools report.
type Result struct {
	Title         string
	Artist        string
	Tempo         float64
	Key           string
	TimeSignature string
}

// searchResponse mirrors the fields we need from the search endpoint.
// GetSongBPM returns numbers as strings.
type searchResponse struct {
	Search []struct {
		SongTitle string `json:"song_title"`
		Tempo     string `json:"tempo"`
		TimeSig   string `json:"time_sig"`
		KeyOf     string `json:"key_of"`
		Artist    struct {
			Name string `json:"name"`
		} `json:"artist"`
	} `json:"search"`
}

// Client queries the GetSongBPM search endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     hclog.Logger
}

func New(apiKey string, logger hclog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.Named("tempo"),
	}
}

// Lookup searches for a song by title and artist and returns the first match.
func (c *Client) Lookup(ctx context.Context, title, artist string) (*Result, error) {
	query := url.Values{
		"api_key": {c.apiKey},
		"type":    {"both"},
		"lookup":  {fmt.Sprintf("song:%s artist:%s", title, artist)},
	}

	endpoint := c.baseURL + "/search/?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getsongbpm API error: status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(body.Search) == 0 {
		return nil, fmt.Errorf("no tempo data found for %q by %q", title, artist)
	}

	match := body.Search[0]
	bpm, err := strconv.ParseFloat(match.Tempo, 64)
	if err != nil {
		c.logger.Debug("unparseable tempo in response", "tempo", match.Tempo)
		bpm = 0
	}

	return &Result{
		Title:         match.SongTitle,
		Artist:        match.Artist.Name,
		Tempo:         bpm,
		Key:           match.KeyOf,
		TimeSignature: match.TimeSig,
	}, nil
}
