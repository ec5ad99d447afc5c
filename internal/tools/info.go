package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/zmb3/spotify/v2"

	"github.com/oO/spotify-mcp-server/internal/format"
)

func infoTool() mcp.Tool {
	return mcp.NewTool("spotify_info",
		mcp.WithDescription("Inspect current playback, the play queue, and audio-analysis features such as tempo and key."),
		mcp.WithString("operation",
			mcp.Required(),
			mcp.Description("What to inspect"),
			mcp.Enum("now_playing", "enriched_now_playing", "queue", "audio_features"),
		),
		mcp.WithString("track_id",
			mcp.Description("Track ID for audio_features; defaults to the currently playing track"),
		),
	)
}

func (r *Registry) handleInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op := req.GetString("operation", "")
	switch op {
	case "now_playing":
		return r.nowPlaying(ctx, false)
	case "enriched_now_playing":
		return r.nowPlaying(ctx, true)
	case "queue":
		return r.playQueue(ctx)
	case "audio_features":
		return r.audioFeatures(ctx, req)
	default:
		return unknownOperation(op), nil
	}
}

func (r *Registry) nowPlaying(ctx context.Context, enriched bool) (*mcp.CallToolResult, error) {
	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		current, err := client.PlayerCurrentlyPlaying(ctx)
		if err != nil {
			return err
		}

		if current == nil || current.Item == nil {
			text = "Nothing is currently playing."
			return nil
		}

		track := current.Item
		state := "paused"
		if current.Playing {
			state = "playing"
		}

		lines := []string{
			fmt.Sprintf("Now playing: %s", trackSummary(track)),
			fmt.Sprintf("Album: %s", track.Album.Name),
			fmt.Sprintf("Progress: %s / %s (%s)",
				format.Duration(int(current.Progress)), format.Duration(int(track.Duration)), state),
		}

		if enriched {
			lines = append(lines, r.enrichment(ctx, client, track)...)
		}

		text = strings.Join(lines, "\n")
		return nil
	})
	if err != nil {
		return apiError("fetching current playback", err), nil
	}

	return mcp.NewToolResultText(text), nil
}

// enrichment fetches audio features for the playing track and folds the
// headline numbers into the summary. A failed lookup degrades to the plain
// summary; the secondary tempo service fills in when it is configured.
func (r *Registry) enrichment(ctx context.Context, client *spotify.Client, track *spotify.FullTrack) []string {
	features, err := client.GetAudioFeatures(ctx, track.ID)
	if err == nil && len(features) > 0 && features[0] != nil {
		f := features[0]
		return []string{
			fmt.Sprintf("Tempo: %.0f BPM", f.Tempo),
			fmt.Sprintf("Key: %s %s", format.KeyName(int(f.Key)), format.Mode(int(f.Mode))),
			fmt.Sprintf("Energy: %s", format.Percent(float64(f.Energy))),
			fmt.Sprintf("Danceability: %s", format.Percent(float64(f.Danceability))),
		}
	}

	if r.tempo == nil {
		r.logger.Debug("audio features unavailable", "track", track.ID, "error", err)
		return nil
	}

	artist := ""
	if len(track.Artists) > 0 {
		artist = track.Artists[0].Name
	}

	result, lookupErr := r.tempo.Lookup(ctx, track.Name, artist)
	if lookupErr != nil {
		r.logger.Debug("tempo lookup failed", "track", track.ID, "error", lookupErr)
		return nil
	}

	lines := []string{fmt.Sprintf("Tempo: %.0f BPM (via GetSongBPM)", result.Tempo)}
	if result.Key != "" {
		lines = append(lines, fmt.Sprintf("Key: %s", result.Key))
	}
	return lines
}

func (r *Registry) playQueue(ctx context.Context) (*mcp.CallToolResult, error) {
	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		queue, err := client.GetQueue(ctx)
		if err != nil {
			return err
		}

		var lines []string
		if queue.CurrentlyPlaying.Name != "" {
			lines = append(lines, fmt.Sprintf("Currently playing: %s", trackSummary(&queue.CurrentlyPlaying)), "")
		}

		if len(queue.Items) == 0 {
			lines = append(lines, "The queue is empty.")
		} else {
			lines = append(lines, "Up next:")
			for i := range queue.Items {
				lines = append(lines, fullTrackLine(i+1, &queue.Items[i]))
			}
		}

		text = strings.Join(lines, "\n")
		return nil
	})
	if err != nil {
		return apiError("fetching the play queue", err), nil
	}

	return mcp.NewToolResultText(text), nil
}

func (r *Registry) audioFeatures(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	trackID := strings.TrimSpace(req.GetString("track_id", ""))

	var text string
	err := r.session.WithClient(ctx, func(ctx context.Context, client *spotify.Client) error {
		name := ""
		if trackID == "" {
			current, err := client.PlayerCurrentlyPlaying(ctx)
			if err != nil {
				return err
			}
			if current == nil || current.Item == nil {
				text = "Nothing is currently playing; pass 'track_id' to analyse a specific track."
				return nil
			}
			trackID = string(current.Item.ID)
			name = trackSummary(current.Item)
		}

		features, err := client.GetAudioFeatures(ctx, spotify.ID(trackID))
		if err != nil {
			return err
		}
		if len(features) == 0 || features[0] == nil {
			text = fmt.Sprintf("No audio features available for track %s.", trackID)
			return nil
		}

		text = formatAudioFeatures(name, trackID, features[0])
		return nil
	})
	if err != nil {
		return apiError("fetching audio features", err), nil
	}

	return mcp.NewToolResultText(text), nil
}

func formatAudioFeatures(name, trackID string, f *spotify.AudioFeatures) string {
	header := fmt.Sprintf("# Audio features for %s", trackID)
	if name != "" {
		header = fmt.Sprintf("# Audio features for %s", name)
	}

	lines := []string{
		header,
		"",
		fmt.Sprintf("Tempo: %.0f BPM", f.Tempo),
		fmt.Sprintf("Key: %s %s", format.KeyName(int(f.Key)), format.Mode(int(f.Mode))),
		fmt.Sprintf("Time signature: %d beats per bar", int(f.TimeSignature)),
		fmt.Sprintf("Loudness: %.1f dB", f.Loudness),
		fmt.Sprintf("Energy: %s", format.Percent(float64(f.Energy))),
		fmt.Sprintf("Danceability: %s", format.Percent(float64(f.Danceability))),
		fmt.Sprintf("Valence: %s", format.Percent(float64(f.Valence))),
		fmt.Sprintf("Acousticness: %s", format.Percent(float64(f.Acousticness))),
		fmt.Sprintf("Instrumentalness: %s", format.Percent(float64(f.Instrumentalness))),
		fmt.Sprintf("Liveness: %s", format.Percent(float64(f.Liveness))),
		fmt.Sprintf("Speechiness: %s", format.Percent(float64(f.Speechiness))),
	}

	return strings.Join(lines, "\n")
}
