// Package format holds pure helpers that turn Spotify values into the text
// fragments the tool responses are built from.
package format

import (
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
)

// keyNames maps a pitch class (0-11) to its conventional name.
var keyNames = [12]string{
	"C", "C♯/D♭", "D", "D♯/E♭", "E", "F",
	"F♯/G♭", "G", "G♯/A♭", "A", "A♯/B♭", "B",
}

// Duration renders a millisecond duration as m:ss with zero-padded seconds,
// e.g. 65000 -> "1:05".
func Duration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// KeyName resolves a pitch class to its name. Spotify reports -1 when no key
// was detected; that (and any other out-of-range value) renders as "Unknown".
func KeyName(pitchClass int) string {
	if pitchClass < 0 || pitchClass >= len(keyNames) {
		return "Unknown"
	}
	return keyNames[pitchClass]
}

// Mode renders Spotify's modality flag (1 = major, 0 = minor).
func Mode(mode int) string {
	if mode == 1 {
		return "major"
	}
	return "minor"
}

// Percent renders a 0-1 analysis value as a whole percentage.
func Percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

// Artists joins artist names with commas.
func Artists(artists []spotify.SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// PageHeader reports a 1-based inclusive range for a page of count items
// starting at offset, out of total as reported by Spotify.
func PageHeader(offset, count, total int) string {
	if count == 0 {
		return fmt.Sprintf("Showing 0 of %d items", total)
	}
	return fmt.Sprintf("Showing items %d-%d of %d", offset+1, offset+count, total)
}
