package format

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"
)

func TestDuration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		ms       int
		expected string
	}{
		{name: "zero", ms: 0, expected: "0:00"},
		{name: "sub-second", ms: 999, expected: "0:00"},
		{name: "single digit seconds padded", ms: 65000, expected: "1:05"},
		{name: "exact minute", ms: 60000, expected: "1:00"},
		{name: "double digit seconds", ms: 83000, expected: "1:23"},
		{name: "over ten minutes", ms: 754000, expected: "12:34"},
		{name: "over an hour stays in minutes", ms: 3723000, expected: "62:03"},
		{name: "negative clamps to zero", ms: -5000, expected: "0:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, Duration(tc.ms))
		})
	}
}

func TestKeyName(t *testing.T) {
	t.Parallel()

	expected := map[int]string{
		-1: "Unknown",
		0:  "C",
		1:  "C♯/D♭",
		2:  "D",
		3:  "D♯/E♭",
		4:  "E",
		5:  "F",
		6:  "F♯/G♭",
		7:  "G",
		8:  "G♯/A♭",
		9:  "A",
		10: "A♯/B♭",
		11: "B",
		12: "Unknown",
	}

	for pitch, want := range expected {
		require.Equal(t, want, KeyName(pitch), "pitch class %d", pitch)
	}
}

func TestMode(t *testing.T) {
	t.Parallel()

	require.Equal(t, "major", Mode(1))
	require.Equal(t, "minor", Mode(0))
	require.Equal(t, "minor", Mode(-1))
}

func TestPercent(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0%", Percent(0))
	require.Equal(t, "76%", Percent(0.761))
	require.Equal(t, "100%", Percent(1))
}

func TestArtists(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Artists(nil))
	require.Equal(t, "Nina Simone", Artists([]spotify.SimpleArtist{{Name: "Nina Simone"}}))
	require.Equal(t,
		"Daft Punk, Pharrell Williams, Nile Rodgers",
		Artists([]spotify.SimpleArtist{
			{Name: "Daft Punk"},
			{Name: "Pharrell Williams"},
			{Name: "Nile Rodgers"},
		}),
	)
}

func TestPageHeader(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		offset   int
		count    int
		total    int
		expected string
	}{
		{name: "first page", offset: 0, count: 10, total: 42, expected: "Showing items 1-10 of 42"},
		{name: "later page", offset: 50, count: 50, total: 123, expected: "Showing items 51-100 of 123"},
		{name: "single item", offset: 0, count: 1, total: 1, expected: "Showing items 1-1 of 1"},
		{name: "empty page", offset: 10, count: 0, total: 5, expected: "Showing 0 of 5 items"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, PageHeader(tc.offset, tc.count, tc.total))
		})
	}
}
