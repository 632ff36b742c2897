package analysis

import (
	"sort"

	"github.com/ademuri/listening-history/internal/history"
)

// countBy tallies plays per key. The result is ordered by descending count, with ties kept
// in order of each key's first appearance.
func countBy(ds history.Dataset, key func(history.Play) string) []NameCount {
	var counts []NameCount
	index := make(map[string]int)
	ds.Each(func(p history.Play) {
		k := key(p)
		i, ok := index[k]
		if !ok {
			i = len(counts)
			index[k] = i
			counts = append(counts, NameCount{Name: k})
		}
		counts[i].Count++
	})

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func artistKey(p history.Play) string { return p.ArtistName }
func trackKey(p history.Play) string  { return p.TrackName }

// limit truncates to n entries. n <= 0 keeps everything.
func limit[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// TopArtists returns the n most played artists by play count.
func TopArtists(ds history.Dataset, n int) []NameCount {
	return limit(countBy(ds, artistKey), n)
}

// TopSongs returns the n most played tracks by play count.
func TopSongs(ds history.Dataset, n int) []NameCount {
	return limit(countBy(ds, trackKey), n)
}

// MostPlayedSongs returns the n tracks with the most total listening time, in hours.
// Ties keep first-appearance order.
func MostPlayedSongs(ds history.Dataset, n int) []NameHours {
	var totals []NameHours
	index := make(map[string]int)
	ds.Each(func(p history.Play) {
		i, ok := index[p.TrackName]
		if !ok {
			i = len(totals)
			index[p.TrackName] = i
			totals = append(totals, NameHours{Name: p.TrackName})
		}
		totals[i].Hours += p.SecondsPlayed
	})

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Hours > totals[j].Hours
	})
	totals = limit(totals, n)
	for i := range totals {
		totals[i].Hours /= 3600
	}
	return totals
}
