package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/ademuri/listening-history/internal/history"
)

// ListeningDays returns each distinct calendar date with at least one play, oldest first.
func ListeningDays(ds history.Dataset) []time.Time {
	seen := make(map[time.Time]bool)
	var days []time.Time
	ds.Each(func(p history.Play) {
		d := p.Day()
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	})
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

// LongestListeningStreak returns the length, in days, of the longest run of consecutive
// calendar days that each have at least one play.
func LongestListeningStreak(ds history.Dataset) (int, error) {
	days := ListeningDays(ds)
	if len(days) == 0 {
		return 0, fmt.Errorf("longest listening streak: %w", history.ErrEmptyDataset)
	}

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest, nil
}

// AverageSessionDuration returns the mean seconds played per play. Each play counts as its
// own session; no grouping of adjacent plays is attempted.
func AverageSessionDuration(ds history.Dataset) (float64, error) {
	if ds.Len() == 0 {
		return 0, fmt.Errorf("average session duration: %w", history.ErrEmptyDataset)
	}
	var total float64
	ds.Each(func(p history.Play) {
		total += p.SecondsPlayed
	})
	return total / float64(ds.Len()), nil
}

// Summary holds the headline numbers for a dataset.
type Summary struct {
	Plays           int       `yaml:"plays"`
	TotalHours      float64   `yaml:"total_hours"`
	DistinctArtists int       `yaml:"distinct_artists"`
	DistinctTracks  int       `yaml:"distinct_tracks"`
	First           time.Time `yaml:"first"`
	Last            time.Time `yaml:"last"`
}

// Summarize computes headline numbers. An empty dataset yields a zero Summary.
func Summarize(ds history.Dataset) Summary {
	var s Summary
	artists := make(map[string]bool)
	tracks := make(map[string]bool)
	ds.Each(func(p history.Play) {
		s.Plays++
		s.TotalHours += p.HoursPlayed
		artists[p.ArtistName] = true
		tracks[p.TrackName] = true
		if s.First.IsZero() || p.EndTime.Before(s.First) {
			s.First = p.EndTime
		}
		if p.EndTime.After(s.Last) {
			s.Last = p.EndTime
		}
	})
	s.DistinctArtists = len(artists)
	s.DistinctTracks = len(tracks)
	return s
}
