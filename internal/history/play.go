// Package history holds a loaded streaming-history log and its derived per-play fields.
package history

import (
	"slices"
	"time"
)

// Play is one playback record. The fields after MsPlayed are derived from EndTime and
// MsPlayed when the play is constructed and never change afterwards.
type Play struct {
	EndTime    time.Time
	ArtistName string
	TrackName  string
	MsPlayed   float64

	Year          int
	Month         time.Month
	Date          int
	Hour          int
	DayOfWeek     time.Weekday
	SecondsPlayed float64
	MinPlayed     float64
	HoursPlayed   float64
}

// NewPlay builds a Play with its derived fields populated. endTime is converted to UTC and
// every derived field is taken from the UTC clock.
func NewPlay(endTime time.Time, artist, track string, msPlayed float64) Play {
	endTime = endTime.UTC()
	seconds := msPlayed / 1000
	return Play{
		EndTime:       endTime,
		ArtistName:    artist,
		TrackName:     track,
		MsPlayed:      msPlayed,
		Year:          endTime.Year(),
		Month:         endTime.Month(),
		Date:          endTime.Day(),
		Hour:          endTime.Hour(),
		DayOfWeek:     endTime.Weekday(),
		SecondsPlayed: seconds,
		MinPlayed:     seconds / 60,
		HoursPlayed:   seconds / 3600,
	}
}

// Day returns the calendar date of the play, with the time of day stripped.
func (p Play) Day() time.Time {
	return time.Date(p.Year, p.Month, p.Date, 0, 0, 0, 0, time.UTC)
}

// Dataset is an immutable, fully loaded set of plays. The zero value is an empty dataset.
type Dataset struct {
	plays []Play
}

// NewDataset copies plays into a new Dataset.
func NewDataset(plays []Play) Dataset {
	return Dataset{plays: slices.Clone(plays)}
}

func (d Dataset) Len() int {
	return len(d.plays)
}

// Plays returns a copy of the plays in load order.
func (d Dataset) Plays() []Play {
	return slices.Clone(d.plays)
}

// Each calls fn for every play in load order.
func (d Dataset) Each(fn func(Play)) {
	for _, p := range d.plays {
		fn(p)
	}
}

// Between returns the plays whose end time falls in [start, end). A zero end means no upper bound.
func (d Dataset) Between(start, end time.Time) Dataset {
	var out []Play
	for _, p := range d.plays {
		if p.EndTime.Before(start) {
			continue
		}
		if !end.IsZero() && !p.EndTime.Before(end) {
			continue
		}
		out = append(out, p)
	}
	return Dataset{plays: out}
}

// Merge returns a dataset holding the plays of d followed by the plays of others.
func (d Dataset) Merge(others ...Dataset) Dataset {
	out := slices.Clone(d.plays)
	for _, o := range others {
		out = append(out, o.plays...)
	}
	return Dataset{plays: out}
}
