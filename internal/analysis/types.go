package analysis

import (
	"fmt"
	"time"
)

// NameCount is a play count for one artist or track.
type NameCount struct {
	Name  string `yaml:"name"`
	Count int64  `yaml:"count"`
}

// NameHours is total listening time for one track.
type NameHours struct {
	Name  string  `yaml:"name"`
	Hours float64 `yaml:"hours"`
}

// HourTotal is hours listened in one hour of the day, summed over every day.
type HourTotal struct {
	Hour  int     `yaml:"hour"`
	Hours float64 `yaml:"hours"`
}

// WeekdayTotal is hours listened on one day of the week.
type WeekdayTotal struct {
	Day   time.Weekday `yaml:"-"`
	Hours float64      `yaml:"hours"`
}

// YearMonth is a calendar month within a specific year.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) Before(o YearMonth) bool {
	if ym.Year != o.Year {
		return ym.Year < o.Year
	}
	return ym.Month < o.Month
}

// MonthTotal is seconds listened in one calendar month.
type MonthTotal struct {
	Period  YearMonth `yaml:"-"`
	Seconds float64   `yaml:"seconds"`
}

// TimeOfDay buckets an hour of the day into one of four six-hour blocks.
type TimeOfDay int

const (
	Night     TimeOfDay = iota // [0, 6)
	Morning                    // [6, 12)
	Afternoon                  // [12, 18)
	Evening                    // [18, 24)
)

// TimesOfDay lists every bucket in hour order.
var TimesOfDay = []TimeOfDay{Night, Morning, Afternoon, Evening}

func (t TimeOfDay) String() string {
	switch t {
	case Night:
		return "Night"
	case Morning:
		return "Morning"
	case Afternoon:
		return "Afternoon"
	case Evening:
		return "Evening"
	}
	return fmt.Sprintf("TimeOfDay(%d)", int(t))
}

// TimeOfDayForHour maps an hour in [0, 24) to its bucket.
func TimeOfDayForHour(hour int) TimeOfDay {
	return TimeOfDay(hour / 6)
}

// CalendarWeekdays is the fixed Monday to Sunday order used for day-indexed matrices.
var CalendarWeekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// DayTimeRow is one weekday of the day by time-of-day matrix, indexed by TimeOfDay.
type DayTimeRow struct {
	Day   time.Weekday
	Hours [4]float64
}

// DayHourRow is one weekday of the day by hour heatmap, indexed by hour.
type DayHourRow struct {
	Day     time.Weekday
	Seconds [24]float64
}

// WeeklyTracks is a week by track matrix of seconds played. A nil cell means the track
// had no plays that week, which is distinct from a zero total.
type WeeklyTracks struct {
	Tracks []string
	Weeks  []WeekRow
}

// WeekRow is one week of a WeeklyTracks matrix, with one cell per track.
type WeekRow struct {
	// WeekEnding is the Sunday that closes the Monday to Sunday week.
	WeekEnding time.Time
	Seconds    []*float64
}

// MonthlyArtistCounts is a month by artist matrix of play counts, January first.
type MonthlyArtistCounts struct {
	Artists []string
	Months  []MonthArtistRow
}

// MonthArtistRow is one month of a MonthlyArtistCounts matrix, with one count per artist.
type MonthArtistRow struct {
	Month  time.Month
	Counts []int64
}
