package analysis

import (
	"sort"
	"time"

	"github.com/ademuri/listening-history/internal/history"
)

// HourlyListening returns hours listened per hour of the day. All 24 hours are present, in
// order, including those with no plays.
func HourlyListening(ds history.Dataset) []HourTotal {
	var seconds [24]float64
	ds.Each(func(p history.Play) {
		seconds[p.Hour] += p.SecondsPlayed
	})

	out := make([]HourTotal, 24)
	for h := range out {
		out[h] = HourTotal{Hour: h, Hours: seconds[h] / 3600}
	}
	return out
}

// WeekdayTrends returns hours listened per weekday that has plays, ordered alphabetically
// by weekday name. Use InCalendarOrder for Monday to Sunday.
func WeekdayTrends(ds history.Dataset) []WeekdayTotal {
	var seconds [7]float64
	var seen [7]bool
	ds.Each(func(p history.Play) {
		seconds[p.DayOfWeek] += p.SecondsPlayed
		seen[p.DayOfWeek] = true
	})

	var out []WeekdayTotal
	for d := range seconds {
		if seen[d] {
			out = append(out, WeekdayTotal{Day: time.Weekday(d), Hours: seconds[d] / 3600})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.String() < out[j].Day.String()
	})
	return out
}

// InCalendarOrder returns a copy of rows sorted Monday to Sunday.
func InCalendarOrder(rows []WeekdayTotal) []WeekdayTotal {
	out := make([]WeekdayTotal, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return mondayIndex(out[i].Day) < mondayIndex(out[j].Day)
	})
	return out
}

func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// MonthlyTrends returns seconds listened per year-month, oldest first.
func MonthlyTrends(ds history.Dataset) []MonthTotal {
	totals := make(map[YearMonth]float64)
	ds.Each(func(p history.Play) {
		totals[YearMonth{p.Year, p.Month}] += p.SecondsPlayed
	})

	out := make([]MonthTotal, 0, len(totals))
	for ym, s := range totals {
		out = append(out, MonthTotal{Period: ym, Seconds: s})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Period.Before(out[j].Period)
	})
	return out
}

// HoursByDayAndTime returns a Monday to Sunday by time-of-day matrix of hours listened.
// Empty cells are zero.
func HoursByDayAndTime(ds history.Dataset) []DayTimeRow {
	var grid [7][4]float64
	ds.Each(func(p history.Play) {
		grid[p.DayOfWeek][TimeOfDayForHour(p.Hour)] += p.HoursPlayed
	})

	out := make([]DayTimeRow, len(CalendarWeekdays))
	for i, d := range CalendarWeekdays {
		out[i] = DayTimeRow{Day: d, Hours: grid[d]}
	}
	return out
}

// DayHourHeatmap returns a Monday to Sunday by hour matrix of seconds listened.
// Empty cells are zero.
func DayHourHeatmap(ds history.Dataset) []DayHourRow {
	var grid [7][24]float64
	ds.Each(func(p history.Play) {
		grid[p.DayOfWeek][p.Hour] += p.SecondsPlayed
	})

	out := make([]DayHourRow, len(CalendarWeekdays))
	for i, d := range CalendarWeekdays {
		out[i] = DayHourRow{Day: d, Seconds: grid[d]}
	}
	return out
}

// weekEnding returns the Sunday closing the Monday to Sunday week that contains day.
func weekEnding(day time.Time) time.Time {
	return day.AddDate(0, 0, (7-int(day.Weekday()))%7)
}

// WeeklyTopTracks picks the n tracks with the most plays and returns their seconds listened
// per week. Only weeks in which at least one of those tracks was played appear; tracks are
// ordered by play count.
func WeeklyTopTracks(ds history.Dataset, n int) WeeklyTracks {
	top := TopSongs(ds, n)
	column := make(map[string]int, len(top))
	out := WeeklyTracks{Tracks: make([]string, len(top))}
	for i, t := range top {
		column[t.Name] = i
		out.Tracks[i] = t.Name
	}

	rows := make(map[time.Time][]*float64)
	ds.Each(func(p history.Play) {
		c, ok := column[p.TrackName]
		if !ok {
			return
		}
		week := weekEnding(p.Day())
		row, ok := rows[week]
		if !ok {
			row = make([]*float64, len(top))
			rows[week] = row
		}
		if row[c] == nil {
			row[c] = new(float64)
		}
		*row[c] += p.SecondsPlayed
	})

	for week, cells := range rows {
		out.Weeks = append(out.Weeks, WeekRow{WeekEnding: week, Seconds: cells})
	}
	sort.Slice(out.Weeks, func(i, j int) bool {
		return out.Weeks[i].WeekEnding.Before(out.Weeks[j].WeekEnding)
	})
	return out
}

// TopArtistsByMonth picks the n most played artists and counts their plays per calendar
// month name. Months of different years are merged. All twelve months are returned,
// January first, with zero for months without plays.
func TopArtistsByMonth(ds history.Dataset, n int) MonthlyArtistCounts {
	top := TopArtists(ds, n)
	column := make(map[string]int, len(top))
	out := MonthlyArtistCounts{Artists: make([]string, len(top))}
	for i, a := range top {
		column[a.Name] = i
		out.Artists[i] = a.Name
	}

	out.Months = make([]MonthArtistRow, 12)
	for i := range out.Months {
		out.Months[i] = MonthArtistRow{Month: time.Month(i + 1), Counts: make([]int64, len(top))}
	}
	ds.Each(func(p history.Play) {
		if c, ok := column[p.ArtistName]; ok {
			out.Months[p.Month-1].Counts[c]++
		}
	})
	return out
}
