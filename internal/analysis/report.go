package analysis

import (
	"fmt"
	"time"

	"github.com/ademuri/listening-history/internal/history"
)

// Report bundles every view over one dataset.
type Report struct {
	Metadata       ReportMetadata `yaml:"metadata"`
	Summary        Summary        `yaml:"summary"`
	AverageSeconds float64        `yaml:"average_session_seconds"`
	LongestStreak  int            `yaml:"longest_streak_days"`
	TopArtists     []NameCount    `yaml:"top_artists"`
	TopSongs       []NameCount    `yaml:"top_songs"`
	MostPlayed     []NameHours    `yaml:"most_played_songs"`
	Hourly         []HourTotal    `yaml:"hourly_hours"`
	Weekday        []LabeledValue `yaml:"weekday_hours"`
	Monthly        []LabeledValue `yaml:"monthly_seconds"`
	DayTime        []DayTimeEntry `yaml:"hours_by_day_and_time"`
	Heatmap        []HeatmapEntry `yaml:"day_hour_seconds"`
	WeeklyTracks   []WeeklyEntry  `yaml:"weekly_top_tracks"`
	ArtistsByMonth []MonthlyEntry `yaml:"top_artists_by_month"`
}

type ReportMetadata struct {
	GeneratedDate string `yaml:"generated_date"`
	Period        string `yaml:"period"`
}

type LabeledValue struct {
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
}

type DayTimeEntry struct {
	Day       string  `yaml:"day"`
	Night     float64 `yaml:"night"`
	Morning   float64 `yaml:"morning"`
	Afternoon float64 `yaml:"afternoon"`
	Evening   float64 `yaml:"evening"`
}

type HeatmapEntry struct {
	Day     string    `yaml:"day"`
	Seconds []float64 `yaml:"seconds,flow"`
}

type WeeklyEntry struct {
	WeekEnding string              `yaml:"week_ending"`
	Seconds    map[string]*float64 `yaml:"seconds"`
}

type MonthlyEntry struct {
	Month  string           `yaml:"month"`
	Counts map[string]int64 `yaml:"counts"`
}

// ReportOptions sizes the top-N sections of a report.
type ReportOptions struct {
	TopN             int
	WeeklyTracks     int
	MonthlyArtists   int
	CalendarWeekdays bool
}

// DefaultReportOptions are the sizes used when the report command gets no flags.
var DefaultReportOptions = ReportOptions{TopN: 10, WeeklyTracks: 5, MonthlyArtists: 10}

// GenerateReport runs every query over ds. It fails on an empty dataset since the streak and
// average are undefined there.
func GenerateReport(ds history.Dataset, opts ReportOptions) (*Report, error) {
	avg, err := AverageSessionDuration(ds)
	if err != nil {
		return nil, fmt.Errorf("generating report: %w", err)
	}
	streak, err := LongestListeningStreak(ds)
	if err != nil {
		return nil, fmt.Errorf("generating report: %w", err)
	}

	summary := Summarize(ds)
	report := &Report{
		Metadata: ReportMetadata{
			GeneratedDate: time.Now().Format("2006-01-02"),
			Period:        fmt.Sprintf("%s to %s", summary.First.Format("2006-01-02"), summary.Last.Format("2006-01-02")),
		},
		Summary:        summary,
		AverageSeconds: avg,
		LongestStreak:  streak,
		TopArtists:     TopArtists(ds, opts.TopN),
		TopSongs:       TopSongs(ds, opts.TopN),
		MostPlayed:     MostPlayedSongs(ds, opts.TopN),
		Hourly:         HourlyListening(ds),
	}

	weekdays := WeekdayTrends(ds)
	if opts.CalendarWeekdays {
		weekdays = InCalendarOrder(weekdays)
	}
	for _, w := range weekdays {
		report.Weekday = append(report.Weekday, LabeledValue{Label: w.Day.String(), Value: w.Hours})
	}

	for _, m := range MonthlyTrends(ds) {
		report.Monthly = append(report.Monthly, LabeledValue{Label: m.Period.String(), Value: m.Seconds})
	}

	for _, row := range HoursByDayAndTime(ds) {
		report.DayTime = append(report.DayTime, DayTimeEntry{
			Day:       row.Day.String(),
			Night:     row.Hours[Night],
			Morning:   row.Hours[Morning],
			Afternoon: row.Hours[Afternoon],
			Evening:   row.Hours[Evening],
		})
	}

	for _, row := range DayHourHeatmap(ds) {
		report.Heatmap = append(report.Heatmap, HeatmapEntry{Day: row.Day.String(), Seconds: row.Seconds[:]})
	}

	weekly := WeeklyTopTracks(ds, opts.WeeklyTracks)
	for _, w := range weekly.Weeks {
		entry := WeeklyEntry{WeekEnding: w.WeekEnding.Format("2006-01-02"), Seconds: make(map[string]*float64)}
		for i, track := range weekly.Tracks {
			entry.Seconds[track] = w.Seconds[i]
		}
		report.WeeklyTracks = append(report.WeeklyTracks, entry)
	}

	byMonth := TopArtistsByMonth(ds, opts.MonthlyArtists)
	for _, m := range byMonth.Months {
		entry := MonthlyEntry{Month: m.Month.String(), Counts: make(map[string]int64)}
		for i, artist := range byMonth.Artists {
			entry.Counts[artist] = m.Counts[i]
		}
		report.ArtistsByMonth = append(report.ArtistsByMonth, entry)
	}

	return report, nil
}
