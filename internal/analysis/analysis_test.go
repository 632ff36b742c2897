package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ademuri/listening-history/internal/history"
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func play(end time.Time, artist, track string, seconds float64) history.Play {
	return history.NewPlay(end, artist, track, seconds*1000)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// sampleDataset spans two years, several weekdays and all four times of day.
func sampleDataset() history.Dataset {
	return history.NewDataset([]history.Play{
		play(at(2023, time.December, 31, 23), "Low", "Words", 180),
		play(at(2024, time.January, 1, 2), "Low", "Words", 200),
		play(at(2024, time.January, 1, 9), "Nina Simone", "Sinnerman", 600),
		play(at(2024, time.January, 2, 13), "Low", "Sunflower", 240),
		play(at(2024, time.January, 2, 19), "Stereolab", "French Disko", 300),
		play(at(2024, time.January, 8, 7), "Nina Simone", "Feeling Good", 175),
		play(at(2024, time.February, 14, 21), "Low", "Words", 190),
		play(at(2024, time.March, 3, 15), "Stereolab", "French Disko", 305),
	})
}

func TestTopArtistsTieBreak(t *testing.T) {
	var plays []history.Play
	add := func(artist string, n int) {
		for i := 0; i < n; i++ {
			plays = append(plays, play(at(2024, time.January, 1, 0), artist, "t", 1))
		}
	}
	add("D", 1)
	add("B", 1)
	add("A", 5)
	add("C", 3)
	add("B", 2)

	got := TopArtists(history.NewDataset(plays), 2)
	want := []NameCount{{"A", 5}, {"B", 3}}
	if len(got) != len(want) {
		t.Fatalf("TopArtists() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TopArtists()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTopArtistsAllWhenNonPositive(t *testing.T) {
	if got := TopArtists(sampleDataset(), 0); len(got) != 3 {
		t.Errorf("TopArtists(0) returned %d artists, want 3", len(got))
	}
}

func TestTopSongs(t *testing.T) {
	got := TopSongs(sampleDataset(), 2)
	want := []NameCount{{"Words", 3}, {"French Disko", 2}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TopSongs()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMostPlayedSongsUsesDuration(t *testing.T) {
	got := MostPlayedSongs(sampleDataset(), 2)
	if got[0].Name != "French Disko" || !approxEqual(got[0].Hours, 605.0/3600) {
		t.Errorf("MostPlayedSongs()[0] = %+v, want French Disko at 605s", got[0])
	}
	if got[1].Name != "Sinnerman" {
		t.Errorf("MostPlayedSongs()[1] = %+v, want Sinnerman", got[1])
	}
}

func TestHourlyListening(t *testing.T) {
	ds := sampleDataset()
	got := HourlyListening(ds)
	if len(got) != 24 {
		t.Fatalf("HourlyListening() has %d hours, want 24", len(got))
	}

	var totalSeconds, wantSeconds float64
	for h, ht := range got {
		if ht.Hour != h {
			t.Errorf("entry %d has Hour %d", h, ht.Hour)
		}
		totalSeconds += ht.Hours * 3600
	}
	ds.Each(func(p history.Play) { wantSeconds += p.SecondsPlayed })
	if !approxEqual(totalSeconds, wantSeconds) {
		t.Errorf("hourly total = %v seconds, want %v", totalSeconds, wantSeconds)
	}

	if got[5].Hours != 0 {
		t.Errorf("hour 5 = %v, want 0", got[5].Hours)
	}
	if !approxEqual(got[9].Hours, 600.0/3600) {
		t.Errorf("hour 9 = %v", got[9].Hours)
	}

	if empty := HourlyListening(history.Dataset{}); len(empty) != 24 {
		t.Errorf("empty dataset gave %d hours, want 24", len(empty))
	}
}

func TestWeekdayTrendsAlphabetical(t *testing.T) {
	got := WeekdayTrends(sampleDataset())
	// 2023-12-31 Sunday; 2024-01-01 Monday; 01-02 Tuesday; 01-08 Monday; 02-14 Wednesday; 03-03 Sunday.
	wantOrder := []time.Weekday{time.Monday, time.Sunday, time.Tuesday, time.Wednesday}
	if len(got) != len(wantOrder) {
		t.Fatalf("WeekdayTrends() = %+v", got)
	}
	for i, d := range wantOrder {
		if got[i].Day != d {
			t.Errorf("WeekdayTrends()[%d] = %s, want %s", i, got[i].Day, d)
		}
	}
	if !approxEqual(got[0].Hours, (200.0+600+175)/3600) {
		t.Errorf("Monday = %v", got[0].Hours)
	}

	cal := InCalendarOrder(got)
	wantCal := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Sunday}
	for i, d := range wantCal {
		if cal[i].Day != d {
			t.Errorf("InCalendarOrder()[%d] = %s, want %s", i, cal[i].Day, d)
		}
	}
	if got[1].Day != time.Sunday {
		t.Error("InCalendarOrder modified its input")
	}
}

func TestMonthlyTrendsKeepsYears(t *testing.T) {
	got := MonthlyTrends(sampleDataset())
	want := []struct {
		period  string
		seconds float64
	}{
		{"2023-12", 180},
		{"2024-01", 200 + 600 + 240 + 300 + 175},
		{"2024-02", 190},
		{"2024-03", 305},
	}
	if len(got) != len(want) {
		t.Fatalf("MonthlyTrends() = %+v", got)
	}
	for i, w := range want {
		if got[i].Period.String() != w.period || !approxEqual(got[i].Seconds, w.seconds) {
			t.Errorf("MonthlyTrends()[%d] = %s/%v, want %s/%v", i, got[i].Period, got[i].Seconds, w.period, w.seconds)
		}
	}
}

func TestTimeOfDayForHour(t *testing.T) {
	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{0, Night}, {5, Night}, {6, Morning}, {11, Morning},
		{12, Afternoon}, {17, Afternoon}, {18, Evening}, {23, Evening},
	}
	for _, tt := range tests {
		if got := TimeOfDayForHour(tt.hour); got != tt.want {
			t.Errorf("TimeOfDayForHour(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestHoursByDayAndTime(t *testing.T) {
	ds := sampleDataset()
	got := HoursByDayAndTime(ds)
	if len(got) != 7 {
		t.Fatalf("got %d rows, want 7", len(got))
	}

	var total, want float64
	for i, row := range got {
		if row.Day != CalendarWeekdays[i] {
			t.Errorf("row %d is %s, want %s", i, row.Day, CalendarWeekdays[i])
		}
		for _, h := range row.Hours {
			total += h
		}
	}
	ds.Each(func(p history.Play) { want += p.HoursPlayed })
	if !approxEqual(total, want) {
		t.Errorf("matrix total = %v hours, want %v", total, want)
	}

	// Sunday, 23:00 and 15:00.
	sunday := got[6]
	if !approxEqual(sunday.Hours[Evening], 180.0/3600) || !approxEqual(sunday.Hours[Afternoon], 305.0/3600) {
		t.Errorf("Sunday = %+v", sunday)
	}
	if got[3].Hours != [4]float64{} {
		t.Errorf("Thursday = %+v, want zeros", got[3])
	}
}

func TestDayHourHeatmap(t *testing.T) {
	got := DayHourHeatmap(sampleDataset())
	if len(got) != 7 {
		t.Fatalf("got %d rows, want 7", len(got))
	}
	for i, row := range got {
		if row.Day != CalendarWeekdays[i] {
			t.Errorf("row %d is %s, want %s", i, row.Day, CalendarWeekdays[i])
		}
	}
	monday := got[0]
	if monday.Seconds[2] != 200 || monday.Seconds[9] != 600 || monday.Seconds[7] != 175 {
		t.Errorf("Monday = %v", monday.Seconds)
	}
	if monday.Seconds[0] != 0 {
		t.Errorf("Monday 00h = %v, want 0", monday.Seconds[0])
	}
}

func TestWeeklyTopTracks(t *testing.T) {
	got := WeeklyTopTracks(sampleDataset(), 2)
	if len(got.Tracks) != 2 || got.Tracks[0] != "Words" || got.Tracks[1] != "French Disko" {
		t.Fatalf("Tracks = %v", got.Tracks)
	}

	wantWeeks := []string{"2023-12-31", "2024-01-07", "2024-02-18", "2024-03-03"}
	if len(got.Weeks) != len(wantWeeks) {
		t.Fatalf("Weeks = %+v", got.Weeks)
	}
	for i, w := range wantWeeks {
		if got.Weeks[i].WeekEnding.Format("2006-01-02") != w {
			t.Errorf("week %d ends %s, want %s", i, got.Weeks[i].WeekEnding.Format("2006-01-02"), w)
		}
	}

	first := got.Weeks[0].Seconds
	if first[0] == nil || *first[0] != 180 {
		t.Errorf("week 1 Words = %v, want 180", first[0])
	}
	if first[1] != nil {
		t.Errorf("week 1 French Disko = %v, want nil", *first[1])
	}

	second := got.Weeks[1].Seconds
	if second[0] == nil || *second[0] != 200 || second[1] == nil || *second[1] != 300 {
		t.Errorf("week 2 = %v", second)
	}
}

func TestTopArtistsByMonth(t *testing.T) {
	got := TopArtistsByMonth(sampleDataset(), 2)
	if len(got.Artists) != 2 || got.Artists[0] != "Low" || got.Artists[1] != "Nina Simone" {
		t.Fatalf("Artists = %v", got.Artists)
	}
	if len(got.Months) != 12 {
		t.Fatalf("got %d months, want 12", len(got.Months))
	}
	for i, m := range got.Months {
		if m.Month != time.Month(i+1) {
			t.Errorf("row %d is %s", i, m.Month)
		}
	}

	if jan := got.Months[0].Counts; jan[0] != 2 || jan[1] != 2 {
		t.Errorf("January = %v, want [2 2]", jan)
	}
	if dec := got.Months[11].Counts; dec[0] != 1 || dec[1] != 0 {
		t.Errorf("December = %v, want [1 0]", dec)
	}
	if jun := got.Months[5].Counts; jun[0] != 0 || jun[1] != 0 {
		t.Errorf("June = %v, want zeros", jun)
	}
}

func TestLongestListeningStreak(t *testing.T) {
	tests := []struct {
		name  string
		times []time.Time
		want  int
	}{
		{
			name:  "run then gap",
			times: []time.Time{at(2024, 1, 1, 10), at(2024, 1, 2, 10), at(2024, 1, 3, 10), at(2024, 1, 10, 10)},
			want:  3,
		},
		{
			name:  "single date",
			times: []time.Time{at(2024, 5, 5, 1)},
			want:  1,
		},
		{
			name:  "unsorted with duplicates",
			times: []time.Time{at(2024, 1, 10, 1), at(2024, 1, 2, 23), at(2024, 1, 1, 0), at(2024, 1, 2, 1), at(2024, 1, 11, 5), at(2024, 1, 12, 5), at(2024, 1, 13, 5)},
			want:  4,
		},
		{
			name:  "across month and year end",
			times: []time.Time{at(2023, 12, 30, 0), at(2023, 12, 31, 0), at(2024, 1, 1, 0), at(2024, 2, 29, 0), at(2024, 3, 1, 0)},
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var plays []history.Play
			for _, ts := range tt.times {
				plays = append(plays, play(ts, "a", "t", 1))
			}
			got, err := LongestListeningStreak(history.NewDataset(plays))
			if err != nil {
				t.Fatalf("LongestListeningStreak() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("LongestListeningStreak() = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := LongestListeningStreak(history.Dataset{}); !errors.Is(err, history.ErrEmptyDataset) {
		t.Errorf("empty dataset error = %v, want ErrEmptyDataset", err)
	}
}

func TestAverageSessionDuration(t *testing.T) {
	ds := history.NewDataset([]history.Play{
		play(at(2024, 1, 1, 0), "a", "t", 10),
		play(at(2024, 1, 1, 1), "a", "t", 20),
		play(at(2024, 1, 1, 2), "a", "t", 30),
	})
	got, err := AverageSessionDuration(ds)
	if err != nil {
		t.Fatalf("AverageSessionDuration() error: %v", err)
	}
	if got != 20.0 {
		t.Errorf("AverageSessionDuration() = %v, want 20", got)
	}

	if _, err := AverageSessionDuration(history.Dataset{}); !errors.Is(err, history.ErrEmptyDataset) {
		t.Errorf("empty dataset error = %v, want ErrEmptyDataset", err)
	}
}

func TestEmptyDatasetDegradesGracefully(t *testing.T) {
	var ds history.Dataset
	if len(TopArtists(ds, 10)) != 0 || len(TopSongs(ds, 10)) != 0 || len(MostPlayedSongs(ds, 10)) != 0 {
		t.Error("expected empty top lists")
	}
	if len(WeekdayTrends(ds)) != 0 || len(MonthlyTrends(ds)) != 0 {
		t.Error("expected empty trends")
	}
	if len(HoursByDayAndTime(ds)) != 7 || len(DayHourHeatmap(ds)) != 7 {
		t.Error("expected zero-filled weekday matrices")
	}
	if w := WeeklyTopTracks(ds, 5); len(w.Tracks) != 0 || len(w.Weeks) != 0 {
		t.Errorf("WeeklyTopTracks() = %+v", w)
	}
	if m := TopArtistsByMonth(ds, 10); len(m.Months) != 12 || len(m.Artists) != 0 {
		t.Errorf("TopArtistsByMonth() = %+v", m)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleDataset())
	if s.Plays != 8 || s.DistinctArtists != 3 || s.DistinctTracks != 5 {
		t.Errorf("Summarize() = %+v", s)
	}
	if !s.First.Equal(at(2023, 12, 31, 23)) || !s.Last.Equal(at(2024, 3, 3, 15)) {
		t.Errorf("range = %s to %s", s.First, s.Last)
	}
}

func TestGenerateReport(t *testing.T) {
	report, err := GenerateReport(sampleDataset(), DefaultReportOptions)
	if err != nil {
		t.Fatalf("GenerateReport() error: %v", err)
	}
	if report.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", report.LongestStreak)
	}
	if len(report.Hourly) != 24 || len(report.DayTime) != 7 || len(report.Heatmap) != 7 || len(report.ArtistsByMonth) != 12 {
		t.Errorf("unexpected section sizes: %+v", report)
	}
	if report.Weekday[0].Label != "Monday" || report.Weekday[1].Label != "Sunday" {
		t.Errorf("Weekday = %+v", report.Weekday)
	}
	if report.Metadata.Period != "2023-12-31 to 2024-03-03" {
		t.Errorf("Period = %q", report.Metadata.Period)
	}

	opts := DefaultReportOptions
	opts.CalendarWeekdays = true
	report, err = GenerateReport(sampleDataset(), opts)
	if err != nil {
		t.Fatalf("GenerateReport() error: %v", err)
	}
	if report.Weekday[1].Label != "Tuesday" {
		t.Errorf("calendar Weekday = %+v", report.Weekday)
	}

	if _, err := GenerateReport(history.Dataset{}, DefaultReportOptions); !errors.Is(err, history.ErrEmptyDataset) {
		t.Errorf("empty dataset error = %v", err)
	}
}
