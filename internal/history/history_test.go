package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewPlayDerivedFields(t *testing.T) {
	end := time.Date(2024, time.March, 9, 18, 42, 0, 0, time.UTC)
	p := NewPlay(end, "Artist", "Track", 5400000)

	if p.Year != 2024 || p.Month != time.March || p.Date != 9 {
		t.Errorf("date fields = %d-%d-%d, want 2024-3-9", p.Year, p.Month, p.Date)
	}
	if p.Hour != 18 {
		t.Errorf("Hour = %d, want 18", p.Hour)
	}
	if p.DayOfWeek != time.Saturday {
		t.Errorf("DayOfWeek = %s, want Saturday", p.DayOfWeek)
	}
	if p.SecondsPlayed != 5400 || p.MinPlayed != 90 || p.HoursPlayed != 1.5 {
		t.Errorf("durations = %v/%v/%v, want 5400/90/1.5", p.SecondsPlayed, p.MinPlayed, p.HoursPlayed)
	}
	if !p.Day().Equal(time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Day() = %s", p.Day())
	}
}

func TestNewPlayUsesUTC(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader("endTime,artistName,trackName,msPlayed\n2024-01-01T01:00:00+05:00,A,T,1000\n"))
	if err != nil {
		t.Fatalf("LoadCSV() error: %v", err)
	}
	p := ds.Plays()[0]

	if p.EndTime.Location() != time.UTC {
		t.Errorf("EndTime location = %v, want UTC", p.EndTime.Location())
	}
	if p.Hour != 20 || p.DayOfWeek != time.Sunday {
		t.Errorf("Hour, DayOfWeek = %d, %s, want 20, Sunday", p.Hour, p.DayOfWeek)
	}
	if want := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC); !p.Day().Equal(want) {
		t.Errorf("Day() = %s, want %s", p.Day(), want)
	}

	roundTrip := NewPlay(time.Unix(p.EndTime.Unix(), 0), p.ArtistName, p.TrackName, p.MsPlayed)
	if !roundTrip.EndTime.Equal(p.EndTime) || roundTrip.Hour != p.Hour || roundTrip.Day() != p.Day() {
		t.Errorf("play rebuilt from its Unix time = %+v, want %+v", roundTrip, p)
	}
}

func TestLoadCSV(t *testing.T) {
	in := "endTime,artistName,trackName,msPlayed\n" +
		"2023-01-05 14:32,Radiohead,Reckoner,290000\n" +
		"2023-01-06 01:10,\"Crosby, Stills & Nash\",Helplessly Hoping,161000\n"

	ds, err := LoadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadCSV() error: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}

	plays := ds.Plays()
	if plays[1].ArtistName != "Crosby, Stills & Nash" {
		t.Errorf("ArtistName = %q", plays[1].ArtistName)
	}
	if plays[0].SecondsPlayed != 290 {
		t.Errorf("SecondsPlayed = %v, want 290", plays[0].SecondsPlayed)
	}
	if plays[1].Hour != 1 {
		t.Errorf("Hour = %d, want 1", plays[1].Hour)
	}
}

func TestLoadCSVColumnOrderAndExtras(t *testing.T) {
	in := "msPlayed,extra,trackName,endTime,artistName\n" +
		"1000,x,Song,2023-02-01T10:00:00Z,Band\n"

	ds, err := LoadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadCSV() error: %v", err)
	}
	p := ds.Plays()[0]
	if p.TrackName != "Song" || p.ArtistName != "Band" || p.MsPlayed != 1000 {
		t.Errorf("got %+v", p)
	}
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		column string
		want   error
	}{
		{
			name:   "missing column",
			in:     "endTime,artistName,msPlayed\n2023-01-01 00:00,A,1\n",
			column: ColumnTrackName,
			want:   ErrMissingColumn,
		},
		{
			name:   "bad timestamp",
			in:     "endTime,artistName,trackName,msPlayed\nyesterday,A,T,1\n",
			column: ColumnEndTime,
			want:   ErrBadTimestamp,
		},
		{
			name:   "negative duration",
			in:     "endTime,artistName,trackName,msPlayed\n2023-01-01 00:00,A,T,-5\n",
			column: ColumnMsPlayed,
			want:   ErrBadDuration,
		},
		{
			name:   "NaN duration",
			in:     "endTime,artistName,trackName,msPlayed\n2023-01-01 00:00,A,T,NaN\n",
			column: ColumnMsPlayed,
			want:   ErrBadDuration,
		},
		{
			name:   "infinite duration",
			in:     "endTime,artistName,trackName,msPlayed\n2023-01-01 00:00,A,T,Inf\n",
			column: ColumnMsPlayed,
			want:   ErrBadDuration,
		},
		{
			name:   "negative infinite duration",
			in:     "endTime,artistName,trackName,msPlayed\n2023-01-01 00:00,A,T,-Infinity\n",
			column: ColumnMsPlayed,
			want:   ErrBadDuration,
		},
		{
			name:   "empty input",
			in:     "",
			column: ColumnEndTime,
			want:   ErrMissingColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			var lerr *LoadError
			if !errors.As(err, &lerr) {
				t.Fatalf("error %v is not a *LoadError", err)
			}
			if lerr.Column != tt.column {
				t.Errorf("Column = %q, want %q", lerr.Column, tt.column)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error %v does not wrap %v", err, tt.want)
			}
		})
	}
}

func TestLoadJSON(t *testing.T) {
	in := `[
  {"endTime": "2023-03-01 08:15", "artistName": "Björk", "trackName": "Jóga", "msPlayed": 305000},
  {"endTime": "2023-03-01 08:20", "artistName": "", "trackName": "Unknown", "msPlayed": 0}
]`
	ds, err := LoadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadJSON() error: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if got := ds.Plays()[0].ArtistName; got != "Björk" {
		t.Errorf("ArtistName = %q", got)
	}

	_, err = LoadJSON(strings.NewReader(`[{"endTime": "2023-03-01 08:15", "trackName": "x", "msPlayed": 1}]`))
	var lerr *LoadError
	if !errors.As(err, &lerr) || lerr.Column != ColumnArtistName || lerr.Row != 1 {
		t.Errorf("missing artist: got %v", err)
	}
}

func TestLoadFileMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "StreamingHistory0.json")
	second := filepath.Join(dir, "extra.csv")
	if err := os.WriteFile(first, []byte(`[{"endTime":"2023-01-01 10:00","artistName":"A","trackName":"a","msPlayed":1000}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("endTime,artistName,trackName,msPlayed\n2023-01-02 10:00,B,b,2000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadFile(first, second)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	plays := ds.Plays()
	if len(plays) != 2 || plays[0].ArtistName != "A" || plays[1].ArtistName != "B" {
		t.Errorf("got %+v", plays)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"history.csv":                         FormatCSV,
		"StreamingHistory0.JSON":              FormatJSON,
		"https://example.com/a.json?raw=true": FormatJSON,
		"https://example.com/data":            FormatCSV,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestDatasetIsolation(t *testing.T) {
	src := []Play{NewPlay(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), "A", "a", 1000)}
	ds := NewDataset(src)
	src[0].ArtistName = "changed"

	plays := ds.Plays()
	plays[0].ArtistName = "also changed"

	if got := ds.Plays()[0].ArtistName; got != "A" {
		t.Errorf("dataset was mutated through a shared slice: %q", got)
	}
}

func TestBetween(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2023, 1, d, 12, 0, 0, 0, time.UTC) }
	ds := NewDataset([]Play{
		NewPlay(day(1), "A", "a", 1),
		NewPlay(day(2), "B", "b", 1),
		NewPlay(day(3), "C", "c", 1),
	})

	got := ds.Between(day(2), day(3)).Plays()
	if len(got) != 1 || got[0].ArtistName != "B" {
		t.Errorf("Between(2, 3) = %+v", got)
	}

	if n := ds.Between(day(2), time.Time{}).Len(); n != 2 {
		t.Errorf("open-ended Between() len = %d, want 2", n)
	}
}
