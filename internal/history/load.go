package history

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	ColumnEndTime    = "endTime"
	ColumnArtistName = "artistName"
	ColumnTrackName  = "trackName"
	ColumnMsPlayed   = "msPlayed"
)

var requiredColumns = []string{ColumnEndTime, ColumnArtistName, ColumnTrackName, ColumnMsPlayed}

var (
	ErrMissingColumn = errors.New("required column is missing")
	ErrBadTimestamp  = errors.New("timestamp could not be parsed")
	ErrBadDuration   = errors.New("msPlayed must be a non-negative number")
)

// Format names an on-disk representation of a streaming history.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Spotify exports use "2006-01-02 15:04"; the rest cover other ISO-ish renderings.
var timeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
}

// ParseTime parses an endTime value. Timestamps without a zone are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}

func parseDuration(s string) (float64, error) {
	ms, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, s)
	}
	return ms, nil
}

// FormatForPath guesses the format from a file name or URL, defaulting to CSV.
func FormatForPath(path string) Format {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// Load reads a whole history from r.
func Load(r io.Reader, format Format) (Dataset, error) {
	switch format {
	case FormatCSV, "":
		return LoadCSV(r)
	case FormatJSON:
		return LoadJSON(r)
	default:
		return Dataset{}, &LoadError{Err: fmt.Errorf("unknown format %q", format)}
	}
}

// LoadFile loads each path and merges the results in argument order.
func LoadFile(paths ...string) (Dataset, error) {
	var out Dataset
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return Dataset{}, &LoadError{Err: fmt.Errorf("opening %s: %w", path, err)}
		}
		ds, err := Load(f, FormatForPath(path))
		f.Close()
		if err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", path, err)
		}
		out = out.Merge(ds)
	}
	return out, nil
}

// LoadCSV reads delimited text with a header row naming at least the four play columns.
// Extra columns are ignored.
func LoadCSV(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return Dataset{}, &LoadError{Column: ColumnEndTime, Err: ErrMissingColumn}
	}
	if err != nil {
		return Dataset{}, &LoadError{Err: fmt.Errorf("reading header: %w", err)}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return Dataset{}, &LoadError{Column: col, Err: ErrMissingColumn}
		}
	}

	var plays []Play
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, &LoadError{Row: row, Err: err}
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}

		play, perr := parseRecord(field(ColumnEndTime), field(ColumnArtistName), field(ColumnTrackName), field(ColumnMsPlayed))
		if perr != nil {
			perr.Row = row
			return Dataset{}, perr
		}
		plays = append(plays, play)
	}

	return Dataset{plays: plays}, nil
}

type jsonPlay struct {
	EndTime    string          `json:"endTime"`
	ArtistName *string         `json:"artistName"`
	TrackName  *string         `json:"trackName"`
	MsPlayed   json.RawMessage `json:"msPlayed"`
}

// LoadJSON reads a Spotify "StreamingHistory" export: a JSON array of play objects.
func LoadJSON(r io.Reader) (Dataset, error) {
	var raw []jsonPlay
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Dataset{}, &LoadError{Err: fmt.Errorf("decoding json: %w", err)}
	}

	plays := make([]Play, 0, len(raw))
	for i, jp := range raw {
		row := i + 1
		switch {
		case jp.EndTime == "":
			return Dataset{}, &LoadError{Row: row, Column: ColumnEndTime, Err: ErrMissingColumn}
		case jp.ArtistName == nil:
			return Dataset{}, &LoadError{Row: row, Column: ColumnArtistName, Err: ErrMissingColumn}
		case jp.TrackName == nil:
			return Dataset{}, &LoadError{Row: row, Column: ColumnTrackName, Err: ErrMissingColumn}
		case len(jp.MsPlayed) == 0:
			return Dataset{}, &LoadError{Row: row, Column: ColumnMsPlayed, Err: ErrMissingColumn}
		}

		play, perr := parseRecord(jp.EndTime, *jp.ArtistName, *jp.TrackName, strings.Trim(string(jp.MsPlayed), `"`))
		if perr != nil {
			perr.Row = row
			return Dataset{}, perr
		}
		plays = append(plays, play)
	}

	return Dataset{plays: plays}, nil
}

func parseRecord(endTime, artist, track, msPlayed string) (Play, *LoadError) {
	t, err := ParseTime(endTime)
	if err != nil {
		return Play{}, &LoadError{Column: ColumnEndTime, Err: err}
	}
	ms, err := parseDuration(msPlayed)
	if err != nil {
		return Play{}, &LoadError{Column: ColumnMsPlayed, Err: err}
	}
	return NewPlay(t, artist, track, ms), nil
}
