package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/listening-history/internal/history"
)

// LoadDataset reads the plays ending in [start, end) in chronological order. Zero times
// leave that side of the range open.
func (s *Store) LoadDataset(start, end time.Time) (history.Dataset, error) {
	query := "SELECT end_time, artist, track, ms_played FROM Play WHERE end_time >= ?"
	args := []any{start.Unix()}
	if !end.IsZero() {
		query += " AND end_time < ?"
		args = append(args, end.Unix())
	}
	query += " ORDER BY end_time, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return history.Dataset{}, fmt.Errorf("querying plays: %w", err)
	}
	defer rows.Close()

	var plays []history.Play
	for rows.Next() {
		var (
			endTime       int64
			artist, track string
			ms            float64
		)
		if err := rows.Scan(&endTime, &artist, &track, &ms); err != nil {
			return history.Dataset{}, fmt.Errorf("scanning play: %w", err)
		}
		plays = append(plays, history.NewPlay(time.Unix(endTime, 0).UTC(), artist, track, ms))
	}
	if err := rows.Err(); err != nil {
		return history.Dataset{}, fmt.Errorf("reading plays: %w", err)
	}
	return history.NewDataset(plays), nil
}

// SourceInfo describes one imported file or URL.
type SourceInfo struct {
	Name     string
	Imported time.Time
	Plays    int64
}

func (s *Store) Sources() ([]SourceInfo, error) {
	rows, err := s.db.Query("SELECT name, imported, COALESCE(plays, 0) FROM Source ORDER BY imported")
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []SourceInfo
	for rows.Next() {
		var info SourceInfo
		var imported sql.NullTime
		if err := rows.Scan(&info.Name, &imported, &info.Plays); err != nil {
			return nil, err
		}
		info.Imported = imported.Time
		sources = append(sources, info)
	}
	return sources, rows.Err()
}

// GetLatestPlay returns the end time of the most recent play, or the zero time if there are none.
func (s *Store) GetLatestPlay() (time.Time, error) {
	row := s.db.QueryRow("SELECT MAX(end_time) FROM Play")
	var latest sql.NullInt64
	if err := row.Scan(&latest); err != nil {
		return time.Time{}, fmt.Errorf("scanning latest play: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, nil
	}
	return time.Unix(latest.Int64, 0).UTC(), nil
}
