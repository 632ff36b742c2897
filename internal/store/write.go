package store

import (
	"fmt"
	"time"

	"github.com/ademuri/listening-history/internal/history"
)

type playKey struct {
	endTime  int64
	artist   string
	track    string
	msPlayed float64
}

// ImportPlays stores plays from the named source in one transaction and returns the number
// of new plays. Identical plays within plays are numbered by occurrence and all kept; a play
// already stored with the same occurrence number is skipped, so re-importing a file, or an
// export overlapping one already imported, adds nothing twice.
func (s *Store) ImportPlays(source string, plays []history.Play) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO Source (name, imported, plays) VALUES (?, ?, 0)
		ON CONFLICT(name) DO UPDATE SET imported = excluded.imported`,
		source, time.Now()); err != nil {
		return 0, fmt.Errorf("recording source %q: %w", source, err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO Play (end_time, artist, track, ms_played, source, occurrence)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	seen := make(map[playKey]int)
	for _, p := range plays {
		key := playKey{p.EndTime.Unix(), p.ArtistName, p.TrackName, p.MsPlayed}
		occurrence := seen[key]
		seen[key]++

		res, err := stmt.Exec(key.endTime, key.artist, key.track, key.msPlayed, source, occurrence)
		if err != nil {
			return 0, fmt.Errorf("inserting play %q by %q: %w", p.TrackName, p.ArtistName, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("inserting play: %w", err)
		}
		added += int(n)
	}

	if _, err := tx.Exec("UPDATE Source SET plays = plays + ? WHERE name = ?", added, source); err != nil {
		return 0, fmt.Errorf("updating source %q: %w", source, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return added, nil
}
