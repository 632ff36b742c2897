package history

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned by queries that have no meaningful value over zero plays.
var ErrEmptyDataset = errors.New("dataset has no plays")

// LoadError reports a source that could not be turned into a Dataset.
type LoadError struct {
	// Row is the 1-based data row (header excluded), or 0 when the error is not tied to a row.
	Row    int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("loading history: row %d, column %q: %v", e.Row, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("loading history: column %q: %v", e.Column, e.Err)
	default:
		return fmt.Sprintf("loading history: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
