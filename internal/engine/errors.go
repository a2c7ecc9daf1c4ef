package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDataset is returned by aggregate operations on a dataset with
	// no records. Distinct from the per-row zero-division rule: an empty
	// mean is a caller error, not a zero.
	ErrEmptyDataset = errors.New("dataset has no records")

	// ErrInsufficientData is returned by PredictNext for fewer than two points.
	ErrInsufficientData = errors.New("prediction needs at least 2 data points")
)

// ValidationError reports the canonical columns required by the active mode
// that were absent after normalization.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}
