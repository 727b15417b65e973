package pipeline

import (
	"errors"
	"fmt"
)

// ErrEmptyJoin is returned when no district appears in all three sources.
var ErrEmptyJoin = errors.New("pipeline: join produced no districts")

// LoadError reports a source that could not be read or normalised: missing
// columns, non-numeric values, duplicate districts.
type LoadError struct {
	Source string // population, area or bike_lane
	Column string
	Row    int // 1-based record number in the source, 0 if not row-specific
	Value  string
	Err    error
}

func (e *LoadError) Error() string {
	msg := "pipeline: load " + e.Source
	if e.Column != "" {
		msg += " column " + e.Column
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// DegenerateError reports a derived ratio whose denominator is zero or not
// finite for some district.
type DegenerateError struct {
	District string
	Field    string // the denominator: area, population or bike_lane_density
	Value    float64
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("pipeline: district %q has degenerate %s (%v)", e.District, e.Field, e.Value)
}

// IsDataError reports whether err is one of the pipeline's structural data
// errors, as opposed to an I/O or cancellation failure.
func IsDataError(err error) bool {
	var le *LoadError
	var de *DegenerateError
	return errors.Is(err, ErrEmptyJoin) || errors.As(err, &le) || errors.As(err, &de)
}
