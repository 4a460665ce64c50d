// Package types implements special types for the capital schemes backend.
package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateRange is returned when a date range ends before it starts.
var ErrInvalidDateRange = errors.New("date range must not end before it starts")

// DateRange is a half-open interval [DateFrom, DateTo). A nil DateTo means
// the range is open, i.e. currently in effect.
//
// DateRange values are immutable. Closing a revision replaces its range with
// a new value, it never mutates the existing one.
type DateRange struct {
	DateFrom time.Time  `json:"effectiveDateFrom" example:"2023-01-02T12:00:00Z"`
	DateTo   *time.Time `json:"effectiveDateTo" example:"2023-04-01T12:00:00Z"` // null while the range is open
}

// NewDateRange validates and returns a date range. Equal bounds are allowed,
// an end before the start is not.
func NewDateRange(from time.Time, to *time.Time) (DateRange, error) {
	if to != nil && to.Before(from) {
		return DateRange{}, fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, to.Format(time.RFC3339), from.Format(time.RFC3339))
	}

	return DateRange{DateFrom: from, DateTo: to}, nil
}

// OpenDateRange returns a range starting at from with no end.
func OpenDateRange(from time.Time) DateRange {
	return DateRange{DateFrom: from}
}

// IsOpen reports whether the range has no end date.
func (r DateRange) IsOpen() bool {
	return r.DateTo == nil
}

// ClosedAt returns a copy of the range ending at to.
func (r DateRange) ClosedAt(to time.Time) DateRange {
	return DateRange{DateFrom: r.DateFrom, DateTo: &to}
}

// Equal reports whether two ranges describe the same interval.
func (r DateRange) Equal(other DateRange) bool {
	if !r.DateFrom.Equal(other.DateFrom) {
		return false
	}

	if r.DateTo == nil || other.DateTo == nil {
		return r.DateTo == other.DateTo
	}

	return r.DateTo.Equal(*other.DateTo)
}

func (r DateRange) String() string {
	if r.DateTo == nil {
		return fmt.Sprintf("[%s, )", r.DateFrom.Format(time.RFC3339))
	}

	return fmt.Sprintf("[%s, %s)", r.DateFrom.Format(time.RFC3339), r.DateTo.Format(time.RFC3339))
}
