package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
)

// DateRange represents a stay interval [checkIn, checkOut).
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a stay interval. Stays are whole days: both ends are truncated
// to UTC midnight, so the clock time on an arrival or departure never
// changes what the stay costs or collides with.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: truncateToDay(checkIn), CheckOut: truncateToDay(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckOut.IsZero() || dr.CheckIn.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn).Hours() / 24)
}

// Conflicts reports whether two stays cannot coexist on one room. Boundaries
// are inclusive: a checkout on day X conflicts with a check-in on day X, so
// same-day turnover is rejected.
func (dr DateRange) Conflicts(other DateRange) bool {
	return !dr.CheckIn.After(other.CheckOut) && !other.CheckIn.After(dr.CheckOut)
}

// Overlaps is the half-open variant used by calendar views.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return (t.Equal(dr.CheckIn) || t.After(dr.CheckIn)) && t.Before(dr.CheckOut)
}

// DaysUntilArrival returns the number of whole days from now until check-in,
// negative once the stay has started.
func (dr DateRange) DaysUntilArrival(now time.Time) int {
	today := truncateToDay(now)
	arrival := truncateToDay(dr.CheckIn)
	return int(arrival.Sub(today).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
