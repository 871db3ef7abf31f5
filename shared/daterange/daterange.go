package daterange

import (
	"errors"
	"iter"
	"strings"
	"time"
)

const (
	hoursPerDay = 24
	Layout      = time.DateOnly
)

var (
	ErrInvalidRange = errors.New("check-out date must be after check-in date")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
)

// DateRange is a half-open stay [CheckIn, CheckOut) at day granularity.
// A stay ending on day X and another starting on day X do not overlap.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a DateRange from two dates, dropping any time of day.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Truncate(checkIn), CheckOut: Truncate(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}

	return dr, nil
}

// Parse builds a DateRange from two date strings.
func Parse(checkIn, checkOut string) (DateRange, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, err
	}

	out, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, err
	}

	return New(in, out)
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}

	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}

	return nil
}

func (dr DateRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn).Hours() / hoursPerDay)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return Overlaps(dr.CheckIn, dr.CheckOut, other.CheckIn, other.CheckOut)
}

// ContainsDate reports whether the guest occupies the room on day d.
func (dr DateRange) ContainsDate(d time.Time) bool {
	d = Truncate(d)

	return !d.Before(dr.CheckIn) && d.Before(dr.CheckOut)
}

// Days yields every occupied day, check-out day excluded.
func (dr DateRange) Days() iter.Seq[time.Time] {
	return Between(dr.CheckIn, dr.CheckOut.AddDate(0, 0, -1))
}

func (dr DateRange) String() string {
	return FormatDate(dr.CheckIn) + "/" + FormatDate(dr.CheckOut)
}

// Overlaps is the half-open interval test aStart < bEnd && bStart < aEnd,
// evaluated on calendar days.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return Truncate(aStart).Before(Truncate(bEnd)) && Truncate(bStart).Before(Truncate(aEnd))
}

// Between yields each day from start to end, both inclusive.
func Between(start, end time.Time) iter.Seq[time.Time] {
	start, end = Truncate(start), Truncate(end)

	return func(yield func(time.Time) bool) {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Truncate drops the time of day, keeping the calendar date the value was expressed in.
func Truncate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp and returns the calendar date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(Layout, value); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return Truncate(t), nil
	}

	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return Truncate(t), nil
	}

	return time.Time{}, ErrInvalidDate
}

func FormatDate(t time.Time) string {
	return t.Format(Layout)
}

func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
