package daterange

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned when a string is not three dash-separated integers.
var ErrInvalidDateFormat = errors.New("daterange: invalid date format, want YYYY-MM-DD")

// Date is a calendar day without time of day or timezone.
// The zero value means "no date".
type Date struct {
	year  int
	month time.Month
	day   int
}

// New builds a Date. Out-of-range components are normalized the way time.Date
// normalizes them, e.g. February 30 becomes March 1 or 2.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Today returns the local calendar day of now.
func Today(now time.Time) Date {
	return New(now.Year(), now.Month(), now.Day())
}

// ParseISO parses YYYY-MM-DD. Only the shape is checked.
func ParseISO(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	nums := [3]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
		}
		nums[i] = n
	}
	return New(nums[0], time.Month(nums[1]), nums[2]), nil
}

// MustParseISO is ParseISO for fixtures and tests.
func MustParseISO(s string) Date {
	d, err := ParseISO(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int             { return d.year }
func (d Date) Month() time.Month     { return d.month }
func (d Date) Day() int              { return d.day }
func (d Date) IsZero() bool          { return d == Date{} }
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Time returns midnight UTC of d. UTC keeps day arithmetic free of DST shifts.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// ISO formats d as zero-padded YYYY-MM-DD. The zero Date formats as "".
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Date) String() string { return d.ISO() }

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

func (d Date) AddDays(n int) Date {
	return New(d.year, d.month, d.day+n)
}

// AddMonths shifts by n months and returns the first day of the resulting month.
func (d Date) AddMonths(n int) Date {
	return New(d.year, d.month+time.Month(n), 1)
}

func (d Date) StartOfMonth() Date {
	return New(d.year, d.month, 1)
}

// EndOfMonth is day 0 of the following month.
func (d Date) EndOfMonth() Date {
	return New(d.year, d.month+1, 0)
}

func (d Date) DaysInMonth() int {
	return d.EndOfMonth().day
}

// MondayIndex is the ISO weekday minus one: Monday=0 ... Sunday=6.
func (d Date) MondayIndex() int {
	return (int(d.Weekday()) + 6) % 7
}

// MonthTitle renders "June 2024". Display only.
func (d Date) MonthTitle() string {
	return fmt.Sprintf("%s %d", d.month.String(), d.year)
}

// MonthParam renders the month as YYYY-MM for query strings.
func (d Date) MonthParam() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", d.year, int(d.month))
}

// ParseMonth accepts YYYY-MM or a full ISO date and returns day 1 of that month.
func ParseMonth(s string) (Date, error) {
	if strings.Count(s, "-") == 1 {
		s += "-01"
	}
	d, err := ParseISO(s)
	if err != nil {
		return Date{}, err
	}
	return d.StartOfMonth(), nil
}

// NightsBetween counts whole days from start to end, never below zero.
// The checkout day is not a night.
func NightsBetween(start, end Date) int {
	days := math.Round(end.Time().Sub(start.Time()).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// NightsBetweenISO is NightsBetween over ISO strings.
func NightsBetweenISO(startISO, endISO string) (int, error) {
	start, err := ParseISO(startISO)
	if err != nil {
		return 0, err
	}
	end, err := ParseISO(endISO)
	if err != nil {
		return 0, err
	}
	return NightsBetween(start, end), nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.ISO()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseISO(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
