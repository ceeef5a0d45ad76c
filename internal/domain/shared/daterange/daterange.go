package daterange

import "errors"

var (
	ErrInvalidRange = errors.New("daterange: end must not be before start")
)

// Range is a closed interval [Start, End]; both days are included.
type Range struct {
	Start Date `json:"start" yaml:"start"`
	End   Date `json:"end" yaml:"end"`
}

func NewRange(start, end Date) (Range, error) {
	r := Range{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// ParseRange parses two ISO dates into a Range without ordering checks.
func ParseRange(startISO, endISO string) (Range, error) {
	start, err := ParseISO(startISO)
	if err != nil {
		return Range{}, err
	}
	end, err := ParseISO(endISO)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}

func (r Range) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidRange
	}
	if r.End.Before(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether d lies within [Start, End].
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps reports whether two closed intervals share at least one day.
// Touching endpoints count.
func (r Range) Overlaps(other Range) bool {
	return !(r.End.Before(other.Start) || r.Start.After(other.End))
}

// Nights is the number of nights from Start to End, treating End as checkout.
func (r Range) Nights() int {
	return NightsBetween(r.Start, r.End)
}

// CheckOut is the first day after the range, the exclusive end used by
// half-open consumers such as iCalendar DTEND.
func (r Range) CheckOut() Date {
	return r.End.AddDays(1)
}
