package availability

import (
	"bnb/internal/domain/shared/daterange"
)

// Index is the read-only list of booked ranges for one room. Lists are short,
// so every query is a linear scan.
type Index []daterange.Range

func NewIndex(ranges ...daterange.Range) Index {
	return Index(append([]daterange.Range(nil), ranges...))
}

// IsBooked reports whether d falls inside any booked range, endpoints included.
func (idx Index) IsBooked(d daterange.Date) bool {
	for _, r := range idx {
		if r.Contains(d) {
			return true
		}
	}
	return false
}

// Overlaps reports whether [start, end] shares at least one day with any
// booked range.
func (idx Index) Overlaps(start, end daterange.Date) bool {
	sel := daterange.Range{Start: start, End: end}
	for _, r := range idx {
		if sel.Overlaps(r) {
			return true
		}
	}
	return false
}

// IsBookedISO is IsBooked over an ISO date string.
func IsBookedISO(dateISO string, ranges []daterange.Range) (bool, error) {
	d, err := daterange.ParseISO(dateISO)
	if err != nil {
		return false, err
	}
	return Index(ranges).IsBooked(d), nil
}

// OverlapsISO is Overlaps over ISO date strings.
func OverlapsISO(selStartISO, selEndISO string, ranges []daterange.Range) (bool, error) {
	sel, err := daterange.ParseRange(selStartISO, selEndISO)
	if err != nil {
		return false, err
	}
	return Index(ranges).Overlaps(sel.Start, sel.End), nil
}
