package calendar

import (
	"strings"

	"bnb/internal/domain/availability"
	"bnb/internal/domain/shared/daterange"
)

// Weekdays is the Monday-first header row.
var Weekdays = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// Cell is one day square of the month grid.
type Cell struct {
	Date    daterange.Date `json:"date"`
	Day     int            `json:"day"`
	Muted   bool           `json:"muted"`
	Booked  bool           `json:"booked"`
	Start   bool           `json:"start"`
	End     bool           `json:"end"`
	InRange bool           `json:"in_range"`
}

func (c Cell) ISO() string { return c.Date.ISO() }

// Clickable reports whether the cell accepts a pick. Booked days are inert.
func (c Cell) Clickable() bool { return !c.Booked }

func (c Cell) Title() string {
	if c.Booked {
		return "Booked"
	}
	return ""
}

// Classes returns the CSS class list for the cell.
func (c Cell) Classes() string {
	classes := []string{"day"}
	if c.Muted {
		classes = append(classes, "muted")
	}
	if c.Booked {
		classes = append(classes, "disabled")
	}
	if c.Start {
		classes = append(classes, "start")
	}
	if c.End {
		classes = append(classes, "end")
	}
	if c.InRange {
		classes = append(classes, "inRange")
	}
	return strings.Join(classes, " ")
}

// Grid is a rendered month: header, title and a multiple of seven cells.
type Grid struct {
	Month    daterange.Date `json:"month"`
	Title    string         `json:"title"`
	Weekdays [7]string      `json:"weekdays"`
	Cells    []Cell         `json:"cells"`
}

// Weeks splits the cells into rows of seven.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// Render builds the grid for month from scratch. It has no side effects, so
// no flag from an earlier state can leak into the result.
func Render(month daterange.Date, sel Selection, booked availability.Index) Grid {
	first := month.StartOfMonth()
	offset := first.MondayIndex()
	daysInMonth := first.DaysInMonth()

	cells := make([]Cell, 0, 42)
	for i := offset; i > 0; i-- {
		cells = append(cells, newCell(first.AddDays(-i), true, sel, booked))
	}
	for day := 0; day < daysInMonth; day++ {
		cells = append(cells, newCell(first.AddDays(day), false, sel, booked))
	}
	next := first.AddMonths(1)
	need := (7 - len(cells)%7) % 7
	for i := 0; i < need; i++ {
		cells = append(cells, newCell(next.AddDays(i), true, sel, booked))
	}

	return Grid{
		Month:    first,
		Title:    first.MonthTitle(),
		Weekdays: Weekdays,
		Cells:    cells,
	}
}

func newCell(d daterange.Date, muted bool, sel Selection, booked availability.Index) Cell {
	return Cell{
		Date:    d,
		Day:     d.Day(),
		Muted:   muted,
		Booked:  booked.IsBooked(d),
		Start:   !sel.Start.IsZero() && d == sel.Start,
		End:     !sel.End.IsZero() && d == sel.End,
		InRange: sel.State() == StateComplete && d.After(sel.Start) && d.Before(sel.End),
	}
}
