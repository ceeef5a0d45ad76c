package calendar

import (
	"time"

	"bnb/internal/domain/availability"
	"bnb/internal/domain/shared/daterange"
)

// OverlapWarning is shown when a completed selection includes a booked day.
const OverlapWarning = "That range includes booked dates. Please choose different dates."

type State int

const (
	StateEmpty State = iota
	StatePartialStart
	StateComplete
)

func (s State) String() string {
	switch s {
	case StatePartialStart:
		return "partial_start"
	case StateComplete:
		return "complete"
	default:
		return "empty"
	}
}

// Selection is the visitor's check-in/check-out pick. Zero dates mean unset.
type Selection struct {
	Start daterange.Date `json:"start"`
	End   daterange.Date `json:"end"`
}

func (s Selection) State() State {
	switch {
	case s.Start.IsZero():
		return StateEmpty
	case s.End.IsZero():
		return StatePartialStart
	default:
		return StateComplete
	}
}

// Change is delivered to the listener after every accepted click.
type Change struct {
	Selection
	Warning string
}

// Listener observes selection changes. It runs synchronously inside Click,
// after the selection is updated but before the grid is re-rendered, so Grid
// called from a listener still returns the previous grid.
type Listener func(Change)

type Options struct {
	Booked availability.Index
	// Month is the first displayed month; zero means the current month.
	Month    daterange.Date
	OnChange Listener
	Now      func() time.Time
}

// Widget is the month-grid date range picker for one room. It is not safe for
// concurrent use; each page request owns its own instance.
type Widget struct {
	booked   availability.Index
	month    daterange.Date
	sel      Selection
	onChange Listener
	grid     Grid
}

func New(opts Options) *Widget {
	month := opts.Month
	if month.IsZero() {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		month = daterange.Today(now())
	}
	w := &Widget{
		booked:   opts.Booked,
		month:    month.StartOfMonth(),
		onChange: opts.OnChange,
	}
	w.render()
	return w
}

// Click runs the selection state machine for day d. Booked days are ignored
// and Click reports false.
func (w *Widget) Click(d daterange.Date) bool {
	if d.IsZero() || w.booked.IsBooked(d) {
		return false
	}

	if w.sel.State() == StatePartialStart {
		if d.Before(w.sel.Start) {
			w.sel.End = w.sel.Start
			w.sel.Start = d
		} else {
			w.sel.End = d
		}
	} else {
		// A click on a complete range starts over.
		w.sel = Selection{Start: d}
	}

	if w.onChange != nil {
		w.onChange(Change{Selection: w.sel, Warning: w.Warning()})
	}
	w.render()
	return true
}

// ClickISO is Click for an ISO date string.
func (w *Widget) ClickISO(iso string) (bool, error) {
	d, err := daterange.ParseISO(iso)
	if err != nil {
		return false, err
	}
	return w.Click(d), nil
}

// Warning returns OverlapWarning when the current selection is complete and
// touches a booked range, and "" otherwise.
func (w *Widget) Warning() string {
	if w.sel.State() == StateComplete && w.booked.Overlaps(w.sel.Start, w.sel.End) {
		return OverlapWarning
	}
	return ""
}

func (w *Widget) PrevMonth() {
	w.month = w.month.AddMonths(-1)
	w.render()
}

func (w *Widget) NextMonth() {
	w.month = w.month.AddMonths(1)
	w.render()
}

// SetMonth displays the month containing iso.
func (w *Widget) SetMonth(iso string) error {
	d, err := daterange.ParseISO(iso)
	if err != nil {
		return err
	}
	w.month = d.StartOfMonth()
	w.render()
	return nil
}

// SetSelection replaces the selection without running the state machine. An
// empty string clears that endpoint. An end without a start is dropped and a
// reversed pair is stored in chronological order. Neither the overlap check
// nor the listener runs; callers use Warning if they need it.
func (w *Widget) SetSelection(startISO, endISO string) error {
	var sel Selection
	if startISO != "" {
		start, err := daterange.ParseISO(startISO)
		if err != nil {
			return err
		}
		sel.Start = start
	}
	if endISO != "" && !sel.Start.IsZero() {
		end, err := daterange.ParseISO(endISO)
		if err != nil {
			return err
		}
		sel.End = end
		if end.Before(sel.Start) {
			sel.Start, sel.End = end, sel.Start
		}
	}
	w.sel = sel
	w.render()
	return nil
}

func (w *Widget) Selection() Selection { return w.sel }

func (w *Widget) Month() daterange.Date { return w.month }

// Grid returns the grid produced by the latest render.
func (w *Widget) Grid() Grid { return w.grid }

func (w *Widget) render() {
	w.grid = Render(w.month, w.sel, w.booked)
}
