package availability

import (
	"fmt"
	"time"

	"bnb/internal/app/dto"
	domainbooking "bnb/internal/domain/booking"
	domaincalendar "bnb/internal/domain/calendar"
	domainlistings "bnb/internal/domain/listings"
	"bnb/internal/domain/shared/daterange"
)

const (
	NavPrev = "prev"
	NavNext = "next"
)

// State is the widget state a request carries in its query string.
type State struct {
	// Month is YYYY-MM or a full ISO date. Empty shows the start date's month,
	// or the current month when nothing is selected.
	Month string
	// Nav moves one month from Month: "prev" or "next".
	Nav   string
	Start string
	End   string
	// Pick is the day the visitor clicked.
	Pick string
}

// Session is one widget rebuilt for one request with a presenter attached.
type Session struct {
	Room      domainlistings.Room
	Widget    *domaincalendar.Widget
	Presenter *domainbooking.Presenter
	Picked    bool
}

// Open restores st on a fresh widget for room: pre-seeds the selection,
// surfaces any overlap for it, moves to the requested month and finally
// replays the click, if any, through the state machine.
func Open(room domainlistings.Room, st State, now func() time.Time) (*Session, error) {
	presenter := domainbooking.NewPresenter(room.Nightly())
	w := domaincalendar.New(domaincalendar.Options{
		Booked:   room.Availability(),
		OnChange: presenter.Listener(),
		Now:      now,
	})
	if err := w.SetSelection(st.Start, st.End); err != nil {
		return nil, fmt.Errorf("restore selection: %w", err)
	}
	presenter.Handle(domaincalendar.Change{Selection: w.Selection(), Warning: w.Warning()})

	if err := focusMonth(w, st); err != nil {
		return nil, err
	}

	s := &Session{Room: room, Widget: w, Presenter: presenter}
	if st.Pick != "" {
		picked, err := w.ClickISO(st.Pick)
		if err != nil {
			return nil, fmt.Errorf("pick: %w", err)
		}
		s.Picked = picked
	}
	return s, nil
}

func focusMonth(w *domaincalendar.Widget, st State) error {
	switch {
	case st.Month != "":
		m, err := daterange.ParseMonth(st.Month)
		if err != nil {
			return fmt.Errorf("month: %w", err)
		}
		if err := w.SetMonth(m.ISO()); err != nil {
			return err
		}
	case !w.Selection().Start.IsZero():
		if err := w.SetMonth(w.Selection().Start.ISO()); err != nil {
			return err
		}
	}
	switch st.Nav {
	case NavPrev:
		w.PrevMonth()
	case NavNext:
		w.NextMonth()
	}
	return nil
}

func (s *Session) Calendar() dto.Calendar {
	return dto.MapCalendar(s.Room.ID, s.Widget, s.Presenter.Summary(), s.Picked)
}

func (s *Session) Summary() domainbooking.Summary {
	return s.Presenter.Summary()
}
