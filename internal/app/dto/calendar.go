package dto

import (
	domainbooking "bnb/internal/domain/booking"
	domaincalendar "bnb/internal/domain/calendar"
)

// Selection is the chosen range in ISO form.
type Selection struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	State string `json:"state"`
}

// Calendar is one rendered widget with its booking panel.
type Calendar struct {
	RoomID      string                  `json:"room_id"`
	Month       string                  `json:"month"`
	Title       string                  `json:"title"`
	PrevMonth   string                  `json:"prev_month"`
	NextMonth   string                  `json:"next_month"`
	Weekdays    []string                `json:"weekdays"`
	Weeks       [][]domaincalendar.Cell `json:"weeks"`
	Selection   Selection               `json:"selection"`
	Summary     domainbooking.Summary   `json:"summary"`
	Picked      bool                    `json:"picked"`
	CheckoutURL string                  `json:"checkout_url,omitempty"`
}

// MapCalendar snapshots a widget after the request's interaction was applied.
// CheckoutURL is only set when the confirm action would be enabled.
func MapCalendar(roomID string, w *domaincalendar.Widget, summary domainbooking.Summary, picked bool) Calendar {
	grid := w.Grid()
	sel := w.Selection()
	month := w.Month()
	out := Calendar{
		RoomID:    roomID,
		Month:     month.MonthParam(),
		Title:     grid.Title,
		PrevMonth: month.AddMonths(-1).MonthParam(),
		NextMonth: month.AddMonths(1).MonthParam(),
		Weekdays:  grid.Weekdays[:],
		Weeks:     grid.Weeks(),
		Selection: Selection{
			Start: sel.Start.ISO(),
			End:   sel.End.ISO(),
			State: sel.State().String(),
		},
		Summary: summary,
		Picked:  picked,
	}
	if summary.CanConfirm {
		out.CheckoutURL = domainbooking.NewHandoff(roomID, sel).CheckoutURL()
	}
	return out
}
