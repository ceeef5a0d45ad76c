package booking

import (
	"fmt"

	"bnb/internal/domain/calendar"
	"bnb/internal/domain/shared/daterange"
	"bnb/internal/domain/shared/money"
)

const (
	PromptPickRange   = "Pick a date range"
	PromptSelectDates = "Select dates to see availability"
	PromptChooseEnd   = "Choose an end date"
)

// Summary is what the booking panel shows for a selection.
type Summary struct {
	Stage      calendar.State `json:"-"`
	StageName  string         `json:"stage"`
	Start      string         `json:"start,omitempty"`
	End        string         `json:"end,omitempty"`
	Dates      string         `json:"dates"`
	Prompt     string         `json:"prompt"`
	Nights     int            `json:"nights"`
	Total      string         `json:"total,omitempty"`
	Warning    string         `json:"warning,omitempty"`
	CanConfirm bool           `json:"can_confirm"`
}

// Summarize derives the panel text for sel at the nightly rate. A non-empty
// warning keeps the confirm action disabled but the totals are still shown.
func Summarize(sel calendar.Selection, nightly money.Money, warning string) Summary {
	s := Summary{
		Stage:     sel.State(),
		StageName: sel.State().String(),
		Start:     sel.Start.ISO(),
		End:       sel.End.ISO(),
		Warning:   warning,
	}

	switch s.Stage {
	case calendar.StateEmpty:
		s.Dates = PromptPickRange
		s.Prompt = PromptSelectDates
	case calendar.StatePartialStart:
		s.Dates = s.Start + " → …"
		s.Prompt = PromptChooseEnd
	case calendar.StateComplete:
		s.Dates = s.Start + " → " + s.End
		s.Nights = daterange.NightsBetween(sel.Start, sel.End)
		s.Total = nightly.Multiply(int64(s.Nights)).String()
		s.Prompt = fmt.Sprintf("%d %s • %s", s.Nights, pluralNights(s.Nights), s.Total)
		s.CanConfirm = warning == ""
	}
	return s
}

func pluralNights(n int) string {
	if n == 1 {
		return "night"
	}
	return "nights"
}

// Presenter keeps the latest Summary for one widget.
type Presenter struct {
	Nightly money.Money
	current Summary
}

func NewPresenter(nightly money.Money) *Presenter {
	p := &Presenter{Nightly: nightly}
	p.Handle(calendar.Change{})
	return p
}

// Handle recomputes the summary from a change notification.
func (p *Presenter) Handle(c calendar.Change) {
	p.current = Summarize(c.Selection, p.Nightly, c.Warning)
}

// Listener adapts the presenter to calendar.Options.OnChange.
func (p *Presenter) Listener() calendar.Listener {
	return p.Handle
}

func (p *Presenter) Summary() Summary { return p.current }
