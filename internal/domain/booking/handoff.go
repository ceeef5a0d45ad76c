package booking

import (
	"net/url"

	"bnb/internal/domain/calendar"
)

// CheckoutPath is where the listing page sends a chosen range.
const CheckoutPath = "/checkout"

// Handoff carries a room selection from the listing page to checkout as
// query parameters room, start and end.
type Handoff struct {
	RoomID string
	Start  string
	End    string
}

func NewHandoff(roomID string, sel calendar.Selection) Handoff {
	return Handoff{RoomID: roomID, Start: sel.Start.ISO(), End: sel.End.ISO()}
}

func ParseHandoff(q url.Values) Handoff {
	return Handoff{
		RoomID: q.Get("room"),
		Start:  q.Get("start"),
		End:    q.Get("end"),
	}
}

// Complete reports whether both dates are present.
func (h Handoff) Complete() bool {
	return h.Start != "" && h.End != ""
}

func (h Handoff) Query() url.Values {
	q := url.Values{}
	if h.RoomID != "" {
		q.Set("room", h.RoomID)
	}
	if h.Start != "" {
		q.Set("start", h.Start)
	}
	if h.End != "" {
		q.Set("end", h.End)
	}
	return q
}

func (h Handoff) CheckoutURL() string {
	u := url.URL{Path: CheckoutPath, RawQuery: h.Query().Encode()}
	return u.String()
}
