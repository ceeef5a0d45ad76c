package views

import (
	"net/url"
	"strconv"

	"bnb/internal/app/dto"
	domaincalendar "bnb/internal/domain/calendar"
)

// DayView is a grid cell with the link that replays a click on it. Booked
// cells have no link.
type DayView struct {
	domaincalendar.Cell
	Href string
}

type CalendarView struct {
	dto.Calendar
	Days      [][]DayView
	PrevHref  string
	NextHref  string
	ClearHref string
}

// DotView is one carousel position marker.
type DotView struct {
	Position int
	Href     string
	Active   bool
}

type CardView struct {
	dto.RoomCard
	Calendar  CalendarView
	Image     string
	PrevImage string
	NextImage string
	Dots      []DotView
	Anchor    string
}

type CheckoutView struct {
	Room     dto.Room
	Calendar CalendarView
}

// linker builds URLs that carry the widget state back to base.
type linker struct {
	base   string
	anchor string
	cal    dto.Calendar
	extra  url.Values
}

func (l linker) href(set url.Values, keepSelection bool) string {
	q := url.Values{}
	q.Set("room", l.cal.RoomID)
	q.Set("month", l.cal.Month)
	if keepSelection {
		if l.cal.Selection.Start != "" {
			q.Set("start", l.cal.Selection.Start)
		}
		if l.cal.Selection.End != "" {
			q.Set("end", l.cal.Selection.End)
		}
	}
	for k, vs := range l.extra {
		q[k] = vs
	}
	for k, vs := range set {
		q[k] = vs
	}
	u := url.URL{Path: l.base, RawQuery: q.Encode(), Fragment: l.anchor}
	return u.String()
}

func newCalendarView(l linker) CalendarView {
	cal := l.cal
	v := CalendarView{
		Calendar:  cal,
		Days:      make([][]DayView, 0, len(cal.Weeks)),
		PrevHref:  l.href(url.Values{"nav": {"prev"}}, true),
		NextHref:  l.href(url.Values{"nav": {"next"}}, true),
		ClearHref: l.href(nil, false),
	}
	for _, week := range cal.Weeks {
		row := make([]DayView, 0, len(week))
		for _, cell := range week {
			d := DayView{Cell: cell}
			if cell.Clickable() {
				d.Href = l.href(url.Values{"pick": {cell.ISO()}}, true)
			}
			row = append(row, d)
		}
		v.Days = append(v.Days, row)
	}
	return v
}

// NewCards prepares the listing page cards. Links point back at "/" and
// jump to the card they came from.
func NewCards(cards []dto.RoomCard) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		anchor := "room-" + c.Room.ID
		l := linker{base: "/", anchor: anchor, cal: c.Calendar}
		if c.ImageIndex != 0 {
			l.extra = url.Values{"img": {strconv.Itoa(c.ImageIndex)}}
		}
		out = append(out, CardView{
			RoomCard:  c,
			Calendar:  newCalendarView(l),
			Image:     c.Image(),
			PrevImage: l.href(url.Values{"img": {strconv.Itoa(c.ImageIndex - 1)}}, true),
			NextImage: l.href(url.Values{"img": {strconv.Itoa(c.ImageIndex + 1)}}, true),
			Dots:      imageDots(l, c),
			Anchor:    anchor,
		})
	}
	return out
}

func imageDots(l linker, c dto.RoomCard) []DotView {
	dots := make([]DotView, 0, len(c.Room.Images))
	for i := range c.Room.Images {
		dots = append(dots, DotView{
			Position: i + 1,
			Href:     l.href(url.Values{"img": {strconv.Itoa(i)}}, true),
			Active:   i == c.ImageIndex,
		})
	}
	return dots
}

// NewCheckout prepares the checkout panel, or nil when there is no room.
func NewCheckout(page dto.CheckoutPage) *CheckoutView {
	if page.Room == nil || page.Calendar == nil {
		return nil
	}
	l := linker{base: "/checkout", cal: *page.Calendar}
	return &CheckoutView{Room: *page.Room, Calendar: newCalendarView(l)}
}
