package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	domainlistings "bnb/internal/domain/listings"
)

const productID = "-//bnb//room availability//EN"

// ExportRoom renders the room's booked ranges as all-day events. Ranges are
// inclusive, so DTEND is the day after the last booked night's date. A range
// ending before it starts has no valid event form and is left out.
func ExportRoom(room domainlistings.Room, host string, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(room.Name + " availability")

	for i, r := range room.BookedRanges {
		if r.Validate() != nil {
			continue
		}
		uid := fmt.Sprintf("%s-%s-%d@%s", room.ID, r.Start.ISO(), i, host)
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(r.Start.Time())
		ev.SetAllDayEndAt(r.CheckOut().Time())
		ev.SetSummary("Booked")
	}
	return cal.Serialize()
}
